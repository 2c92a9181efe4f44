package core

import (
	"context"
	"maps"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"whlgen/internal/shared"
	"whlgen/internal/types"
)

type groupKey struct {
	extra  string
	marker string
}

// NormalizeRequirements turns a flat requirement list into canonical
// per-extra, per-marker groups:
//
//  1. The common set holds every requirement whose marker is absent or
//     satisfied with the extra attribute unbound.
//  2. Each declared extra gets the full set applicable when extra is
//     bound to its name, minus the common set. The text format
//     re-declares unconditional dependencies under extras that add
//     nothing; without the subtraction every per-extra build target
//     would duplicate the base target's edges.
//  3. Requirements sharing (extra, marker) merge into one group with
//     deduplicated, sorted names; groups sort by (extra, marker).
//
// The result is deterministic for any input order, so byte-identical
// metadata always yields byte-identical documents.
func NormalizeRequirements(ctx context.Context, name string, extras []string, requirements []types.Requirement, env map[string]string) (types.MetadataDocument, error) {
	assert.NotEmpty(ctx, name, "package name must be set before normalization")

	common, err := requirementsForExtra(requirements, "", env)
	if err != nil {
		return types.MetadataDocument{}, err
	}
	commonSet := make(map[types.Requirement]struct{}, len(common))
	for _, req := range common {
		commonSet[req] = struct{}{}
	}

	grouped := map[groupKey][]string{}
	for _, req := range common {
		key := groupKey{marker: req.Marker}
		grouped[key] = append(grouped[key], req.Name)
	}
	for _, extra := range extras {
		full, err := requirementsForExtra(requirements, extra, env)
		if err != nil {
			return types.MetadataDocument{}, err
		}
		safe := shared.SafeExtra(extra)
		for _, req := range full {
			if _, ok := commonSet[req]; ok {
				continue
			}
			key := groupKey{extra: safe, marker: req.Marker}
			grouped[key] = append(grouped[key], req.Name)
		}
	}

	keys := make([]groupKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].extra != keys[j].extra {
			return keys[i].extra < keys[j].extra
		}
		return keys[i].marker < keys[j].marker
	})

	groups := make([]types.RequirementGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, types.RequirementGroup{
			Extra:    key.extra,
			Marker:   key.marker,
			Requires: sortedUnique(grouped[key]),
		})
	}

	log.Ctx(ctx).Debug().
		Str("package", name).
		Int("requirements", len(requirements)).
		Int("groups", len(groups)).
		Msg("requirements normalized")

	return types.MetadataDocument{
		Name:   name,
		Extras: extras,
		Groups: groups,
	}, nil
}

// requirementsForExtra returns the requirements applicable when the extra
// attribute is bound to the given value; an empty value leaves the
// attribute unbound, which is how the common set is computed.
func requirementsForExtra(requirements []types.Requirement, extra string, env map[string]string) ([]types.Requirement, error) {
	scoped := maps.Clone(env)
	if scoped == nil {
		scoped = map[string]string{}
	}
	scoped["extra"] = extra

	var matched []types.Requirement
	seen := map[types.Requirement]struct{}{}
	for _, req := range requirements {
		if req.Marker != "" {
			ok, err := EvaluateMarker(req.Marker, scoped)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		if _, dup := seen[req]; dup {
			continue
		}
		seen[req] = struct{}{}
		matched = append(matched, req)
	}
	return matched, nil
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	sort.Strings(unique)
	return unique
}
