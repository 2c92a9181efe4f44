package core

import (
	"bufio"
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/types"
)

// ParseTextMetadata parses the legacy key/value METADATA format into a
// normalized document. The environment snapshot participates in the
// common-set computation, so two hosts with different snapshots may
// legitimately produce different groupings for the same file.
//
// Only three headers matter here: Name (required), Provides-Extra, and
// Requires-Dist.
func ParseTextMetadata(ctx context.Context, content string, env map[string]string) (types.MetadataDocument, error) {
	name := ""
	extraSet := map[string]struct{}{}
	var requirements []types.Requirement

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if value, ok := strings.CutPrefix(line, "Name: "); ok {
			if name == "" {
				name = strings.TrimSpace(value)
			}
			continue
		}
		if value, ok := strings.CutPrefix(line, "Provides-Extra: "); ok {
			extraSet[strings.TrimSpace(value)] = struct{}{}
			continue
		}
		if value, ok := strings.CutPrefix(line, "Requires-Dist: "); ok {
			requirement, err := ParseRequirement(value)
			if err != nil {
				return types.MetadataDocument{}, err
			}
			requirements = append(requirements, requirement)
		}
	}
	if err := scanner.Err(); err != nil {
		return types.MetadataDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan metadata text").
			WithCause(err)
	}
	if name == "" {
		return types.MetadataDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata text has no Name header")
	}

	extras := make([]string, 0, len(extraSet))
	for extra := range extraSet {
		extras = append(extras, extra)
	}
	sort.Strings(extras)

	return NormalizeRequirements(ctx, name, extras, requirements, env)
}
