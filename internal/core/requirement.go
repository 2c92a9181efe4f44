package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/shared"
	"whlgen/internal/types"
)

// ParseRequirement parses a single Requires-Dist value into a raw
// requirement. Version qualifiers are discarded; only the canonical name
// and the raw marker clause survive.
//
// Accepted shapes:
//
//	"six"
//	"six (>=1.9)"
//	"sphinx; extra == \"docs\""
//	"enum34; python_version<\"3.0\""
func ParseRequirement(value string) (types.Requirement, error) {
	marker := ""
	parts := strings.SplitN(value, ";", 2)
	nameSpec := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		marker = strings.TrimSpace(parts[1])
	}

	// Declared extras on the dependency itself, e.g. "requests[security]",
	// are not part of the canonical key.
	if open := strings.Index(nameSpec, "["); open >= 0 {
		if end := strings.Index(nameSpec, "]"); end > open {
			nameSpec = nameSpec[:open] + nameSpec[end+1:]
		}
	}

	nameSpec = strings.NewReplacer("(", "", ")", "").Replace(nameSpec)
	nameSpec = strings.TrimSpace(nameSpec)
	if cut := strings.IndexAny(nameSpec, " ><=!~"); cut >= 0 {
		nameSpec = strings.TrimSpace(nameSpec[:cut])
	}
	if nameSpec == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("requirement has no package name: " + value)
	}

	return types.Requirement{
		Name:   shared.NormalizePipName(nameSpec),
		Marker: marker,
	}, nil
}
