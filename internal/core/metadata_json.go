package core

import (
	"encoding/json"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/types"
)

// structuredDocument mirrors the metadata.json wire shape. Extra and
// environment are nullable on the wire; pointers keep null distinct from
// the empty string during validation.
type structuredDocument struct {
	Name        string                  `json:"name"`
	Extras      []string                `json:"extras"`
	RunRequires []structuredRequirement `json:"run_requires"`
}

type structuredRequirement struct {
	Extra       *string  `json:"extra"`
	Environment *string  `json:"environment"`
	Requires    []string `json:"requires"`
}

// ParseStructuredMetadata reads the metadata.json format directly into a
// document. The packaging toolchain that produced the file already grouped
// and deduplicated the requirements, so this is shape validation plus
// mapping, never re-normalization. Missing extras/run_requires keys
// default to empty: structured metadata predates extras support in some
// wheels.
func ParseStructuredMetadata(data []byte) (types.MetadataDocument, error) {
	var document structuredDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return types.MetadataDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed structured metadata").
			WithCause(err)
	}
	if document.Name == "" {
		return types.MetadataDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("structured metadata has no name")
	}

	groups := make([]types.RequirementGroup, 0, len(document.RunRequires))
	for _, requirement := range document.RunRequires {
		group := types.RequirementGroup{
			Requires: requirement.Requires,
		}
		if requirement.Extra != nil {
			group.Extra = *requirement.Extra
		}
		if requirement.Environment != nil {
			group.Marker = *requirement.Environment
		}
		groups = append(groups, group)
	}

	return types.MetadataDocument{
		Name:   document.Name,
		Extras: document.Extras,
		Groups: groups,
	}, nil
}
