package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/core"
)

// Inspect reports the identity and normalized dependency model of a
// wheel without touching the filesystem beyond the archive read.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	if strings.TrimSpace(req.WheelPath) == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("wheel path is required")
	}
	env, err := s.markerEnvironment(req.EnvFile, req.EnvOverrides)
	if err != nil {
		return InspectResult{}, err
	}
	wheel := core.NewWheel(req.WheelPath, s.Archive, env)

	identity, err := wheel.Identity()
	if err != nil {
		return InspectResult{}, err
	}
	document, err := wheel.Metadata(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	extras, err := wheel.Extras(ctx)
	if err != nil {
		return InspectResult{}, err
	}

	return InspectResult{
		Name:          document.Name,
		Distribution:  identity.Distribution,
		Version:       identity.Version,
		RepositoryKey: identity.RepositoryKey(),
		Extras:        extras,
		Groups:        document.Groups,
	}, nil
}
