package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/core"
)

// Deps answers "what packages must be present for this extra under this
// environment". An empty extra queries the unconditional base set.
func (s Service) Deps(ctx context.Context, req DepsRequest) (DepsResult, error) {
	if strings.TrimSpace(req.WheelPath) == "" {
		return DepsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("wheel path is required")
	}
	env, err := s.markerEnvironment(req.EnvFile, req.EnvOverrides)
	if err != nil {
		return DepsResult{}, err
	}
	wheel := core.NewWheel(req.WheelPath, s.Archive, env)

	queryEnv := env
	if req.Extra != "" {
		// Markers gating per-extra groups compare against the extra
		// attribute, so it must be bound for the query.
		queryEnv = core.MergeEnvironment(env, map[string]string{"extra": req.Extra})
	}
	requirements, err := wheel.Dependencies(ctx, req.Extra, queryEnv)
	if err != nil {
		return DepsResult{}, err
	}
	return DepsResult{Requirements: requirements}, nil
}
