package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"whlgen/internal/core"
	"whlgen/internal/types"
)

// Extract expands a wheel into a directory, relocates the purelib
// payload, and generates the manifest plus one build target per package
// and requested extra. All metadata queries run before anything is
// written, so a failing query produces no partial output.
func (s Service) Extract(ctx context.Context, req ExtractRequest) (ExtractResult, error) {
	if strings.TrimSpace(req.WheelPath) == "" {
		return ExtractResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("wheel path is required")
	}
	directory := req.Directory
	if directory == "" {
		directory = "."
	}

	env, err := s.markerEnvironment(req.EnvFile, req.EnvOverrides)
	if err != nil {
		return ExtractResult{}, err
	}
	wheel := core.NewWheel(req.WheelPath, s.Archive, env)

	identity, err := wheel.Identity()
	if err != nil {
		return ExtractResult{}, err
	}

	files, err := wheel.FileNames(ctx)
	if err != nil {
		return ExtractResult{}, err
	}

	baseDeps, err := wheel.Dependencies(ctx, "", env)
	if err != nil {
		return ExtractResult{}, err
	}
	declaration := types.BuildDeclaration{
		RequirementsLabel: req.RequirementsLabel,
		Base:              types.BuildTarget{Name: "pkg", Deps: baseDeps},
	}
	targets := []string{"pkg"}
	for _, extra := range req.Extras {
		// Markers gating per-extra groups compare against the extra
		// attribute, so it must be bound for the query.
		extraEnv := core.MergeEnvironment(env, map[string]string{"extra": extra})
		extraDeps, err := wheel.Dependencies(ctx, extra, extraEnv)
		if err != nil {
			return ExtractResult{}, err
		}
		declaration.ExtraTargets = append(declaration.ExtraTargets, types.BuildTarget{
			Name: extra,
			Deps: extraDeps,
		})
		targets = append(targets, extra)
	}

	if err := s.Archive.ExtractAll(req.WheelPath, directory); err != nil {
		return ExtractResult{}, err
	}
	if err := s.Archive.RelocatePurelib(directory, identity.DataDir()); err != nil {
		return ExtractResult{}, err
	}
	if err := s.Output.WriteManifest(directory, files); err != nil {
		return ExtractResult{}, err
	}
	if err := s.Output.WriteBuildFile(directory, declaration); err != nil {
		return ExtractResult{}, err
	}

	log.Ctx(ctx).Info().
		Str("wheel", req.WheelPath).
		Str("repository", identity.RepositoryKey()).
		Int("files", len(files)).
		Int("targets", len(targets)).
		Msg("wheel extracted")

	return ExtractResult{
		RepositoryKey: identity.RepositoryKey(),
		Directory:     directory,
		FileCount:     len(files),
		Targets:       targets,
	}, nil
}
