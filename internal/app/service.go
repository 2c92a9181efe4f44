package app

import (
	"whlgen/internal/adapters"
	"whlgen/internal/core"
	"whlgen/internal/ports"
)

type Service struct {
	Archive     ports.ArchivePort
	Output      ports.OutputPort
	Environment ports.EnvironmentSourcePort
}

func NewService() Service {
	return Service{
		Archive:     adapters.NewZipArchiveAdapter(),
		Output:      adapters.NewBuildFileAdapter(),
		Environment: adapters.NewEnvironmentFileAdapter(),
	}
}

// markerEnvironment assembles the evaluation environment for one request:
// static defaults, then the optional override file, then explicit
// key=value overrides.
func (s Service) markerEnvironment(envFile string, overrides map[string]string) (map[string]string, error) {
	env := core.DefaultEnvironment()
	if envFile != "" {
		fromFile, err := s.Environment.Load(envFile)
		if err != nil {
			return nil, err
		}
		env = core.MergeEnvironment(env, fromFile)
	}
	return core.MergeEnvironment(env, overrides), nil
}
