package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"whlgen/internal/ports"
)

// EnvironmentFileAdapter loads marker environment overrides from a YAML
// file of string key/value pairs, e.g.
//
//	python_version: "2.7"
//	sys_platform: linux
type EnvironmentFileAdapter struct{}

func NewEnvironmentFileAdapter() EnvironmentFileAdapter {
	return EnvironmentFileAdapter{}
}

func (a EnvironmentFileAdapter) Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("environment file not found").
			WithCause(err)
	}
	var env map[string]string
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse environment yaml").
			WithCause(err)
	}
	for key := range env {
		if strings.TrimSpace(key) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("environment file contains an empty attribute name")
		}
	}
	return env, nil
}

var _ ports.EnvironmentSourcePort = EnvironmentFileAdapter{}
