package app

import "whlgen/internal/types"

type ExtractRequest struct {
	WheelPath         string
	Directory         string
	RequirementsLabel string
	Extras            []string
	EnvFile           string
	EnvOverrides      map[string]string
}

type ExtractResult struct {
	RepositoryKey string
	Directory     string
	FileCount     int
	Targets       []string
}

type InspectRequest struct {
	WheelPath    string
	EnvFile      string
	EnvOverrides map[string]string
}

type InspectResult struct {
	Name          string
	Distribution  string
	Version       string
	RepositoryKey string
	Extras        []string
	Groups        []types.RequirementGroup
}

type DepsRequest struct {
	WheelPath    string
	Extra        string
	EnvFile      string
	EnvOverrides map[string]string
}

type DepsResult struct {
	Requirements []string
}
