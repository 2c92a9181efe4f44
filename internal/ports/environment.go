package ports

// EnvironmentSourcePort loads marker environment overrides from a file.
type EnvironmentSourcePort interface {
	Load(path string) (map[string]string, error)
}
