package types

import "strings"

// WheelIdentity is derived purely from the archive file name, following
// the PEP 427 convention {distribution}-{version}-{python}-{abi}-{platform}.
// Only the first two fields carry meaning for dependency extraction; the
// tag fields are retained for display but never interpreted.
type WheelIdentity struct {
	Distribution string
	Version      string
	PythonTag    string
	ABITag       string
	PlatformTag  string
}

// RepositoryKey returns the canonical identifier used to name the
// generated build unit for this package: pypi__{distribution}_{version}
// with every '-', '.' and '+' replaced by '_'.
func (i WheelIdentity) RepositoryKey() string {
	canonical := "pypi__" + i.Distribution + "_" + i.Version
	replacer := strings.NewReplacer("-", "_", ".", "_", "+", "_")
	return replacer.Replace(canonical)
}

// DistInfoDir returns the name of the dist-info directory inside the
// archive, e.g. "mock-2.0.0.dist-info".
func (i WheelIdentity) DistInfoDir() string {
	return i.Distribution + "-" + i.Version + ".dist-info"
}

// DataDir returns the name of the data directory inside the archive,
// e.g. "mock-2.0.0.data".
func (i WheelIdentity) DataDir() string {
	return i.Distribution + "-" + i.Version + ".data"
}
