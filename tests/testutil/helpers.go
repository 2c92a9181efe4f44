// Package testutil provides shared test helpers used across unit and
// integration test packages.
package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteWheel creates a synthetic wheel archive with the given entries
// and returns its path. Entries are written in sorted name order so the
// archive layout is deterministic.
func WriteWheel(t *testing.T, dir string, filename string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	require.NoError(t, err)

	writer := zip.NewWriter(file)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())
	return path
}

// MockMetadata is a text-format metadata document shaped like the mock
// package: two unconditional dependencies plus one dependency per extra.
const MockMetadata = `Metadata-Version: 2.1
Name: mock
Version: 2.0.0
Provides-Extra: docs
Provides-Extra: test
Requires-Dist: pbr
Requires-Dist: six
Requires-Dist: sphinx; extra == "docs"
Requires-Dist: unittest2; extra == "test"
`
