package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentFileAdapterLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	content := "python_version: \"2.7\"\nsys_platform: linux\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	env, err := NewEnvironmentFileAdapter().Load(path)
	require.NoError(t, err)
	want := map[string]string{
		"python_version": "2.7",
		"sys_platform":   "linux",
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Fatalf("unexpected environment (-want +got):\n%s", diff)
	}
}

func TestEnvironmentFileAdapterMissing(t *testing.T) {
	_, err := NewEnvironmentFileAdapter().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEnvironmentFileAdapterMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("python_version:\n  nested: true\n"), 0644))

	_, err := NewEnvironmentFileAdapter().Load(path)
	require.Error(t, err)
}
