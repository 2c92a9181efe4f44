package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"whlgen/tests/testutil"
)

func TestZipArchiveReadEntry(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWheel(t, dir, "demo-1.0.0-py3-none-any.whl", map[string]string{
		"demo-1.0.0.dist-info/METADATA": "Name: demo\n",
		"demo/__init__.py":              "",
	})
	adapter := NewZipArchiveAdapter()

	data, err := adapter.ReadEntry(path, "demo-1.0.0.dist-info/METADATA")
	require.NoError(t, err)
	require.Equal(t, "Name: demo\n", string(data))

	_, err = adapter.ReadEntry(path, "demo-1.0.0.dist-info/metadata.json")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestZipArchiveUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken-1.0.0-py3-none-any.whl")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0644))

	adapter := NewZipArchiveAdapter()
	_, err := adapter.ReadEntry(path, "anything")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestZipArchiveListEntries(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWheel(t, dir, "demo-1.0.0-py3-none-any.whl", map[string]string{
		"demo-1.0.0.dist-info/METADATA": "Name: demo\n",
		"demo/__init__.py":              "",
		"demo/api.py":                   "API = True\n",
	})
	adapter := NewZipArchiveAdapter()

	names, err := adapter.ListEntries(path)
	require.NoError(t, err)
	want := []string{
		"demo-1.0.0.dist-info/METADATA",
		"demo/__init__.py",
		"demo/api.py",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestZipArchiveExtractAndRelocate(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWheel(t, dir, "demo-1.0.0-py3-none-any.whl", map[string]string{
		"demo-1.0.0.dist-info/METADATA":       "Name: demo\n",
		"demo-1.0.0.data/purelib/demo_pkg.py": "VALUE = 1\n",
		"demo-1.0.0.data/scripts/demo":        "#!/usr/bin/env python\n",
	})
	adapter := NewZipArchiveAdapter()
	target := filepath.Join(dir, "out")

	require.NoError(t, adapter.ExtractAll(path, target))
	require.NoError(t, adapter.RelocatePurelib(target, "demo-1.0.0.data"))

	relocated, err := os.ReadFile(filepath.Join(target, "demo_pkg.py"))
	require.NoError(t, err)
	require.Equal(t, "VALUE = 1\n", string(relocated))

	_, err = os.Stat(filepath.Join(target, "demo-1.0.0.data", "purelib", "demo_pkg.py"))
	require.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(target, "demo-1.0.0.data", "scripts", "demo"))
	require.NoError(t, err)
}

func TestZipArchiveRelocateWithoutPurelib(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewZipArchiveAdapter().RelocatePurelib(dir, "demo-1.0.0.data"))
}

func TestZipArchiveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWheel(t, dir, "evil-1.0.0-py3-none-any.whl", map[string]string{
		"../evil.py": "print('escaped')\n",
	})
	adapter := NewZipArchiveAdapter()

	err := adapter.ExtractAll(path, filepath.Join(dir, "out"))
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
