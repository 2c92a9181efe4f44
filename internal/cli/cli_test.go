package cli

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"extract", "inspect", "deps"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestExtractCommandFlags(t *testing.T) {
	cmd := newExtractCommand()
	for _, name := range []string{"whl", "directory", "requirements", "extra", "env-file", "env"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDepsCommandFlags(t *testing.T) {
	cmd := newDepsCommand()
	for _, name := range []string{"whl", "extra", "env-file", "env"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	overrides, err := parseEnvOverrides([]string{"python_version=2.7", "sys_platform=linux"})
	require.NoError(t, err)
	assert.Equal(t, "2.7", overrides["python_version"])
	assert.Equal(t, "linux", overrides["sys_platform"])

	_, err = parseEnvOverrides([]string{"missing-separator"})
	require.Error(t, err)

	overrides, err = parseEnvOverrides(nil)
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestExitCodeForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("boom"), want: 2},
		{err: errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("boom"), want: 3},
		{err: errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("boom"), want: 4},
		{err: errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("boom"), want: 5},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, exitCodeForError(tt.err))
	}
}
