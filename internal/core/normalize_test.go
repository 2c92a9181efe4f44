package core

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"whlgen/internal/types"
)

func TestNormalizeRequirementsGroups(t *testing.T) {
	requirements := []types.Requirement{
		{Name: "six"},
		{Name: "pbr"},
		{Name: "sphinx", Marker: `extra == "docs"`},
		{Name: "jinja2", Marker: `extra == "docs"`},
		{Name: "unittest2", Marker: `extra == "test"`},
	}

	document, err := NormalizeRequirements(t.Context(), "mock", []string{"docs", "test"}, requirements, map[string]string{})
	require.NoError(t, err)

	want := []types.RequirementGroup{
		{Extra: "", Marker: "", Requires: []string{"pbr", "six"}},
		{Extra: "docs", Marker: `extra == "docs"`, Requires: []string{"jinja2", "sphinx"}},
		{Extra: "test", Marker: `extra == "test"`, Requires: []string{"unittest2"}},
	}
	if diff := cmp.Diff(want, document.Groups); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
}

// A requirement in the common set must never reappear in a per-extra
// group, even though an unconditional declaration matches every extra
// context.
func TestNormalizeRequirementsSubtraction(t *testing.T) {
	requirements := []types.Requirement{
		{Name: "six"},
		{Name: "six", Marker: `extra == "docs"`},
		{Name: "sphinx", Marker: `extra == "docs"`},
	}

	document, err := NormalizeRequirements(t.Context(), "demo", []string{"docs"}, requirements, map[string]string{})
	require.NoError(t, err)

	want := []types.RequirementGroup{
		{Extra: "", Marker: "", Requires: []string{"six"}},
		{Extra: "docs", Marker: `extra == "docs"`, Requires: []string{"sphinx", "six"}},
	}
	if diff := cmp.Diff(want, document.Groups); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
}

func TestNormalizeRequirementsDeterministic(t *testing.T) {
	requirements := []types.Requirement{
		{Name: "zope-interface"},
		{Name: "attrs"},
		{Name: "sphinx", Marker: `extra == "docs"`},
		{Name: "towncrier", Marker: `extra == "docs"`},
		{Name: "attrs"},
	}
	extras := []string{"docs"}

	forward, err := NormalizeRequirements(t.Context(), "twisted", extras, requirements, map[string]string{})
	require.NoError(t, err)

	reversed := slices.Clone(requirements)
	slices.Reverse(reversed)
	backward, err := NormalizeRequirements(t.Context(), "twisted", extras, reversed, map[string]string{})
	require.NoError(t, err)

	if diff := cmp.Diff(forward, backward); diff != "" {
		t.Fatalf("normalization depends on input order (-forward +backward):\n%s", diff)
	}
}

// Marker mixing an environment attribute with an extra comparison: the
// common pass leaves extra unbound, the per-extra pass binds it. The
// observed behavior of the original implementation is preserved, not
// corrected.
func TestNormalizeRequirementsMixedMarker(t *testing.T) {
	requirements := []types.Requirement{
		{Name: "pygments", Marker: `python_version < "3.0" and extra == "docs"`},
	}
	env := map[string]string{"python_version": "2.7"}

	document, err := NormalizeRequirements(t.Context(), "demo", []string{"docs"}, requirements, env)
	require.NoError(t, err)

	want := []types.RequirementGroup{
		{Extra: "docs", Marker: `python_version < "3.0" and extra == "docs"`, Requires: []string{"pygments"}},
	}
	if diff := cmp.Diff(want, document.Groups); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
}

func TestNormalizeRequirementsSafeExtraKey(t *testing.T) {
	requirements := []types.Requirement{
		{Name: "tooling", Marker: `extra == "dev tools"`},
	}
	document, err := NormalizeRequirements(t.Context(), "demo", []string{"dev tools"}, requirements, map[string]string{})
	require.NoError(t, err)

	require.Len(t, document.Groups, 1)
	require.Equal(t, "dev_tools", document.Groups[0].Extra)
}

func TestNormalizeRequirementsMalformedMarker(t *testing.T) {
	requirements := []types.Requirement{
		{Name: "six", Marker: `python_version <`},
	}
	_, err := NormalizeRequirements(t.Context(), "demo", nil, requirements, map[string]string{})
	require.Error(t, err)
}
