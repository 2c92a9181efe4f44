package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/ports"
	"whlgen/internal/types"
)

// BuildFileAdapter writes the generated manifest and build-declaration
// files for an expanded wheel. Content is rendered fully in memory and
// written in one shot so a failed query never leaves a half-correct file
// behind.
type BuildFileAdapter struct{}

func NewBuildFileAdapter() BuildFileAdapter {
	return BuildFileAdapter{}
}

func (a BuildFileAdapter) WriteManifest(directory string, files []string) error {
	var b strings.Builder
	b.WriteString("contents = [\n")
	for _, file := range files {
		fmt.Fprintf(&b, "  %q,\n", file)
	}
	b.WriteString("]\n")
	return a.write(filepath.Join(directory, "manifest.bzl"), b.String())
}

func (a BuildFileAdapter) WriteBuildFile(directory string, decl types.BuildDeclaration) error {
	var b strings.Builder
	b.WriteString("package(default_visibility = [\"//visibility:public\"])\n\n")
	fmt.Fprintf(&b, "load(%q, \"requirement\")\n\n", decl.RequirementsLabel)
	b.WriteString("exports_files(\n")
	b.WriteString("    glob([\"**/*\"], exclude = [\"**/*.py\", \"**/* *\", \"BUILD\", \"WORKSPACE\"]),\n")
	b.WriteString(")\n\n")

	b.WriteString("py_library(\n")
	fmt.Fprintf(&b, "    name = %q,\n", decl.Base.Name)
	b.WriteString("    srcs = glob([\"**/*.py\"]),\n")
	b.WriteString("    data = glob([\"**/*\"], exclude = [\"**/*.py\", \"**/* *\", \"BUILD\", \"WORKSPACE\"]),\n")
	// Makes the expanded directory a top-level root in the Python
	// import search path for anything that depends on this.
	b.WriteString("    imports = [\".\"],\n")
	b.WriteString("    deps = [\n")
	for _, dep := range decl.Base.Deps {
		fmt.Fprintf(&b, "        requirement(%q),\n", dep)
	}
	b.WriteString("    ],\n")
	b.WriteString(")\n")

	for _, target := range decl.ExtraTargets {
		b.WriteString("\npy_library(\n")
		fmt.Fprintf(&b, "    name = %q,\n", target.Name)
		b.WriteString("    deps = [\n")
		fmt.Fprintf(&b, "        \":%s\",\n", decl.Base.Name)
		for _, dep := range target.Deps {
			fmt.Fprintf(&b, "        requirement(%q),\n", dep)
		}
		b.WriteString("    ],\n")
		b.WriteString(")\n")
	}

	return a.write(filepath.Join(directory, "BUILD"), b.String())
}

func (a BuildFileAdapter) write(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + filepath.Base(path)).
			WithCause(err)
	}
	return nil
}

var _ ports.OutputPort = BuildFileAdapter{}
