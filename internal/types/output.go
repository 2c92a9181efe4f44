package types

// BuildTarget is one generated build unit: the base library or one
// per-extra library layered on top of it.
type BuildTarget struct {
	Name string
	Deps []string
}

// BuildDeclaration carries everything the build-file writer needs to
// emit one BUILD file for an expanded wheel.
type BuildDeclaration struct {
	// RequirementsLabel is the label of the requirements file the
	// generated stanzas load the requirement() helper from.
	RequirementsLabel string

	// Base is the unconditional "pkg" target.
	Base BuildTarget

	// ExtraTargets holds one target per requested extra, each implicitly
	// depending on the base target.
	ExtraTargets []BuildTarget
}
