package types

// Requirement is a single raw dependency declaration as read from
// metadata, before grouping. Version qualifiers are discarded during
// parsing; only the canonical package name and the raw marker survive.
type Requirement struct {
	// Name is the PEP 503 canonical package key.
	Name string

	// Marker is the raw environment marker expression, or empty when
	// the requirement is unconditional.
	Marker string
}

// RequirementGroup is a set of requirement names sharing one
// applicability condition. Within a normalized MetadataDocument the
// (Extra, Marker) pair is unique across groups.
type RequirementGroup struct {
	// Extra is the optional feature this group belongs to. Empty means
	// the group is always required, independent of any extra.
	Extra string

	// Marker is the raw environment marker gating the group, or empty
	// when the group applies unconditionally.
	Marker string

	// Requires holds deduplicated, lexicographically sorted package
	// names.
	Requires []string
}

// MetadataDocument is the normalized dependency model of one wheel.
type MetadataDocument struct {
	// Name is the package display name, which may differ in casing or
	// separators from the filename distribution field.
	Name string

	// Extras lists the declared optional feature names.
	Extras []string

	// Groups is ordered by (Extra ascending with empty first, Marker
	// ascending with empty first).
	Groups []RequirementGroup
}
