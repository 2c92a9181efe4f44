package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"whlgen/internal/ports"
	"whlgen/internal/types"
)

// Wheel is the package-facing view over one wheel archive. It answers
// identity, extras, and dependency queries by dispatching to whichever
// metadata format the archive carries.
//
// The parsed document is memoized per instance, treating the archive as
// immutable for the session; instances are not safe for concurrent use.
type Wheel struct {
	path    string
	archive ports.ArchivePort
	env     map[string]string

	metadata *types.MetadataDocument
}

// NewWheel creates a facade over the archive at path. The environment
// snapshot drives the common-set computation for text-format metadata;
// nil means DefaultEnvironment.
func NewWheel(path string, archive ports.ArchivePort, env map[string]string) *Wheel {
	if env == nil {
		env = DefaultEnvironment()
	}
	return &Wheel{path: path, archive: archive, env: env}
}

// Path returns the archive path this facade was created for.
func (w *Wheel) Path() string {
	return w.path
}

// Identity derives the wheel identity from the file name alone, with no
// archive I/O.
func (w *Wheel) Identity() (types.WheelIdentity, error) {
	return ParseWheelFilename(filepath.Base(w.path))
}

// ParseWheelFilename splits a wheel file name into its dash-delimited
// fields per the PEP 427 convention. Only distribution and version are
// required; the trailing tag fields are kept when present but never
// interpreted.
func ParseWheelFilename(basename string) (types.WheelIdentity, error) {
	trimmed := strings.TrimSuffix(basename, ".whl")
	parts := strings.Split(trimmed, "-")
	if len(parts) < 2 {
		return types.WheelIdentity{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed archive name: " + basename)
	}
	identity := types.WheelIdentity{
		Distribution: parts[0],
		Version:      parts[1],
	}
	if len(parts) >= 5 {
		identity.PythonTag = parts[len(parts)-3]
		identity.ABITag = parts[len(parts)-2]
		identity.PlatformTag = parts[len(parts)-1]
	}
	return identity, nil
}

// Metadata returns the normalized dependency model, reading the
// structured metadata.json entry first and falling back to the text
// METADATA entry.
func (w *Wheel) Metadata(ctx context.Context) (types.MetadataDocument, error) {
	if w.metadata != nil {
		return *w.metadata, nil
	}
	identity, err := w.Identity()
	if err != nil {
		return types.MetadataDocument{}, err
	}
	distInfo := identity.DistInfoDir()

	document, err := w.readMetadata(ctx, distInfo)
	if err != nil {
		return types.MetadataDocument{}, err
	}
	w.metadata = &document
	return document, nil
}

func (w *Wheel) readMetadata(ctx context.Context, distInfo string) (types.MetadataDocument, error) {
	structured, err := w.archive.ReadEntry(w.path, distInfo+"/"+string(types.MetadataFormatStructured))
	if err == nil {
		log.Ctx(ctx).Debug().Str("wheel", w.path).Msg("using structured metadata")
		return ParseStructuredMetadata(structured)
	}
	if errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
		return types.MetadataDocument{}, err
	}

	text, err := w.archive.ReadEntry(w.path, distInfo+"/"+string(types.MetadataFormatText))
	if err == nil {
		log.Ctx(ctx).Debug().Str("wheel", w.path).Msg("using text metadata")
		return ParseTextMetadata(ctx, string(text), w.env)
	}
	if errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
		return types.MetadataDocument{}, err
	}
	return types.MetadataDocument{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("wheel has neither metadata.json nor METADATA entry")
}

// Name returns the package display name from the metadata, which may
// differ in casing or separators from the filename distribution.
func (w *Wheel) Name(ctx context.Context) (string, error) {
	document, err := w.Metadata(ctx)
	if err != nil {
		return "", err
	}
	return document.Name, nil
}

// Extras returns the declared optional feature names.
func (w *Wheel) Extras(ctx context.Context) ([]string, error) {
	document, err := w.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	if document.Extras == nil {
		return []string{}, nil
	}
	return document.Extras, nil
}

// Dependencies returns the package names required when the given extra
// is requested (empty extra means the unconditional base set), under the
// given environment. A nil environment falls back to the snapshot the
// facade was created with.
//
// Names follow group order; a name may repeat if two distinct-marker
// groups for the same extra both pass.
func (w *Wheel) Dependencies(ctx context.Context, extra string, env map[string]string) ([]string, error) {
	document, err := w.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = w.env
	}

	names := []string{}
	for _, group := range document.Groups {
		if group.Extra != extra {
			continue
		}
		if group.Marker != "" {
			ok, err := EvaluateMarker(group.Marker, env)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		for _, entry := range group.Requires {
			names = append(names, stripVersionSuffix(entry))
		}
	}
	return names, nil
}

// FileNames lists archive entries with the purelib prefix stripped, the
// way they will lie on disk after expansion.
func (w *Wheel) FileNames(ctx context.Context) ([]string, error) {
	identity, err := w.Identity()
	if err != nil {
		return nil, err
	}
	entries, err := w.archive.ListEntries(w.path)
	if err != nil {
		return nil, err
	}
	purelib := identity.DataDir() + "/purelib/"
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimPrefix(entry, purelib))
	}
	return names, nil
}

// stripVersionSuffix drops trailing version qualifiers from a structured
// requires entry, e.g. "six (>=1.9)" becomes "six". Bracketed extras such
// as "googleapis-common-protos[grpc]" pass through untouched.
func stripVersionSuffix(entry string) string {
	if cut := strings.IndexAny(entry, " ><=()"); cut >= 0 {
		return entry[:cut]
	}
	return entry
}
