package adapters

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"whlgen/internal/ports"
)

// ZipArchiveAdapter implements ports.ArchivePort over zip archives, the
// container format wheels are distributed in. Every operation opens the
// archive, reads what it needs, and closes it before returning.
type ZipArchiveAdapter struct{}

func NewZipArchiveAdapter() ZipArchiveAdapter {
	return ZipArchiveAdapter{}
}

func (a ZipArchiveAdapter) ReadEntry(path string, entry string) ([]byte, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, unreadableArchive(path, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		if file.Name != entry {
			continue
		}
		contents, err := file.Open()
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to open archive entry " + entry).
				WithCause(err)
		}
		defer func() { _ = contents.Close() }()
		data, err := io.ReadAll(contents)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read archive entry " + entry).
				WithCause(err)
		}
		return data, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("archive entry not found: " + entry)
}

func (a ZipArchiveAdapter) ListEntries(path string) ([]string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, unreadableArchive(path, err)
	}
	defer func() { _ = reader.Close() }()

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}
	return names, nil
}

func (a ZipArchiveAdapter) ExtractAll(path string, directory string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return unreadableArchive(path, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		destination := filepath.Join(directory, file.Name)
		if !isInsideDir(destination, directory) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("archive entry escapes target directory: " + file.Name)
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destination, 0755); err != nil {
				return extractFailure(file.Name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
			return extractFailure(file.Name, err)
		}
		if err := extractFile(file, destination); err != nil {
			return extractFailure(file.Name, err)
		}
	}
	return nil
}

func (a ZipArchiveAdapter) RelocatePurelib(directory string, dataDir string) error {
	purelib := filepath.Join(directory, dataDir, "purelib")
	entries, err := os.ReadDir(purelib)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read purelib directory").
			WithCause(err)
	}
	for _, entry := range entries {
		source := filepath.Join(purelib, entry.Name())
		target := filepath.Join(directory, entry.Name())
		if err := os.Rename(source, target); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to relocate purelib entry " + entry.Name()).
				WithCause(err)
		}
	}
	return nil
}

func extractFile(file *zip.File, destination string) error {
	contents, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = contents.Close() }()

	target, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = target.Close() }()

	_, err = io.Copy(target, contents)
	return err
}

// isInsideDir guards against zip-slip: an entry name with traversal
// segments must not resolve outside the extraction base.
func isInsideDir(path string, base string) bool {
	cleanPath := filepath.Clean(path)
	cleanBase := filepath.Clean(base)
	return cleanPath == cleanBase ||
		strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator))
}

func unreadableArchive(path string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("failed to open wheel archive " + path).
		WithCause(err)
}

func extractFailure(entry string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to extract archive entry " + entry).
		WithCause(err)
}

var _ ports.ArchivePort = ZipArchiveAdapter{}
