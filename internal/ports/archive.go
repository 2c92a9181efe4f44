package ports

// ArchivePort reads and expands wheel archives. Implementations must
// release the underlying file handle on every exit path, including
// failures part-way through a read.
type ArchivePort interface {
	// ReadEntry returns the contents of a single named entry. A missing
	// entry is reported with CodeNotFound so callers can distinguish it
	// from an unreadable archive (CodeFailedPrecondition).
	ReadEntry(path string, entry string) ([]byte, error)

	// ListEntries returns the names of all entries in archive order.
	ListEntries(path string) ([]string, error)

	// ExtractAll expands every entry below directory.
	ExtractAll(path string, directory string) error

	// RelocatePurelib moves the contents of {dataDir}/purelib inside an
	// expanded archive to the top of directory. Absence of the purelib
	// directory is not an error.
	RelocatePurelib(directory string, dataDir string) error
}
