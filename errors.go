package wheel

import "errors"

var (
	// ErrNoCompatibleTag is returned when a native build is required but no
	// concrete interpreter/ABI/platform triple can be determined for the host.
	ErrNoCompatibleTag = errors.New("no compatible wheel tag")

	// ErrDuplicatePath is returned when two different source files map to
	// the same archive path.
	ErrDuplicatePath = errors.New("duplicate archive path")

	// ErrBuildCommand is returned when the native build command fails.
	ErrBuildCommand = errors.New("build command failed")

	// ErrHashMismatch is returned by Verify when an entry's content doesn't
	// match its RECORD hash.
	ErrHashMismatch = errors.New("file content hash mismatch")

	// ErrSizeMismatch is returned by Verify when an entry's size doesn't
	// match its RECORD size.
	ErrSizeMismatch = errors.New("file size mismatch")

	// ErrMissingRecord is returned by Verify when an archive entry has no
	// RECORD line.
	ErrMissingRecord = errors.New("archive entry missing from record")

	// ErrNoRecord is returned by Open when the archive contains no dist-info
	// RECORD entry.
	ErrNoRecord = errors.New("no RECORD entry in archive")
)
