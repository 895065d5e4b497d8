package wheel

// FileEntry pairs a file on disk with its destination path inside the
// archive.
type FileEntry struct {
	// Source is the path of the file on disk.
	Source string

	// ArchivePath is the slash-separated path inside the archive,
	// regardless of the host path convention.
	ArchivePath string

	// Generated marks entries produced by the native build step rather
	// than collected from the source tree.
	Generated bool
}

// Record is a single line of the RECORD manifest.
type Record struct {
	// Path is the slash-separated archive path of the entry.
	Path string

	// Hash is the base64url-encoded sha256 of the entry's content, without
	// padding. Empty for the RECORD entry itself.
	Hash string

	// Size is the entry's uncompressed size in bytes. Zero for the RECORD
	// entry itself.
	Size int64
}

// Tag identifies the interpreter, ABI, and platform a wheel targets.
type Tag struct {
	Interpreter string
	ABI         string
	Platform    string
}

// String renders the tag as it appears in the wheel file name.
func (t Tag) String() string {
	return t.Interpreter + "-" + t.ABI + "-" + t.Platform
}
