package wheel

// IncludeKind distinguishes package includes, which are subject to the
// project's exclusion rules, from plain file includes, which are not.
type IncludeKind uint8

const (
	IncludeFile IncludeKind = iota
	IncludePackage
)

// Include declares a set of files to copy into the archive.
type Include struct {
	// Glob selects files relative to the project root. Directory matches
	// are walked recursively.
	Glob string

	// SourceRoot, when set on a package include, is stripped from matched
	// paths to form the archive path (src-layout packages). Empty means
	// paths are taken relative to the project root.
	SourceRoot string

	Kind IncludeKind

	// Formats limits the include to specific build formats. Empty means
	// all formats.
	Formats []string
}

// EntryPoints maps a group name to its "name = module:attr" declarations.
type EntryPoints map[string][]string

// Project is the narrow view of project configuration the builder
// consumes. Parsing and validation of the underlying configuration are
// the caller's concern; see the pyproject subpackage for a loader.
type Project struct {
	// Name and Version identify the distribution. Both are escaped when
	// they appear in the archive name and dist-info folder.
	Name    string
	Version string

	// Root is the project root directory on disk.
	Root string

	Includes []Include

	// Excludes lists slash-separated archive paths that package includes
	// must not ship; for an include with a SourceRoot that means relative
	// to the source root, not to Root. A listed directory excludes its
	// subtree.
	Excludes []string

	// BuildScript names the script driving the native extension build.
	// Empty means the project is a pure library.
	BuildScript string

	// PythonVersions is the declared interpreter compatibility range,
	// e.g. "^3.8" or ">=2.7, <4.0". Empty means any version.
	PythonVersions string

	// TargetInterpreter is the "X.Y" interpreter version a native build
	// targets, resolved from the environment by the configuration layer.
	TargetInterpreter string

	EntryPoints EntryPoints

	// Metadata is the pre-rendered METADATA document, written into the
	// archive as-is.
	Metadata []byte
}
