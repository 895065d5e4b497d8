package wheel

import "regexp"

var (
	nameEscapeRun    = regexp.MustCompile(`[^A-Za-z0-9]+`)
	versionEscapeRun = regexp.MustCompile(`[^A-Za-z0-9.]+`)
)

// EscapeName collapses every run of characters that may not appear in a
// wheel file name component to a single underscore. Dots are escaped too,
// so namespace-style distribution names stay unambiguous.
func EscapeName(name string) string {
	return nameEscapeRun.ReplaceAllString(name, "_")
}

// EscapeVersion collapses runs of characters outside [A-Za-z0-9.] to a
// single underscore, keeping the dotted release segments intact.
func EscapeVersion(version string) string {
	return versionEscapeRun.ReplaceAllString(version, "_")
}

// DistInfo returns the archive-internal metadata folder name for the
// distribution.
func DistInfo(name, version string) string {
	return EscapeName(name) + "-" + EscapeVersion(version) + ".dist-info"
}

// Filename returns the wheel file name encoding the distribution identity
// and the resolved tag.
func Filename(name, version string, tag Tag) string {
	return EscapeName(name) + "-" + EscapeVersion(version) + "-" + tag.String() + ".whl"
}
