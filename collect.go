package wheel

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/meigma/wheel/internal/pathutil"
)

// formatWheel is the build format this collector serves; includes scoped
// to other output formats are skipped.
const formatWheel = "wheel"

const (
	bytecodeSuffix = ".pyc"
	cacheDirName   = "__pycache__"
)

// collectFiles resolves the project's include rules into a sorted,
// de-duplicated list of archive entries.
//
// An identical (source, archive path) pair produced by a later rule is
// dropped silently. The same archive path fed from a different source is
// a real collision and fails with ErrDuplicatePath.
func collectFiles(p *Project) ([]FileEntry, error) {
	byPath := make(map[string]FileEntry)
	for _, inc := range p.Includes {
		if !includesFormat(inc.Formats, formatWheel) {
			continue
		}
		matches, err := doublestar.FilepathGlob(filepath.Join(p.Root, filepath.FromSlash(inc.Glob)))
		if err != nil {
			return nil, fmt.Errorf("resolve include %q: %w", inc.Glob, err)
		}
		for _, match := range matches {
			if err := collectMatch(p, inc, match, byPath); err != nil {
				return nil, err
			}
		}
	}

	entries := make([]FileEntry, 0, len(byPath))
	for _, e := range byPath {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ArchivePath < entries[j].ArchivePath })
	return entries, nil
}

// collectMatch walks a glob match (a file or a directory subtree) and adds
// every eligible file to byPath.
func collectMatch(p *Project, inc Include, match string, byPath map[string]FileEntry) error {
	base := p.Root
	if inc.SourceRoot != "" {
		base = filepath.Join(p.Root, filepath.FromSlash(inc.SourceRoot))
	}
	return filepath.WalkDir(match, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("resolve include %q: %w", inc.Glob, walkErr)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		archivePath := filepath.ToSlash(rel)

		if pathutil.HasSegment(archivePath, cacheDirName) || strings.HasSuffix(archivePath, bytecodeSuffix) {
			return nil
		}
		if inc.Kind == IncludePackage && pathutil.UnderAny(archivePath, p.Excludes) {
			return nil
		}

		if prev, ok := byPath[archivePath]; ok {
			if prev.Source == path {
				return nil
			}
			return fmt.Errorf("%w: %s provided by both %s and %s", ErrDuplicatePath, archivePath, prev.Source, path)
		}
		byPath[archivePath] = FileEntry{Source: path, ArchivePath: archivePath}
		return nil
	})
}

func includesFormat(formats []string, format string) bool {
	return len(formats) == 0 || slices.Contains(formats, format)
}
