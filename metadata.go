package wheel

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	wheelFileName       = "WHEEL"
	metadataFileName    = "METADATA"
	entryPointsFileName = "entry_points.txt"

	wheelFormatVersion = "1.0"
)

// writeMetadata emits the archive's control files under the dist-info
// folder: entry points, license files, WHEEL, METADATA, in that order.
func writeMetadata(ctx context.Context, aw *archiveWriter, p *Project, distInfo, generator string, tag Tag) error {
	if len(p.EntryPoints) > 0 {
		if err := aw.writeGenerated(distInfo+"/"+entryPointsFileName, renderEntryPoints(p.EntryPoints)); err != nil {
			return err
		}
	}

	licenses, err := licenseFiles(p.Root)
	if err != nil {
		return err
	}
	for _, path := range licenses {
		entry := FileEntry{Source: path, ArchivePath: distInfo + "/" + filepath.Base(path)}
		if err := aw.writeFile(ctx, entry); err != nil {
			return err
		}
	}

	wheelFile := renderWheelFile(generator, p.BuildScript == "", tag)
	if err := aw.writeGenerated(distInfo+"/"+wheelFileName, wheelFile); err != nil {
		return err
	}

	return aw.writeGenerated(distInfo+"/"+metadataFileName, p.Metadata)
}

// renderWheelFile produces the WHEEL control file declaring the archive
// format version, the generator identity, purity, and the resolved tag.
func renderWheelFile(generator string, pureLib bool, tag Tag) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Wheel-Version: %s\n", wheelFormatVersion)
	fmt.Fprintf(&buf, "Generator: %s\n", generator)
	fmt.Fprintf(&buf, "Root-Is-Purelib: %t\n", pureLib)
	fmt.Fprintf(&buf, "Tag: %s\n", tag)
	return buf.Bytes()
}

// renderEntryPoints formats the entry-point declarations: groups sorted
// lexicographically, entries sorted within each group, whitespace
// stripped from each declaration.
func renderEntryPoints(eps EntryPoints) []byte {
	groups := make([]string, 0, len(eps))
	for group := range eps {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var buf bytes.Buffer
	for _, group := range groups {
		fmt.Fprintf(&buf, "[%s]\n", group)
		entries := append([]string(nil), eps[group]...)
		sort.Strings(entries)
		for _, ep := range entries {
			buf.WriteString(strings.ReplaceAll(ep, " ", ""))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// licenseFiles returns license-named files at the project root: a
// case-sensitive prefix match per canonical name, each group sorted.
func licenseFiles(root string) ([]string, error) {
	var files []string
	for _, base := range []string{"COPYING", "LICENSE"} {
		matches, err := filepath.Glob(filepath.Join(root, base+"*"))
		if err != nil {
			return nil, fmt.Errorf("match license files: %w", err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", match, err)
			}
			if info.IsDir() {
				continue
			}
			files = append(files, match)
		}
	}
	return files, nil
}
