// Package pyproject derives the wheel builder's project view from a
// pyproject.toml file.
//
// Only the [tool.poetry] tables the builder consumes are read: identity,
// package and file includes, exclusions, entry points, the python
// dependency range, and the build script. Everything else in the file is
// ignored.
package pyproject

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/meigma/wheel"
)

// FileName is the configuration file read from the project root.
const FileName = "pyproject.toml"

type document struct {
	Tool struct {
		Poetry poetrySection `toml:"poetry"`
	} `toml:"tool"`
}

type poetrySection struct {
	Name         string                       `toml:"name"`
	Version      string                       `toml:"version"`
	Description  string                       `toml:"description"`
	Packages     []packageInclude             `toml:"packages"`
	Include      []any                        `toml:"include"`
	Exclude      []string                     `toml:"exclude"`
	Scripts      map[string]string            `toml:"scripts"`
	Plugins      map[string]map[string]string `toml:"plugins"`
	Dependencies map[string]any               `toml:"dependencies"`
	Build        string                       `toml:"build"`
}

type packageInclude struct {
	Include string `toml:"include"`
	From    string `toml:"from"`
	Format  any    `toml:"format"`
}

// Load reads pyproject.toml in dir and builds the project view the wheel
// builder consumes.
func Load(dir string) (*wheel.Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	po := doc.Tool.Poetry
	if po.Name == "" || po.Version == "" {
		return nil, fmt.Errorf("%s: tool.poetry.name and tool.poetry.version are required", FileName)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	p := &wheel.Project{
		Name:        po.Name,
		Version:     po.Version,
		Root:        root,
		Includes:    includes(po),
		Excludes:    po.Exclude,
		BuildScript: po.Build,
		EntryPoints: entryPoints(po),
		Metadata:    renderMetadata(po),
	}
	if v, ok := po.Dependencies["python"].(string); ok {
		p.PythonVersions = v
	}
	if len(p.Includes) == 0 {
		// No explicit packages: assume a module named after the project.
		p.Includes = []wheel.Include{{Glob: moduleName(po.Name), Kind: wheel.IncludePackage}}
	}
	return p, nil
}

func includes(po poetrySection) []wheel.Include {
	var incs []wheel.Include
	for _, pkg := range po.Packages {
		glob := pkg.Include
		if pkg.From != "" {
			glob = path.Join(pkg.From, pkg.Include)
		}
		incs = append(incs, wheel.Include{
			Glob:       glob,
			SourceRoot: pkg.From,
			Kind:       wheel.IncludePackage,
			Formats:    formatList(pkg.Format),
		})
	}
	for _, inc := range po.Include {
		switch v := inc.(type) {
		case string:
			incs = append(incs, wheel.Include{Glob: v, Kind: wheel.IncludeFile})
		case map[string]any:
			w := wheel.Include{Kind: wheel.IncludeFile, Formats: formatList(v["format"])}
			if s, ok := v["path"].(string); ok {
				w.Glob = s
			}
			incs = append(incs, w)
		}
	}
	return incs
}

// formatList accepts the single-string and list spellings of a format
// restriction.
func formatList(v any) []string {
	switch f := v.(type) {
	case string:
		return []string{f}
	case []any:
		formats := make([]string, 0, len(f))
		for _, item := range f {
			if s, ok := item.(string); ok {
				formats = append(formats, s)
			}
		}
		return formats
	default:
		return nil
	}
}

func entryPoints(po poetrySection) wheel.EntryPoints {
	eps := make(wheel.EntryPoints)
	for name, target := range po.Scripts {
		eps["console_scripts"] = append(eps["console_scripts"], name+" = "+target)
	}
	for group, decls := range po.Plugins {
		for name, target := range decls {
			eps[group] = append(eps[group], name+" = "+target)
		}
	}
	for group := range eps {
		sort.Strings(eps[group])
	}
	if len(eps) == 0 {
		return nil
	}
	return eps
}

// renderMetadata produces a minimal core-metadata document. The builder
// treats the result as opaque bytes.
func renderMetadata(po poetrySection) []byte {
	var b strings.Builder
	b.WriteString("Metadata-Version: 2.1\n")
	fmt.Fprintf(&b, "Name: %s\n", po.Name)
	fmt.Fprintf(&b, "Version: %s\n", po.Version)
	if po.Description != "" {
		fmt.Fprintf(&b, "Summary: %s\n", po.Description)
	}
	if v, ok := po.Dependencies["python"].(string); ok {
		fmt.Fprintf(&b, "Requires-Python: %s\n", v)
	}
	return []byte(b.String())
}

// moduleName derives the importable module name from the distribution
// name.
func moduleName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}
