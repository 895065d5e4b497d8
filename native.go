package wheel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/meigma/wheel/internal/pathutil"
)

// buildDirName is the subdirectory under the project root the native
// build step writes its output trees into.
const buildDirName = "build"

// nativeBuild runs the project's build script and returns entries for the
// platform-specific artifacts it produced, skipping archive paths already
// claimed by the collector.
//
// The command runs with the project root as an explicit working
// directory; the builder's own working directory is never changed. A
// build that produces no lib output directory is a benign no-op.
func nativeBuild(ctx context.Context, p *Project, cfg *buildConfig, present map[string]struct{}) ([]FileEntry, error) {
	if cfg.buildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.buildTimeout)
		defer cancel()
	}

	argv := cfg.buildCommand
	if len(argv) == 0 {
		argv = []string{"python", p.BuildScript, "build", "-b", buildDirName}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // build command comes from project configuration
	cmd.Dir = p.Root
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit status %d: %s", ErrBuildCommand, exitErr.ExitCode(), bytes.TrimSpace(output))
		}
		return nil, fmt.Errorf("%w: %v", ErrBuildCommand, err)
	}

	lib, err := libDir(p.Root)
	if err != nil {
		return nil, err
	}
	if lib == "" {
		// Conditional builds may legitimately produce nothing.
		return nil, nil
	}

	var entries []FileEntry
	err = filepath.WalkDir(lib, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk build output: %w", walkErr)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(lib, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		archivePath := filepath.ToSlash(rel)
		if pathutil.UnderAny(archivePath, p.Excludes) {
			return nil
		}
		if _, ok := present[archivePath]; ok {
			return nil
		}
		entries = append(entries, FileEntry{Source: path, ArchivePath: archivePath, Generated: true})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// libDir locates the first platform-specific output directory produced by
// the build tool, or "" when the build produced none.
func libDir(root string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(root, buildDirName, "lib.*"))
	if err != nil {
		return "", fmt.Errorf("locate build output: %w", err)
	}
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return "", fmt.Errorf("stat build output: %w", err)
		}
		if info.IsDir() {
			return match, nil
		}
	}
	return "", nil
}
