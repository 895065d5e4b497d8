package wheel

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Build assembles a wheel for the project and returns the path of the
// finished archive.
//
// The archive is produced in a temporary file inside the target directory
// and renamed into place only after every entry and the RECORD manifest
// have been written, so a failed build never leaves a partial wheel at
// the destination. A previous wheel at the destination is replaced
// atomically on success and untouched on failure.
func Build(ctx context.Context, project *Project, opts ...BuildOption) (string, error) {
	cfg := buildConfig{
		targetDir: filepath.Join(project.Root, "dist"),
		generator: "wheel " + Version,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	tag, err := resolveTag(project, cfg.platform)
	if err != nil {
		return "", err
	}

	cfg.logger.Info("building wheel", "name", project.Name, "version", project.Version, "tag", tag.String())

	entries, err := collectFiles(project)
	if err != nil {
		return "", err
	}

	if project.BuildScript != "" {
		present := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			present[e.ArchivePath] = struct{}{}
		}
		built, err := nativeBuild(ctx, project, &cfg, present)
		if err != nil {
			return "", err
		}
		entries = append(entries, built...)
	}

	if err := os.MkdirAll(cfg.targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create target dir: %w", err)
	}

	tmp, err := os.CreateTemp(cfg.targetDir, ".wheel-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	finalized := false
	defer func() {
		if !finalized {
			tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	aw := newArchiveWriter(tmp)
	for _, entry := range entries {
		cfg.logger.Debug("adding", "path", entry.ArchivePath)
		if err := aw.writeFile(ctx, entry); err != nil {
			return "", err
		}
	}

	distInfo := DistInfo(project.Name, project.Version)
	if err := writeMetadata(ctx, aw, project, distInfo, cfg.generator, tag); err != nil {
		return "", err
	}

	if err := aw.writeGenerated(distInfo+"/"+recordName, renderRecord(aw.records, distInfo)); err != nil {
		return "", err
	}

	if err := aw.close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	finalPath := filepath.Join(cfg.targetDir, Filename(project.Name, project.Version, tag))
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("move wheel into place: %w", err)
	}
	finalized = true

	cfg.logger.Info("built wheel", "path", finalPath)
	return finalPath, nil
}
