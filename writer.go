package wheel

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/wheel/internal/ioutil"
)

// Entry timestamps are fixed so neither source mtimes nor the build time
// leak into the archive. Source entries carry the zip epoch; generated
// control files carry a constant later date.
var (
	sourceTimestamp    = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	generatedTimestamp = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
)

// archiveWriter appends entries to the wheel zip and records every
// successful write, in call order, for the RECORD manifest.
type archiveWriter struct {
	zw      *zip.Writer
	records []Record
	buf     []byte
}

func newArchiveWriter(w io.Writer) *archiveWriter {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	return &archiveWriter{
		zw:  zw,
		buf: make([]byte, 32*1024),
	}
}

// writeFile streams the source file into the archive, hashing the exact
// bytes written. Permission bits are normalized before they reach the
// entry header.
func (w *archiveWriter) writeFile(ctx context.Context, entry FileEntry) error {
	f, err := os.Open(entry.Source)
	if err != nil {
		return fmt.Errorf("open %s: %w", entry.Source, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", entry.Source, err)
	}

	mode := normalizeMode(info.Mode())
	if info.IsDir() {
		// Directories are filtered out upstream; keep the flag correct anyway.
		mode |= fs.ModeDir
	}

	hdr := &zip.FileHeader{
		Name:     entry.ArchivePath,
		Method:   zip.Deflate,
		Modified: sourceTimestamp,
	}
	hdr.SetMode(mode)

	dst, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", entry.ArchivePath, err)
	}

	hasher := sha256.New()
	written, err := ioutil.CopyWithContext(ctx, io.MultiWriter(dst, hasher), f, w.buf)
	if err != nil {
		return fmt.Errorf("write %s: %w", entry.ArchivePath, err)
	}

	w.records = append(w.records, Record{
		Path: entry.ArchivePath,
		Hash: encodeHash(hasher.Sum(nil)),
		Size: int64(written), //nolint:gosec // file sizes fit int64
	})
	return nil
}

// writeGenerated adds a control file rendered by the builder itself.
func (w *archiveWriter) writeGenerated(archivePath string, content []byte) error {
	hdr := &zip.FileHeader{
		Name:     archivePath,
		Method:   zip.Deflate,
		Modified: generatedTimestamp,
	}
	hdr.SetMode(0o644)

	dst, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", archivePath, err)
	}
	if _, err := dst.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", archivePath, err)
	}

	sum := sha256.Sum256(content)
	w.records = append(w.records, Record{
		Path: archivePath,
		Hash: encodeHash(sum[:]),
		Size: int64(len(content)),
	})
	return nil
}

func (w *archiveWriter) close() error {
	return w.zw.Close()
}

// normalizeMode collapses source permissions to the two modes the wheel
// format allows: 0755 when any execute bit is set, 0644 otherwise.
func normalizeMode(mode fs.FileMode) fs.FileMode {
	if mode&0o111 != 0 {
		return 0o755
	}
	return 0o644
}

func encodeHash(sum []byte) string {
	return base64.RawURLEncoding.EncodeToString(sum)
}
