package wheel

import (
	"archive/zip"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// Verify recomputes the hash and size of every archive entry against the
// RECORD manifest. Entries are checked in parallel; the first failure
// cancels the rest.
func (w *Wheel) Verify(ctx context.Context) error {
	byPath := make(map[string]Record, len(w.records))
	for _, r := range w.records {
		byPath[r.Path] = r
	}

	recordPath := w.distInfo + "/" + recordName

	names := make(map[string]struct{}, len(w.zr.File))
	for _, f := range w.zr.File {
		if _, ok := byPath[f.Name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingRecord, f.Name)
		}
		names[f.Name] = struct{}{}
	}
	for _, r := range w.records {
		if _, ok := names[r.Path]; !ok {
			return fmt.Errorf("%w: record names %s but the archive has no such entry", ErrMissingRecord, r.Path)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, f := range w.zr.File {
		rec := byPath[f.Name]
		if f.Name == recordPath {
			// RECORD records itself with empty hash and size.
			continue
		}
		f := f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return verifyEntry(f, rec)
		})
	}
	return g.Wait()
}

func verifyEntry(f *zip.File, rec Record) error {
	sum, err := base64.RawURLEncoding.DecodeString(rec.Hash)
	if err != nil {
		return fmt.Errorf("decode record hash for %s: %w", rec.Path, err)
	}
	expected := digest.NewDigestFromEncoded(digest.SHA256, hex.EncodeToString(sum))
	verifier := expected.Verifier()

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", rec.Path, err)
	}
	defer rc.Close()

	n, err := io.Copy(verifier, rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", rec.Path, err)
	}
	if n != rec.Size {
		return fmt.Errorf("%w: %s: record says %d bytes, archive has %d", ErrSizeMismatch, rec.Path, rec.Size, n)
	}
	if !verifier.Verified() {
		return fmt.Errorf("%w: %s", ErrHashMismatch, rec.Path)
	}
	return nil
}
