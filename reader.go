package wheel

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

// Wheel provides read access to a built wheel archive and its RECORD
// manifest.
type Wheel struct {
	zr       *zip.ReadCloser
	distInfo string
	records  []Record
}

// Open opens a wheel archive and parses its RECORD manifest.
func Open(path string) (*Wheel, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open wheel: %w", err)
	}

	var recordFile *zip.File
	var distInfo string
	for _, f := range zr.File {
		dir, name, ok := strings.Cut(f.Name, "/")
		if ok && name == recordName && strings.HasSuffix(dir, ".dist-info") {
			recordFile, distInfo = f, dir
			break
		}
	}
	if recordFile == nil {
		zr.Close()
		return nil, ErrNoRecord
	}

	records, err := parseRecord(recordFile)
	if err != nil {
		zr.Close()
		return nil, err
	}

	return &Wheel{zr: zr, distInfo: distInfo, records: records}, nil
}

// Close releases the underlying archive handle.
func (w *Wheel) Close() error {
	return w.zr.Close()
}

// DistInfo returns the archive-internal metadata folder name.
func (w *Wheel) DistInfo() string {
	return w.distInfo
}

// Records returns the manifest records in the order they were written.
// The final record is RECORD's own self-referential line.
func (w *Wheel) Records() []Record {
	return w.records
}

// Names returns entry paths in physical archive order.
func (w *Wheel) Names() []string {
	names := make([]string, 0, len(w.zr.File))
	for _, f := range w.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// ReadFile returns the content of the named archive entry.
func (w *Wheel) ReadFile(name string) ([]byte, error) {
	for _, f := range w.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
}

func parseRecord(f *zip.File) ([]Record, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open record: %w", err)
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = 3

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse record: %w", err)
		}
		rec := Record{Path: row[0], Hash: strings.TrimPrefix(row[1], "sha256=")}
		if row[2] != "" {
			size, err := strconv.ParseInt(row[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse record size for %s: %w", row[0], err)
			}
			rec.Size = size
		}
		records = append(records, rec)
	}
	return records, nil
}
