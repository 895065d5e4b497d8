package ioutil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCopyWithContext(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("streaming test content ", 100)
	var dst bytes.Buffer

	n, err := CopyWithContext(context.Background(), &dst, strings.NewReader(content), make([]byte, 64))
	if err != nil {
		t.Fatalf("CopyWithContext() error = %v", err)
	}
	if n != uint64(len(content)) {
		t.Errorf("CopyWithContext() wrote %d bytes, want %d", n, len(content))
	}
	if dst.String() != content {
		t.Error("CopyWithContext() copied content does not match source")
	}
}

func TestCopyWithContext_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst bytes.Buffer
	_, err := CopyWithContext(ctx, &dst, strings.NewReader("data"), make([]byte, 64))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CopyWithContext() error = %v, want context.Canceled", err)
	}
}

func TestCopyWithContext_ShortWrite(t *testing.T) {
	t.Parallel()

	_, err := CopyWithContext(context.Background(), shortWriter{}, strings.NewReader("data"), make([]byte, 64))
	if !errors.Is(err, errTruncated) {
		t.Errorf("CopyWithContext() error = %v, want %v", err, errTruncated)
	}
}

var errTruncated = errors.New("truncated")

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) > 1 {
		return 1, errTruncated
	}
	return len(p), nil
}
