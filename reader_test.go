package wheel

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestWheel assembles a zip archive with the given entries, in
// order, and returns its path.
func writeTestWheel(t *testing.T, entries []struct{ name, content string }) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-1.0-py3-none-any.whl")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func recordLine(path, content string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%s,sha256=%s,%d\n", path, base64.RawURLEncoding.EncodeToString(sum[:]), len(content))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	path, err := Build(context.Background(), p)
	require.NoError(t, err)

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, "demo-0.1.0.dist-info", w.DistInfo())
	assert.Len(t, w.Records(), len(w.Names()))

	content, err := w.ReadFile("demo/core.py")
	require.NoError(t, err)
	assert.Equal(t, "answer = 42\n", string(content))

	_, err = w.ReadFile("demo/nope.py")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpenNoRecord(t *testing.T) {
	t.Parallel()

	path := writeTestWheel(t, []struct{ name, content string }{
		{"demo/core.py", "pass\n"},
	})

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestOpenNotAZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.whl")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	path, err := Build(context.Background(), p)
	require.NoError(t, err)

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.NoError(t, w.Verify(context.Background()))
}

func TestVerifyHashMismatch(t *testing.T) {
	t.Parallel()

	// Same length as the real content so only the hash disagrees.
	record := recordLine("demo/core.py", "fail\n") +
		"test-1.0.dist-info/RECORD,,\n"
	path := writeTestWheel(t, []struct{ name, content string }{
		{"demo/core.py", "pass\n"},
		{"test-1.0.dist-info/RECORD", record},
	})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.ErrorIs(t, w.Verify(context.Background()), ErrHashMismatch)
}

func TestVerifySizeMismatch(t *testing.T) {
	t.Parallel()

	content := "pass\n"
	sum := sha256.Sum256([]byte(content))
	record := fmt.Sprintf("demo/core.py,sha256=%s,%d\n",
		base64.RawURLEncoding.EncodeToString(sum[:]), len(content)+7) +
		"test-1.0.dist-info/RECORD,,\n"
	path := writeTestWheel(t, []struct{ name, content string }{
		{"demo/core.py", content},
		{"test-1.0.dist-info/RECORD", record},
	})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.ErrorIs(t, w.Verify(context.Background()), ErrSizeMismatch)
}

func TestVerifyUnrecordedEntry(t *testing.T) {
	t.Parallel()

	record := recordLine("demo/core.py", "pass\n") +
		"test-1.0.dist-info/RECORD,,\n"
	path := writeTestWheel(t, []struct{ name, content string }{
		{"demo/core.py", "pass\n"},
		{"demo/sneaky.py", "injected\n"},
		{"test-1.0.dist-info/RECORD", record},
	})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.ErrorIs(t, w.Verify(context.Background()), ErrMissingRecord)
}

func TestVerifyMissingEntry(t *testing.T) {
	t.Parallel()

	record := recordLine("demo/core.py", "pass\n") +
		recordLine("demo/gone.py", "deleted\n") +
		"test-1.0.dist-info/RECORD,,\n"
	path := writeTestWheel(t, []struct{ name, content string }{
		{"demo/core.py", "pass\n"},
		{"test-1.0.dist-info/RECORD", record},
	})

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.ErrorIs(t, w.Verify(context.Background()), ErrMissingRecord)
}
