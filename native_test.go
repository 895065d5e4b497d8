package wheel

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestNativeBuild(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	root := t.TempDir()
	p := &Project{
		Name:        "demo",
		Version:     "0.1.0",
		Root:        root,
		BuildScript: "build.py",
	}
	cfg := &buildConfig{
		buildCommand: []string{"sh", "-c",
			"mkdir -p build/lib.linux-x86_64-cpython-311/demo && printf ext > build/lib.linux-x86_64-cpython-311/demo/ext.so"},
	}

	entries, err := nativeBuild(context.Background(), p, cfg, map[string]struct{}{})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "demo/ext.so", entries[0].ArchivePath)
	assert.True(t, entries[0].Generated)
}

func TestNativeBuildSkipsCollectedPaths(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	root := t.TempDir()
	p := &Project{
		Name:        "demo",
		Version:     "0.1.0",
		Root:        root,
		BuildScript: "build.py",
	}
	cfg := &buildConfig{
		buildCommand: []string{"sh", "-c",
			"mkdir -p build/lib.linux/demo && printf ext > build/lib.linux/demo/ext.so && printf src > build/lib.linux/demo/core.py"},
	}
	present := map[string]struct{}{"demo/core.py": {}}

	entries, err := nativeBuild(context.Background(), p, cfg, present)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "demo/ext.so", entries[0].ArchivePath)
}

func TestNativeBuildNoOutput(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	p := &Project{
		Name:        "demo",
		Version:     "0.1.0",
		Root:        t.TempDir(),
		BuildScript: "build.py",
	}
	cfg := &buildConfig{buildCommand: []string{"true"}}

	entries, err := nativeBuild(context.Background(), p, cfg, map[string]struct{}{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNativeBuildCommandFails(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	p := &Project{
		Name:        "demo",
		Version:     "0.1.0",
		Root:        t.TempDir(),
		BuildScript: "build.py",
	}
	cfg := &buildConfig{buildCommand: []string{"sh", "-c", "echo boom >&2; exit 3"}}

	_, err := nativeBuild(context.Background(), p, cfg, map[string]struct{}{})
	require.ErrorIs(t, err, ErrBuildCommand)
	assert.Contains(t, err.Error(), "exit status 3")
	assert.Contains(t, err.Error(), "boom")
}

func TestNativeBuildTimeout(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	p := &Project{
		Name:        "demo",
		Version:     "0.1.0",
		Root:        t.TempDir(),
		BuildScript: "build.py",
	}
	cfg := &buildConfig{
		buildCommand: []string{"sleep", "30"},
		buildTimeout: 50 * time.Millisecond,
	}

	_, err := nativeBuild(context.Background(), p, cfg, map[string]struct{}{})
	require.ErrorIs(t, err, ErrBuildCommand)
}

func TestBuildNativeWheel(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	root := t.TempDir()
	createTestFiles(t, root, map[string]string{
		"demo/__init__.py": "",
	})
	p := &Project{
		Name:              "demo",
		Version:           "0.1.0",
		Root:              root,
		Includes:          []Include{{Glob: "demo", Kind: IncludePackage}},
		BuildScript:       "build.py",
		TargetInterpreter: "3.11",
	}

	path, err := Build(context.Background(), p,
		WithPlatform("linux_x86_64"),
		WithBuildCommand("sh", "-c",
			"mkdir -p build/lib.linux-x86_64-cpython-311/demo && printf ext > build/lib.linux-x86_64-cpython-311/demo/ext.so"),
	)
	require.NoError(t, err)
	assert.Contains(t, path, "demo-0.1.0-cp311-cp311-linux_x86_64.whl")

	w, err := Open(path)
	require.NoError(t, err)
	defer w.Close()

	assert.Contains(t, w.Names(), "demo/ext.so")

	content, err := w.ReadFile("demo-0.1.0.dist-info/WHEEL")
	require.NoError(t, err)
	assert.Contains(t, string(content), "Root-Is-Purelib: false\n")
	assert.Contains(t, string(content), "Tag: cp311-cp311-linux_x86_64\n")
}
