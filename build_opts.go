package wheel

import (
	"time"

	"github.com/charmbracelet/log"
)

// Version is the builder's release version, embedded in the default
// generator string recorded in every WHEEL control file.
const Version = "0.1.0"

type buildConfig struct {
	targetDir    string
	generator    string
	logger       *log.Logger
	buildCommand []string
	buildTimeout time.Duration
	platform     string
}

// BuildOption configures a Build invocation.
type BuildOption func(*buildConfig)

// WithTargetDir sets the directory the finished wheel is placed in.
// Defaults to dist/ under the project root.
func WithTargetDir(dir string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.targetDir = dir
	}
}

// WithGenerator overrides the generator identity recorded in the WHEEL
// control file. The default is "wheel " followed by [Version].
func WithGenerator(generator string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.generator = generator
	}
}

// WithLogger routes build progress through the given logger. By default
// the builder is silent.
func WithLogger(logger *log.Logger) BuildOption {
	return func(cfg *buildConfig) {
		cfg.logger = logger
	}
}

// WithBuildCommand overrides the command used for the native build step.
// The command runs with the project root as its working directory and is
// expected to leave its output under build/lib.*.
func WithBuildCommand(argv ...string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.buildCommand = argv
	}
}

// WithBuildTimeout bounds the native build step. Zero means no timeout.
func WithBuildTimeout(d time.Duration) BuildOption {
	return func(cfg *buildConfig) {
		cfg.buildTimeout = d
	}
}

// WithPlatform overrides the host platform component used in native
// build tags, e.g. "linux_x86_64". Useful for cross builds and tests.
func WithPlatform(platform string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.platform = platform
	}
}
