// Command wheel builds and verifies Python wheel archives.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/meigma/wheel"
	"github.com/meigma/wheel/pyproject"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wheel",
		Short:        "Build and verify Python wheel archives",
		Version:      wheel.Version,
		SilenceUsage: true,
	}
	root.AddCommand(newBuildCmd(), newVerifyCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	var (
		output       string
		verbose      bool
		python       string
		buildTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Assemble a wheel from a project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			logger := log.New(cmd.ErrOrStderr())
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}

			project, err := pyproject.Load(dir)
			if err != nil {
				return err
			}

			if project.BuildScript != "" && project.TargetInterpreter == "" {
				interp := python
				if interp == "" {
					interp, err = pyproject.DetectInterpreter(cmd.Context())
					if err != nil {
						return err
					}
				}
				project.TargetInterpreter = interp
			}

			opts := []wheel.BuildOption{wheel.WithLogger(logger)}
			if output != "" {
				opts = append(opts, wheel.WithTargetDir(output))
			}
			if buildTimeout > 0 {
				opts = append(opts, wheel.WithBuildTimeout(buildTimeout))
			}

			path, err := wheel.Build(cmd.Context(), project, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "directory to place the wheel in (default <dir>/dist)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every file added to the archive")
	cmd.Flags().StringVar(&python, "python", "", "target interpreter version for native builds, e.g. 3.11 (default: detected from python on PATH)")
	cmd.Flags().DurationVar(&buildTimeout, "build-timeout", 0, "timeout for the native build step (0 means none)")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <wheel>",
		Short: "Check a wheel's RECORD manifest against its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wheel.Open(args[0])
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Verify(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d entries\n", len(w.Records())-1)
			return nil
		},
	}
}
