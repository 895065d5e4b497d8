// Package wheel assembles Python wheel archives from a project source tree.
//
// A wheel is a deflate-compressed zip with a self-describing layout:
// project files at their import paths, control files under a
// <name>-<version>.dist-info folder, and a RECORD manifest listing every
// entry's sha256 and size as the final entry. The builder writes project
// files in sorted order with normalized permission bits and fixed
// timestamps, so building the same input twice yields byte-identical
// archives regardless of file mtimes or filesystem iteration order.
//
// # Quick Start
//
// Build a wheel for a project:
//
//	path, err := wheel.Build(ctx, project,
//	    wheel.WithTargetDir("dist"),
//	)
//
// Open and verify an existing wheel:
//
//	w, err := wheel.Open(path)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Verify(ctx)
//
// Project configuration parsing lives in the pyproject subpackage; the
// builder itself consumes only the narrow [Project] view.
package wheel
