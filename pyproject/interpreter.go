package pyproject

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// versionQuery prints the interpreter's major.minor version.
const versionQuery = "import sys; print('%d.%d' % sys.version_info[:2])"

// DetectInterpreter asks the python on PATH for its major.minor version,
// preferring python3 over python. Native builds need a concrete target
// interpreter; pyproject.toml has no field declaring one, so the
// environment supplies it.
func DetectInterpreter(ctx context.Context) (string, error) {
	var lastErr error
	for _, name := range []string{"python3", "python"} {
		out, err := exec.CommandContext(ctx, name, "-c", versionQuery).Output()
		if err != nil {
			lastErr = err
			continue
		}
		return strings.TrimSpace(string(out)), nil
	}
	return "", fmt.Errorf("detect python interpreter: %w", lastErr)
}
