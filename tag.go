package wheel

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// The 2.x interpreter line. A declared range intersecting it selects the
// py2.py3 tag for pure wheels.
const (
	python2Lo = "v2.0.0"
	python2Hi = "v3.0.0"
)

// resolveTag decides the interpreter/ABI/platform triple for the wheel.
//
// Pure-library projects get a generic tag derived from the declared
// interpreter range. Projects with a native build step get a concrete
// host triple and fail with ErrNoCompatibleTag when one cannot be
// determined.
func resolveTag(p *Project, platformOverride string) (Tag, error) {
	if p.BuildScript == "" {
		interp := "py3"
		if supportsPython2(p.PythonVersions) {
			interp = "py2.py3"
		}
		return Tag{Interpreter: interp, ABI: "none", Platform: "any"}, nil
	}

	interp, err := interpreterTag(p.TargetInterpreter)
	if err != nil {
		return Tag{}, err
	}
	plat := platformOverride
	if plat == "" {
		plat = hostPlatform()
	}
	if plat == "" {
		return Tag{}, fmt.Errorf("%w: unsupported host %s/%s", ErrNoCompatibleTag, runtime.GOOS, runtime.GOARCH)
	}
	return Tag{Interpreter: interp, ABI: interp, Platform: plat}, nil
}

// interpreterTag converts an "X.Y" interpreter version into a cpXY tag.
func interpreterTag(version string) (string, error) {
	major, rest, found := strings.Cut(strings.TrimSpace(version), ".")
	if !found {
		return "", fmt.Errorf("%w: no target interpreter declared", ErrNoCompatibleTag)
	}
	minor, _, _ := strings.Cut(rest, ".")
	if !isDigits(major) || !isDigits(minor) {
		return "", fmt.Errorf("%w: invalid target interpreter %q", ErrNoCompatibleTag, version)
	}
	return "cp" + major + minor, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// hostPlatform maps the running OS and architecture to a wheel platform
// tag. Returns "" for hosts with no defined tag.
func hostPlatform() string {
	switch runtime.GOOS {
	case "linux":
		switch runtime.GOARCH {
		case "amd64":
			return "linux_x86_64"
		case "arm64":
			return "linux_aarch64"
		case "386":
			return "linux_i686"
		}
	case "darwin":
		switch runtime.GOARCH {
		case "amd64":
			return "macosx_10_9_x86_64"
		case "arm64":
			return "macosx_11_0_arm64"
		}
	case "windows":
		switch runtime.GOARCH {
		case "amd64":
			return "win_amd64"
		case "arm64":
			return "win_arm64"
		case "386":
			return "win32"
		}
	}
	return ""
}

// supportsPython2 reports whether the declared interpreter range admits
// any version in [2.0.0, 3.0.0). An empty declaration means any version.
func supportsPython2(constraint string) bool {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return true
	}
	for _, alt := range strings.Split(constraint, "||") {
		if rangeOf(alt).intersectsPython2() {
			return true
		}
	}
	return false
}

// versionRange is an interval of interpreter versions with optional
// bounds in canonical semver form.
type versionRange struct {
	lo, hi       string // empty means unbounded
	loInc, hiInc bool
	invalid      bool
}

// rangeOf parses one union alternative: comma- or space-separated clauses
// combined by intersection.
func rangeOf(alt string) versionRange {
	r := versionRange{loInc: true, hiInc: true}
	alt = strings.ReplaceAll(alt, ",", " ")
	for _, clause := range strings.Fields(alt) {
		r.apply(clause)
	}
	return r
}

func (r *versionRange) apply(clause string) {
	switch {
	case clause == "*":
	case strings.HasPrefix(clause, "^"):
		v := clause[1:]
		r.narrowLo(canon(v), true)
		r.narrowHi(caretUpper(v), false)
	case strings.HasPrefix(clause, "~="):
		r.applyTilde(clause[2:])
	case strings.HasPrefix(clause, "~"):
		r.applyTilde(clause[1:])
	case strings.HasPrefix(clause, ">="):
		r.narrowLo(canon(clause[2:]), true)
	case strings.HasPrefix(clause, ">"):
		r.narrowLo(canon(clause[1:]), false)
	case strings.HasPrefix(clause, "<="):
		r.narrowHi(canon(clause[2:]), true)
	case strings.HasPrefix(clause, "<"):
		r.narrowHi(canon(clause[1:]), false)
	case strings.HasPrefix(clause, "!="):
		// Excluding single versions cannot empty the 2.x line.
	case strings.HasPrefix(clause, "=="):
		r.exact(clause[2:])
	case strings.HasPrefix(clause, "="):
		r.exact(clause[1:])
	default:
		r.exact(clause)
	}
}

func (r *versionRange) applyTilde(v string) {
	r.narrowLo(canon(v), true)
	r.narrowHi(tildeUpper(v), false)
}

func (r *versionRange) exact(v string) {
	if base, ok := strings.CutSuffix(v, ".*"); ok {
		r.narrowLo(canon(base), true)
		r.narrowHi(tildeUpper(base), false)
		return
	}
	c := canon(v)
	r.narrowLo(c, true)
	r.narrowHi(c, true)
}

func (r *versionRange) narrowLo(v string, inc bool) {
	if v == "" {
		r.invalid = true
		return
	}
	if c := cmpBound(v, r.lo); r.lo == "" || c > 0 || (c == 0 && !inc) {
		r.lo, r.loInc = v, inc
	}
}

func (r *versionRange) narrowHi(v string, inc bool) {
	if v == "" {
		r.invalid = true
		return
	}
	if c := cmpBound(v, r.hi); r.hi == "" || c < 0 || (c == 0 && !inc) {
		r.hi, r.hiInc = v, inc
	}
}

func cmpBound(v, bound string) int {
	if bound == "" {
		return 0
	}
	return semver.Compare(v, bound)
}

// intersectsPython2 reports whether the range admits any version in
// [2.0.0, 3.0.0).
func (r versionRange) intersectsPython2() bool {
	if r.invalid {
		return false
	}
	if r.lo != "" && r.hi != "" {
		c := semver.Compare(r.lo, r.hi)
		if c > 0 || (c == 0 && !(r.loInc && r.hiInc)) {
			return false
		}
	}
	if r.lo != "" && semver.Compare(r.lo, python2Hi) >= 0 {
		return false
	}
	if r.hi != "" {
		c := semver.Compare(r.hi, python2Lo)
		if c < 0 || (c == 0 && !r.hiInc) {
			return false
		}
	}
	return true
}

// canon normalizes a version literal to canonical semver form, or ""
// when the literal cannot be parsed.
func canon(v string) string {
	c := semver.Canonical("v" + strings.TrimSpace(v))
	if !semver.IsValid(c) {
		return ""
	}
	return c
}

// caretUpper returns the exclusive upper bound of a caret requirement:
// the next version not sharing the leftmost non-zero component.
func caretUpper(v string) string {
	maj, minor, pat, n := versionParts(v)
	switch {
	case n == 0:
		return ""
	case maj > 0 || n == 1:
		return fmt.Sprintf("v%d.0.0", maj+1)
	case minor > 0 || n == 2:
		return fmt.Sprintf("v0.%d.0", minor+1)
	default:
		return fmt.Sprintf("v0.0.%d", pat+1)
	}
}

// tildeUpper returns the exclusive upper bound of a tilde requirement.
func tildeUpper(v string) string {
	maj, minor, _, n := versionParts(v)
	switch {
	case n == 0:
		return ""
	case n == 1:
		return fmt.Sprintf("v%d.0.0", maj+1)
	default:
		return fmt.Sprintf("v%d.%d.0", maj, minor+1)
	}
}

func versionParts(v string) (maj, minor, pat, n int) {
	for i, field := range strings.SplitN(strings.TrimSpace(v), ".", 3) {
		x, err := strconv.Atoi(field)
		if err != nil {
			return maj, minor, pat, n
		}
		switch i {
		case 0:
			maj = x
		case 1:
			minor = x
		case 2:
			pat = x
		}
		n++
	}
	return maj, minor, pat, n
}
