package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version represents an OSGi version (major.minor.patch[.qualifier]).
type Version struct {
	Major     int
	Minor     int
	Patch     int
	Qualifier string
}

var (
	// versionRegex matches OSGi version strings.
	// It captures:
	//   1. Major version
	//   2. Minor version
	//   3. Patch version
	//   4. (optional) Qualifier
	versionRegex = regexp.MustCompile(
		`^(\d+)\.(\d+)\.(\d+)` + // major.minor.patch
			`(?:\.([A-Za-z0-9_\-]+))?$`, // optional qualifier
	)

	qualifierRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

	// errInvalidVersion is returned when a version string does not conform
	// to the expected OSGi version format.
	errInvalidVersion = errors.New("invalid version format")
)

// String returns the string representation of the version.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(32)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.Qualifier != "" {
		sb.WriteByte('.')
		sb.WriteString(v.Qualifier)
	}
	return sb.String()
}

// Base returns the version without its qualifier.
func (v Version) Base() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// WithQualifier returns a copy of v carrying qualifier q.
// An empty q removes the qualifier.
func (v Version) WithQualifier(q string) (Version, error) {
	if q != "" && !qualifierRegex.MatchString(q) {
		return Version{}, fmt.Errorf("%w: invalid qualifier %q", errInvalidVersion, q)
	}
	out := v
	out.Qualifier = q
	return out, nil
}

// maxVersionLength is the maximum allowed length for a version string.
const maxVersionLength = 128

// ParseVersion parses an OSGi version string.
//
// Supported formats:
//   - "1.2.3"
//   - "1.2.3.v20240101120000"
//   - "1.2.3.qualifier" (the literal placeholder used by PDE builds)
//
// Returns errInvalidVersion (wrapped) when:
//   - Input exceeds maxVersionLength (128 characters)
//   - Format doesn't match major.minor.patch[.qualifier]
//   - Major, minor, or patch overflow an int
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", errInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if len(matches) < 4 {
		return Version{}, fmt.Errorf("%w: %q", errInvalidVersion, trimmed)
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: invalid major version: %s", errInvalidVersion, err.Error())
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return Version{}, fmt.Errorf("%w: invalid minor version: %s", errInvalidVersion, err.Error())
	}
	patch, err := strconv.Atoi(matches[3])
	if err != nil {
		return Version{}, fmt.Errorf("%w: invalid patch version: %s", errInvalidVersion, err.Error())
	}

	return Version{Major: major, Minor: minor, Patch: patch, Qualifier: matches[4]}, nil
}

// IsInvalidVersion reports whether err came from a failed parse.
func IsInvalidVersion(err error) bool {
	return errors.Is(err, errInvalidVersion)
}

// Compare compares two versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
// Qualifiers compare as plain strings, and a missing qualifier sorts first,
// so 1.0.0 < 1.0.0.v20240101000000 < 1.0.0.v20240101000001.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	return strings.Compare(v.Qualifier, other.Qualifier)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
