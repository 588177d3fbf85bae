// Package qualifier generates the build qualifier stamped into descriptor
// versions: a "v" followed by the local time to the second.
package qualifier

import (
	"regexp"
	"time"
)

const (
	// Prefix marks a generated qualifier.
	Prefix = "v"

	// Layout is the timestamp layout: year, month, day, hour, minute, second.
	Layout = "20060102150405"
)

// Now is the clock used by Generate. Tests override it.
var Now = time.Now

var qualifierRegex = regexp.MustCompile(`^v\d{14}$`)

// New returns the qualifier for the given instant.
func New(t time.Time) string {
	return Prefix + t.Format(Layout)
}

// Generate returns the qualifier for the current local time.
// Qualifiers from runs at least one second apart sort in run order.
func Generate() string {
	return New(Now())
}

// Valid reports whether s has the shape of a generated qualifier.
func Valid(s string) bool {
	return qualifierRegex.MatchString(s)
}
