package descriptor

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText converts raw descriptor bytes to a string. Ill-formed UTF-8 is
// replaced with U+FFFD rather than rejected. The second result reports whether
// any replacement happened.
func decodeText(data []byte) (string, bool) {
	if utf8.Valid(data) {
		return string(data), false
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), data)
	if err != nil {
		return string(data), true
	}
	return string(out), true
}
