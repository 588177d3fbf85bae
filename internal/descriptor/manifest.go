package descriptor

import (
	"regexp"
	"strings"
)

// manifestRegex matches a Bundle-Version header line.
// It captures:
//  1. the header key and the blanks after it
//  2. major
//  3. minor
//  4. patch
//  5. (optional) existing qualifier
//  6. (optional) CR of a CRLF line ending
var manifestRegex = regexp.MustCompile(
	`(?m)^(Bundle-Version:[ \t]*)` +
		`(\d+)\.(\d+)\.(\d+)` +
		`(?:\.([A-Za-z0-9_\-]+))?` +
		`[ \t]*(\r?)$`,
)

// UpdateManifest stamps qualifier onto the first Bundle-Version header in text.
// The numeric components keep their exact text and any previous qualifier is
// dropped. It returns the new text and whether anything changed.
func UpdateManifest(text, qualifier string) (string, *Change, bool) {
	loc := manifestRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil, false
	}

	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	base := group(2) + "." + group(3) + "." + group(4)
	old := base
	if q := group(5); q != "" {
		old += "." + q
	}
	stamped := base + "." + qualifier

	var sb strings.Builder
	sb.Grow(len(text) + len(qualifier) + 1)
	sb.WriteString(text[:loc[0]])
	sb.WriteString(group(1))
	sb.WriteString(stamped)
	sb.WriteString(group(6))
	sb.WriteString(text[loc[1]:])
	updated := sb.String()

	if updated == text {
		return text, nil, false
	}
	return updated, &Change{Kind: KindManifest, OldVersion: old, NewVersion: stamped}, true
}

// ManifestVersion returns the first Bundle-Version declared in text.
func ManifestVersion(text string) (string, bool) {
	m := manifestRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := m[2] + "." + m[3] + "." + m[4]
	if m[5] != "" {
		v += "." + m[5]
	}
	return v, true
}
