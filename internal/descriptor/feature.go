package descriptor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// featureRegex matches a version="M.m.p[.q]" attribute.
// It captures:
//  1. major
//  2. minor
//  3. patch
//  4. (optional) existing qualifier
var featureRegex = regexp.MustCompile(
	`\bversion="(\d+)\.(\d+)\.(\d+)(?:\.([A-Za-z0-9_\-]+))?"`,
)

// UpdateFeature stamps qualifier onto the first version attribute in text.
// Later version attributes, such as those of included plugins, are untouched.
// The first match is assumed to be the feature's own version; see
// FeatureRootVersion for a structural cross-check.
func UpdateFeature(text, qualifier string) (string, *Change, bool) {
	loc := featureRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil, false
	}

	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	base := group(1) + "." + group(2) + "." + group(3)
	old := base
	if q := group(4); q != "" {
		old += "." + q
	}
	stamped := base + "." + qualifier

	var sb strings.Builder
	sb.Grow(len(text) + len(qualifier) + 1)
	sb.WriteString(text[:loc[0]])
	sb.WriteString(`version="`)
	sb.WriteString(stamped)
	sb.WriteString(`"`)
	sb.WriteString(text[loc[1]:])
	updated := sb.String()

	if updated == text {
		return text, nil, false
	}
	return updated, &Change{Kind: KindFeature, OldVersion: old, NewVersion: stamped}, true
}

// FeatureVersion returns the first version attribute value in text.
func FeatureVersion(text string) (string, bool) {
	m := featureRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := m[1] + "." + m[2] + "." + m[3]
	if m[4] != "" {
		v += "." + m[4]
	}
	return v, true
}

// FeatureRootVersion parses text as XML and returns the version attribute of
// the root element, or "" when the root has none.
func FeatureRootVersion(text string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return "", fmt.Errorf("failed to parse feature descriptor: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("feature descriptor has no root element")
	}
	return root.SelectAttrValue("version", ""), nil
}
