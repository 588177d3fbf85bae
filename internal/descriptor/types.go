package descriptor

// Kind identifies a descriptor file format.
type Kind string

const (
	// KindManifest is an OSGi bundle manifest declaring Bundle-Version.
	KindManifest Kind = "manifest"

	// KindFeature is an Eclipse feature descriptor declaring version="...".
	KindFeature Kind = "feature"
)

// Descriptor file names, matched exactly against the base name.
const (
	ManifestFilename = "MANIFEST.MF"
	FeatureFilename  = "feature.xml"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Filename returns the base name of files of this kind.
func (k Kind) Filename() string {
	switch k {
	case KindManifest:
		return ManifestFilename
	case KindFeature:
		return FeatureFilename
	default:
		return ""
	}
}

// Kinds returns every descriptor kind in processing order:
// manifests are stamped before feature descriptors.
func Kinds() []Kind {
	return []Kind{KindManifest, KindFeature}
}

// KindForFilename returns the kind whose file name equals name exactly.
func KindForFilename(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Filename() == name {
			return k, true
		}
	}
	return "", false
}

// Change describes a version rewritten in a descriptor.
type Change struct {
	// Path is the file that was (or would be) rewritten.
	Path string

	// Kind is the descriptor kind.
	Kind Kind

	// OldVersion is the version text found in the file.
	OldVersion string

	// NewVersion is the version text written in its place.
	NewVersion string
}
