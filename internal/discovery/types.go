package discovery

import "github.com/indaco/qstamp/internal/descriptor"

// Result represents the descriptors found under a root directory.
type Result struct {
	// Root is the directory the walk started from.
	Root string

	// Descriptors holds every match in walk order.
	Descriptors []Descriptor
}

// Descriptor represents a discovered descriptor file.
type Descriptor struct {
	// Path is the path to the file, joined onto the discovery root.
	Path string

	// RelPath is the path relative to the discovery root.
	RelPath string

	// Kind is the descriptor kind implied by the file name.
	Kind descriptor.Kind
}

// ByKind returns the descriptors of the given kind, in walk order.
func (r *Result) ByKind(kind descriptor.Kind) []Descriptor {
	var out []Descriptor
	for _, d := range r.Descriptors {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of descriptors of the given kind.
func (r *Result) Count(kind descriptor.Kind) int {
	return len(r.ByKind(kind))
}

// IsEmpty returns true if no descriptors were found.
func (r *Result) IsEmpty() bool {
	return len(r.Descriptors) == 0
}
