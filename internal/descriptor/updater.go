package descriptor

import (
	"context"
	"fmt"

	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/logging"
)

// Updater rewrites descriptor files in place.
type Updater struct {
	fs     core.FileSystem
	dryRun bool
}

// NewUpdater creates an Updater. With dryRun set, changes are computed and
// reported but never written.
func NewUpdater(fs core.FileSystem, dryRun bool) *Updater {
	return &Updater{fs: fs, dryRun: dryRun}
}

// UpdateFile stamps qualifier into the descriptor at path.
// It returns nil when the file holds no matching version or already carries
// the exact text that would be written. Read and write failures are returned
// wrapped with the path.
func (u *Updater) UpdateFile(ctx context.Context, path string, kind Kind, qualifier string) (*Change, error) {
	data, err := u.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	text, replaced := decodeText(data)
	if replaced {
		logging.Debug("replaced undecodable bytes", "path", path)
	}

	var (
		updated string
		change  *Change
		ok      bool
	)
	switch kind {
	case KindManifest:
		updated, change, ok = UpdateManifest(text, qualifier)
	case KindFeature:
		updated, change, ok = UpdateFeature(text, qualifier)
		if ok {
			checkFeatureRoot(path, text, change.OldVersion)
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor kind: %s", kind)
	}

	if !ok {
		logging.Debug("no version to stamp", "path", path, "kind", kind)
		return nil, nil
	}
	change.Path = path

	if u.dryRun {
		return change, nil
	}

	if err := u.fs.WriteFile(ctx, path, []byte(updated), core.PermDefaultFile); err != nil {
		return nil, fmt.Errorf("failed to write file %q: %w", path, err)
	}
	logging.Debug("stamped", "path", path, "from", change.OldVersion, "to", change.NewVersion)

	return change, nil
}

// ReadVersion returns the version currently declared by the descriptor at
// path, or "" when none is found.
func (u *Updater) ReadVersion(ctx context.Context, path string, kind Kind) (string, error) {
	data, err := u.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	text, _ := decodeText(data)

	var v string
	switch kind {
	case KindManifest:
		v, _ = ManifestVersion(text)
	case KindFeature:
		v, _ = FeatureVersion(text)
	default:
		return "", fmt.Errorf("unsupported descriptor kind: %s", kind)
	}
	return v, nil
}

// checkFeatureRoot warns when the positional first match is not the version
// of the document's root element. The positional rewrite still applies.
func checkFeatureRoot(path, text, matched string) {
	rootVersion, err := FeatureRootVersion(text)
	if err != nil {
		logging.Debug("skipping root version check", "path", path, "err", err)
		return
	}
	if rootVersion != matched {
		logging.Warn("first version attribute is not the root element's version",
			"path", path, "stamped", matched, "root", rootVersion)
	}
}
