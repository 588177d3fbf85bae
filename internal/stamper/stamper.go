// Package stamper drives a stamping run: it discovers descriptors under a root
// and applies one qualifier to all of them.
package stamper

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/qstamp/internal/config"
	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/descriptor"
	"github.com/indaco/qstamp/internal/discovery"
	"github.com/indaco/qstamp/internal/logging"
	"github.com/indaco/qstamp/internal/qualifier"
	"github.com/indaco/qstamp/internal/semver"
)

// ErrEmptyQualifier is returned when Run is called without a qualifier.
var ErrEmptyQualifier = errors.New("qualifier must not be empty")

// Entry records one descriptor that was (or, in a dry run, would be) rewritten.
type Entry struct {
	Path       string
	RelPath    string
	Kind       descriptor.Kind
	OldVersion string
	NewVersion string
}

// Report summarises a stamping run.
type Report struct {
	// Qualifier is the value applied to every changed descriptor.
	Qualifier string

	// DryRun is set when nothing was written.
	DryRun bool

	// Scanned is the number of descriptors examined.
	Scanned int

	// Changed lists the rewritten descriptors in processing order.
	Changed []Entry
}

// Count returns the number of changed descriptors.
func (r *Report) Count() int {
	return len(r.Changed)
}

// Stamper applies a qualifier to every descriptor under a root.
type Stamper struct {
	discovery *discovery.Service
	updater   *descriptor.Updater
	dryRun    bool
}

// New creates a Stamper. A nil cfg means the zero config.
func New(fs core.FileSystem, cfg *config.Config, dryRun bool) *Stamper {
	return &Stamper{
		discovery: discovery.NewService(fs, cfg),
		updater:   descriptor.NewUpdater(fs, dryRun),
		dryRun:    dryRun,
	}
}

// Run stamps q into every manifest under root, then into every
// feature descriptor. On failure the partial report is returned with the
// error; files already rewritten stay rewritten.
func (s *Stamper) Run(ctx context.Context, root, q string) (*Report, error) {
	report := &Report{
		Qualifier: q,
		DryRun:    s.dryRun,
		Changed:   make([]Entry, 0),
	}
	if q == "" {
		return report, ErrEmptyQualifier
	}
	if _, err := (semver.Version{}).WithQualifier(q); err != nil {
		return report, err
	}
	if !qualifier.Valid(q) {
		logging.Debug("qualifier is not a generated timestamp", "qualifier", q)
	}

	found, err := s.discovery.Find(ctx, root)
	if err != nil {
		return report, fmt.Errorf("discovery failed: %w", err)
	}
	logging.Debug("discovered descriptors",
		"root", root,
		"manifests", found.Count(descriptor.KindManifest),
		"features", found.Count(descriptor.KindFeature))

	for _, kind := range descriptor.Kinds() {
		for _, d := range found.ByKind(kind) {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			report.Scanned++
			change, err := s.updater.UpdateFile(ctx, d.Path, d.Kind, q)
			if err != nil {
				return report, err
			}
			if change == nil {
				continue
			}

			entry := Entry{
				Path:       d.Path,
				RelPath:    d.RelPath,
				Kind:       d.Kind,
				OldVersion: change.OldVersion,
				NewVersion: change.NewVersion,
			}
			warnIfRegressed(entry)
			report.Changed = append(report.Changed, entry)
		}
	}

	logging.Info("stamp finished",
		"qualifier", q,
		"scanned", report.Scanned,
		"changed", report.Count(),
		"dry-run", s.dryRun)
	return report, nil
}

// warnIfRegressed logs when the stamped version orders before the one it
// replaced, which happens when the clock moved backwards between runs.
func warnIfRegressed(e Entry) {
	oldV, err := semver.ParseVersion(e.OldVersion)
	if err != nil {
		return
	}
	newV, err := semver.ParseVersion(e.NewVersion)
	if err != nil {
		return
	}
	if newV.Compare(oldV) < 0 {
		logging.Warn("stamped version sorts before the previous one",
			"path", e.RelPath, "old", e.OldVersion, "new", e.NewVersion)
	}
}
