// Package discovery finds the descriptor files that qstamp stamps. It walks a
// directory tree and collects every MANIFEST.MF and feature.xml, optionally
// skipping paths excluded by the project config or the root .gitignore.
package discovery
