// Package semver models the four-part OSGi versions found in plugin manifests
// and feature descriptors, and orders them the way the OSGi runtime does.
package semver
