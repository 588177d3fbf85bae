// Package descriptor stamps build qualifiers into OSGi bundle manifests
// (MANIFEST.MF) and Eclipse feature descriptors (feature.xml).
//
// Both formats are edited textually so that everything except the version
// qualifier is preserved byte for byte. Manifests are matched on their
// Bundle-Version header line; feature descriptors on their first
// version="M.m.p[.q]" attribute, which by convention is the feature's own
// version and precedes any included plugins or requirements.
//
// Files are decoded leniently: ill-formed UTF-8 is replaced with U+FFFD so a
// damaged descriptor can still be stamped.
package descriptor
