// Package stamp implements the stamp command, which is also what a bare
// `qstamp` invocation runs.
package stamp
