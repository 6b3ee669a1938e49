// Package preflight provides readiness checks for the filesystem paths,
// binaries and HTTP endpoint the demo recorders depend on.
//
// The checks back the CLI "demoreel status" command and the recorder's
// optional pre-run summary. None of them are fatal on their own: callers
// decide what to do with a failed Result.
package preflight
