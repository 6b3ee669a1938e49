// Package main hosts the demoreel CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the SQL scaffold generator, the two
// demo recorders (frame capture and external encoder), the operator
// checklist, dependency status, and the local run history. It centralizes
// configuration resolution, logger setup, and ledger access so subcommands
// stay focused on terminal output.
//
// Add new behaviour to the internal packages first and surface it here with
// a dedicated command or flag.
package main
