// Package ledger keeps a local SQLite history of demoreel runs.
//
// Every scaffold, record and encode invocation opens a Run, appends one Step
// per best-effort action, and finishes with a terminal Status. The ledger is
// informational only: recording sessions are never resumed from it, and
// callers log ledger errors instead of failing the run.
package ledger
