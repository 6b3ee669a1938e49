// Package textutil provides small text helpers shared by the subprocess
// wrappers: bounded capture of a child's stderr, and one-line summaries of
// command output suitable for logs and step outcomes.
package textutil
