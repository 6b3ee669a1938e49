// Package scaffold writes the fixed directory tree and SQL migration/seed
// files for the multi-tenant SaaS project.
//
// The templates are embedded into the binary and written verbatim: running
// Generate twice always converges on the same bytes, whatever happened to the
// files in between. There are no parameters and no partial success; the
// first filesystem error aborts the run.
package scaffold
