// Package preflight provides readiness checks for the filesystem paths and
// external binaries Scribe depends on.
//
// These checks run in two contexts:
//   - The CLI "scribe status" command renders RunAll as a table.
//   - The API /status endpoint reports CheckSystemDeps alongside model readiness.
package preflight
