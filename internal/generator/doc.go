// Package generator runs the scaffold pipeline for one project: a
// linear sequence of dependency checks, directory reset, the framework
// CLI's base scaffold, the enabled feature installs in fixed order, and
// the metadata and version-control tail steps. Required steps abort the
// run on first failure; best-effort steps log and continue.
package generator
