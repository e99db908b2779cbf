// Package metadata records what a generation run produced. The record
// lands in .scaffold.json at the project root and holds the full run
// configuration, the creation timestamp, and the tool version, so later
// tooling can recognize and inspect scaffolded projects.
package metadata
