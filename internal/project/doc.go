// Package project defines the scaffold configuration record, its
// validation rules, and the error taxonomy shared by every stage of the
// generation pipeline.
//
// A Config is built once per run by a front end (CLI flags or the
// interactive prompts), validated, then passed by value through the
// pipeline and treated as read-only. Validation is two-layered: Go-side
// checks for the hard invariants plus an embedded JSON Schema applied to
// the serialized record, which covers the shape of the free-form tool
// config blobs.
package project
