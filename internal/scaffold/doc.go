// Package scaffold is the top-level coordinator for project generation.
// It validates the run configuration, provisions the run-scoped logger,
// selects the generator variant for the requested framework, and runs
// the pipeline end to end. It powers the "frontgen create" command.
package scaffold
