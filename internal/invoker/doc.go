// Package invoker runs the external toolchain commands the pipeline
// depends on (node, package managers, framework CLIs, git, sudo).
//
// It is the sole channel through which external failures propagate
// upward: a command that exits non-zero comes back as a *CommandError
// carrying both captured streams, and call sites decide whether that
// aborts the run or is logged as best-effort. The Invoker interface
// exists so tests can script toolchain behavior without spawning
// processes.
package invoker
