// Package deps verifies and installs the external toolchain a
// framework needs: the node runtime (version-gated), the selected
// package manager, and the framework CLI.
//
// Checks are produced fresh on every run and never cached. Ensure is
// idempotent: when everything is already present it performs zero
// mutations. Every failure carries a human-actionable remediation
// string (the exact command line) which rides the error chain verbatim.
package deps
