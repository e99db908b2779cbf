package project

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures. Every error the pipeline surfaces
// is either a *Error carrying one of these kinds or wraps one.
type Kind string

const (
	// KindNetworkUnavailable: the vendor host probe failed before an
	// install that needs to download.
	KindNetworkUnavailable Kind = "network_unavailable"

	// KindPrivilegeUnavailable: privilege escalation is missing or could
	// not be authorized.
	KindPrivilegeUnavailable Kind = "privilege_unavailable"

	// KindToolMissing: a required executable is not on PATH.
	KindToolMissing Kind = "tool_missing"

	// KindToolVersionUnsupported: a tool is present but its version
	// falls outside the supported range.
	KindToolVersionUnsupported Kind = "tool_version_unsupported"

	// KindInstallFailed: an install sequence failed; Stage names the
	// step that broke.
	KindInstallFailed Kind = "install_failed"

	// KindInvalidConfig: the configuration record is invalid; Field
	// names the offending field.
	KindInvalidConfig Kind = "invalid_config"

	// KindDirectoryConflict: the target directory could not be reset.
	KindDirectoryConflict Kind = "directory_conflict"

	// KindCommandFailed: an external command exited non-zero.
	KindCommandFailed Kind = "command_failed"

	// KindFilesystem: a file write or removal outside DirectoryReset
	// failed.
	KindFilesystem Kind = "filesystem"
)

// Error is the structured failure type shared across the pipeline.
type Error struct {
	Kind Kind

	// Field is set for invalid-config errors.
	Field string

	// Stage is set for install failures (e.g. "node_setup_script").
	Stage string

	// Remediation is the exact command line that fixes the problem, when
	// one is known. It rides the error chain verbatim and is never
	// rewritten by callers.
	Remediation string

	Msg string
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	switch {
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case msg != "" && e.Err != nil:
		msg = msg + ": " + e.Err.Error()
	}
	if e.Remediation != "" {
		return msg + ". Run: " + e.Remediation
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidConfig builds an invalid-config error for the named field.
func InvalidConfig(field, format string, args ...any) *Error {
	return &Error{
		Kind:  KindInvalidConfig,
		Field: field,
		Msg:   fmt.Sprintf("invalid %s: %s", field, fmt.Sprintf(format, args...)),
	}
}

// KindOf returns the Kind carried by err's chain, or "" when the chain
// holds no *Error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err's chain carries a *Error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// RemediationOf returns the remediation command carried by err's chain,
// or "" when none is attached.
func RemediationOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Remediation
	}
	return ""
}
