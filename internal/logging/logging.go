// Package logging assembles run-scoped loggers for scaffold operations.
//
// Every generation run logs to its own file (created on demand) and is
// tagged with a fresh run ID so interleaved runs against the same log
// path can be told apart. Components receive the logger at construction
// and must not install process-global logging state.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options control how a run logger is assembled.
type Options struct {
	// Path is the log file location. Parent directories are created as
	// needed and records are appended to an existing file.
	Path string

	// Mirror, when non-nil, receives a copy of every record. The CLI
	// passes stderr here for verbose runs.
	Mirror io.Writer

	// Level defaults to Info (the zero value).
	Level log.Level
}

// Run is one generation run's logging context.
type Run struct {
	// ID is the full run identifier. Log lines carry its short form.
	ID string

	// Logger is the run-tagged logger handed to every component.
	Logger *log.Logger

	file *os.File
}

// NewRun opens the log file at opts.Path and returns a logger tagged with
// a fresh run ID. The caller must Close the run when finished.
func NewRun(opts Options) (*Run, error) {
	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var w io.Writer = f
	if opts.Mirror != nil {
		w = io.MultiWriter(f, opts.Mirror)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	logger.SetLevel(opts.Level)

	id := uuid.New().String()
	run := &Run{
		ID:     id,
		Logger: logger.With("run", id[:8]),
		file:   f,
	}
	run.Logger.Debug("run started", "id", id)
	return run, nil
}

// Close releases the underlying log file.
func (r *Run) Close() error {
	return r.file.Close()
}

// Discard returns a logger that drops every record. Used by tests and by
// callers that have no log destination yet.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
