package invoker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Opts adjust a single command invocation.
type Opts struct {
	// Dir is the working directory; empty means the caller's cwd.
	Dir string

	// Stdin is fed to the command when non-empty (used for canned
	// answers to interactive tools).
	Stdin string

	// Env entries are appended to the inherited environment.
	Env []string

	// Timeout bounds the invocation when positive; the process is
	// killed once it elapses.
	Timeout time.Duration
}

// Result captures one finished invocation. Both streams are recorded
// separately so failures can prefer stderr.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CommandError reports a command that started but exited non-zero.
type CommandError struct {
	Argv     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Argv[0], e.ExitCode, e.Output())
}

// Output returns the most useful diagnostic text: stderr, falling back
// to stdout, falling back to a generic message.
func (e *CommandError) Output() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		return s
	}
	return "command produced no output"
}

// Invoker runs external commands and resolves executables.
type Invoker interface {
	Run(ctx context.Context, argv []string, opts Opts) (Result, error)
	LookPath(name string) (string, error)
}

// Local runs commands on the host via os/exec.
type Local struct{}

// NewLocal returns the host-backed invoker.
func NewLocal() *Local {
	return &Local{}
}

// LookPath resolves an executable on the system search path.
func (l *Local) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes argv, blocking until the command finishes, the context is
// canceled, or the timeout elapses. A non-zero exit returns the Result
// alongside a *CommandError; other errors mean the command never ran to
// completion.
func (l *Local) Run(ctx context.Context, argv []string, opts Opts) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command")
	}

	start := time.Now()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if opts.Dir != "" {
		if _, err := os.Stat(opts.Dir); err != nil {
			return Result{}, fmt.Errorf("working directory %s: %w", opts.Dir, err)
		}
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("%s: %w", argv[0], ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &CommandError{
			Argv:     argv,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}

	res.ExitCode = -1
	return res, fmt.Errorf("starting %s: %w", argv[0], err)
}
