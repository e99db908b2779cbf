package scaffold

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/frontgen-dev/frontgen/internal/branding"
	"github.com/frontgen-dev/frontgen/internal/deps"
	"github.com/frontgen-dev/frontgen/internal/generator"
	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/logging"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// Scaffolder runs complete project generations. One Scaffolder can
// serve many runs; each run gets its own logger and generator.
type Scaffolder struct {
	inv      invoker.Invoker
	version  string
	logPath  string
	mirror   io.Writer
	level    log.Level
	setupURL string
	prompter deps.CredentialPrompter
}

// Option adjusts a Scaffolder.
type Option func(*Scaffolder)

// WithInvoker replaces the command runner (used by tests).
func WithInvoker(inv invoker.Invoker) Option {
	return func(s *Scaffolder) { s.inv = inv }
}

// WithVersion sets the tool version stamped into project metadata.
func WithVersion(v string) Option {
	return func(s *Scaffolder) { s.version = v }
}

// WithLogPath overrides the default log location of
// <project_path>/logs/scaffold.log.
func WithLogPath(path string) Option {
	return func(s *Scaffolder) { s.logPath = path }
}

// WithLogMirror copies every log record to w in addition to the file.
func WithLogMirror(w io.Writer) Option {
	return func(s *Scaffolder) { s.mirror = w }
}

// WithLogLevel sets the run logger's level.
func WithLogLevel(level log.Level) Option {
	return func(s *Scaffolder) { s.level = level }
}

// WithNodeSetupURL overrides the vendor setup script used for runtime
// installation.
func WithNodeSetupURL(url string) Option {
	return func(s *Scaffolder) { s.setupURL = url }
}

// WithCredentialPrompter supplies an interactive password source for
// privilege escalation.
func WithCredentialPrompter(p deps.CredentialPrompter) Option {
	return func(s *Scaffolder) { s.prompter = p }
}

// New builds a Scaffolder. Without options it runs commands on the host
// and logs at info level.
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{
		inv:     invoker.NewLocal(),
		version: "dev",
		level:   log.InfoLevel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProject is the single entry point for one generation run. The
// config is validated before anything touches the filesystem; the
// directory reset inside the pipeline is destructive, so callers must
// confirm intent before calling this.
func (s *Scaffolder) CreateProject(ctx context.Context, cfg project.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	run, err := logging.NewRun(logging.Options{
		Path:   s.runLogPath(cfg),
		Mirror: s.mirror,
		Level:  s.level,
	})
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "setting up run log", Err: err}
	}
	defer run.Close()

	logger := run.Logger.With("project", cfg.ProjectName, "framework", string(cfg.Framework))
	logger.Info("generation started", "config", cfg.String())

	gen := generator.For(cfg, s.inv, logger,
		generator.WithResolver(deps.NewResolver(s.inv, logger, s.resolverOptions()...)),
		generator.WithVersion(s.version),
	)
	if err := gen.Generate(ctx); err != nil {
		logger.Error("generation failed", "err", err)
		return err
	}

	logger.Info("generation complete", "dir", filepath.Join(cfg.ProjectPath, cfg.ProjectName))
	return nil
}

func (s *Scaffolder) runLogPath(cfg project.Config) string {
	if s.logPath != "" {
		return s.logPath
	}
	return filepath.Join(cfg.ProjectPath, "logs", branding.LogFileName())
}

func (s *Scaffolder) resolverOptions() []deps.Option {
	var opts []deps.Option
	if s.setupURL != "" {
		opts = append(opts, deps.WithSetupScriptURL(s.setupURL))
	}
	if s.prompter != nil {
		opts = append(opts, deps.WithCredentialPrompter(s.prompter))
	}
	return opts
}
