package generator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/frontgen-dev/frontgen/internal/deps"
	"github.com/frontgen-dev/frontgen/internal/features"
	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/metadata"
	"github.com/frontgen-dev/frontgen/internal/project"
	"github.com/frontgen-dev/frontgen/internal/vcs"
)

// scaffoldTimeout bounds the framework CLI's project generation.
const scaffoldTimeout = 15 * time.Minute

// Generator builds one project tree from a validated config.
type Generator interface {
	Generate(ctx context.Context) error
}

// Option adjusts a generator.
type Option func(*base)

// WithResolver replaces the dependency resolver.
func WithResolver(r *deps.Resolver) Option {
	return func(b *base) { b.resolver = r }
}

// WithVersion sets the tool version stamped into the metadata record.
func WithVersion(v string) Option {
	return func(b *base) { b.version = v }
}

// For returns the generator variant for the config's framework. Unknown
// frameworks get a generator that fails on first use, so a missed
// validation surfaces as an error instead of a panic.
func For(cfg project.Config, inv invoker.Invoker, logger *log.Logger, opts ...Option) Generator {
	b := newBase(cfg, inv, logger, opts...)
	switch cfg.Framework {
	case project.Vue:
		return &vueGenerator{base: b}
	case project.Angular:
		return &angularGenerator{base: b}
	default:
		return &unknownGenerator{framework: cfg.Framework}
	}
}

type unknownGenerator struct {
	framework project.Framework
}

func (g *unknownGenerator) Generate(context.Context) error {
	return project.InvalidConfig("framework", "no generator for framework %q", g.framework)
}

// base carries everything the variants share: the pipeline skeleton,
// directory reset, feature installs, metadata, and version control.
// Variants contribute only their base-scaffold command.
type base struct {
	cfg      project.Config
	inv      invoker.Invoker
	log      *log.Logger
	feat     *features.Installer
	resolver *deps.Resolver
	version  string
}

func newBase(cfg project.Config, inv invoker.Invoker, logger *log.Logger, opts ...Option) *base {
	b := &base{
		cfg:     cfg,
		inv:     inv,
		log:     logger,
		version: "dev",
	}
	b.feat = features.NewInstaller(inv, logger, b.projectDir(), cfg)
	for _, opt := range opts {
		opt(b)
	}
	if b.resolver == nil {
		b.resolver = deps.NewResolver(inv, logger)
	}
	return b
}

func (b *base) projectDir() string {
	return filepath.Join(b.cfg.ProjectPath, b.cfg.ProjectName)
}

// run assembles the pipeline around the variant's scaffold step and
// executes it.
func (b *base) run(ctx context.Context, scaffold func(context.Context) error) error {
	steps := []Step{
		{Name: "dependency_check", Criticality: Required, Run: b.dependencyCheck},
		{Name: "directory_reset", Criticality: Required, Run: b.directoryReset},
		{Name: "base_scaffold", Criticality: Required, Run: scaffold},
	}
	steps = append(steps, b.featureSteps()...)
	if b.cfg.EnvFile != "" {
		steps = append(steps, Step{Name: "env_write", Criticality: Required, Run: b.envWrite})
	}
	steps = append(steps, Step{Name: "metadata_write", Criticality: BestEffort, Run: b.metadataWrite})
	if b.cfg.Git {
		steps = append(steps, Step{Name: "version_control_init", Criticality: BestEffort, Run: b.vcsInit})
	}
	return runPipeline(ctx, b.log.WithPrefix("pipeline"), steps)
}

// featureSteps returns the enabled feature installs in their fixed
// order: type system, linter, CSS framework, formatter, stylesheet
// linter, test framework. Every feature install can alter the package
// manifest, so each one is required.
func (b *base) featureSteps() []Step {
	var steps []Step
	add := func(name string, enabled bool, run func(context.Context) error) {
		if enabled {
			steps = append(steps, Step{Name: name, Criticality: Required, Run: run})
		}
	}
	add("feature_typescript", b.cfg.TypeScript != nil, b.feat.InstallTypeScript)
	add("feature_eslint", b.cfg.ESLint != nil, func(ctx context.Context) error {
		return b.feat.InstallESLint(ctx, b.cfg.ESLintPreset(), b.eslintRules())
	})
	add("feature_tailwind", b.cfg.Tailwind != nil, b.feat.InstallTailwind)
	add("feature_prettier", b.cfg.Prettier != nil, func(ctx context.Context) error {
		return b.feat.InstallPrettier(ctx, b.cfg.Prettier.Settings)
	})
	add("feature_stylelint", b.cfg.Stylelint != nil, b.feat.InstallStylelint)
	add("feature_tests", b.cfg.Tests != nil, b.feat.InstallJest)
	return steps
}

func (b *base) eslintRules() json.RawMessage {
	if b.cfg.ESLint == nil {
		return nil
	}
	return b.cfg.ESLint.Rules
}

func (b *base) dependencyCheck(ctx context.Context) error {
	return b.resolver.Ensure(ctx, deps.For(b.cfg))
}

// directoryReset clears the target so generation never merges old and
// new content. Destructive: callers confirm intent before invoking the
// generator.
func (b *base) directoryReset(context.Context) error {
	dir := b.projectDir()
	if _, err := os.Stat(dir); err == nil {
		b.log.Warn("removing existing project directory", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return &project.Error{Kind: project.KindDirectoryConflict, Msg: "removing existing directory " + dir, Err: err}
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "creating project directory", Err: err}
	}
	return nil
}

// verifyScaffold guards against a framework CLI that reports success
// without producing its standard source tree.
func (b *base) verifyScaffold() error {
	src := filepath.Join(b.projectDir(), "src")
	if _, err := os.Stat(src); err != nil {
		return &project.Error{
			Kind:  project.KindInstallFailed,
			Stage: "verify_scaffold",
			Msg:   "scaffold reported success but no src directory was produced",
			Err:   err,
		}
	}
	return nil
}

func (b *base) envWrite(context.Context) error {
	return b.feat.WriteEnvFile(b.cfg.EnvFile)
}

func (b *base) metadataWrite(context.Context) error {
	return metadata.Write(b.projectDir(), b.cfg, b.version)
}

func (b *base) vcsInit(ctx context.Context) error {
	return vcs.Init(ctx, b.inv, b.log, b.projectDir())
}
