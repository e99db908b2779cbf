package deps

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// Tool identifies an external executable the resolver cares about.
type Tool string

const (
	ToolNode Tool = "node"
	ToolNpm  Tool = "npm"
	ToolYarn Tool = "yarn"
	ToolPnpm Tool = "pnpm"
	ToolVue  Tool = "vue"
	ToolNg   Tool = "ng"
	ToolGit  Tool = "git"
	ToolSudo Tool = "sudo"
	ToolCurl Tool = "curl"
)

// DefaultNodeConstraint is the inclusive supported range for the node
// runtime. Versions outside it are treated as missing and trigger the
// install path.
const DefaultNodeConstraint = ">= 20.11.1"

// DefaultProbeURL is the vendor host probed for reachability before any
// install that downloads.
const DefaultProbeURL = "https://deb.nodesource.com"

// DefaultSetupScriptURL is the vendor setup script for the node runtime.
const DefaultSetupScriptURL = "https://deb.nodesource.com/setup_20.x"

// Timeouts per operation class. Checks fail fast; installs get room.
const (
	probeTimeout     = 5 * time.Second
	privilegeTimeout = 5 * time.Second
	versionTimeout   = 30 * time.Second
	downloadTimeout  = 2 * time.Minute
	installTimeout   = 10 * time.Minute
)

// Toolchain is the set of tools one generation run requires.
type Toolchain struct {
	Framework      project.Framework
	PackageManager project.PackageManager

	// NodeConstraint is a semver range the runtime must satisfy.
	NodeConstraint string

	// CLI is the framework CLI binary and CLIPackage the npm package
	// that provides it globally.
	CLI        Tool
	CLIPackage string
}

// For derives the toolchain a config needs.
func For(cfg project.Config) Toolchain {
	tc := Toolchain{
		Framework:      cfg.Framework,
		PackageManager: cfg.PackageManager,
		NodeConstraint: DefaultNodeConstraint,
	}
	switch cfg.Framework {
	case project.Angular:
		tc.CLI = ToolNg
		tc.CLIPackage = "@angular/cli"
	default:
		tc.CLI = ToolVue
		tc.CLIPackage = "@vue/cli"
	}
	return tc
}

// CredentialPrompter supplies a privilege-escalation password when
// non-interactive escalation is unavailable.
type CredentialPrompter interface {
	ReadPassword(prompt string) (string, error)
}

// Resolver checks and installs toolchain dependencies.
type Resolver struct {
	inv      invoker.Invoker
	log      *log.Logger
	http     *http.Client
	probeURL string
	setupURL string
	prompter CredentialPrompter
}

// Option adjusts a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the probe client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.http = c }
}

// WithProbeURL replaces the reachability probe target.
func WithProbeURL(url string) Option {
	return func(r *Resolver) { r.probeURL = url }
}

// WithSetupScriptURL replaces the vendor setup script location.
func WithSetupScriptURL(url string) Option {
	return func(r *Resolver) { r.setupURL = url }
}

// WithCredentialPrompter installs an interactive password source for
// the sudo fallback. Without one, the fallback is skipped.
func WithCredentialPrompter(p CredentialPrompter) Option {
	return func(r *Resolver) { r.prompter = p }
}

// NewResolver builds a resolver over the given invoker and logger.
func NewResolver(inv invoker.Invoker, logger *log.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		inv:      inv,
		log:      logger.WithPrefix("deps"),
		http:     &http.Client{Timeout: probeTimeout},
		probeURL: DefaultProbeURL,
		setupURL: DefaultSetupScriptURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
