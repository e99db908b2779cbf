package deps

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// CheckResult is the outcome of verifying one tool. Produced fresh on
// every run; never cached.
type CheckResult struct {
	Tool      Tool
	Satisfied bool

	// Version is the detected version string when the tool is present.
	Version string

	// Reason says why the tool is unsatisfied.
	Reason string

	// Remediation is the exact command line that fixes it.
	Remediation string
}

// Check verifies every tool in the toolchain without mutating anything.
// The doctor command and Ensure both build on this.
func (r *Resolver) Check(ctx context.Context, tc Toolchain) []CheckResult {
	results := []CheckResult{
		r.checkNode(ctx, tc.NodeConstraint),
		r.checkPackageManager(ctx, tc.PackageManager),
		r.checkCLI(ctx, tc.CLI, tc.CLIPackage),
	}
	for _, res := range results {
		if res.Satisfied {
			r.log.Debug("dependency satisfied", "tool", res.Tool, "version", res.Version)
		} else {
			r.log.Warn("dependency unsatisfied", "tool", res.Tool, "reason", res.Reason)
		}
	}
	return results
}

// checkNode verifies the runtime is present and inside the supported
// version range. An out-of-range version is unsatisfied, not partially
// accepted.
func (r *Resolver) checkNode(ctx context.Context, constraint string) CheckResult {
	res := CheckResult{Tool: ToolNode}
	if _, err := r.inv.LookPath("node"); err != nil {
		res.Reason = "node is not installed"
		res.Remediation = nodeManualInstall(r.setupURL)
		return res
	}

	out, err := r.inv.Run(ctx, []string{"node", "--version"}, invoker.Opts{Timeout: versionTimeout})
	if err != nil {
		res.Reason = fmt.Sprintf("node --version failed: %v", err)
		res.Remediation = nodeManualInstall(r.setupURL)
		return res
	}

	raw := strings.TrimSpace(out.Stdout)
	ok, err := SupportedNode(constraint, raw)
	if err != nil {
		res.Reason = fmt.Sprintf("could not parse node version %q", raw)
		res.Remediation = nodeManualInstall(r.setupURL)
		return res
	}
	res.Version = raw
	if !ok {
		res.Reason = fmt.Sprintf("node %s is outside the supported range %s", raw, constraint)
		res.Remediation = nodeManualInstall(r.setupURL)
		return res
	}
	res.Satisfied = true
	return res
}

func (r *Resolver) checkPackageManager(ctx context.Context, pm project.PackageManager) CheckResult {
	name := string(pm)
	res := CheckResult{Tool: Tool(name)}
	if _, err := r.inv.LookPath(name); err != nil {
		res.Reason = name + " is not installed"
		res.Remediation = packageManagerInstall(pm, r.setupURL)
		return res
	}
	out, err := r.inv.Run(ctx, []string{name, "--version"}, invoker.Opts{Timeout: versionTimeout})
	if err != nil {
		res.Reason = fmt.Sprintf("%s --version failed: %v", name, err)
		res.Remediation = packageManagerInstall(pm, r.setupURL)
		return res
	}
	res.Satisfied = true
	res.Version = strings.TrimSpace(out.Stdout)
	return res
}

func (r *Resolver) checkCLI(ctx context.Context, cli Tool, pkg string) CheckResult {
	name := string(cli)
	res := CheckResult{Tool: cli}
	if _, err := r.inv.LookPath(name); err != nil {
		res.Reason = name + " is not installed"
		res.Remediation = "npm install -g " + pkg
		return res
	}
	out, err := r.inv.Run(ctx, []string{name, "--version"}, invoker.Opts{Timeout: versionTimeout})
	if err != nil {
		res.Reason = fmt.Sprintf("%s --version failed: %v", name, err)
		res.Remediation = "npm install -g " + pkg
		return res
	}
	res.Satisfied = true
	res.Version = firstLine(out.Stdout)
	return res
}

// Doctor checks every versioned tool either generator might reach for,
// independent of any one project's configuration. Rows come back in
// display order: runtime, package managers, framework CLIs.
func (r *Resolver) Doctor(ctx context.Context) []CheckResult {
	results := []CheckResult{r.checkNode(ctx, DefaultNodeConstraint)}
	for _, pm := range project.PackageManagers {
		results = append(results, r.checkPackageManager(ctx, pm))
	}
	return append(results,
		r.checkCLI(ctx, ToolVue, "@vue/cli"),
		r.checkCLI(ctx, ToolNg, "@angular/cli"),
	)
}

// CheckNetwork probes the vendor host before any install that needs to
// download. Any response means the network path is up; only transport
// errors count as unreachable.
func (r *Resolver) CheckNetwork(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.probeURL, nil)
	if err != nil {
		return fmt.Errorf("building probe request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Warn("network probe failed", "url", r.probeURL, "err", err)
		return &project.Error{
			Kind: project.KindNetworkUnavailable,
			Msg:  "no internet connection; check your network and try again",
			Err:  err,
		}
	}
	resp.Body.Close()
	r.log.Debug("network probe ok", "url", r.probeURL, "status", resp.StatusCode)
	return nil
}

// CheckPrivilege verifies privilege escalation is usable: first
// non-interactively (sudo -n), then by prompting for a password when a
// prompter is available. The remediation on failure is the full manual
// install command line, since that is what the user will need next.
func (r *Resolver) CheckPrivilege(ctx context.Context) error {
	if _, err := r.inv.LookPath("sudo"); err != nil {
		return &project.Error{
			Kind:        project.KindPrivilegeUnavailable,
			Msg:         "sudo is not installed",
			Remediation: nodeManualInstall(r.setupURL),
			Err:         err,
		}
	}

	if _, err := r.inv.Run(ctx, []string{"sudo", "-n", "true"}, invoker.Opts{Timeout: privilegeTimeout}); err == nil {
		r.log.Debug("non-interactive sudo available")
		return nil
	}

	if r.prompter == nil {
		return &project.Error{
			Kind:        project.KindPrivilegeUnavailable,
			Msg:         "sudo requires a password and no interactive prompt is available",
			Remediation: nodeManualInstall(r.setupURL),
		}
	}

	password, err := r.prompter.ReadPassword("sudo password: ")
	if err != nil {
		return &project.Error{
			Kind:        project.KindPrivilegeUnavailable,
			Msg:         "could not read sudo password",
			Remediation: nodeManualInstall(r.setupURL),
			Err:         err,
		}
	}
	if _, err := r.inv.Run(ctx, []string{"sudo", "-S", "-v"}, invoker.Opts{
		Stdin:   password + "\n",
		Timeout: versionTimeout,
	}); err != nil {
		return &project.Error{
			Kind:        project.KindPrivilegeUnavailable,
			Msg:         "sudo rejected the password",
			Remediation: nodeManualInstall(r.setupURL),
			Err:         err,
		}
	}
	r.log.Debug("sudo authorized interactively")
	return nil
}

// TerminalPrompter reads passwords from the controlling terminal with
// echo disabled.
type TerminalPrompter struct{}

// ReadPassword prompts on stdout and reads without echo. It refuses to
// run when stdin is not a terminal so passwords are never read from
// pipes by accident.
func (TerminalPrompter) ReadPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("stdin is not a terminal")
	}
	fmt.Print(prompt)
	defer fmt.Println()
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
