package deps

import (
	"context"
	"fmt"
	"os"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// Ensure verifies the toolchain and installs whatever is missing, then
// re-verifies. When everything is already present it performs zero
// mutations.
func (r *Resolver) Ensure(ctx context.Context, tc Toolchain) error {
	if res := r.checkNode(ctx, tc.NodeConstraint); !res.Satisfied {
		r.log.Info("node runtime needs install", "reason", res.Reason)
		if err := r.InstallNode(ctx, tc.NodeConstraint); err != nil {
			return err
		}
	}

	// Package managers are not auto-installed: npm ships with node and
	// yarn/pnpm are a user choice, so a miss here is an error with the
	// install command attached.
	if res := r.checkPackageManager(ctx, tc.PackageManager); !res.Satisfied {
		return &project.Error{
			Kind:        project.KindToolMissing,
			Msg:         fmt.Sprintf("%s: %s", res.Tool, res.Reason),
			Remediation: res.Remediation,
		}
	}

	if res := r.checkCLI(ctx, tc.CLI, tc.CLIPackage); !res.Satisfied {
		r.log.Info("framework CLI needs install", "cli", tc.CLI, "reason", res.Reason)
		if err := r.InstallCLI(ctx, tc); err != nil {
			return err
		}
	}

	r.log.Debug("toolchain satisfied", "framework", tc.Framework)
	return nil
}

// InstallNode runs the vendor install sequence: probe the network,
// authorize privilege escalation, fetch the setup script to a temporary
// path, execute it elevated, install the package, re-verify. The
// temporary script is removed on every exit path.
func (r *Resolver) InstallNode(ctx context.Context, constraint string) error {
	if err := r.CheckNetwork(ctx); err != nil {
		return err
	}
	if err := r.CheckPrivilege(ctx); err != nil {
		return err
	}
	if _, err := r.inv.LookPath("curl"); err != nil {
		return &project.Error{
			Kind:        project.KindToolMissing,
			Msg:         "curl is not installed",
			Remediation: "sudo apt update && sudo apt install -y curl",
			Err:         err,
		}
	}

	script, err := os.CreateTemp("", "nodesource-setup-*.sh")
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "creating temporary setup script", Err: err}
	}
	scriptPath := script.Name()
	script.Close()
	defer os.Remove(scriptPath)

	r.log.Info("downloading node setup script", "url", r.setupURL)
	if _, err := r.inv.Run(ctx, []string{"curl", "-fsSL", r.setupURL, "-o", scriptPath},
		invoker.Opts{Timeout: downloadTimeout}); err != nil {
		return r.installFailed("download_setup_script", err)
	}

	r.log.Info("running node setup script")
	if _, err := r.inv.Run(ctx, []string{"sudo", "bash", scriptPath},
		invoker.Opts{Timeout: installTimeout}); err != nil {
		return r.installFailed("run_setup_script", err)
	}

	r.log.Info("installing nodejs package")
	if _, err := r.inv.Run(ctx, []string{"sudo", "apt-get", "install", "-y", "nodejs"},
		invoker.Opts{Timeout: installTimeout}); err != nil {
		return r.installFailed("apt_install", err)
	}

	res := r.checkNode(ctx, constraint)
	if !res.Satisfied {
		return &project.Error{
			Kind:        project.KindInstallFailed,
			Stage:       "verify",
			Msg:         "node install completed but verification failed: " + res.Reason,
			Remediation: res.Remediation,
		}
	}
	r.log.Info("node runtime installed", "version", res.Version)
	return nil
}

// InstallCLI globally installs the framework CLI and re-verifies it.
func (r *Resolver) InstallCLI(ctx context.Context, tc Toolchain) error {
	r.log.Info("installing framework CLI", "package", tc.CLIPackage)
	if _, err := r.inv.Run(ctx, []string{"npm", "install", "-g", tc.CLIPackage},
		invoker.Opts{Timeout: installTimeout}); err != nil {
		return &project.Error{
			Kind:        project.KindInstallFailed,
			Stage:       "npm_install_global",
			Msg:         "installing " + tc.CLIPackage + " failed",
			Remediation: "npm install -g " + tc.CLIPackage,
			Err:         err,
		}
	}

	res := r.checkCLI(ctx, tc.CLI, tc.CLIPackage)
	if !res.Satisfied {
		return &project.Error{
			Kind:        project.KindInstallFailed,
			Stage:       "verify",
			Msg:         fmt.Sprintf("%s installed but verification failed: %s", tc.CLIPackage, res.Reason),
			Remediation: res.Remediation,
		}
	}
	r.log.Info("framework CLI installed", "cli", tc.CLI, "version", res.Version)
	return nil
}

func (r *Resolver) installFailed(stage string, err error) *project.Error {
	return &project.Error{
		Kind:        project.KindInstallFailed,
		Stage:       stage,
		Msg:         "node install failed at " + stage,
		Remediation: nodeManualInstall(r.setupURL),
		Err:         err,
	}
}
