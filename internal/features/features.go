package features

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

const installTimeout = 10 * time.Minute

// Installer installs features into one project tree. It is bound to the
// project directory for the duration of a run.
type Installer struct {
	inv invoker.Invoker
	log *log.Logger
	dir string
	fw  project.Framework
	pm  project.PackageManager
}

// NewInstaller builds a feature installer for the project at dir.
func NewInstaller(inv invoker.Invoker, logger *log.Logger, dir string, cfg project.Config) *Installer {
	return &Installer{
		inv: inv,
		log: logger.WithPrefix("features"),
		dir: dir,
		fw:  cfg.Framework,
		pm:  cfg.PackageManager,
	}
}

// installPackages runs the selected package manager's dev-dependency
// install inside the project directory.
func (in *Installer) installPackages(ctx context.Context, stage string, pkgs ...string) error {
	argv := installArgs(in.pm, pkgs)
	in.log.Info("installing packages", "stage", stage, "packages", pkgs)
	if _, err := in.inv.Run(ctx, argv, invoker.Opts{Dir: in.dir, Timeout: installTimeout}); err != nil {
		return &project.Error{
			Kind:  project.KindInstallFailed,
			Stage: stage,
			Msg:   fmt.Sprintf("installing %v", pkgs),
			Err:   err,
		}
	}
	return nil
}

// installArgs builds the dev-scoped install command for each supported
// package manager.
func installArgs(pm project.PackageManager, pkgs []string) []string {
	var argv []string
	switch pm {
	case project.Yarn:
		argv = []string{"yarn", "add", "--dev"}
	case project.Pnpm:
		argv = []string{"pnpm", "add", "--save-dev"}
	default:
		argv = []string{"npm", "install", "--save-dev"}
	}
	return append(argv, pkgs...)
}

// writeJSON writes v as indented JSON with a trailing newline.
func (in *Installer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "serializing " + name, Err: err}
	}
	return in.writeFile(name, append(data, '\n'))
}

// writeModuleExports writes v as a CommonJS config file
// (module.exports = {...}), the format the node tools expect for their
// .config.js artifacts.
func (in *Installer) writeModuleExports(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "serializing " + name, Err: err}
	}
	content := append([]byte("module.exports = "), data...)
	return in.writeFile(name, append(content, '\n'))
}

func (in *Installer) writeFile(name string, data []byte) error {
	path := filepath.Join(in.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "writing " + name, Err: err}
	}
	in.log.Debug("wrote artifact", "file", name)
	return nil
}
