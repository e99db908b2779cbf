package vcs

import (
	"context"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

//go:embed templates/*.gitignore
var templateFS embed.FS

// Template identifies the .gitignore template matched to a project kind.
type Template string

const (
	TemplateNode    Template = "node"
	TemplatePython  Template = "python"
	TemplateDefault Template = "default"
)

const gitTimeout = 30 * time.Second

// DetectTemplate picks the .gitignore template for a directory. A
// package.json marks a node project, requirements.txt or any .py file
// in the top level marks a python one, anything else gets the default.
func DetectTemplate(dir string) Template {
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
		return TemplateNode
	}
	if _, err := os.Stat(filepath.Join(dir, "requirements.txt")); err == nil {
		return TemplatePython
	}
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".py") {
				return TemplatePython
			}
		}
	}
	return TemplateDefault
}

// Init initializes a git repository in dir. A directory that already
// contains .git is left untouched. After init, a .gitignore is written
// from the detected template unless the project already has one.
func Init(ctx context.Context, inv invoker.Invoker, logger *log.Logger, dir string) error {
	logger = logger.WithPrefix("vcs")

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		logger.Info("git repository already initialized", "dir", dir)
		return nil
	}

	if _, err := inv.LookPath("git"); err != nil {
		return &project.Error{
			Kind:        project.KindToolMissing,
			Msg:         "git is required but not found in PATH",
			Remediation: "sudo apt update && sudo apt install -y git",
			Err:         err,
		}
	}

	if _, err := inv.Run(ctx, []string{"git", "init"}, invoker.Opts{Dir: dir, Timeout: gitTimeout}); err != nil {
		return &project.Error{Kind: project.KindCommandFailed, Msg: "initializing git repository", Err: err}
	}
	logger.Info("initialized git repository", "dir", dir)

	return writeIgnoreFile(logger, dir)
}

// writeIgnoreFile synthesizes .gitignore from the detected template.
// An existing file is never overwritten.
func writeIgnoreFile(logger *log.Logger, dir string) error {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		logger.Debug(".gitignore already present, keeping it")
		return nil
	}

	tmpl := DetectTemplate(dir)
	content, err := templateFS.ReadFile("templates/" + string(tmpl) + ".gitignore")
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "loading gitignore template", Err: err}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "writing .gitignore", Err: err}
	}
	logger.Info("created .gitignore", "template", string(tmpl))
	return nil
}
