package features

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

const tailwindDirectives = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n"

// InstallTailwind installs Tailwind CSS with the PostCSS toolchain,
// writes the config pair, and injects the framework directives into the
// project stylesheet.
func (in *Installer) InstallTailwind(ctx context.Context) error {
	var pkgs []string
	var postcssPlugins map[string]any
	var content []string
	var stylesheet string

	switch in.fw {
	case project.Angular:
		pkgs = []string{"tailwindcss", "postcss", "autoprefixer"}
		postcssPlugins = map[string]any{"tailwindcss": map[string]any{}, "autoprefixer": map[string]any{}}
		content = []string{"./src/**/*.{html,ts}"}
		stylesheet = filepath.Join("src", "styles.css")
	default:
		pkgs = []string{"@tailwindcss/postcss", "postcss", "autoprefixer"}
		postcssPlugins = map[string]any{"@tailwindcss/postcss": map[string]any{}, "autoprefixer": map[string]any{}}
		content = []string{"./index.html", "./src/**/*.{vue,js,ts,jsx,tsx}"}
		stylesheet = filepath.Join("src", "assets", "main.css")
	}

	if err := in.installPackages(ctx, "tailwind", pkgs...); err != nil {
		return err
	}

	tailwindConfig := map[string]any{
		"content": content,
		"theme":   map[string]any{"extend": map[string]any{}},
		"plugins": []string{},
	}
	if err := in.writeModuleExports("tailwind.config.js", tailwindConfig); err != nil {
		return err
	}
	if err := in.writeModuleExports("postcss.config.js", map[string]any{"plugins": postcssPlugins}); err != nil {
		return err
	}

	return in.injectDirectives(stylesheet)
}

// injectDirectives appends the tailwind directives to the project
// stylesheet, creating it when absent. Existing content is preserved
// and a second run does not duplicate the block.
func (in *Installer) injectDirectives(stylesheet string) error {
	path := filepath.Join(in.dir, stylesheet)

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return &project.Error{Kind: project.KindFilesystem, Msg: "creating stylesheet directory", Err: mkErr}
		}
		if wrErr := os.WriteFile(path, []byte(tailwindDirectives), 0o644); wrErr != nil {
			return &project.Error{Kind: project.KindFilesystem, Msg: "creating stylesheet", Err: wrErr}
		}
		in.log.Debug("created stylesheet with tailwind directives", "file", stylesheet)
		return nil
	case err != nil:
		return &project.Error{Kind: project.KindFilesystem, Msg: "reading stylesheet", Err: err}
	}

	if strings.Contains(string(existing), "@tailwind base") {
		in.log.Debug("tailwind directives already present", "file", stylesheet)
		return nil
	}

	updated := string(existing)
	if !strings.HasSuffix(updated, "\n") && updated != "" {
		updated += "\n"
	}
	updated += "\n" + tailwindDirectives
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "appending tailwind directives", Err: err}
	}
	in.log.Debug("appended tailwind directives", "file", stylesheet)
	return nil
}

// InstallStandaloneTailwind retrofits Tailwind into an existing project
// directory outside the generation pipeline (the `add tailwind`
// command). It is idempotent: a directory that already has both the
// package and a config file is left untouched. Directories without a
// package manifest get one via npm init first.
func InstallStandaloneTailwind(ctx context.Context, inv invoker.Invoker, logger *log.Logger, dir string) error {
	logger = logger.WithPrefix("tailwind")

	_, pkgErr := os.Stat(filepath.Join(dir, "node_modules", "tailwindcss"))
	_, cfgErr := os.Stat(filepath.Join(dir, "tailwind.config.js"))
	if pkgErr == nil && cfgErr == nil {
		logger.Info("tailwind already installed, nothing to do", "dir", dir)
		return nil
	}

	if _, err := os.Stat(filepath.Join(dir, "package.json")); os.IsNotExist(err) {
		logger.Info("no package.json, initializing one")
		if _, err := inv.Run(ctx, []string{"npm", "init", "-y"}, invoker.Opts{Dir: dir, Timeout: installTimeout}); err != nil {
			return &project.Error{Kind: project.KindInstallFailed, Stage: "npm_init", Msg: "initializing package.json", Err: err}
		}
	}

	logger.Info("installing tailwind toolchain")
	if _, err := inv.Run(ctx, []string{"npm", "install", "--save-dev", "tailwindcss", "postcss", "autoprefixer"},
		invoker.Opts{Dir: dir, Timeout: installTimeout}); err != nil {
		return &project.Error{Kind: project.KindInstallFailed, Stage: "tailwind_install", Msg: "installing tailwind packages", Err: err}
	}

	if _, err := inv.Run(ctx, []string{"npx", "tailwindcss", "init", "-p"},
		invoker.Opts{Dir: dir, Timeout: installTimeout}); err != nil {
		return &project.Error{Kind: project.KindInstallFailed, Stage: "tailwind_init", Msg: "generating tailwind config", Err: err}
	}

	logger.Info("tailwind installed", "dir", dir)
	return nil
}
