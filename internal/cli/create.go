package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/frontgen-dev/frontgen/internal/branding"
	"github.com/frontgen-dev/frontgen/internal/config"
	"github.com/frontgen-dev/frontgen/internal/deps"
	"github.com/frontgen-dev/frontgen/internal/project"
	"github.com/frontgen-dev/frontgen/internal/scaffold"
)

// Flags shared by all create subcommands.
var (
	createPath           string
	createPackageManager string
	createTypeScript     bool
	createESLint         bool
	createESLintPreset   string
	createESLintRules    string
	createTailwind       bool
	createPrettier       bool
	createPrettierConfig string
	createStylelint      bool
	createSkipTests      bool
	createEnvFile        string
	createNoGit          bool
	createForce          bool
	createLogFile        string
	createVerbose        bool
	createInteractive    bool
)

// Angular-only flags.
var (
	createRouting    bool
	createStandalone bool
	createStyle      string
)

func init() {
	pf := createCmd.PersistentFlags()
	pf.StringVar(&createPath, "path", ".", "Parent directory the project is created in")
	pf.StringVar(&createPackageManager, "package-manager", "", "Package manager: npm, yarn or pnpm (default: user config, then npm)")
	pf.BoolVar(&createTypeScript, "typescript", false, "Add TypeScript tooling")
	pf.BoolVar(&createESLint, "eslint", false, "Add ESLint")
	pf.StringVar(&createESLintPreset, "eslint-preset", "", "ESLint shared-config preset (implies --eslint)")
	pf.StringVar(&createESLintRules, "eslint-rules", "", "Extra ESLint rules as a JSON object (implies --eslint)")
	pf.BoolVar(&createTailwind, "tailwind", false, "Add Tailwind CSS")
	pf.BoolVar(&createPrettier, "prettier", false, "Add Prettier")
	pf.StringVar(&createPrettierConfig, "prettier-config", "", "Prettier settings as a JSON object (implies --prettier)")
	pf.BoolVar(&createStylelint, "stylelint", false, "Add Stylelint")
	pf.BoolVar(&createSkipTests, "skip-tests", false, "Generate without test scaffolding")
	pf.StringVar(&createEnvFile, "env-file", "", "File whose contents are written to .env in the project root")
	pf.BoolVar(&createNoGit, "no-git", false, "Skip git initialization")
	pf.BoolVar(&createForce, "force", false, "Replace an existing project directory without asking")
	pf.StringVar(&createLogFile, "log-file", "", "Write the run log to this path instead of <project>/logs/"+branding.LogFileName())
	pf.BoolVar(&createVerbose, "verbose", false, "Mirror debug logs to stderr")
	createCmd.Flags().BoolVar(&createInteractive, "interactive", false, "Build the configuration through prompts")
	rootCmd.AddCommand(createCmd)

	createAngularCmd.Flags().BoolVar(&createRouting, "routing", true, "Generate the Angular routing module")
	createAngularCmd.Flags().BoolVar(&createStandalone, "standalone", false, "Generate standalone Angular components")
	createAngularCmd.Flags().StringVar(&createStyle, "style", "", "Angular stylesheet format (default css)")

	createCmd.AddCommand(createVueCmd)
	createCmd.AddCommand(createAngularCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold a new front-end project",
	Long: `Scaffold a new Vue or Angular project and layer optional tooling on top.

Run a framework subcommand for flag-driven use, or pass --interactive to
answer prompts instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			// Not a subcommand; react and friends get their dedicated message.
			if _, err := project.ParseFramework(args[0]); err != nil {
				return err
			}
			return cmd.Help()
		}
		if !createInteractive {
			return cmd.Help()
		}

		cfg, err := runInteractive(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		return runCreate(cmd.Context(), cfg)
	},
}

// ─── create vue ────────────────────────────────────────────────────

var createVueCmd = &cobra.Command{
	Use:     "vue <name>",
	Aliases: []string{"vuejs"},
	Short:   "Scaffold a new Vue project",
	Long: `Scaffold a new Vue project with vue create and layer the selected
tooling on top.

Examples:
  frontgen create vue my-app --typescript --eslint
  frontgen create vue my-app --package-manager pnpm --tailwind --no-git`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args[0], project.Vue)
		if err != nil {
			return err
		}
		return runCreate(cmd.Context(), cfg)
	},
}

// ─── create angular ────────────────────────────────────────────────

var createAngularCmd = &cobra.Command{
	Use:   "angular <name>",
	Short: "Scaffold a new Angular project",
	Long: `Scaffold a new Angular project with ng new and layer the selected
tooling on top.

Examples:
  frontgen create angular my-app --standalone --skip-tests
  frontgen create angular my-app --package-manager yarn --routing=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args[0], project.Angular)
		if err != nil {
			return err
		}
		return runCreate(cmd.Context(), cfg)
	},
}

// ─── Helpers ───────────────────────────────────────────────────────

// buildConfig assembles the generation record from the create flags,
// falling back to user config for defaults the flags leave unset.
func buildConfig(name string, fw project.Framework) (project.Config, error) {
	cfg := project.New(name, createPath, fw)

	pmName := createPackageManager
	if pmName == "" {
		pmName = config.Get(config.KeyPackageManager)
	}
	if pmName != "" {
		pm, err := project.ParsePackageManager(pmName)
		if err != nil {
			return project.Config{}, err
		}
		cfg.PackageManager = pm
	}

	cfg.Routing = createRouting
	cfg.Standalone = createStandalone
	if createStyle != "" {
		cfg.Style = createStyle
	}
	cfg.Git = !createNoGit

	if createTypeScript {
		cfg.TypeScript = &project.TypeScriptOptions{}
	}
	if createESLint || createESLintPreset != "" || createESLintRules != "" {
		preset := createESLintPreset
		if preset == "" {
			preset = config.Get(config.KeyESLintPreset)
		}
		opts := &project.ESLintOptions{Preset: preset}
		if createESLintRules != "" {
			if !json.Valid([]byte(createESLintRules)) {
				return project.Config{}, project.InvalidConfig("eslint.rules", "--eslint-rules must be a JSON object")
			}
			opts.Rules = json.RawMessage(createESLintRules)
		}
		cfg.ESLint = opts
	}
	if createTailwind {
		cfg.Tailwind = &project.TailwindOptions{}
	}
	if createPrettier || createPrettierConfig != "" {
		opts := &project.PrettierOptions{}
		if createPrettierConfig != "" {
			if !json.Valid([]byte(createPrettierConfig)) {
				return project.Config{}, project.InvalidConfig("prettier.settings", "--prettier-config must be a JSON object")
			}
			opts.Settings = json.RawMessage(createPrettierConfig)
		}
		cfg.Prettier = opts
	}
	if createStylelint {
		cfg.Stylelint = &project.StylelintOptions{}
	}
	if !createSkipTests {
		cfg.Tests = &project.TestOptions{}
	}

	if createEnvFile != "" {
		data, err := os.ReadFile(createEnvFile)
		if err != nil {
			return project.Config{}, fmt.Errorf("reading env file: %w", err)
		}
		cfg.EnvFile = string(data)
	}
	return cfg, nil
}

// runCreate confirms a destructive replace, assembles the scaffolder
// from flags and user config, and runs the generation.
func runCreate(ctx context.Context, cfg project.Config) error {
	target := filepath.Join(cfg.ProjectPath, cfg.ProjectName)
	if _, err := os.Stat(target); err == nil && !createForce {
		ok, err := confirmReplace(os.Stdin, os.Stdout, target)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	opts := []scaffold.Option{
		scaffold.WithVersion(buildVersion),
		scaffold.WithCredentialPrompter(deps.TerminalPrompter{}),
	}
	if createVerbose {
		opts = append(opts, scaffold.WithLogMirror(os.Stderr), scaffold.WithLogLevel(log.DebugLevel))
	}
	switch {
	case createLogFile != "":
		opts = append(opts, scaffold.WithLogPath(createLogFile))
	case config.Get(config.KeyLogDir) != "":
		opts = append(opts, scaffold.WithLogPath(filepath.Join(config.Get(config.KeyLogDir), branding.LogFileName())))
	}
	if url := config.Get(config.KeyNodeSetupURL); url != "" {
		opts = append(opts, scaffold.WithNodeSetupURL(url))
	}

	if err := scaffold.New(opts...).CreateProject(ctx, cfg); err != nil {
		return err
	}

	fmt.Printf("Created %s project at %s\n", cfg.Framework, target)
	fmt.Println("\nNext steps:")
	fmt.Printf("  cd %s\n", target)
	if cfg.Framework == project.Angular {
		fmt.Println("  ng serve")
	} else {
		fmt.Printf("  %s run serve\n", cfg.PackageManager)
	}
	return nil
}

// confirmReplace asks before an existing project directory is deleted
// and recreated. Only an explicit yes proceeds.
func confirmReplace(r io.Reader, w io.Writer, dir string) (bool, error) {
	fmt.Fprintf(w, "Directory %s already exists and will be deleted. Continue? [y/N]: ", dir)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
