package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/frontgen-dev/frontgen/internal/features"
	"github.com/frontgen-dev/frontgen/internal/invoker"
)

var addVerbose bool

func init() {
	addCmd.PersistentFlags().BoolVar(&addVerbose, "verbose", false, "Log debug detail")
	addCmd.AddCommand(addTailwindCmd)
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Retrofit tooling into an existing project",
}

var addTailwindCmd = &cobra.Command{
	Use:   "tailwind [dir]",
	Short: "Install Tailwind CSS into an existing project",
	Long: `Install Tailwind CSS, PostCSS, and Autoprefixer into the project at dir
(default: current directory). Directories without a package.json get one
via npm init first. A project that already has Tailwind is left untouched.

Example:
  frontgen add tailwind ./legacy-app`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dir, err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not an existing directory", abs)
		}

		logger := log.New(os.Stderr)
		if addVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		return features.InstallStandaloneTailwind(cmd.Context(), invoker.NewLocal(), logger, abs)
	},
}
