package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frontgen-dev/frontgen/internal/branding"
	"github.com/frontgen-dev/frontgen/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Vue and Angular projects by driving the framework
CLIs and layering optional tooling (TypeScript, ESLint, Tailwind, Prettier,
Stylelint, Jest) on top of the generated tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// User defaults feed flag resolution in the subcommands.
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
// Errors are rendered here (remediation commands already ride the error
// text) so main stays a plain exit-code shim.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
