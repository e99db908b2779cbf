package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frontgen-dev/frontgen/internal/deps"
	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/logging"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// requiredTools must all be present for any generation run to succeed.
// The rest of the table is situational: one package manager suffices and
// the resolver can install the framework CLIs itself.
var requiredTools = map[deps.Tool]bool{
	deps.ToolNode: true,
	deps.ToolNpm:  true,
	deps.ToolGit:  true,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the scaffolding toolchain",
	Long:  `Probe every external tool the generators may invoke and report presence and version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := invoker.NewLocal()
		resolver := deps.NewResolver(inv, logging.Discard())

		var missing []string

		fmt.Println("Toolchain check:")
		for _, res := range resolver.Doctor(cmd.Context()) {
			if res.Satisfied {
				fmt.Printf("  [ OK ] %s %s\n", res.Tool, res.Version)
				continue
			}
			fmt.Printf("  [MISS] %s: %s\n", res.Tool, res.Reason)
			if res.Remediation != "" {
				fmt.Printf("         fix: %s\n", res.Remediation)
			}
			if requiredTools[res.Tool] {
				missing = append(missing, string(res.Tool))
			}
		}

		fmt.Println("\nSystem check:")
		for _, name := range []string{"git", "sudo", "curl"} {
			if !checkBinary(inv, name) && requiredTools[deps.Tool(name)] {
				missing = append(missing, name)
			}
		}

		if len(missing) > 0 {
			return fmt.Errorf("toolchain incomplete: missing %s", strings.Join(missing, ", "))
		}
		return nil
	},
}

// checkBinary prints one presence row for a tool that has no meaningful
// version to report.
func checkBinary(inv invoker.Invoker, name string) bool {
	path, err := inv.LookPath(name)
	if err != nil {
		fmt.Printf("  [MISS] %s not found\n", name)
		return false
	}
	fmt.Printf("  [ OK ] %s found at %s\n", name, path)
	return true
}
