package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frontgen-dev/frontgen/internal/branding"
	"github.com/frontgen-dev/frontgen/internal/config"
	"github.com/frontgen-dev/frontgen/internal/project"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write Frontgen configuration stored at ~/.frontgen/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !config.Known(key) {
			return fmt.Errorf("unknown config key %q: run '%s config list' for the recognized keys", key, branding.CLIName())
		}
		if key == config.KeyPackageManager {
			if _, err := project.ParsePackageManager(value); err != nil {
				return err
			}
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recognized settings and their current values",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range config.Settings() {
			value := config.Get(s.Key)
			if value == "" {
				value = "(unset)"
			}
			fmt.Printf("%-16s %-12s %s\n", s.Key, value, s.Description)
		}
		return nil
	},
}
