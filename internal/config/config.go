package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/frontgen-dev/frontgen/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized settings.
const (
	KeyPackageManager = "package_manager"
	KeyESLintPreset   = "eslint_preset"
	KeyLogDir         = "log_dir"
	KeyNodeSetupURL   = "node_setup_url"
)

// Setting describes one recognized config key for the config commands.
type Setting struct {
	Key         string
	Description string
}

// Settings returns the recognized keys in display order.
func Settings() []Setting {
	return []Setting{
		{KeyPackageManager, "default package manager for new projects (npm, yarn, pnpm)"},
		{KeyESLintPreset, "default ESLint shared-config preset for new projects"},
		{KeyLogDir, "directory for scaffold run logs (default: <project_path>/logs)"},
		{KeyNodeSetupURL, "vendor setup script URL used when installing node"},
	}
}

// Known reports whether key is a recognized setting.
func Known(key string) bool {
	for _, s := range Settings() {
		if s.Key == key {
			return true
		}
	}
	return false
}

// Dir returns the path to the Frontgen config directory (~/.frontgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.frontgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
