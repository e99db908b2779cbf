// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package; Go's //go:embed bakes it
// into the binary and the values overlay the hard defaults below.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	MetadataFile string `yaml:"metadata_file"`
	LogFileName  string `yaml:"log_file_name"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "frontgen",
			DisplayName:  "Frontgen",
			Description:  "Scaffold Vue and Angular projects with batteries included",
			HomeDir:      ".frontgen",
			EnvPrefix:    "FRONTGEN",
			GoModule:     "github.com/frontgen-dev/frontgen",
			MetadataFile: ".scaffold.json",
			LogFileName:  "scaffold.log",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "frontgen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Frontgen").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".frontgen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "FRONTGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// MetadataFile returns the sidecar metadata filename written into every
// generated project root (e.g., ".scaffold.json").
func MetadataFile() string { load(); return defaults.MetadataFile }

// LogFileName returns the default log file name (e.g., "scaffold.log").
func LogFileName() string { load(); return defaults.LogFileName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "FRONTGEN_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
