package project

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Framework selects which generator variant builds the project.
type Framework string

// Supported framework tags.
const (
	Vue     Framework = "vue"
	Angular Framework = "angular"
)

// Frameworks lists the supported framework tags in menu order.
var Frameworks = []Framework{Vue, Angular}

// ParseFramework maps a user-supplied name to a Framework tag. Names the
// wizard historically listed but never supported (react) are rejected
// with a descriptive error rather than a generic one.
func ParseFramework(s string) (Framework, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vue", "vue.js", "vuejs":
		return Vue, nil
	case "angular":
		return Angular, nil
	case "react":
		return "", InvalidConfig("framework", "react is not supported; choose one of: %s", frameworkNames())
	default:
		return "", InvalidConfig("framework", "unknown framework %q; choose one of: %s", s, frameworkNames())
	}
}

func frameworkNames() string {
	names := make([]string, len(Frameworks))
	for i, f := range Frameworks {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// PackageManager selects which package manager drives installs.
type PackageManager string

// Supported package managers.
const (
	Npm  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	Pnpm PackageManager = "pnpm"
)

// PackageManagers lists the supported package managers in menu order.
var PackageManagers = []PackageManager{Npm, Yarn, Pnpm}

// ParsePackageManager maps a user-supplied name to a PackageManager.
func ParsePackageManager(s string) (PackageManager, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "npm":
		return Npm, nil
	case "yarn":
		return Yarn, nil
	case "pnpm":
		return Pnpm, nil
	default:
		return "", InvalidConfig("package_manager", "unknown package manager %q; choose one of: npm, yarn, pnpm", s)
	}
}

// Config is the closed configuration record for one generation run.
// Optional features are pointers: nil means the feature is off. The
// record is immutable once built; downstream stages read it only.
type Config struct {
	// ProjectName names the directory created under ProjectPath. It must
	// match ^[A-Za-z0-9_-]{1,50}$.
	ProjectName string `json:"project_name"`

	// ProjectPath is the parent directory the project is created in. It
	// must already exist.
	ProjectPath string `json:"project_path"`

	Framework      Framework      `json:"framework"`
	PackageManager PackageManager `json:"package_manager"`

	// Routing and Standalone are forwarded to the Angular base scaffold;
	// the Vue generator ignores them. Style is the Angular stylesheet
	// format (defaults to css).
	Routing    bool   `json:"routing"`
	Standalone bool   `json:"standalone"`
	Style      string `json:"style,omitempty"`

	// Git toggles version-control initialization after generation.
	Git bool `json:"git"`

	TypeScript *TypeScriptOptions `json:"typescript,omitempty"`
	ESLint     *ESLintOptions     `json:"eslint,omitempty"`
	Tailwind   *TailwindOptions   `json:"tailwind,omitempty"`
	Prettier   *PrettierOptions   `json:"prettier,omitempty"`
	Stylelint  *StylelintOptions  `json:"stylelint,omitempty"`
	Tests      *TestOptions       `json:"tests,omitempty"`

	// EnvFile is a raw environment-variable text block written verbatim
	// to .env in the project root when non-empty.
	EnvFile string `json:"env_file,omitempty"`
}

// TypeScriptOptions toggles TypeScript tooling. The Angular scaffold is
// TypeScript already, so the feature only acts on Vue projects.
type TypeScriptOptions struct{}

// ESLintOptions configures the linter feature.
type ESLintOptions struct {
	// Preset names the shared config installed alongside eslint, as in
	// eslint-config-<preset>. Empty means DefaultESLintPreset.
	Preset string `json:"preset,omitempty"`

	// Rules is a free-form JSON object merged into the rules key of the
	// generated lint config. Anything other than a JSON object is
	// rejected at validation time.
	Rules json.RawMessage `json:"rules,omitempty"`
}

// TailwindOptions toggles the Tailwind CSS feature.
type TailwindOptions struct{}

// PrettierOptions configures the formatter feature.
type PrettierOptions struct {
	// Settings is a free-form JSON object written to .prettierrc. Empty
	// means the stock defaults.
	Settings json.RawMessage `json:"settings,omitempty"`
}

// StylelintOptions toggles the stylesheet linter feature.
type StylelintOptions struct{}

// TestOptions configures the test-framework feature. For Angular,
// SkipTests maps to the base scaffold's --skip-tests flag; for Vue the
// feature installs Jest and writes its config.
type TestOptions struct {
	SkipTests bool `json:"skip_tests,omitempty"`
}

// DefaultESLintPreset is installed when ESLintOptions.Preset is empty.
const DefaultESLintPreset = "prettier"

// DefaultStyle is the Angular stylesheet format used when Style is empty.
const DefaultStyle = "css"

// New returns a Config with the defaults a fresh wizard submission
// carries: npm, routing on, css styles, git on, no optional features.
func New(name, path string, fw Framework) Config {
	return Config{
		ProjectName:    name,
		ProjectPath:    path,
		Framework:      fw,
		PackageManager: Npm,
		Routing:        true,
		Style:          DefaultStyle,
		Git:            true,
	}
}

// ESLintPreset returns the effective preset for the linter feature.
func (c Config) ESLintPreset() string {
	if c.ESLint != nil && c.ESLint.Preset != "" {
		return c.ESLint.Preset
	}
	return DefaultESLintPreset
}

func (c Config) String() string {
	return fmt.Sprintf("%s project %q in %s", c.Framework, c.ProjectName, c.ProjectPath)
}
