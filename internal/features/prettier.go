package features

import (
	"context"
	"encoding/json"

	"github.com/frontgen-dev/frontgen/internal/project"
)

// defaultPrettierSettings mirror what the wizard historically wrote
// when the user provided no settings of their own.
var defaultPrettierSettings = map[string]any{
	"printWidth":    80,
	"singleQuote":   true,
	"trailingComma": "es5",
}

// InstallPrettier installs the formatter and writes .prettierrc from
// the user's settings object, or the stock defaults when empty.
func (in *Installer) InstallPrettier(ctx context.Context, settings json.RawMessage) error {
	if err := in.installPackages(ctx, "prettier", "prettier"); err != nil {
		return err
	}

	if len(settings) == 0 {
		return in.writeJSON(".prettierrc", defaultPrettierSettings)
	}

	var doc map[string]any
	if err := json.Unmarshal(settings, &doc); err != nil {
		return project.InvalidConfig("prettier.settings", "must be a JSON object: %v", err)
	}
	return in.writeJSON(".prettierrc", doc)
}
