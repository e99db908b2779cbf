package features

import "context"

// InstallStylelint installs the stylesheet linter with the standard
// shared config and writes its rc file.
func (in *Installer) InstallStylelint(ctx context.Context) error {
	if err := in.installPackages(ctx, "stylelint", "stylelint", "stylelint-config-standard"); err != nil {
		return err
	}

	config := map[string]any{
		"extends": "stylelint-config-standard",
		"rules": map[string]any{
			"indentation":         2,
			"number-leading-zero": "always",
		},
	}
	return in.writeJSON(".stylelintrc.json", config)
}
