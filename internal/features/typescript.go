package features

import (
	"context"

	"github.com/frontgen-dev/frontgen/internal/project"
)

// InstallTypeScript adds the TypeScript toolchain and a tsconfig to Vue
// projects. Angular scaffolds are TypeScript already, so the feature is
// a no-op there.
func (in *Installer) InstallTypeScript(ctx context.Context) error {
	if in.fw == project.Angular {
		in.log.Debug("typescript feature skipped, angular scaffolds are typescript already")
		return nil
	}

	if err := in.installPackages(ctx, "typescript", "typescript", "@types/node"); err != nil {
		return err
	}

	tsconfig := map[string]any{
		"compilerOptions": map[string]any{
			"target":           "ES2020",
			"module":           "ESNext",
			"moduleResolution": "node",
			"strict":           true,
			"jsx":              "preserve",
			"esModuleInterop":  true,
			"skipLibCheck":     true,
			"baseUrl":          ".",
			"paths": map[string]any{
				"@/*": []string{"src/*"},
			},
			"lib": []string{"ES2020", "DOM", "DOM.Iterable"},
		},
		"include": []string{"src/**/*.ts", "src/**/*.tsx", "src/**/*.vue"},
		"exclude": []string{"node_modules"},
	}
	return in.writeJSON("tsconfig.json", tsconfig)
}
