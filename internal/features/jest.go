package features

import (
	"context"

	"github.com/frontgen-dev/frontgen/internal/project"
)

// InstallJest adds the Jest test framework to Vue projects. Angular
// handles tests at base-scaffold time (ng new owns the .spec.ts
// layout), so the feature is a no-op there.
func (in *Installer) InstallJest(ctx context.Context) error {
	if in.fw == project.Angular {
		in.log.Debug("jest feature skipped, angular tests are configured by ng new")
		return nil
	}

	pkgs := []string{"jest", "@vue/test-utils", "@vue/vue3-jest", "jest-environment-jsdom"}
	if err := in.installPackages(ctx, "jest", pkgs...); err != nil {
		return err
	}

	config := map[string]any{
		"testEnvironment":      "jsdom",
		"moduleFileExtensions": []string{"js", "json", "vue"},
		"transform": map[string]any{
			"^.+\\.vue$": "@vue/vue3-jest",
		},
		"testMatch": []string{"**/tests/**/*.spec.js", "**/__tests__/**/*.js"},
	}
	return in.writeModuleExports("jest.config.js", config)
}
