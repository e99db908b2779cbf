package deps

import "github.com/frontgen-dev/frontgen/internal/project"

// Remediation command lines handed to users inside errors. They travel
// the error chain verbatim; call sites must not reword them.

func nodeManualInstall(setupURL string) string {
	return "sudo apt update && sudo apt install -y curl && curl -fsSL " +
		setupURL + " | sudo -E bash - && sudo apt install -y nodejs"
}

func packageManagerInstall(pm project.PackageManager, setupURL string) string {
	switch pm {
	case project.Yarn:
		return "npm install -g yarn"
	case project.Pnpm:
		return "npm install -g pnpm"
	default:
		// npm ships with node.
		return nodeManualInstall(setupURL)
	}
}
