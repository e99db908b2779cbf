package features

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

const eslintConfigFile = ".eslintrc.json"

// eslintInitAnswers are the canned answers fed to `eslint --init` on
// Angular projects: check syntax and problems, JavaScript modules,
// none-of-the-listed framework, TypeScript yes, browser, JSON config,
// no immediate dependency install (we install explicitly).
const eslintInitAnswers = "2\n1\n3\ny\n1\n1\nn\n"

// InstallESLint installs the linter with the chosen shared preset,
// guarantees a base config exists, merges custom rules into it, and
// finishes with a best-effort fix pass.
func (in *Installer) InstallESLint(ctx context.Context, preset string, rules json.RawMessage) error {
	presetPackage := "eslint-config-" + preset
	if err := in.installPackages(ctx, "eslint", "eslint", presetPackage); err != nil {
		return err
	}

	if in.fw == project.Angular {
		// The Angular flow historically bootstraps through the linter's
		// own init. Its prompts change between releases, so treat it as
		// best-effort and fall through to writing the config directly.
		if _, err := in.inv.Run(ctx, []string{"npx", "eslint", "--init"}, invoker.Opts{
			Dir:     in.dir,
			Stdin:   eslintInitAnswers,
			Timeout: installTimeout,
		}); err != nil {
			in.log.Warn("eslint --init bootstrap failed, writing config directly", "err", err)
		}
	}

	if err := in.ensureBaseESLintConfig(presetPackage); err != nil {
		return err
	}
	if len(rules) > 0 {
		if err := MergeESLintRules(filepath.Join(in.dir, eslintConfigFile), rules); err != nil {
			return err
		}
		in.log.Info("merged custom lint rules", "count", countKeys(rules))
	}

	in.fixPass(ctx)
	return nil
}

// ensureBaseESLintConfig writes the stock lint config when none exists.
// An existing config (hand-written or generated by eslint --init) is
// left alone so the rules merge can overlay it.
func (in *Installer) ensureBaseESLintConfig(presetPackage string) error {
	path := filepath.Join(in.dir, eslintConfigFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	base := map[string]any{
		"env": map[string]any{
			"browser": true,
			"es2021":  true,
		},
		"extends": []string{presetPackage},
		"parserOptions": map[string]any{
			"ecmaVersion": 12,
			"sourceType":  "module",
		},
		"rules": map[string]any{},
	}
	return in.writeJSON(eslintConfigFile, base)
}

// MergeESLintRules overlays rule entries onto the rules key of an
// existing lint config, preserving every key outside rules.
func MergeESLintRules(path string, rules json.RawMessage) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "reading lint config", Err: err}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "parsing existing lint config " + path, Err: err}
	}
	var overlay map[string]any
	if err := json.Unmarshal(rules, &overlay); err != nil {
		return project.InvalidConfig("eslint.rules", "must be a JSON object: %v", err)
	}

	existing, _ := doc["rules"].(map[string]any)
	if existing == nil {
		existing = make(map[string]any)
	}
	for k, v := range overlay {
		existing[k] = v
	}
	doc["rules"] = existing

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "serializing lint config", Err: err}
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "writing lint config", Err: err}
	}
	return nil
}

// fixPass runs the linter's automatic fixer once over src. Failures are
// logged, never fatal.
func (in *Installer) fixPass(ctx context.Context) {
	if _, err := os.Stat(filepath.Join(in.dir, "src")); err != nil {
		return
	}
	if _, err := in.inv.Run(ctx, []string{"npx", "eslint", "--fix", "src"}, invoker.Opts{
		Dir:     in.dir,
		Timeout: installTimeout,
	}); err != nil {
		in.log.Warn("lint fix pass failed", "err", err)
		return
	}
	in.log.Debug("lint fix pass clean")
}

func countKeys(raw json.RawMessage) int {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return 0
	}
	return len(m)
}
