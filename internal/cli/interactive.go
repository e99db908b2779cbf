package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frontgen-dev/frontgen/internal/project"
)

// runInteractive walks the user through framework, name, and feature
// selection using numbered menus and yes/no prompts on r/w, and returns
// the resulting configuration record. Invalid input aborts rather than
// re-prompting.
func runInteractive(r io.Reader, w io.Writer) (project.Config, error) {
	reader := bufio.NewReader(r)

	// Step 1: framework.
	names := make([]string, len(project.Frameworks))
	for i, f := range project.Frameworks {
		names[i] = string(f)
	}
	fwIdx, err := selectFromList(reader, w, "Select framework:", names)
	if err != nil {
		return project.Config{}, err
	}
	fw := project.Frameworks[fwIdx]

	// Step 2: name and location.
	fmt.Fprintf(w, "\nProject name: ")
	name, err := readLine(reader)
	if err != nil {
		return project.Config{}, fmt.Errorf("reading project name: %w", err)
	}
	if !project.ValidName(name) {
		return project.Config{}, project.InvalidConfig("project_name",
			"%q must be 1-50 characters of letters, digits, hyphen or underscore", name)
	}

	fmt.Fprintf(w, "Parent directory [.]: ")
	dir, err := readLine(reader)
	if err != nil {
		return project.Config{}, fmt.Errorf("reading parent directory: %w", err)
	}
	if dir == "" {
		dir = "."
	}

	cfg := project.New(name, dir, fw)

	// Step 3: package manager.
	pms := make([]string, len(project.PackageManagers))
	for i, pm := range project.PackageManagers {
		pms[i] = string(pm)
	}
	pmIdx, err := selectFromList(reader, w, "Select package manager:", pms)
	if err != nil {
		return project.Config{}, err
	}
	cfg.PackageManager = project.PackageManagers[pmIdx]

	// Step 4: optional features.
	if err := promptFeatures(reader, w, &cfg); err != nil {
		return project.Config{}, err
	}

	// Step 5: environment file contents.
	cfg.EnvFile = readEnvLines(reader, w)

	fmt.Fprintf(w, "\nGenerating %s\n", cfg.String())
	return cfg, nil
}

// promptFeatures fills the optional feature blocks of cfg from yes/no
// prompts in pipeline order. The Angular scaffold is TypeScript already,
// so that prompt only appears for Vue.
func promptFeatures(reader *bufio.Reader, w io.Writer, cfg *project.Config) error {
	if cfg.Framework == project.Vue {
		yes, err := promptYesNo(reader, w, "Add TypeScript?", false)
		if err != nil {
			return err
		}
		if yes {
			cfg.TypeScript = &project.TypeScriptOptions{}
		}
	}

	yes, err := promptYesNo(reader, w, "Add ESLint?", false)
	if err != nil {
		return err
	}
	if yes {
		fmt.Fprintf(w, "ESLint preset [%s]: ", project.DefaultESLintPreset)
		preset, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("reading eslint preset: %w", err)
		}
		cfg.ESLint = &project.ESLintOptions{Preset: preset}
	}

	yes, err = promptYesNo(reader, w, "Add Tailwind CSS?", false)
	if err != nil {
		return err
	}
	if yes {
		cfg.Tailwind = &project.TailwindOptions{}
	}

	yes, err = promptYesNo(reader, w, "Add Prettier?", false)
	if err != nil {
		return err
	}
	if yes {
		cfg.Prettier = &project.PrettierOptions{}
	}

	yes, err = promptYesNo(reader, w, "Add Stylelint?", false)
	if err != nil {
		return err
	}
	if yes {
		cfg.Stylelint = &project.StylelintOptions{}
	}

	yes, err = promptYesNo(reader, w, "Include test scaffolding?", true)
	if err != nil {
		return err
	}
	if yes {
		cfg.Tests = &project.TestOptions{}
	}

	if cfg.Framework == project.Angular {
		cfg.Routing, err = promptYesNo(reader, w, "Generate the routing module?", true)
		if err != nil {
			return err
		}
		cfg.Standalone, err = promptYesNo(reader, w, "Use standalone components?", false)
		if err != nil {
			return err
		}
	}

	cfg.Git, err = promptYesNo(reader, w, "Initialize a git repository?", true)
	return err
}

// readEnvLines collects pasted KEY=VALUE lines for the project's .env
// file. An empty line (or end of input) ends the block.
func readEnvLines(reader *bufio.Reader, w io.Writer) string {
	fmt.Fprintf(w, "\n.env contents (one KEY=VALUE per line, empty line to finish):\n")
	var b strings.Builder
	for {
		line, err := reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == "" {
			break
		}
		b.WriteString(text)
		b.WriteByte('\n')
		if err != nil {
			break
		}
	}
	return b.String()
}

// selectFromList presents a numbered list and returns the selected
// index. Empty input takes the first entry.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d] (default 1): ", len(items))

	choice, err := readLine(reader)
	if err != nil {
		return 0, fmt.Errorf("reading selection: %w", err)
	}
	if choice == "" {
		return 0, nil
	}
	num, err := strconv.Atoi(choice)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", choice, len(items))
	}
	return num - 1, nil
}

// promptYesNo asks a yes/no question; empty input takes the default.
func promptYesNo(reader *bufio.Reader, w io.Writer, prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(w, "%s [%s]: ", prompt, hint)
	line, err := readLine(reader)
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid answer %q: choose y or n", line)
}

// readLine reads one line and trims surrounding whitespace. Reaching
// end of input with text still on the line is not an error.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
