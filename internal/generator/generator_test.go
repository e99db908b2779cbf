package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/logging"
	"github.com/frontgen-dev/frontgen/internal/metadata"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// fakeInvoker scripts command outcomes by argv prefix. Effects simulate
// what a real tool would leave on disk.
type fakeInvoker struct {
	calls   [][]string
	stdout  map[string]string
	fails   map[string]string
	effects map[string]func() error
	missing map[string]bool
}

func newFakeInvoker() *fakeInvoker {
	return &fakeInvoker{
		stdout:  map[string]string{},
		fails:   map[string]string{},
		effects: map[string]func() error{},
		missing: map[string]bool{},
	}
}

func (f *fakeInvoker) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeInvoker) Run(_ context.Context, argv []string, _ invoker.Opts) (invoker.Result, error) {
	f.calls = append(f.calls, argv)
	joined := strings.Join(argv, " ")
	for prefix, stderr := range f.fails {
		if strings.HasPrefix(joined, prefix) {
			return invoker.Result{Stderr: stderr, ExitCode: 1},
				&invoker.CommandError{Argv: argv, ExitCode: 1, Stderr: stderr}
		}
	}
	for prefix, fn := range f.effects {
		if strings.HasPrefix(joined, prefix) {
			if err := fn(); err != nil {
				return invoker.Result{}, err
			}
		}
	}
	for prefix, out := range f.stdout {
		if strings.HasPrefix(joined, prefix) {
			return invoker.Result{Stdout: out}, nil
		}
	}
	return invoker.Result{}, nil
}

func (f *fakeInvoker) calledWith(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(strings.Join(call, " "), prefix) {
			return true
		}
	}
	return false
}

func healthyVueToolchain(f *fakeInvoker) {
	f.stdout["node --version"] = "v20.11.1\n"
	f.stdout["npm --version"] = "10.9.0\n"
	f.stdout["vue --version"] = "@vue/cli 5.0.8\n"
}

func healthyAngularToolchain(f *fakeInvoker) {
	f.stdout["node --version"] = "v20.11.1\n"
	f.stdout["npm --version"] = "10.9.0\n"
	f.stdout["pnpm --version"] = "9.1.0\n"
	f.stdout["ng --version"] = "Angular CLI: 17.3.8\n"
}

// scaffoldEffect mimics a framework CLI populating the project tree.
func scaffoldEffect(dir string) func() error {
	return func() error {
		if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
			return err
		}
		manifest := []byte("{\n  \"name\": \"demo-app\",\n  \"version\": \"0.0.0\"\n}\n")
		return os.WriteFile(filepath.Join(dir, "package.json"), manifest, 0o644)
	}
}

func TestGenerate_VueProject(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("demo-app", parent, project.Vue)
	cfg.TypeScript = &project.TypeScriptOptions{}
	cfg.ESLint = &project.ESLintOptions{}
	projectDir := filepath.Join(parent, "demo-app")

	fake := newFakeInvoker()
	healthyVueToolchain(fake)
	fake.effects["vue create demo-app"] = scaffoldEffect(projectDir)

	gen := For(cfg, fake, logging.Discard(), WithVersion("1.0.0"))
	if err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !fake.calledWith("vue create demo-app --default --force --packageManager=npm") {
		t.Errorf("vue create argv wrong, calls: %v", fake.calls)
	}
	if _, err := os.Stat(filepath.Join(projectDir, "package.json")); err != nil {
		t.Error("manifest missing from generated tree")
	}
	if _, err := os.Stat(filepath.Join(projectDir, "tsconfig.json")); err != nil {
		t.Error("typescript config missing")
	}

	var lint struct {
		ParserOptions struct {
			SourceType string `json:"sourceType"`
		} `json:"parserOptions"`
	}
	data, err := os.ReadFile(filepath.Join(projectDir, ".eslintrc.json"))
	if err != nil {
		t.Fatalf("eslint config missing: %v", err)
	}
	if err := json.Unmarshal(data, &lint); err != nil {
		t.Fatal(err)
	}
	if lint.ParserOptions.SourceType != "module" {
		t.Errorf("parserOptions.sourceType = %q, want module", lint.ParserOptions.SourceType)
	}

	if _, err := os.Stat(filepath.Join(projectDir, "tailwind.config.js")); !os.IsNotExist(err) {
		t.Error("tailwind config should not exist when the feature is off")
	}
	if _, err := os.Stat(filepath.Join(projectDir, "postcss.config.js")); !os.IsNotExist(err) {
		t.Error("postcss config should not exist when the feature is off")
	}

	rec, err := metadata.Read(projectDir)
	if err != nil {
		t.Fatalf("metadata sidecar missing: %v", err)
	}
	if rec.Framework != project.Vue {
		t.Errorf("metadata framework = %q, want vue", rec.Framework)
	}
	if rec.ScaffolderVersion != "1.0.0" {
		t.Errorf("metadata version = %q, want 1.0.0", rec.ScaffolderVersion)
	}

	if !fake.calledWith("git init") {
		t.Error("git init not run")
	}
	if _, err := os.Stat(filepath.Join(projectDir, ".gitignore")); err != nil {
		t.Error(".gitignore not written")
	}
}

func TestGenerate_ResetClearsExistingDirectory(t *testing.T) {
	parent := t.TempDir()
	projectDir := filepath.Join(parent, "demo-app")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(projectDir, "stale.txt")
	if err := os.WriteFile(stale, []byte("old run"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := project.New("demo-app", parent, project.Vue)
	cfg.Git = false
	fake := newFakeInvoker()
	healthyVueToolchain(fake)
	fake.effects["vue create"] = scaffoldEffect(projectDir)

	if err := For(cfg, fake, logging.Discard()).Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("old content merged into the new tree")
	}
	if _, err := os.Stat(filepath.Join(projectDir, "src")); err != nil {
		t.Error("new tree missing after reset")
	}
}

func TestGenerate_BaseScaffoldFailureAborts(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("demo-app", parent, project.Vue)
	cfg.ESLint = &project.ESLintOptions{}

	fake := newFakeInvoker()
	healthyVueToolchain(fake)
	fake.fails["vue create"] = "ERR! preset not found"

	err := For(cfg, fake, logging.Discard()).Generate(context.Background())
	if !project.IsKind(err, project.KindCommandFailed) {
		t.Fatalf("expected command-failed error, got %v", err)
	}
	if !strings.Contains(err.Error(), "preset not found") {
		t.Errorf("stderr detail lost: %v", err)
	}
	if fake.calledWith("npm install --save-dev") {
		t.Error("feature installs must not run after scaffold failure")
	}
	if _, err := os.Stat(filepath.Join(parent, "demo-app", ".scaffold.json")); !os.IsNotExist(err) {
		t.Error("metadata must not be written for a failed run")
	}
}

func TestGenerate_FeatureFailureAbortsRun(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("demo-app", parent, project.Vue)
	cfg.TypeScript = &project.TypeScriptOptions{}
	projectDir := filepath.Join(parent, "demo-app")

	fake := newFakeInvoker()
	healthyVueToolchain(fake)
	fake.effects["vue create"] = scaffoldEffect(projectDir)
	fake.fails["npm install --save-dev typescript"] = "npm ERR! ERESOLVE unable to resolve dependency tree"

	err := For(cfg, fake, logging.Discard()).Generate(context.Background())
	if !project.IsKind(err, project.KindInstallFailed) {
		t.Fatalf("expected install-failed error, got %v", err)
	}
	if fake.calledWith("git init") {
		t.Error("version control must not run after a feature failure")
	}
	if _, err := os.Stat(filepath.Join(projectDir, ".scaffold.json")); !os.IsNotExist(err) {
		t.Error("metadata must not be written after a feature failure")
	}
}

func TestGenerate_MissingSourceTreeIsError(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("demo-app", parent, project.Vue)

	fake := newFakeInvoker()
	healthyVueToolchain(fake)
	// vue create succeeds but leaves nothing behind

	err := For(cfg, fake, logging.Discard()).Generate(context.Background())
	if !project.IsKind(err, project.KindInstallFailed) {
		t.Fatalf("expected verification error, got %v", err)
	}
	if !strings.Contains(err.Error(), "src") {
		t.Errorf("error should name the missing subtree: %v", err)
	}
}

func TestGenerate_GitFailureIsBestEffort(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("demo-app", parent, project.Vue)
	projectDir := filepath.Join(parent, "demo-app")

	fake := newFakeInvoker()
	healthyVueToolchain(fake)
	fake.effects["vue create"] = scaffoldEffect(projectDir)
	fake.fails["git init"] = "fatal: unable to write new index file"

	if err := For(cfg, fake, logging.Discard()).Generate(context.Background()); err != nil {
		t.Fatalf("git failure must not abort the run: %v", err)
	}
	if _, err := metadata.Read(projectDir); err != nil {
		t.Errorf("metadata should still be written: %v", err)
	}
}

func TestGenerate_AngularCommand(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("admin-portal", parent, project.Angular)
	cfg.PackageManager = project.Pnpm
	cfg.Standalone = true
	cfg.Git = false
	cfg.EnvFile = "API_URL=https://api.example.test\nFEATURE_FLAG=1"
	projectDir := filepath.Join(parent, "admin-portal")

	fake := newFakeInvoker()
	healthyAngularToolchain(fake)
	fake.effects["ng new admin-portal"] = scaffoldEffect(projectDir)

	if err := For(cfg, fake, logging.Discard()).Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var ngCall []string
	for _, call := range fake.calls {
		if len(call) > 1 && call[0] == "ng" && call[1] == "new" {
			ngCall = call
		}
	}
	want := []string{
		"ng", "new", "admin-portal",
		"--directory", "admin-portal",
		"--skip-git",
		"--style=css",
		"--routing=true",
		"--ssr=false",
		"--standalone",
		"--skip-tests=true",
		"--package-manager=pnpm",
	}
	if !reflect.DeepEqual(ngCall, want) {
		t.Errorf("ng new argv = %v, want %v", ngCall, want)
	}

	data, err := os.ReadFile(filepath.Join(projectDir, ".env"))
	if err != nil {
		t.Fatalf(".env not written: %v", err)
	}
	if string(data) != "API_URL=https://api.example.test\nFEATURE_FLAG=1\n" {
		t.Errorf(".env content wrong:\n%s", data)
	}
}

func TestGenerate_AngularTestsEnabled(t *testing.T) {
	parent := t.TempDir()
	cfg := project.New("admin-portal", parent, project.Angular)
	cfg.Git = false
	cfg.Tests = &project.TestOptions{}
	projectDir := filepath.Join(parent, "admin-portal")

	fake := newFakeInvoker()
	healthyAngularToolchain(fake)
	fake.effects["ng new admin-portal"] = scaffoldEffect(projectDir)

	if err := For(cfg, fake, logging.Discard()).Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !fake.calledWith("ng new admin-portal") {
		t.Fatal("ng new not run")
	}
	for _, call := range fake.calls {
		joined := strings.Join(call, " ")
		if strings.HasPrefix(joined, "ng new") && !strings.Contains(joined, "--skip-tests=false") {
			t.Errorf("enabled tests should pass --skip-tests=false: %s", joined)
		}
	}
	// angular keeps its own runner; jest must not be installed
	if fake.calledWith("npm install --save-dev jest") {
		t.Error("jest must not be installed for angular")
	}
}

func TestGenerate_UnknownFramework(t *testing.T) {
	cfg := project.Config{
		ProjectName: "x",
		ProjectPath: t.TempDir(),
		Framework:   project.Framework("svelte"),
	}
	err := For(cfg, newFakeInvoker(), logging.Discard()).Generate(context.Background())
	if !project.IsKind(err, project.KindInvalidConfig) {
		t.Fatalf("expected invalid-config error, got %v", err)
	}
}
