package features

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/logging"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// fakeInvoker records calls and fails any command whose argv starts
// with a configured prefix.
type fakeInvoker struct {
	calls    [][]string
	failures map[string]string // argv prefix -> stderr
}

func newFakeInvoker() *fakeInvoker {
	return &fakeInvoker{failures: make(map[string]string)}
}

func (f *fakeInvoker) failOn(prefix, stderr string) {
	f.failures[prefix] = stderr
}

func (f *fakeInvoker) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (f *fakeInvoker) Run(_ context.Context, argv []string, _ invoker.Opts) (invoker.Result, error) {
	f.calls = append(f.calls, argv)
	joined := strings.Join(argv, " ")
	for prefix, stderr := range f.failures {
		if strings.HasPrefix(joined, prefix) {
			return invoker.Result{Stderr: stderr, ExitCode: 1},
				&invoker.CommandError{Argv: argv, ExitCode: 1, Stderr: stderr}
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

func newTestInstaller(t *testing.T, fw project.Framework) (*Installer, *fakeInvoker, string) {
	t.Helper()
	dir := t.TempDir()
	fake := newFakeInvoker()
	cfg := project.New("demo", filepath.Dir(dir), fw)
	return NewInstaller(fake, logging.Discard(), dir, cfg), fake, dir
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return doc
}

func TestInstallArgs(t *testing.T) {
	pkgs := []string{"eslint", "eslint-config-prettier"}
	tests := []struct {
		pm   project.PackageManager
		want []string
	}{
		{project.Npm, []string{"npm", "install", "--save-dev", "eslint", "eslint-config-prettier"}},
		{project.Yarn, []string{"yarn", "add", "--dev", "eslint", "eslint-config-prettier"}},
		{project.Pnpm, []string{"pnpm", "add", "--save-dev", "eslint", "eslint-config-prettier"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pm), func(t *testing.T) {
			if got := installArgs(tt.pm, pkgs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("installArgs(%s) = %v, want %v", tt.pm, got, tt.want)
			}
		})
	}
}

func TestInstallTypeScript_Vue(t *testing.T) {
	in, fake, dir := newTestInstaller(t, project.Vue)

	if err := in.InstallTypeScript(context.Background()); err != nil {
		t.Fatalf("InstallTypeScript() error: %v", err)
	}
	if !fake.calledWith("npm install --save-dev typescript @types/node") {
		t.Errorf("typescript packages not installed, calls: %v", fake.calls)
	}

	doc := readJSON(t, filepath.Join(dir, "tsconfig.json"))
	opts, ok := doc["compilerOptions"].(map[string]any)
	if !ok {
		t.Fatalf("tsconfig missing compilerOptions: %v", doc)
	}
	if opts["strict"] != true {
		t.Error("tsconfig should enable strict mode")
	}
}

func TestInstallTypeScript_AngularNoop(t *testing.T) {
	in, fake, dir := newTestInstaller(t, project.Angular)

	if err := in.InstallTypeScript(context.Background()); err != nil {
		t.Fatalf("InstallTypeScript() error: %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("angular typescript feature should run nothing, got %v", fake.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "tsconfig.json")); !os.IsNotExist(err) {
		t.Error("angular typescript feature should not write tsconfig.json")
	}
}

func TestInstallPrettier_Defaults(t *testing.T) {
	in, _, dir := newTestInstaller(t, project.Vue)

	if err := in.InstallPrettier(context.Background(), nil); err != nil {
		t.Fatalf("InstallPrettier() error: %v", err)
	}

	doc := readJSON(t, filepath.Join(dir, ".prettierrc"))
	if doc["singleQuote"] != true {
		t.Errorf(".prettierrc defaults wrong: %v", doc)
	}
	if doc["printWidth"] != float64(80) {
		t.Errorf("printWidth = %v, want 80", doc["printWidth"])
	}
}

func TestInstallPrettier_CustomSettings(t *testing.T) {
	in, _, dir := newTestInstaller(t, project.Vue)

	settings := json.RawMessage(`{"tabWidth": 4, "semi": false}`)
	if err := in.InstallPrettier(context.Background(), settings); err != nil {
		t.Fatalf("InstallPrettier() error: %v", err)
	}

	doc := readJSON(t, filepath.Join(dir, ".prettierrc"))
	if doc["tabWidth"] != float64(4) || doc["semi"] != false {
		t.Errorf(".prettierrc = %v, want custom settings", doc)
	}
	if _, present := doc["printWidth"]; present {
		t.Error("custom settings should replace defaults, not merge with them")
	}
}

func TestInstallStylelint(t *testing.T) {
	in, fake, dir := newTestInstaller(t, project.Angular)

	if err := in.InstallStylelint(context.Background()); err != nil {
		t.Fatalf("InstallStylelint() error: %v", err)
	}
	if !fake.calledWith("npm install --save-dev stylelint stylelint-config-standard") {
		t.Errorf("stylelint packages not installed, calls: %v", fake.calls)
	}

	doc := readJSON(t, filepath.Join(dir, ".stylelintrc.json"))
	if doc["extends"] != "stylelint-config-standard" {
		t.Errorf("extends = %v", doc["extends"])
	}
	rules := doc["rules"].(map[string]any)
	if rules["number-leading-zero"] != "always" {
		t.Errorf("rules = %v", rules)
	}
}

func TestInstallJest_VueWritesConfig(t *testing.T) {
	in, fake, dir := newTestInstaller(t, project.Vue)

	if err := in.InstallJest(context.Background()); err != nil {
		t.Fatalf("InstallJest() error: %v", err)
	}
	if !fake.calledWith("npm install --save-dev jest") {
		t.Errorf("jest packages not installed, calls: %v", fake.calls)
	}

	data, err := os.ReadFile(filepath.Join(dir, "jest.config.js"))
	if err != nil {
		t.Fatalf("reading jest.config.js: %v", err)
	}
	if !strings.HasPrefix(string(data), "module.exports = ") {
		t.Errorf("jest.config.js should be a CommonJS export, got:\n%s", data)
	}
	if !strings.Contains(string(data), "jsdom") {
		t.Errorf("jest.config.js missing jsdom environment:\n%s", data)
	}
}

func TestInstallJest_AngularNoop(t *testing.T) {
	in, fake, _ := newTestInstaller(t, project.Angular)

	if err := in.InstallJest(context.Background()); err != nil {
		t.Fatalf("InstallJest() error: %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("angular jest feature should run nothing, got %v", fake.calls)
	}
}

func TestWriteEnvFile(t *testing.T) {
	in, _, dir := newTestInstaller(t, project.Vue)

	if err := in.WriteEnvFile("VITE_API_URL=http://localhost:3000\nVITE_DEBUG=1"); err != nil {
		t.Fatalf("WriteEnvFile() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("reading .env: %v", err)
	}
	want := "VITE_API_URL=http://localhost:3000\nVITE_DEBUG=1\n"
	if string(data) != want {
		t.Errorf(".env = %q, want %q", data, want)
	}
}

func TestInstallPackages_FailureIsInstallFailed(t *testing.T) {
	in, fake, _ := newTestInstaller(t, project.Vue)
	fake.failOn("npm install --save-dev prettier", "ERESOLVE unable to resolve dependency tree")

	err := in.InstallPrettier(context.Background(), nil)
	if err == nil {
		t.Fatal("InstallPrettier() expected install failure")
	}
	if !project.IsKind(err, project.KindInstallFailed) {
		t.Errorf("error kind = %q, want install_failed", project.KindOf(err))
	}
	if !strings.Contains(err.Error(), "ERESOLVE") {
		t.Errorf("error should surface stderr, got %q", err.Error())
	}
}
