package project

import (
	"strings"
	"testing"
)

func TestParseFramework(t *testing.T) {
	tests := []struct {
		in      string
		want    Framework
		wantErr bool
	}{
		{"vue", Vue, false},
		{"Vue.js", Vue, false},
		{"VUEJS", Vue, false},
		{"angular", Angular, false},
		{" Angular ", Angular, false},
		{"react", "", true},
		{"svelte", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFramework(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFramework(%q) expected error, got %q", tt.in, got)
				}
				if !IsKind(err, KindInvalidConfig) {
					t.Errorf("ParseFramework(%q) error kind = %q, want %q", tt.in, KindOf(err), KindInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFramework(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFramework(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFramework_ReactMentionsUnsupported(t *testing.T) {
	_, err := ParseFramework("react")
	if err == nil {
		t.Fatal("expected error for react")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("react rejection should say it is unsupported, got %q", err.Error())
	}
}

func TestParsePackageManager(t *testing.T) {
	for _, pm := range []string{"npm", "yarn", "pnpm", "NPM"} {
		if _, err := ParsePackageManager(pm); err != nil {
			t.Errorf("ParsePackageManager(%q) error: %v", pm, err)
		}
	}
	if _, err := ParsePackageManager("bun"); err == nil {
		t.Error("ParsePackageManager(bun) expected error")
	}
}

func TestNewDefaults(t *testing.T) {
	cfg := New("demo-app", "/tmp", Vue)

	if cfg.PackageManager != Npm {
		t.Errorf("default package manager = %q, want npm", cfg.PackageManager)
	}
	if !cfg.Routing {
		t.Error("routing should default to on")
	}
	if cfg.Style != DefaultStyle {
		t.Errorf("style = %q, want %q", cfg.Style, DefaultStyle)
	}
	if !cfg.Git {
		t.Error("git should default to on")
	}
	if cfg.ESLint != nil || cfg.Tailwind != nil || cfg.Prettier != nil {
		t.Error("optional features should default to off")
	}
}

func TestESLintPreset(t *testing.T) {
	cfg := New("demo", "/tmp", Vue)
	if got := cfg.ESLintPreset(); got != DefaultESLintPreset {
		t.Errorf("ESLintPreset() = %q, want default %q", got, DefaultESLintPreset)
	}

	cfg.ESLint = &ESLintOptions{Preset: "airbnb"}
	if got := cfg.ESLintPreset(); got != "airbnb" {
		t.Errorf("ESLintPreset() = %q, want airbnb", got)
	}
}
