package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := &Config{
		Placeholder: "----",
		Locale:      "en",
		Number:      NumberConfig{Precision: 2, Unit: "$"},
		Templates:   TemplatesConfig{Extension: ".tpl"},
		Log:         LogConfig{Level: "info", Format: "text"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presenter.yaml")
	data := strings.Join([]string{
		"locale: de",
		"number:",
		"  unit: \"€\"",
		"routes:",
		"  prefix: /admin",
		"theme:",
		"  name: acme",
		"  variant: dark",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PRESENTER_NUMBER_PRECISION", "3")
	t.Setenv("PRESENTER_LOG_FORMAT", "json")
	t.Setenv("PRESENTER_PLACEHOLDER", "n/a")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Tag() != language.German {
		t.Fatalf("want German locale, got %v", cfg.Tag())
	}
	if cfg.Number.Unit != "€" || cfg.Number.Precision != 3 {
		t.Fatalf("unexpected number config %+v", cfg.Number)
	}
	if cfg.Routes.Prefix != "/admin" || cfg.Theme.Name != "acme" || cfg.Theme.Variant != "dark" {
		t.Fatalf("unexpected file values %+v %+v", cfg.Routes, cfg.Theme)
	}
	if cfg.Log.Format != "json" || cfg.Placeholder != "n/a" {
		t.Fatalf("env overrides not applied: %+v placeholder=%q", cfg.Log, cfg.Placeholder)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PRESENTER_LOG_LEVEL", "chatty")

	_, err := Load("")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "Config.Log.Level") {
		t.Fatalf("expected failing field in error, got %v", err)
	}
}

func TestValidate_VariantRequiresTheme(t *testing.T) {
	cfg := Default()
	cfg.Theme.Variant = "dark"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for variant without theme")
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"PLACEHOLDER":         "placeholder",
		"NUMBER_UNIT":         "number.unit",
		"TEMPLATES_EXTENSION": "templates.extension",
		"THEME_NAME":          "theme.name",
	}
	for input, want := range cases {
		if got := envKey(input); got != want {
			t.Fatalf("envKey(%q): want %q, got %q", input, want, got)
		}
	}
}
