package pongo_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-presenter/pkg/render/template/pongo"
	"github.com/goliatone/go-presenter/pkg/render/templates"
	"github.com/goliatone/go-presenter/pkg/testsupport"
)

func newEngine(t *testing.T, options ...pongo.Option) *pongo.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tpl": {Data: []byte("{{ name|shout }}")},
		"blank.tpl":      {Data: []byte("[{{ value|blank_or:\"----\" }}]")},
	}
	options = append([]pongo.Option{pongo.WithFS(files)}, options...)
	engine, err := pongo.New(options...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_Render(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.Render("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada" {
		t.Fatalf("want %q, got %q", "Hello Ada", result)
	}
	if written != result {
		t.Fatalf("writer mismatch: want %q, got %q", result, written)
	}
}

func TestEngine_RenderStruct(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("Hi {{ Name }}", struct{ Name string }{Name: "Grace"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Hi Grace" {
		t.Fatalf("want %q, got %q", "Hi Grace", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobals(map[string]any{"unused": true}))
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("want %q, got %q", "env=staging", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}
	if err := engine.RegisterFilter("shout", shout); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", shout); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.Render("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("want %q, got %q", "ADA!", got)
	}
}

func TestEngine_BlankOrFilter(t *testing.T) {
	engine := newEngine(t)

	cases := map[string]any{
		"[----]": nil,
		"[x]":    "x",
	}
	for want, value := range cases {
		got, err := engine.Render("blank", map[string]any{"value": value})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != want {
			t.Fatalf("want %q, got %q", want, got)
		}
	}
}

func TestEngine_EmbeddedPartials(t *testing.T) {
	engine, err := pongo.New(pongo.WithFS(templates.FS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if !engine.Has("shared/link_to") || engine.Has("shared/missing") {
		t.Fatalf("unexpected Has results")
	}

	got, err := engine.Render("shared/link_to", map[string]any{"text": "Apollo", "path": "/projects/2"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "link_to.golden"))
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shared"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shared", "link_to.tpl"), []byte("<{{ path }}>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	engine, err := pongo.New(pongo.WithBaseDir(dir), pongo.WithFS(templates.FS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.Render("shared/link_to", map[string]any{"path": "/x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "</x>" {
		t.Fatalf("expected override template, got %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
}
