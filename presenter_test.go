package presenter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-presenter/pkg/config"
	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/record"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestNewContext_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Locale = "de"
	cfg.Routes.Prefix = "/admin"
	cfg.Placeholder = "n/a"

	ctx, err := NewContext(cfg)
	if err != nil {
		t.Fatalf("new context: %v", err)
	}

	reg := NewRegistry()
	reg.Define("Project").Format("number_to_currency", "budget").Blank("notes")
	project := record.New("Project", map[string]any{"id": 2, "name": "Apollo", "budget": 123.456, "notes": nil})

	value, err := reg.Present(project, ctx)
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	p := value.(*Presenter)

	if got, _ := p.Call("budget"); got != "$123,46" {
		t.Fatalf("want $123,46, got %v", got)
	}
	if got, _ := p.Call("notes"); got != "n/a" {
		t.Fatalf("want configured placeholder, got %v", got)
	}
	link, err := p.LinkToSelf()
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if link != `<a href="/admin/projects/2">Apollo</a>` {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestNewContext_TemplateDirOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shared"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := `<a class="custom" href="{{ path }}">{{ text }}</a>`
	if err := os.WriteFile(filepath.Join(dir, "shared", "link_to.tpl"), []byte(override), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := config.Default()
	cfg.Templates.Dir = dir
	ctx, err := NewContext(cfg)
	if err != nil {
		t.Fatalf("new context: %v", err)
	}

	got, err := ctx.Render(decorator.LinkToTemplate, map[string]any{"path": "/x", "text": "X"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, `class="custom"`) {
		t.Fatalf("expected override template, got %q", got)
	}
}

func TestNewContext_Theme(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Name = "acme"
	cfg.Theme.Variant = "dark"

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:      "acme",
			Version:   "1.0.0",
			Templates: map[string]string{decorator.LinkToTemplate: "shared/show_with_attrs"},
		},
	}}

	ctx, err := NewContext(cfg, WithThemeSelector(selector))
	if err != nil {
		t.Fatalf("new context: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != [2]string{"acme", "dark"} {
		t.Fatalf("unexpected selector calls %v", selector.calls)
	}
	if got := ctx.TemplateName(decorator.LinkToTemplate); got != "shared/show_with_attrs" {
		t.Fatalf("expected remapped template, got %q", got)
	}

	failing := &stubThemeSelector{err: errors.New("unknown theme")}
	if _, err := NewContext(cfg, WithThemeSelector(failing)); err == nil {
		t.Fatalf("expected theme selection error")
	}
}

func TestDefaultRegistry(t *testing.T) {
	Define("DefaultRegistryWidget")
	if !Default().Has("DefaultRegistryWidget") {
		t.Fatalf("expected definition on default registry")
	}

	widget := record.New("DefaultRegistryWidget", map[string]any{"name": "w"})
	value, err := Present(widget, nil)
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	if value.(*Presenter).Target() != widget {
		t.Fatalf("expected wrapped widget")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"shared/link_to.tpl", "shared/show_with_attrs.tpl"} {
		if _, err := EmbeddedTemplates().Open(name); err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
	}
}
