package view_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"

	"github.com/goliatone/go-presenter/pkg/format"
	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/render/template/pongo"
	"github.com/goliatone/go-presenter/pkg/render/templates"
	"github.com/goliatone/go-presenter/pkg/route"
	"github.com/goliatone/go-presenter/pkg/view"
)

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()
	overrides := fstest.MapFS{
		"themes/acme/link_to.tpl":      {Data: []byte(`<a class="acme" href="{{ path }}">{{ text }}</a>`)},
		"themes/acme/dark/link_to.tpl": {Data: []byte(`<a class="acme-dark" href="{{ path }}">{{ text }}</a>`)},
		"greeting.tpl":                 {Data: []byte(`{{ greeting }} {{ name }}`)},
	}
	engine, err := pongo.New(pongo.WithFS(overrides), pongo.WithFS(templates.FS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestContext_Defaults(t *testing.T) {
	ctx := view.New()

	if ctx.Placeholder() != "----" {
		t.Fatalf("want default placeholder, got %q", ctx.Placeholder())
	}
	if ctx.ID() == "" || ctx.ID() == view.New().ID() {
		t.Fatalf("expected unique context ids")
	}
	if _, err := ctx.Render("shared/link_to", nil); !errors.Is(err, view.ErrNoRenderer) {
		t.Fatalf("expected ErrNoRenderer, got %v", err)
	}
}

func TestContext_Invoke(t *testing.T) {
	ctx := view.New(view.WithFormatters(format.NewRegistry(format.WithLocale(language.German))))

	got, err := ctx.Invoke("number_to_currency", 345.6789)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got != "$345,68" {
		t.Fatalf("want $345,68, got %q", got)
	}
}

func TestContext_SanitizeHTML(t *testing.T) {
	ctx := view.New()

	got, err := ctx.Invoke(view.SanitizeHTML, `<b>bold</b><script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got != "<b>bold</b>" {
		t.Fatalf("want sanitized markup, got %q", got)
	}

	shared := format.NewRegistry()
	ugc := view.New(view.WithFormatters(shared))
	strict := view.New(view.WithFormatters(shared), view.WithSanitizer(bluemonday.StrictPolicy()))
	if shared.Has(view.SanitizeHTML) {
		t.Fatalf("contexts should not register sanitize_html on a shared registry")
	}

	if got, _ := ugc.Invoke(view.SanitizeHTML, "<b>bold</b>"); got != "<b>bold</b>" {
		t.Fatalf("want UGC policy to keep <b>, got %q", got)
	}
	if got, _ := strict.Invoke(view.SanitizeHTML, "<b>bold</b>"); got != "bold" {
		t.Fatalf("want strict policy to strip tags, got %q", got)
	}
	if got, _ := strict.Invoke(view.SanitizeHTML, nil); got != "" {
		t.Fatalf("want empty string for nil, got %q", got)
	}
}

func TestContext_BuildPath(t *testing.T) {
	ctx := view.New(view.WithRoutes(route.NewBuilder("/admin")))
	project := record.New("Project", map[string]any{"id": 2})

	got, err := ctx.BuildPath(project, "user")
	if err != nil {
		t.Fatalf("build path: %v", err)
	}
	if got != "/admin/projects/2/user" {
		t.Fatalf("want /admin/projects/2/user, got %q", got)
	}
}

func TestContext_RenderWithVars(t *testing.T) {
	ctx := view.New(
		view.WithTemplates(newEngine(t)),
		view.WithVars(map[string]any{"greeting": "Hello", "name": "nobody"}),
	)
	ctx.SetVar("greeting", "Hi")

	got, err := ctx.Render("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("want %q, got %q", "Hi Ada", got)
	}
	if v, ok := ctx.Var("greeting"); !ok || v != "Hi" {
		t.Fatalf("unexpected var %v", v)
	}
}

func TestContext_ThemeRemap(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Templates: map[string]string{
			"shared/link_to": "themes/acme/link_to",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Templates: map[string]string{
					"shared/link_to": "themes/acme/dark/link_to",
				},
			},
		},
	}
	locals := map[string]any{"text": "Apollo", "path": "/projects/2"}

	cases := []struct {
		variant string
		want    string
	}{
		{variant: "", want: `class="acme"`},
		{variant: "dark", want: `class="acme-dark"`},
	}
	for _, tc := range cases {
		ctx := view.New(
			view.WithTemplates(newEngine(t)),
			view.WithTheme(&theme.Selection{Theme: "acme", Variant: tc.variant, Manifest: manifest}),
		)
		got, err := ctx.Render("shared/link_to", locals)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if !strings.Contains(got, tc.want) {
			t.Fatalf("variant %q: want %s in %q", tc.variant, tc.want, got)
		}
	}

	plain := view.New(view.WithTemplates(newEngine(t)))
	got, err := plain.Render("shared/link_to", locals)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `<a href="/projects/2">Apollo</a>` {
		t.Fatalf("unexpected default partial %q", got)
	}
}
