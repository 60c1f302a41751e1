package decorator_test

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/format"
	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/render/template/pongo"
	"github.com/goliatone/go-presenter/pkg/render/templates"
	"github.com/goliatone/go-presenter/pkg/schema"
	"github.com/goliatone/go-presenter/pkg/view"
)

func dummyTable() *schema.Table {
	return schema.NewTable("dummy_records",
		"foo", "bar", "baz", "qux", "id", "created_at", "updated_at", "something_id",
	).
		Validate("foo", schema.Presence()).
		Validate("bar", schema.Numericality(schema.AllowNil)).
		Validate("baz", schema.Numericality(schema.AllowBlank))
}

func newContext(t *testing.T, options ...view.Option) *view.Context {
	t.Helper()

	engine, err := pongo.New(pongo.WithFS(templates.FS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	base := []view.Option{
		view.WithFormatters(format.NewRegistry(format.WithLocale(language.German))),
		view.WithTemplates(engine),
	}
	return view.New(append(base, options...)...)
}

// projectGraph returns a project with id 2 owning contract 5.
func projectGraph() (project, contract *record.Record) {
	project = record.New("Project", map[string]any{
		"id":      2,
		"name":    "Apollo",
		"budget":  "1234",
		"manager": "project_manager",
	})
	contract = record.New("Contract", map[string]any{
		"id":      5,
		"title":   "Design",
		"amount":  345.6789,
		"project": project,
	})
	project.Set("contracts", record.NewCollection(contract))
	return project, contract
}

func mustPresenter(t *testing.T, value any) *decorator.Presenter {
	t.Helper()

	p, ok := value.(*decorator.Presenter)
	if !ok {
		t.Fatalf("expected *decorator.Presenter, got %T", value)
	}
	return p
}

type countingObserver struct {
	resolved    map[string]int
	passthrough map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{resolved: map[string]int{}, passthrough: map[string]int{}}
}

func (o *countingObserver) Resolved(subject, _ string) { o.resolved[subject]++ }
func (o *countingObserver) Passthrough(subject string) { o.passthrough[subject]++ }

func viewPlaceholder(placeholder string) view.Option {
	return view.WithPlaceholder(placeholder)
}
