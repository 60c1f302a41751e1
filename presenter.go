// Package presenter is the top-level entry point for go-presenter. It
// re-exports the decorator types and wires a rendering context from
// configuration so applications can start with a handful of calls:
//
//	cfg, _ := config.Load("presenter.yaml")
//	ctx, _ := presenter.NewContext(cfg)
//	presenter.Define("Project").Format("number_to_currency", "budget")
//	p, _ := presenter.Present(project, ctx)
package presenter

import (
	"fmt"
	"log/slog"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-presenter/pkg/config"
	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/format"
	"github.com/goliatone/go-presenter/pkg/render/template/pongo"
	"github.com/goliatone/go-presenter/pkg/route"
	"github.com/goliatone/go-presenter/pkg/view"
)

// Registry aliases decorator.Registry.
type Registry = decorator.Registry

// Definition aliases decorator.Definition.
type Definition = decorator.Definition

// Presenter aliases decorator.Presenter.
type Presenter = decorator.Presenter

// Context aliases decorator.Context.
type Context = decorator.Context

// Object aliases decorator.Object.
type Object = decorator.Object

// PresentOption aliases decorator.PresentOption.
type PresentOption = decorator.PresentOption

var (
	defaultOnce     sync.Once
	defaultRegistry *decorator.Registry
)

// Default returns the process-wide registry used by Define and Present.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = decorator.NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry exposes the registry constructor from the top-level module.
func NewRegistry(options ...decorator.RegistryOption) *Registry {
	return decorator.NewRegistry(options...)
}

// Define declares a presenter for subject on the default registry.
func Define(subject string) *Definition {
	return Default().Define(subject)
}

// Present decorates value with the default registry.
func Present(value any, ctx Context, options ...PresentOption) (any, error) {
	return Default().Present(value, ctx, options...)
}

// ContextOption customises NewContext.
type ContextOption func(*contextConfig)

type contextConfig struct {
	selector theme.ThemeSelector
	logger   *slog.Logger
	views    []view.Option
}

// WithThemeSelector resolves the configured theme and variant through
// selector.
func WithThemeSelector(selector theme.ThemeSelector) ContextOption {
	return func(cfg *contextConfig) {
		cfg.selector = selector
	}
}

// WithLogger sets the logger handed to the formatter registry and context.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(cfg *contextConfig) {
		cfg.logger = logger
	}
}

// WithViewOptions appends raw view options, applied after the configured
// ones.
func WithViewOptions(options ...view.Option) ContextOption {
	return func(cfg *contextConfig) {
		cfg.views = append(cfg.views, options...)
	}
}

// NewContext builds a rendering context from cfg: locale-aware formatters,
// the route prefix, templates from disk layered over the embedded partials,
// and the selected theme.
func NewContext(cfg *config.Config, options ...ContextOption) (*view.Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cc := contextConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cc)
		}
	}

	engine, err := NewTemplateEngine(cfg)
	if err != nil {
		return nil, err
	}

	viewOptions := []view.Option{
		view.WithFormatters(format.NewRegistry(
			format.WithLocale(cfg.Tag()),
			format.WithPrecision(cfg.Number.Precision),
			format.WithUnit(cfg.Number.Unit),
			format.WithLogger(cc.logger),
		)),
		view.WithRoutes(route.NewBuilder(cfg.Routes.Prefix)),
		view.WithTemplates(engine),
		view.WithPlaceholder(cfg.Placeholder),
		view.WithLogger(cc.logger),
	}

	if cc.selector != nil && cfg.Theme.Name != "" {
		selection, err := cc.selector.Select(cfg.Theme.Name, cfg.Theme.Variant)
		if err != nil {
			return nil, fmt.Errorf("presenter: select theme %q: %w", cfg.Theme.Name, err)
		}
		viewOptions = append(viewOptions, view.WithTheme(selection))
	}

	return view.New(append(viewOptions, cc.views...)...), nil
}

// NewTemplateEngine builds the pongo2 engine described by cfg.
func NewTemplateEngine(cfg *config.Config) (*pongo.Engine, error) {
	options := []pongo.Option{
		pongo.WithExtension(cfg.Templates.Extension),
		pongo.WithFS(EmbeddedTemplates()),
	}
	if cfg.Templates.Dir != "" {
		options = append(options, pongo.WithBaseDir(cfg.Templates.Dir))
	}
	engine, err := pongo.New(options...)
	if err != nil {
		return nil, fmt.Errorf("presenter: template engine: %w", err)
	}
	return engine, nil
}
