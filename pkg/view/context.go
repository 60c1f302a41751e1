// Package view provides the rendering context presenters are created with.
// A Context bundles the formatter registry, the route builder, the template
// renderer and the ambient variables of one render pass.
package view

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/format"
	"github.com/goliatone/go-presenter/pkg/render/template"
	"github.com/goliatone/go-presenter/pkg/route"
)

// SanitizeHTML is the formatter that strips unsafe markup from a value.
const SanitizeHTML = "sanitize_html"

// ErrNoRenderer is returned by Render when the context has no templates.
var ErrNoRenderer = errors.New("view: no template renderer configured")

// Option configures a Context.
type Option func(*Context)

// WithFormatters sets the formatter registry.
func WithFormatters(formatters *format.Registry) Option {
	return func(c *Context) {
		if formatters != nil {
			c.formatters = formatters
		}
	}
}

// WithRoutes sets the route builder.
func WithRoutes(routes *route.Builder) Option {
	return func(c *Context) {
		if routes != nil {
			c.routes = routes
		}
	}
}

// WithTemplates sets the template renderer used by Render.
func WithTemplates(renderer template.TemplateRenderer) Option {
	return func(c *Context) {
		c.renderer = renderer
	}
}

// WithTheme remaps template names through a theme selection.
func WithTheme(selection *theme.Selection) Option {
	return func(c *Context) {
		c.theme = selection
	}
}

// WithPlaceholder sets the text substituted for blank attributes.
func WithPlaceholder(placeholder string) Option {
	return func(c *Context) {
		c.placeholder = placeholder
	}
}

// WithVars seeds ambient variables.
func WithVars(vars map[string]any) Option {
	return func(c *Context) {
		maps.Copy(c.vars, vars)
	}
}

// WithLogger attaches a logger. Each context logs with its id.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSanitizer replaces the policy behind the sanitize_html formatter.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(c *Context) {
		if policy != nil {
			c.sanitizer = policy
		}
	}
}

// Context is the decorator.Context of a single render pass. It is not safe
// for concurrent use.
type Context struct {
	id          string
	formatters  *format.Registry
	routes      *route.Builder
	renderer    template.TemplateRenderer
	theme       *theme.Selection
	placeholder string
	vars        map[string]any
	logger      *slog.Logger
	sanitizer   *bluemonday.Policy
}

var _ decorator.Context = (*Context)(nil)

// New creates a context with a fresh id.
func New(options ...Option) *Context {
	c := &Context{
		id:          uuid.NewString(),
		placeholder: decorator.DefaultPlaceholder,
		vars:        make(map[string]any),
		logger:      slog.New(slog.DiscardHandler),
		sanitizer:   bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.formatters == nil {
		c.formatters = format.NewRegistry()
	}
	if c.routes == nil {
		c.routes = route.NewBuilder("")
	}
	c.logger = c.logger.With("view_id", c.id)
	return c
}

// ID identifies the render pass.
func (c *Context) ID() string {
	return c.id
}

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Formatters returns the formatter registry.
func (c *Context) Formatters() *format.Registry {
	return c.formatters
}

// Invoke runs the formatter identified by id. SanitizeHTML is served by the
// context's own policy and never reaches the registry.
func (c *Context) Invoke(id string, value any) (string, error) {
	if id == SanitizeHTML {
		if value == nil {
			return "", nil
		}
		return c.sanitizer.Sanitize(fmt.Sprint(value)), nil
	}
	return c.formatters.Invoke(id, value)
}

// BuildPath builds a path from literal segments and domain values.
func (c *Context) BuildPath(parts ...any) (string, error) {
	return c.routes.Build(parts...)
}

// Var returns an ambient variable.
func (c *Context) Var(name string) (any, bool) {
	value, ok := c.vars[name]
	return value, ok
}

// SetVar sets an ambient variable.
func (c *Context) SetVar(name string, value any) {
	c.vars[name] = value
}

// Placeholder returns the blank-attribute placeholder.
func (c *Context) Placeholder() string {
	return c.placeholder
}

// Render renders the named template. Ambient variables are visible to the
// template unless a local of the same name shadows them.
func (c *Context) Render(name string, locals map[string]any) (string, error) {
	if c.renderer == nil {
		return "", ErrNoRenderer
	}

	resolved := c.TemplateName(name)
	data := make(map[string]any, len(c.vars)+len(locals))
	maps.Copy(data, c.vars)
	maps.Copy(data, locals)

	out, err := c.renderer.Render(resolved, data)
	if err != nil {
		return "", fmt.Errorf("view: render %q: %w", name, err)
	}
	return out, nil
}

// TemplateName applies the theme remap to name. Variant templates take
// precedence over the manifest's.
func (c *Context) TemplateName(name string) string {
	if c.theme == nil || c.theme.Manifest == nil {
		return name
	}
	manifest := c.theme.Manifest
	if variant, ok := manifest.Variants[c.theme.Variant]; ok {
		if mapped, ok := variant.Templates[name]; ok && mapped != "" {
			c.logger.Debug("template remapped", "template", name, "to", mapped, "variant", c.theme.Variant)
			return mapped
		}
	}
	if mapped, ok := manifest.Templates[name]; ok && mapped != "" {
		c.logger.Debug("template remapped", "template", name, "to", mapped, "theme", c.theme.Theme)
		return mapped
	}
	return name
}
