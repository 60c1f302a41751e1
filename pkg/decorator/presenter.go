package decorator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-presenter/internal/naming"
)

const (
	getPrefix     = "get_"
	helperPrefix  = "h_"
	nameAttribute = "name"
)

// Presenter wraps one domain value for one render pass. It is not safe for
// concurrent use; memoized associations live as long as the presenter.
type Presenter struct {
	def    *Definition
	target any
	ctx    Context
	memo   map[string]any
}

// NewPresenter wraps target using def and ctx.
func NewPresenter(def *Definition, target any, ctx Context) *Presenter {
	def.discoverSchema(target)
	return &Presenter{
		def:    def,
		target: target,
		ctx:    ctx,
		memo:   make(map[string]any),
	}
}

// Definition returns the presenter's definition.
func (p *Presenter) Definition() *Definition {
	return p.def
}

// Target returns the wrapped value.
func (p *Presenter) Target() any {
	return p.target
}

// Context returns the rendering context shared by the render pass.
func (p *Presenter) Context() Context {
	return p.ctx
}

// Call resolves name through declared methods, then the get_/h_ accessor
// families, then the wrapped value.
func (p *Presenter) Call(name string) (any, error) {
	return p.run(p.def.chain(name), func() (any, error) {
		return p.fallback(name)
	})
}

// Attribute makes presenters usable wherever an Object is expected.
func (p *Presenter) Attribute(name string) (any, error) {
	return p.Call(name)
}

// Get returns the wrapped value when its lineage includes a type named after
// name, otherwise the context variable name, otherwise the wrapped value's
// attribute name.
func (p *Presenter) Get(name string) (any, error) {
	if p.isA(name) {
		return p.target, nil
	}
	if value := p.H(name); value != nil {
		return value, nil
	}
	return p.forward(name)
}

// H returns the context variable name, or nil.
func (p *Presenter) H(name string) any {
	if p.ctx == nil {
		return nil
	}
	value, ok := p.ctx.Var(name)
	if !ok {
		return nil
	}
	return value
}

// Present decorates value with the registry owning this presenter's
// definition, using the presenter's context.
func (p *Presenter) Present(value any, options ...PresentOption) (any, error) {
	return p.def.registry.Present(value, p.ctx, options...)
}

// Placeholder returns the text substituted for blank attributes.
func (p *Presenter) Placeholder() string {
	if p.def.placeholder != "" {
		return p.def.placeholder
	}
	if p.ctx != nil {
		if placeholder := p.ctx.Placeholder(); placeholder != "" {
			return placeholder
		}
	}
	return DefaultPlaceholder
}

// String prefers a declared "to_s" method, then the wrapped value's name
// attribute, then its own String method.
func (p *Presenter) String() string {
	value, err := p.run(p.def.chain(StringMethod), func() (any, error) {
		return p.defaultString(), nil
	})
	if err != nil || value == nil {
		return p.defaultString()
	}
	return fmt.Sprint(value)
}

func (p *Presenter) defaultString() string {
	if name, err := p.Call(nameAttribute); err == nil && !IsBlank(name) {
		return fmt.Sprint(name)
	}
	if stringer, ok := p.target.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%s(%s)", p.def.Name(), TypeNameOf(p.target))
}

func (p *Presenter) run(chain []Method, terminal Super) (any, error) {
	if len(chain) == 0 {
		return terminal()
	}
	return chain[0](p, func() (any, error) {
		return p.run(chain[1:], terminal)
	})
}

func (p *Presenter) fallback(name string) (any, error) {
	switch {
	case strings.HasPrefix(name, helperPrefix) && len(name) > len(helperPrefix):
		return p.H(strings.TrimPrefix(name, helperPrefix)), nil
	case strings.HasPrefix(name, getPrefix) && len(name) > len(getPrefix):
		return p.Get(strings.TrimPrefix(name, getPrefix))
	}
	return p.forward(name)
}

func (p *Presenter) forward(name string) (any, error) {
	obj, ok := p.target.(Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no attribute %q", ErrUnknownAttribute, TypeNameOf(p.target), name)
	}
	return obj.Attribute(name)
}

func (p *Presenter) isA(name string) bool {
	camel := naming.Camelize(name)
	for _, typeName := range typeNamesOf(p.target) {
		if typeName == camel || naming.Underscore(typeName) == name {
			return true
		}
	}
	return false
}
