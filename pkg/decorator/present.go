package decorator

import "fmt"

// PresentOption customises a single Present call.
type PresentOption func(*presentConfig)

type presentConfig struct {
	definition *Definition
	typeName   string
}

// WithDefinition bypasses resolution and wraps values with def.
func WithDefinition(def *Definition) PresentOption {
	return func(cfg *presentConfig) {
		cfg.definition = def
	}
}

// As resolves the presenter by an explicit type name instead of the value's
// own type ("line_item" or "LineItem").
func As(typeName string) PresentOption {
	return func(cfg *presentConfig) {
		cfg.typeName = typeName
	}
}

// Present wraps value in its presenter. Values without a registered
// presenter are returned unchanged, as are nil and nil pointers. Collections (slices, arrays, Collection
// implementations) are never wrapped themselves: the result is a []any with
// each element presented independently, in order.
func (r *Registry) Present(value any, ctx Context, options ...PresentOption) (any, error) {
	cfg := presentConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	items, isCollection, err := elementsOf(value)
	if err != nil {
		return nil, fmt.Errorf("decorator: collection elements: %w", err)
	}
	if !isCollection {
		return r.presentOne(value, ctx, cfg), nil
	}

	out := make([]any, len(items))
	for i, item := range items {
		out[i] = r.presentOne(item, ctx, cfg)
	}
	return out, nil
}

// Each presents every element of collection and yields it to fn, stopping at
// the first error. A non-collection value is yielded once.
func (r *Registry) Each(collection any, ctx Context, fn func(item any) error, options ...PresentOption) error {
	presented, err := r.Present(collection, ctx, options...)
	if err != nil {
		return err
	}
	items, ok := presented.([]any)
	if !ok {
		return fn(presented)
	}
	for _, item := range items {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) presentOne(value any, ctx Context, cfg presentConfig) any {
	if isNil(value) {
		return value
	}

	def := cfg.definition
	if _, presented := value.(*Presenter); presented && def == nil {
		return value
	}
	if def == nil {
		var ok bool
		if cfg.typeName != "" {
			def, ok = r.ResolveName(cfg.typeName)
		} else {
			def, ok = r.Resolve(value)
		}
		if !ok {
			return value
		}
	}
	return NewPresenter(def, value, ctx)
}
