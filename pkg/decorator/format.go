package decorator

import "github.com/goliatone/go-presenter/internal/naming"

// Format routes each attribute through the context formatter identified by
// formatter. Attributes sharing a formatter share one module named after it.
func (d *Definition) Format(formatter string, attrs ...string) *Definition {
	if formatter == "" {
		return d
	}
	mod := d.module(naming.Camelize(formatter))
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		mod.define(attr, formatMethod(formatter))
	}
	return d
}

func formatMethod(formatter string) Method {
	return func(p *Presenter, super Super) (any, error) {
		value, err := super()
		if err != nil {
			return nil, err
		}
		if p.ctx == nil {
			return nil, ErrNoContext
		}
		return p.ctx.Invoke(formatter, value)
	}
}
