package decorator

// Associate declares associations that are fetched from the wrapped value,
// presented, and memoized on first access.
func (d *Definition) Associate(names ...string) *Definition {
	return d.AssociateWith(nil, names...)
}

// AssociateWith is Associate with a transform applied to the fetched value
// before it is presented.
func (d *Definition) AssociateWith(transform Transform, names ...string) *Definition {
	mod := d.module(d.Name() + "Associations")
	for _, name := range names {
		if name == "" {
			continue
		}
		mod.define(name, associationMethod(name, transform))
	}
	return d
}

func associationMethod(name string, transform Transform) Method {
	return func(p *Presenter, super Super) (any, error) {
		if cached, ok := p.memo[name]; ok {
			return cached, nil
		}

		value, err := super()
		if err != nil {
			return nil, err
		}
		if scope, ok := value.(Rescoper); ok {
			if value, err = scope.Rescope(); err != nil {
				return nil, err
			}
		}
		if transform != nil {
			if value, err = transform(value); err != nil {
				return nil, err
			}
		}

		presented, err := p.Present(value)
		if err != nil {
			return nil, err
		}
		p.memo[name] = presented
		return presented, nil
	}
}
