package record

import "github.com/goliatone/go-presenter/pkg/decorator"

// Collection is an ordered list of values. Collections built with Query are
// evaluated on every Elements call; a scope function, when present, is what
// Rescope hands back.
type Collection struct {
	items []any
	load  func() ([]any, error)
	scope func() (any, error)
}

var (
	_ decorator.Collection = (*Collection)(nil)
	_ decorator.Rescoper   = (*Collection)(nil)
)

// NewCollection returns a materialised collection.
func NewCollection(items ...any) *Collection {
	return &Collection{items: append([]any(nil), items...)}
}

// Query returns a lazily loaded collection.
func Query(load func() ([]any, error)) *Collection {
	return &Collection{load: load}
}

// WithScope returns a copy of c whose Rescope calls scope.
func (c *Collection) WithScope(scope func() (any, error)) *Collection {
	clone := *c
	clone.scope = scope
	return &clone
}

// Elements returns the collection's values, loading them when lazy.
func (c *Collection) Elements() ([]any, error) {
	if c.load != nil {
		return c.load()
	}
	return append([]any(nil), c.items...), nil
}

// Rescope returns a fresh evaluation of the collection.
func (c *Collection) Rescope() (any, error) {
	switch {
	case c.scope != nil:
		return c.scope()
	case c.load != nil:
		items, err := c.load()
		if err != nil {
			return nil, err
		}
		return NewCollection(items...), nil
	default:
		return c, nil
	}
}

// Len returns the number of materialised items.
func (c *Collection) Len() int {
	return len(c.items)
}
