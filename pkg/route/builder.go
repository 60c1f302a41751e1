// Package route builds resource paths from literal segments and domain
// values. A domain value contributes its plural route key and, when it has
// one, its id: a project with id 2 becomes "projects/2".
package route

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-presenter/internal/naming"
	"github.com/goliatone/go-presenter/pkg/decorator"
)

// ErrNilSegment is returned when a path part is nil.
var ErrNilSegment = errors.New("route: nil segment")

// Routable overrides the collection key used for a value.
type Routable interface {
	RouteKey() string
}

// Identifier overrides how a value's id is read.
type Identifier interface {
	RouteID() (any, error)
}

// Builder joins parts into paths under a prefix.
type Builder struct {
	prefix string
}

// NewBuilder returns a builder rooted at prefix ("/" when empty).
func NewBuilder(prefix string) *Builder {
	prefix = "/" + strings.Trim(prefix, "/")
	return &Builder{prefix: prefix}
}

// Prefix returns the path prefix.
func (b *Builder) Prefix() string {
	return b.prefix
}

// Build turns parts into a path. Strings are literal components and
// presenters are unwrapped to their targets.
func (b *Builder) Build(parts ...any) (string, error) {
	segments := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		segs, err := segmentsOf(part)
		if err != nil {
			return "", fmt.Errorf("route: part %d: %w", i, err)
		}
		segments = append(segments, segs...)
	}

	path := strings.Join(segments, "/")
	if b.prefix == "/" {
		return "/" + path, nil
	}
	if path == "" {
		return b.prefix, nil
	}
	return b.prefix + "/" + path, nil
}

func segmentsOf(part any) ([]string, error) {
	switch v := part.(type) {
	case nil:
		return nil, ErrNilSegment
	case string:
		v = strings.Trim(v, "/")
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case *decorator.Presenter:
		if v == nil || v.Target() == nil {
			return nil, ErrNilSegment
		}
		return segmentsOf(v.Target())
	}

	rv := reflect.ValueOf(part)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, ErrNilSegment
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{fmt.Sprint(part)}, nil
	}

	key := routeKey(part)
	if key == "" {
		return nil, fmt.Errorf("cannot derive a route key for %T", part)
	}
	id, err := routeID(part)
	if err != nil {
		return nil, err
	}
	if decorator.IsBlank(id) || isZero(id) {
		return []string{key}, nil
	}
	return []string{key, fmt.Sprint(id)}, nil
}

func routeKey(v any) string {
	if r, ok := v.(Routable); ok {
		return r.RouteKey()
	}
	name := decorator.TypeNameOf(v)
	if name == "" {
		return ""
	}
	return naming.Pluralize(naming.Underscore(name))
}

func routeID(v any) (any, error) {
	if r, ok := v.(Identifier); ok {
		return r.RouteID()
	}
	obj, ok := v.(decorator.Object)
	if !ok {
		return nil, nil
	}
	id, err := obj.Attribute("id")
	if errors.Is(err, decorator.ErrUnknownAttribute) {
		return nil, nil
	}
	return id, err
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.IsZero()
	default:
		return false
	}
}
