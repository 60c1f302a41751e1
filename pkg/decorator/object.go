package decorator

import (
	"reflect"
)

// Object is the capability set presenters forward to. Attribute returns the
// named attribute or association of the value.
type Object interface {
	Attribute(name string) (any, error)
}

// TypeNamer lets a value report the type name used for presenter resolution
// instead of its reflected Go type name.
type TypeNamer interface {
	TypeName() string
}

// Lineage reports every type name a value answers to, its own name first and
// then its ancestors.
type Lineage interface {
	TypeNames() []string
}

// Rescoper is implemented by lazily evaluated collections. Associations call
// Rescope before presenting so each access re-queries instead of reusing an
// already materialised result.
type Rescoper interface {
	Rescope() (any, error)
}

// Collection is implemented by collection values that are not Go slices.
type Collection interface {
	Elements() ([]any, error)
}

// Schema exposes the persisted attribute names of a value's type.
type Schema interface {
	AttributeNames() []string
}

// Validations exposes the validation rules declared for an attribute.
type Validations interface {
	ValidationRules(attribute string) []Rule
}

// Rule summarises one validation rule for blank-attribute purposes.
type Rule struct {
	Kind       string
	AllowNil   bool
	AllowBlank bool
}

// ForbidsBlank reports whether the rule rejects both nil and blank values.
func (r Rule) ForbidsBlank() bool {
	return !r.AllowNil && !r.AllowBlank
}

// Context is the rendering collaborator shared by every presenter created
// during one render pass.
type Context interface {
	// Invoke runs the named formatter over value.
	Invoke(formatter string, value any) (string, error)
	// BuildPath turns literal segments and domain values into a path.
	BuildPath(parts ...any) (string, error)
	// Var returns an ambient variable set on the context.
	Var(name string) (any, bool)
	// Render renders a named template with the supplied locals.
	Render(name string, locals map[string]any) (string, error)
	// Placeholder is the text substituted for blank attributes.
	Placeholder() string
}

// TypeNameOf returns the name used to resolve a presenter for v. A nil
// pointer reports its reflected type name without calling TypeName.
func TypeNameOf(v any) string {
	if v == nil {
		return ""
	}
	if namer, ok := v.(TypeNamer); ok && !isNil(v) {
		return namer.TypeName()
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func typeNamesOf(v any) []string {
	if lineage, ok := v.(Lineage); ok && !isNil(v) {
		if names := lineage.TypeNames(); len(names) > 0 {
			return names
		}
	}
	if name := TypeNameOf(v); name != "" {
		return []string{name}
	}
	return nil
}

// elementsOf reports whether v is a collection and returns its elements.
// Strings and byte slices are scalars.
func elementsOf(v any) ([]any, bool, error) {
	if isNil(v) {
		return nil, false, nil
	}
	switch c := v.(type) {
	case nil, string, []byte:
		return nil, false, nil
	case []any:
		return c, true, nil
	case Collection:
		items, err := c.Elements()
		if err != nil {
			return nil, true, err
		}
		return items, true, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}, true, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

// isNil reports whether v is nil or a nil pointer or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
