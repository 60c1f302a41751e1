package decorator

import (
	"reflect"
	"strings"
)

var reservedAttributes = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
}

// Blank substitutes the placeholder for the given attributes whenever their
// value is blank.
func (d *Definition) Blank(attrs ...string) *Definition {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defineBlankLocked(attrs)
	return d
}

// WithSchema computes the blank-substitutable attributes from schema right
// away. Without it the schema of the first wrapped value is used.
func (d *Definition) WithSchema(schema Schema) *Definition {
	if schema == nil {
		return d
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.schemaFixed = true
	d.defineBlankLocked(BlankCandidates(schema))
	return d
}

// BlankCandidates returns the attributes of schema that may legitimately be
// blank: everything except id, timestamps, foreign keys, and attributes whose
// validation rules reject both nil and blank values.
func BlankCandidates(schema Schema) []string {
	validations, _ := schema.(Validations)

	var out []string
	for _, name := range schema.AttributeNames() {
		if _, reserved := reservedAttributes[name]; reserved {
			continue
		}
		if strings.HasSuffix(name, "_id") {
			continue
		}
		if validations != nil && forbidsBlank(validations.ValidationRules(name)) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// IsBlank reports whether v is nil, a nil pointer, a whitespace-only string,
// or an empty collection. A Collection whose elements cannot be loaded is
// not blank.
func IsBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case []byte:
		return len(value) == 0
	}
	if isNil(v) {
		return true
	}
	if collection, ok := v.(Collection); ok {
		items, err := collection.Elements()
		return err == nil && len(items) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return IsBlank(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	default:
		return false
	}
}

// discoverSchema builds the blank attribute module from the first wrapped
// value that exposes a Schema. Values without one leave discovery pending.
func (d *Definition) discoverSchema(target any) {
	schema, ok := target.(Schema)
	if !ok || isNil(target) {
		return
	}

	d.mu.RLock()
	done := d.schemaFixed || d.schemaDiscovered
	d.mu.RUnlock()
	if done {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.schemaFixed || d.schemaDiscovered {
		return
	}
	d.schemaDiscovered = true
	d.defineBlankLocked(BlankCandidates(schema))
}

func (d *Definition) defineBlankLocked(attrs []string) {
	if d.blank == nil {
		d.blank = newModule(BlankAttributesModule)
	}
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		d.blank.define(attr, blankMethod)
	}
}

func blankMethod(p *Presenter, super Super) (any, error) {
	value, err := super()
	if err != nil {
		return nil, err
	}
	if IsBlank(value) {
		return p.Placeholder(), nil
	}
	return value, nil
}

func forbidsBlank(rules []Rule) bool {
	for _, rule := range rules {
		if rule.ForbidsBlank() {
			return true
		}
	}
	return false
}
