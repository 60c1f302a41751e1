// Package record provides map-backed domain objects for callers that do not
// bring their own types. Records satisfy the decorator capability interfaces
// so they can be presented, located and blank-substituted like any model.
package record

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/schema"
)

// Entity is the shared surface of Record and Model.
type Entity interface {
	decorator.Object
	decorator.TypeNamer
	decorator.Lineage
	Set(name string, value any) *Record
}

// Record is a named bag of attributes.
type Record struct {
	typeName  string
	ancestors []string
	attrs     map[string]any
}

var (
	_ Entity = (*Record)(nil)
	_ Entity = (*Model)(nil)
)

// New creates a record of typeName holding a copy of attrs.
func New(typeName string, attrs map[string]any) *Record {
	r := &Record{typeName: typeName, attrs: make(map[string]any, len(attrs))}
	maps.Copy(r.attrs, attrs)
	return r
}

// WithAncestors records the type names the record also answers to, nearest
// first.
func (r *Record) WithAncestors(names ...string) *Record {
	r.ancestors = append(r.ancestors, names...)
	return r
}

// TypeName returns the record's own type name.
func (r *Record) TypeName() string {
	return r.typeName
}

// TypeNames returns the type name followed by its ancestors.
func (r *Record) TypeNames() []string {
	return append([]string{r.typeName}, r.ancestors...)
}

// Attribute returns the named attribute. Missing names wrap
// decorator.ErrUnknownAttribute.
func (r *Record) Attribute(name string) (any, error) {
	value, ok := r.attrs[name]
	if !ok {
		return nil, fmt.Errorf("record: %s.%s: %w", r.typeName, name, decorator.ErrUnknownAttribute)
	}
	return value, nil
}

// Set assigns an attribute or association.
func (r *Record) Set(name string, value any) *Record {
	r.attrs[name] = value
	return r
}

// Attributes returns a copy of the attribute map.
func (r *Record) Attributes() map[string]any {
	return maps.Clone(r.attrs)
}

// Names returns the attribute names in sorted order.
func (r *Record) Names() []string {
	return slices.Sorted(maps.Keys(r.attrs))
}

// String renders the record for debugging.
func (r *Record) String() string {
	if id, ok := r.attrs["id"]; ok {
		return fmt.Sprintf("%s#%v", r.typeName, id)
	}
	return r.typeName
}

// Model is a record backed by table metadata. Columns that were never set
// read as nil instead of failing.
type Model struct {
	*Record
	table *schema.Table
}

// NewModel creates a model of typeName described by table.
func NewModel(typeName string, table *schema.Table, attrs map[string]any) *Model {
	if table == nil {
		table = schema.NewTable(typeName)
	}
	return &Model{Record: New(typeName, attrs), table: table}
}

// Table returns the model's metadata.
func (m *Model) Table() *schema.Table {
	return m.table
}

// Attribute returns the named attribute, nil for unset columns.
func (m *Model) Attribute(name string) (any, error) {
	if value, ok := m.attrs[name]; ok {
		return value, nil
	}
	if m.table.HasColumn(name) {
		return nil, nil
	}
	return m.Record.Attribute(name)
}

// AttributeNames returns the table columns.
func (m *Model) AttributeNames() []string {
	return m.table.AttributeNames()
}

// ValidationRules returns the table rules for attr.
func (m *Model) ValidationRules(attr string) []decorator.Rule {
	return m.table.ValidationRules(attr)
}
