// Package schema supplies the attribute and validation metadata consumed by
// blank-attribute substitution. Tables can be declared in code, derived from
// an OpenAPI component schema, or read from a PostgreSQL catalog.
package schema

import (
	"github.com/goliatone/go-presenter/pkg/decorator"
)

// Rule kinds produced by the constructors and adapters in this package.
const (
	KindPresence     = "presence"
	KindNumericality = "numericality"
	KindNotNull      = "not_null"
)

// RuleOption relaxes a rule.
type RuleOption func(*decorator.Rule)

// AllowNil lets the rule accept nil values.
func AllowNil(rule *decorator.Rule) {
	rule.AllowNil = true
}

// AllowBlank lets the rule accept nil and blank values.
func AllowBlank(rule *decorator.Rule) {
	rule.AllowNil = true
	rule.AllowBlank = true
}

// NewRule builds a rule of the given kind.
func NewRule(kind string, options ...RuleOption) decorator.Rule {
	rule := decorator.Rule{Kind: kind}
	for _, opt := range options {
		if opt != nil {
			opt(&rule)
		}
	}
	return rule
}

// Presence requires a non-blank value.
func Presence(options ...RuleOption) decorator.Rule {
	return NewRule(KindPresence, options...)
}

// Numericality requires a numeric value.
func Numericality(options ...RuleOption) decorator.Rule {
	return NewRule(KindNumericality, options...)
}

// Table is the static metadata of one persisted type.
type Table struct {
	name    string
	columns []string
	rules   map[string][]decorator.Rule
}

var (
	_ decorator.Schema      = (*Table)(nil)
	_ decorator.Validations = (*Table)(nil)
)

// NewTable declares a table with columns in order.
func NewTable(name string, columns ...string) *Table {
	return &Table{
		name:    name,
		columns: append([]string(nil), columns...),
		rules:   make(map[string][]decorator.Rule),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Validate appends rules for attr.
func (t *Table) Validate(attr string, rules ...decorator.Rule) *Table {
	t.rules[attr] = append(t.rules[attr], rules...)
	return t
}

// AttributeNames returns the columns in declaration order.
func (t *Table) AttributeNames() []string {
	return append([]string(nil), t.columns...)
}

// ValidationRules returns the rules declared for attr.
func (t *Table) ValidationRules(attr string) []decorator.Rule {
	return append([]decorator.Rule(nil), t.rules[attr]...)
}

// HasColumn reports whether name is a column of the table.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.columns {
		if column == name {
			return true
		}
	}
	return false
}
