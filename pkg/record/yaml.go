package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/schema"
)

// Fixtures is a set of records loaded from YAML, keyed by fixture key.
type Fixtures struct {
	keys    []string
	records map[string]Entity
	tables  map[string]*schema.Table
}

// Get returns the record stored under key.
func (f *Fixtures) Get(key string) (Entity, bool) {
	r, ok := f.records[key]
	return r, ok
}

// Keys returns fixture keys in document order.
func (f *Fixtures) Keys() []string {
	return slices.Clone(f.keys)
}

// Table returns the table declared for typeName.
func (f *Fixtures) Table(typeName string) (*schema.Table, bool) {
	t, ok := f.tables[typeName]
	return t, ok
}

// Types returns the declared type names, sorted.
func (f *Fixtures) Types() []string {
	names := make([]string, 0, len(f.tables))
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type fixtureDocument struct {
	Types   map[string]fixtureType `yaml:"types"`
	Records []fixtureRecord        `yaml:"records"`
}

type fixtureType struct {
	Ancestors   []string                 `yaml:"ancestors"`
	Columns     []string                 `yaml:"columns"`
	Validations map[string][]fixtureRule `yaml:"validations"`
}

type fixtureRule struct {
	Kind       string `yaml:"kind"`
	AllowNil   bool   `yaml:"allow_nil"`
	AllowBlank bool   `yaml:"allow_blank"`
}

type fixtureRecord struct {
	Key          string               `yaml:"key"`
	Type         string               `yaml:"type"`
	Attributes   map[string]any       `yaml:"attributes"`
	Associations map[string]yaml.Node `yaml:"associations"`
}

// LoadYAMLFile reads fixtures from path.
func LoadYAMLFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: read fixtures %q: %w", path, err)
	}
	return ParseYAML(data)
}

// LoadYAML reads fixtures from r.
func LoadYAML(r io.Reader) (*Fixtures, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("record: read fixtures: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a fixture document. Types that declare columns produce
// models, other types produce plain records. Associations reference other
// fixtures by key: a scalar is a single record, a sequence a collection.
func ParseYAML(data []byte) (*Fixtures, error) {
	var doc fixtureDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("record: decode fixtures: %w", err)
	}

	fixtures := &Fixtures{
		records: make(map[string]Entity, len(doc.Records)),
		tables:  make(map[string]*schema.Table, len(doc.Types)),
	}
	for name, def := range doc.Types {
		if len(def.Columns) == 0 {
			continue
		}
		table := schema.NewTable(name, def.Columns...)
		for attr, rules := range def.Validations {
			for _, rule := range rules {
				table.Validate(attr, ruleFromFixture(rule))
			}
		}
		fixtures.tables[name] = table
	}

	for i, raw := range doc.Records {
		if raw.Key == "" {
			return nil, fmt.Errorf("record: fixture %d: key is required", i)
		}
		if raw.Type == "" {
			return nil, fmt.Errorf("record: fixture %q: type is required", raw.Key)
		}
		if _, dup := fixtures.records[raw.Key]; dup {
			return nil, fmt.Errorf("record: fixture %q: duplicate key", raw.Key)
		}

		var entity Entity
		if table, ok := fixtures.tables[raw.Type]; ok {
			m := NewModel(raw.Type, table, raw.Attributes)
			m.WithAncestors(doc.Types[raw.Type].Ancestors...)
			entity = m
		} else {
			entity = New(raw.Type, raw.Attributes).WithAncestors(doc.Types[raw.Type].Ancestors...)
		}
		fixtures.records[raw.Key] = entity
		fixtures.keys = append(fixtures.keys, raw.Key)
	}

	for _, raw := range doc.Records {
		owner := fixtures.records[raw.Key]
		names := make([]string, 0, len(raw.Associations))
		for name := range raw.Associations {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			node := raw.Associations[name]
			value, err := fixtures.resolveReference(&node)
			if err != nil {
				return nil, fmt.Errorf("record: fixture %q association %q: %w", raw.Key, name, err)
			}
			owner.Set(name, value)
		}
	}

	return fixtures, nil
}

func (f *Fixtures) resolveReference(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return f.lookup(node.Value)
	case yaml.SequenceNode:
		var keys []string
		if err := node.Decode(&keys); err != nil {
			return nil, err
		}
		items := make([]any, 0, len(keys))
		for _, key := range keys {
			item, err := f.lookup(key)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return NewCollection(items...), nil
	default:
		return nil, fmt.Errorf("unsupported reference at line %d", node.Line)
	}
}

func (f *Fixtures) lookup(key string) (Entity, error) {
	entity, ok := f.records[key]
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q", key)
	}
	return entity, nil
}

func ruleFromFixture(rule fixtureRule) decorator.Rule {
	var opts []schema.RuleOption
	if rule.AllowNil {
		opts = append(opts, schema.AllowNil)
	}
	if rule.AllowBlank {
		opts = append(opts, schema.AllowBlank)
	}
	return schema.NewRule(rule.Kind, opts...)
}
