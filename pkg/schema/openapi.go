package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI derives a table from an object schema. Properties become
// columns in name order; required properties get a presence rule, relaxed to
// allow nil when the property is nullable.
func FromOpenAPI(name string, src *openapi3.Schema) *Table {
	table := NewTable(name)
	if src == nil {
		return table
	}

	names := make([]string, 0, len(src.Properties))
	for property := range src.Properties {
		names = append(names, property)
	}
	sort.Strings(names)
	table.columns = names

	required := make(map[string]struct{}, len(src.Required))
	for _, property := range src.Required {
		required[property] = struct{}{}
	}

	for _, property := range names {
		if _, ok := required[property]; !ok {
			continue
		}
		var options []RuleOption
		if ref := src.Properties[property]; ref != nil && ref.Value != nil && ref.Value.Nullable {
			options = append(options, AllowNil)
		}
		table.Validate(property, Presence(options...))
	}
	return table
}

// LoadOpenAPIComponent parses an OpenAPI document and derives a table from
// the component schema called component.
func LoadOpenAPIComponent(ctx context.Context, raw []byte, component string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("schema: openapi document has no components")
	}

	ref := doc.Components.Schemas[component]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: component %q not found", component)
	}
	return FromOpenAPI(component, ref.Value), nil
}

// FetchOpenAPIComponent reads the document at src through f and derives a
// table from component.
func FetchOpenAPIComponent(ctx context.Context, f *Fetcher, src Source, component string) (*Table, error) {
	raw, err := f.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("schema: fetch %s %q: %w", src.Kind, src.Location, err)
	}
	return LoadOpenAPIComponent(ctx, raw, component)
}
