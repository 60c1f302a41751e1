package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-presenter/pkg/decorator"
)

// definitionFile is the YAML shape of presenter declarations.
type definitionFile struct {
	Presenters map[string]declaration `yaml:"presenters"`
}

type declaration struct {
	Associate   []string            `yaml:"associate"`
	Format      map[string][]string `yaml:"format"`
	Blank       []string            `yaml:"blank"`
	Location    []string            `yaml:"location"`
	Placeholder string              `yaml:"placeholder"`
	Schema      bool                `yaml:"schema"`
	OpenAPI     string              `yaml:"openapi"`
	Table       string              `yaml:"table"`
	Attrs       []string            `yaml:"attrs"`
}

type definitions struct {
	subjects []string
	decls    map[string]declaration
}

func loadDefinitions(path string) (*definitions, error) {
	if path == "" {
		return nil, errors.New("presenters file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presenters %q: %w", path, err)
	}
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode presenters %q: %w", path, err)
	}

	defs := &definitions{decls: file.Presenters}
	for subject := range file.Presenters {
		defs.subjects = append(defs.subjects, subject)
	}
	sort.Strings(defs.subjects)
	return defs, nil
}

// register declares every presenter on reg. Blank attribute metadata comes
// from the first of openapi, table and schema that is set.
func (d *definitions) register(ctx context.Context, reg *decorator.Registry, schemas *schemaSources) error {
	for _, subject := range d.subjects {
		decl := d.decls[subject]
		def := decorator.NewDefinition(subject)
		if err := reg.Register(def); err != nil {
			return err
		}

		if decl.Placeholder != "" {
			def.WithPlaceholder(decl.Placeholder)
		}
		table, err := schemas.lookup(ctx, subject, decl)
		if err != nil {
			return fmt.Errorf("presenter %s: %w", subject, err)
		}
		if table != nil {
			def.WithSchema(table)
		}
		if len(decl.Blank) > 0 {
			def.Blank(decl.Blank...)
		}
		if len(decl.Associate) > 0 {
			def.Associate(decl.Associate...)
		}

		formatters := make([]string, 0, len(decl.Format))
		for formatter := range decl.Format {
			formatters = append(formatters, formatter)
		}
		sort.Strings(formatters)
		for _, formatter := range formatters {
			def.Format(formatter, decl.Format[formatter]...)
		}

		if len(decl.Location) > 0 {
			def.Location(decl.Location...)
		}
	}
	return nil
}

// attrs returns the attributes to list for subject.
func (d *definitions) attrs(subject string) []string {
	if d == nil {
		return nil
	}
	return d.decls[subject].Attrs
}
