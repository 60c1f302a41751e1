package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/schema"
)

const schemaFetchTimeout = 10 * time.Second

// schemaSources resolves the blank attribute metadata of a declaration.
type schemaSources struct {
	fixtures *record.Fixtures
	fetcher  *schema.Fetcher
	baseDir  string
	db       schema.Querier
}

func newSchemaSources(fixtures *record.Fixtures, baseDir string, db schema.Querier) *schemaSources {
	return &schemaSources{
		fixtures: fixtures,
		fetcher: schema.NewFetcher(
			schema.WithHTTPClient(http.DefaultClient),
			schema.WithTimeout(schemaFetchTimeout),
		),
		baseDir: baseDir,
		db:      db,
	}
}

// lookup returns nil when the declaration names no metadata.
func (s *schemaSources) lookup(ctx context.Context, subject string, decl declaration) (*schema.Table, error) {
	switch {
	case decl.OpenAPI != "":
		location, component, ok := strings.Cut(decl.OpenAPI, "#")
		if !ok || location == "" || component == "" {
			return nil, fmt.Errorf("openapi %q: want <document>#<component>", decl.OpenAPI)
		}
		return schema.FetchOpenAPIComponent(ctx, s.fetcher, s.source(location), component)
	case decl.Table != "":
		if s.db == nil {
			return nil, fmt.Errorf("table %q needs --database-url", decl.Table)
		}
		schemaName, table, ok := strings.Cut(decl.Table, ".")
		if !ok {
			schemaName, table = "", decl.Table
		}
		return schema.LoadPostgresTable(ctx, s.db, schemaName, table)
	case decl.Schema:
		table, ok := s.fixtures.Table(subject)
		if !ok {
			return nil, errors.New("no fixture table for schema")
		}
		return table, nil
	}
	return nil, nil
}

func (s *schemaSources) source(location string) schema.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return schema.URLSource(location)
	}
	if !filepath.IsAbs(location) {
		location = filepath.Join(s.baseDir, location)
	}
	return schema.FileSource(location)
}
