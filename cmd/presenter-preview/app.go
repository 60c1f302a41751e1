package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/internal/logging"
	"github.com/goliatone/go-presenter/pkg/config"
	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/instrument"
	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/schema"
	"github.com/goliatone/go-presenter/pkg/view"
)

// app holds everything loaded from the command flags.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	fixtures    *record.Fixtures
	definitions *definitions
	registry    *decorator.Registry
	metrics     *prometheus.Registry
}

func loadApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Prefix: "presenter-preview",
	})

	fixtures, err := record.LoadYAMLFile(opts.fixturesPath)
	if err != nil {
		return nil, err
	}
	defs, err := loadDefinitions(opts.presentersPath)
	if err != nil {
		return nil, err
	}

	metrics := prometheus.NewRegistry()
	observer, err := instrument.NewObserver(metrics)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	registry := presenter.NewRegistry(
		decorator.WithObserver(observer),
		decorator.WithLogger(logger),
	)
	if err := registerDefinitions(ctx, opts, defs, registry, fixtures); err != nil {
		return nil, err
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		fixtures:    fixtures,
		definitions: defs,
		registry:    registry,
		metrics:     metrics,
	}, nil
}

// registerDefinitions declares the presenters, holding a database connection
// only while table metadata is read.
func registerDefinitions(ctx context.Context, opts *rootOptions, defs *definitions, registry *decorator.Registry, fixtures *record.Fixtures) error {
	var db schema.Querier
	if opts.databaseURL != "" {
		conn, err := pgx.Connect(ctx, opts.databaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() {
			_ = conn.Close(context.WithoutCancel(ctx))
		}()
		db = conn
	}

	sources := newSchemaSources(fixtures, filepath.Dir(opts.presentersPath), db)
	return defs.register(ctx, registry, sources)
}

// newContext starts a render pass.
func (a *app) newContext() (*view.Context, error) {
	return presenter.NewContext(a.cfg, presenter.WithLogger(a.logger))
}

// present wraps the fixture stored under key.
func (a *app) present(key string, ctx *view.Context) (*decorator.Presenter, error) {
	entity, ok := a.fixtures.Get(key)
	if !ok {
		return nil, fmt.Errorf("unknown record %q", key)
	}
	value, err := a.registry.Present(entity, ctx)
	if err != nil {
		return nil, err
	}
	p, ok := value.(*decorator.Presenter)
	if !ok {
		return nil, fmt.Errorf("no presenter registered for %s", entity.TypeName())
	}
	return p, nil
}

// attrsFor returns the attributes listed for p: the declared list, else
// the table columns, else the record's attribute names.
func (a *app) attrsFor(p *decorator.Presenter) []decorator.Attr {
	subject := p.Definition().Subject()
	names := a.definitions.attrs(subject)
	if len(names) == 0 {
		switch target := p.Target().(type) {
		case *record.Model:
			names = target.AttributeNames()
		case *record.Record:
			names = target.Names()
		}
	}

	attrs := make([]decorator.Attr, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, decorator.Field(name))
	}
	return attrs
}
