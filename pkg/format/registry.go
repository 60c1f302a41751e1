// Package format holds the named value formatters presenters route attributes
// through. Formatter ids may carry one argument, as in "precision(2)" or
// "truncate(20)".
package format

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

var (
	// ErrUnknownFormatter is returned when an id names no registered formatter.
	ErrUnknownFormatter = errors.New("format: unknown formatter")
	// ErrDuplicateFormatter is returned when a name is registered twice.
	ErrDuplicateFormatter = errors.New("format: formatter already registered")
)

// Func formats value. arg is the text between the parentheses of a
// parameterised id and is empty otherwise.
type Func func(value any, arg string, opts Options) (string, error)

// Options carries the locale conventions applied by the number formatters.
type Options struct {
	Locale    language.Tag
	Precision int
	Unit      string
}

// DefaultOptions returns English conventions with two decimals and "$".
func DefaultOptions() Options {
	return Options{
		Locale:    language.English,
		Precision: 2,
		Unit:      "$",
	}
}

// Option mutates registry options.
type Option func(*Registry)

// WithLocale selects the locale for separators and delimiters.
func WithLocale(tag language.Tag) Option {
	return func(r *Registry) {
		r.opts.Locale = tag
	}
}

// WithPrecision sets the default number of decimals.
func WithPrecision(precision int) Option {
	return func(r *Registry) {
		if precision >= 0 {
			r.opts.Precision = precision
		}
	}
}

// WithUnit sets the currency unit.
func WithUnit(unit string) Option {
	return func(r *Registry) {
		r.opts.Unit = unit
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry maps formatter names to functions.
type Registry struct {
	mu     sync.RWMutex
	funcs  map[string]Func
	opts   Options
	logger *slog.Logger
}

// NewRegistry constructs a registry preloaded with the built-in formatters.
func NewRegistry(options ...Option) *Registry {
	r := NewEmptyRegistry(options...)
	registerBuiltins(r)
	return r
}

// NewEmptyRegistry constructs a registry without built-ins.
func NewEmptyRegistry(options ...Option) *Registry {
	r := &Registry{
		funcs:  make(map[string]Func),
		opts:   DefaultOptions(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Options returns the registry's formatting options.
func (r *Registry) Options() Options {
	if r == nil {
		return DefaultOptions()
	}
	return r.opts
}

// Register adds fn under name.
func (r *Registry) Register(name string, fn Func) error {
	if r == nil {
		return errors.New("format: registry is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("format: formatter name is required")
	}
	if fn == nil {
		return fmt.Errorf("format: formatter %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFormatter, name)
	}
	r.funcs[name] = fn
	return nil
}

// MustRegister registers fn and panics on failure.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Has reports whether id resolves to a registered formatter.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	name, _, err := ParseID(id)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[name]
	return ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke formats value with the formatter identified by id.
func (r *Registry) Invoke(id string, value any) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormatter, id)
	}
	name, arg, err := ParseID(id)
	if err != nil {
		return "", err
	}

	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok {
		r.logger.Debug("formatter miss", "id", id)
		return "", fmt.Errorf("%w: %q", ErrUnknownFormatter, id)
	}

	out, err := fn(value, arg, r.opts)
	if err != nil {
		return "", fmt.Errorf("format: %s: %w", id, err)
	}
	return out, nil
}

// ParseID splits "name(arg)" into its name and argument.
func ParseID(id string) (name, arg string, err error) {
	id = strings.TrimSpace(id)
	open := strings.IndexByte(id, '(')
	if open < 0 {
		if id == "" {
			return "", "", errors.New("format: formatter id is required")
		}
		return id, "", nil
	}
	if !strings.HasSuffix(id, ")") || open == 0 {
		return "", "", fmt.Errorf("format: malformed formatter id %q", id)
	}
	return strings.TrimSpace(id[:open]), strings.TrimSpace(id[open+1 : len(id)-1]), nil
}
