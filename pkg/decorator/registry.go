package decorator

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-presenter/internal/naming"
)

// Observer receives resolution outcomes. Implementations must be safe for
// concurrent use when the registry is shared between render passes.
type Observer interface {
	Resolved(subject, presenter string)
	Passthrough(subject string)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithObserver attaches an Observer notified on every resolution.
func WithObserver(observer Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = observer
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry is the resolution table mapping domain type names to presenter
// definitions. It is populated at startup and safe to share afterwards.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
	observer    Observer
	logger      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		definitions: make(map[string]*Definition),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Register adds a definition keyed by its subject. Duplicate subjects return
// an error, as does a definition already owned by another registry.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("decorator: definition is required")
	}
	subject := def.Subject()
	if subject == "" {
		return fmt.Errorf("decorator: definition subject is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[subject]; exists {
		return fmt.Errorf("decorator: presenter for %q already registered", subject)
	}
	if def.registry != nil && def.registry != r {
		return fmt.Errorf("decorator: definition %q belongs to another registry", def.Name())
	}

	def.registry = r
	r.definitions[subject] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(defs ...*Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

// Define creates and registers a definition for subject, returning it so
// declarations can be chained. It panics when subject is already registered.
func (r *Registry) Define(subject string) *Definition {
	def := NewDefinition(subject)
	r.MustRegister(def)
	return def
}

// Resolve returns the definition registered for the type of value.
func (r *Registry) Resolve(value any) (*Definition, bool) {
	return r.ResolveName(TypeNameOf(value))
}

// ResolveName returns the definition registered for an explicit type name.
// Snake case names ("line_item") are camelized first.
func (r *Registry) ResolveName(name string) (*Definition, bool) {
	if r == nil {
		return nil, false
	}
	subject := normalizeSubject(name)
	if subject == "" {
		return nil, false
	}

	r.mu.RLock()
	def, ok := r.definitions[subject]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("presenter not found", slog.String("subject", subject))
		if r.observer != nil {
			r.observer.Passthrough(subject)
		}
		return nil, false
	}

	r.logger.Debug("presenter resolved",
		slog.String("subject", subject),
		slog.String("presenter", def.Name()),
	)
	if r.observer != nil {
		r.observer.Resolved(subject, def.Name())
	}
	return def, true
}

// List returns the sorted presenter names in the registry.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for _, def := range r.definitions {
		names = append(names, def.Name())
	}
	sort.Strings(names)
	return names
}

// Has reports whether a presenter is registered for subject.
func (r *Registry) Has(subject string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.definitions[normalizeSubject(subject)]
	return ok
}

func normalizeSubject(name string) string {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, "_- ") || (name != "" && strings.ToLower(name[:1]) == name[:1]) {
		return naming.Camelize(name)
	}
	return name
}
