package decorator

import (
	"sync"
)

const (
	// Suffix is appended to a subject type name to form the presenter name.
	Suffix = "Presenter"

	// DefaultPlaceholder is substituted for blank attributes when neither the
	// definition nor the context configures one.
	DefaultPlaceholder = "----"

	// BlankAttributesModule names the module holding blank substitutions.
	BlankAttributesModule = "BlankAttributes"

	// StringMethod names the override consulted by Presenter.String.
	StringMethod = "to_s"
)

// Super yields the value of the next layer below the running method.
type Super func() (any, error)

// Method is a declared override. It receives the presenter and the next
// layer, which ends in forwarding to the wrapped value.
type Method func(p *Presenter, super Super) (any, error)

// Transform rewrites a fetched association before it is presented.
type Transform func(value any) (any, error)

// Module is a named group of generated methods.
type Module struct {
	name    string
	order   []string
	methods map[string]Method
}

func newModule(name string) *Module {
	return &Module{name: name, methods: make(map[string]Method)}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Methods returns the method names in declaration order.
func (m *Module) Methods() []string {
	return append([]string(nil), m.order...)
}

// Has reports whether the module defines name.
func (m *Module) Has(name string) bool {
	_, ok := m.methods[name]
	return ok
}

func (m *Module) define(name string, fn Method) {
	if _, exists := m.methods[name]; !exists {
		m.order = append(m.order, name)
	}
	m.methods[name] = fn
}

// Definition describes the presenter for one domain type. Declarations are
// made once at startup; afterwards a definition may be shared between
// goroutines.
type Definition struct {
	subject     string
	placeholder string
	registry    *Registry

	mu      sync.RWMutex
	methods map[string]Method
	modules []*Module
	index   map[string]*Module
	blank   *Module

	schemaFixed      bool
	schemaDiscovered bool

	location []string
}

// NewDefinition creates an unregistered definition for subject.
func NewDefinition(subject string) *Definition {
	return &Definition{
		subject: normalizeSubject(subject),
		methods: make(map[string]Method),
		index:   make(map[string]*Module),
	}
}

// Subject returns the domain type name the definition decorates.
func (d *Definition) Subject() string {
	return d.subject
}

// Name returns the presenter name, the subject followed by Suffix.
func (d *Definition) Name() string {
	return d.subject + Suffix
}

// Registry returns the registry the definition was registered with.
func (d *Definition) Registry() *Registry {
	return d.registry
}

// WithPlaceholder overrides the blank placeholder for this presenter.
func (d *Definition) WithPlaceholder(placeholder string) *Definition {
	d.placeholder = placeholder
	return d
}

// Method declares a hand-written override. It runs before any generated
// module method of the same name.
func (d *Definition) Method(name string, fn Method) *Definition {
	if name == "" || fn == nil {
		return d
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.methods[name] = fn
	return d
}

// Modules returns the generated modules in inclusion order. The blank
// attribute module, when present, comes first because it sits closest to
// the wrapped value.
func (d *Definition) Modules() []*Module {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Module, 0, len(d.modules)+1)
	if d.blank != nil {
		out = append(out, d.blank)
	}
	return append(out, d.modules...)
}

// Module returns the generated module with the given name.
func (d *Definition) Module(name string) (*Module, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if name == BlankAttributesModule {
		return d.blank, d.blank != nil
	}
	mod, ok := d.index[name]
	return mod, ok
}

// New wraps target in a presenter bound to ctx.
func (d *Definition) New(target any, ctx Context) *Presenter {
	return NewPresenter(d, target, ctx)
}

func (d *Definition) module(name string) *Module {
	d.mu.Lock()
	defer d.mu.Unlock()

	if mod, ok := d.index[name]; ok {
		return mod
	}
	mod := newModule(name)
	d.index[name] = mod
	d.modules = append(d.modules, mod)
	return mod
}

// chain returns the layers defining name, outermost first: hand-written
// methods, then modules from the most recently included, then blank
// attributes.
func (d *Definition) chain(name string) []Method {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []Method
	if fn, ok := d.methods[name]; ok {
		out = append(out, fn)
	}
	for i := len(d.modules) - 1; i >= 0; i-- {
		if fn, ok := d.modules[i].methods[name]; ok {
			out = append(out, fn)
		}
	}
	if d.blank != nil {
		if fn, ok := d.blank.methods[name]; ok {
			out = append(out, fn)
		}
	}
	return out
}
