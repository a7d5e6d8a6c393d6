// Package module implements the memoizer's external module-system
// collaborator: current-module, module-variable, resolve-module,
// module-public-interface, module-lookup, variable-ref/
// variable-bound?, plus the macro registry macros are looked up
// through and a gensym generator. spec.md treats all of this as
// "consumed, not specified"; this package is the in-memory reference
// implementation good enough to exercise and test the memoizer, in
// the shape of the teacher's case-insensitive symbol table
// (pkg/ident-style normalized map) generalized to module-qualified,
// case-sensitive Scheme symbols.
package module

import (
	"fmt"
	"strings"
	"sync"

	"github.com/schemeboot/memoize/internal/logging"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// Module is a named collection of variable bindings, split into a
// private map (every binding) and a public subset (the bindings an
// `(@ mod sym)` reference, rather than `(@@ mod sym)`, may see).
type Module struct {
	name    []string
	mu      sync.RWMutex
	private map[sexpr.Symbol]*Variable
	public  map[sexpr.Symbol]bool
	macros  map[sexpr.Symbol]Binding
}

// NewModule creates an empty module named by the given path segments,
// e.g. []string{"scheme", "base"}.
func NewModule(name []string) *Module {
	return &Module{
		name:    append([]string(nil), name...),
		private: make(map[sexpr.Symbol]*Variable),
		public:  make(map[sexpr.Symbol]bool),
		macros:  make(map[sexpr.Symbol]Binding),
	}
}

// Name returns the module's path segments.
func (m *Module) Name() []string { return m.name }

func (m *Module) String() string { return strings.Join(m.name, " ") }

// Define installs v under sym, exported (publicly visible) according
// to export.
func (m *Module) Define(sym sexpr.Symbol, v *Variable, export bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.private[sym] = v
	if export {
		m.public[sym] = true
	}
}

// Lookup returns the variable bound to sym in m, regardless of
// visibility — this is what module-lookup and module-variable consult.
func (m *Module) Lookup(sym sexpr.Symbol) (*Variable, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.private[sym]
	return v, ok
}

// PublicLookup returns the variable bound to sym only if it is
// exported — what `(@ mod sym)` resolution consults.
func (m *Module) PublicLookup(sym sexpr.Symbol) (*Variable, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.public[sym] {
		return nil, false
	}
	v, ok := m.private[sym]
	return v, ok
}

// DefineMacro installs a macro binding (syntax transformer or
// memoizer primitive) under sym, looked up the same way ordinary
// variables are — through the module system, per spec.md §1.
func (m *Module) DefineMacro(sym sexpr.Symbol, b Binding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.macros[sym] = b
}

// LookupMacro returns the macro binding for sym in m, if any.
func (m *Module) LookupMacro(sym sexpr.Symbol) (Binding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.macros[sym]
	return b, ok
}

// Registry is the process-wide collection of modules, plus the
// current-module pointer the memoizer reads when resolving bare
// toplevel references, and the gensym generator.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
	current *Module
	gensym  *Gensym
}

func key(name []string) string { return strings.Join(name, " ") }

// NewRegistry creates a Registry with a single "scheme base" current
// module and the five built-in memoizer primitives pre-registered
// (spec.md §4.3), and seeds the gensym generator with prefix.
func NewRegistry(gensymPrefix string) *Registry {
	r := &Registry{
		modules: make(map[string]*Module),
		gensym:  NewGensym(gensymPrefix),
	}
	base := NewModule([]string{"scheme", "base"})
	registerPrimitives(base)
	r.modules[key(base.name)] = base
	r.current = base
	return r
}

// CurrentModule returns the module new top-level references resolve
// against.
func (r *Registry) CurrentModule() *Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrentModule changes the current module, e.g. when memoizing
// the body of a different module's definitions.
func (r *Registry) SetCurrentModule(m *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = m
}

// SeedSearchPath makes the module names listed in paths resolvable,
// e.g. config's module_search_path (spec.md §4.7: "seeds the reference
// module system's resolvable module names"). Each entry is a
// parenthesized list of symbols such as "(scheme base)"; ResolveModule
// already creates a module lazily on first access, so seeding simply
// does that eagerly instead of waiting for the first reference.
func (r *Registry) SeedSearchPath(paths []string) error {
	for _, p := range paths {
		name, err := parseModuleName(p)
		if err != nil {
			return err
		}
		r.ResolveModule(name)
	}
	return nil
}

func parseModuleName(s string) ([]string, error) {
	forms, err := sexpr.NewReader(s, "<module-search-path>").ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bad module name %q: %w", s, err)
	}
	if len(forms) != 1 {
		return nil, fmt.Errorf("bad module name %q: expected a single form", s)
	}
	parts, ok := sexpr.ToSlice(forms[0])
	if !ok || len(parts) == 0 {
		return nil, fmt.Errorf("bad module name %q: expected a non-empty list", s)
	}
	name := make([]string, len(parts))
	for i, p := range parts {
		sym, ok := sexpr.IsSymbol(p)
		if !ok {
			return nil, fmt.Errorf("bad module name %q: element %d is not a symbol", s, i)
		}
		name[i] = string(sym)
	}
	return name, nil
}

// ResolveModule finds (or lazily creates) the module named name.
func (r *Registry) ResolveModule(name []string) *Module {
	k := key(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.modules[k]; ok {
		return m
	}
	m := NewModule(name)
	r.modules[k] = m
	logging.Info("module: loaded", "name", k)
	return m
}

// ModuleVariable looks up sym in mod, returning (nil, false) if
// unbound — the shape `module-variable(mod, sym) → var|false` calls
// for.
func (r *Registry) ModuleVariable(mod *Module, sym sexpr.Symbol) (*Variable, bool) {
	return mod.Lookup(sym)
}

// ModulePublicInterface returns a handle whose Lookup only sees mod's
// exported bindings. Modules already distinguish public/private
// internally, so the "public interface" is simply mod viewed through
// PublicLookup.
func (r *Registry) ModulePublicInterface(mod *Module) *PublicInterface {
	return &PublicInterface{mod: mod}
}

// PublicInterface restricts lookups to a module's exported bindings.
type PublicInterface struct{ mod *Module }

// Lookup resolves sym, consulting only exported bindings.
func (p *PublicInterface) Lookup(sym sexpr.Symbol) (*Variable, bool) {
	return p.mod.PublicLookup(sym)
}

// ModuleLookup resolves sym in mod via module-lookup semantics
// (private visibility — used for `@@`).
func (r *Registry) ModuleLookup(mod *Module, sym sexpr.Symbol) (*Variable, bool) {
	return mod.Lookup(sym)
}

// LookupMacro looks up sym as a macro binding through the module
// system (spec.md §1, "looked up through the module system"). Only
// the current module's macro table is consulted.
func (r *Registry) LookupMacro(sym sexpr.Symbol) (Binding, bool) {
	return r.CurrentModule().LookupMacro(sym)
}

// Gensym produces a fresh, globally unique symbol (spec.md's external
// "symbol generator" collaborator).
func (r *Registry) Gensym() sexpr.Symbol {
	return r.gensym.Next()
}
