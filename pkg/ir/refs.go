package ir

import (
	"sync/atomic"

	"github.com/schemeboot/memoize/pkg/sexpr"
)

// LexicalRef is a reference to lexical slot Index of the current
// frame, counting from the most recently bound variable (index 0).
type LexicalRef struct {
	Index int
}

func (*LexicalRef) Kind() Kind { return KindLexicalRef }

// LexicalSet assigns Value to lexical slot Index.
type LexicalSet struct {
	Index int
	Value Node
}

func (*LexicalSet) Kind() Kind { return KindLexicalSet }

// Binding is the payload shared by ToplevelRef/ToplevelSet/ModuleRef/
// ModuleSet: either an unresolved name (a bare symbol for toplevel
// references, a module name plus symbol for module references) or a
// resolved variable Cell. It is immutable once constructed — "mutation"
// means replacing the *Binding a node's atomic pointer refers to, never
// editing one in place, so a reader that loaded a pointer before a
// racing resolution always sees a complete, self-consistent value
// (spec.md §5's "idempotent racey write").
type Binding struct {
	Sym        sexpr.Symbol
	ModuleName []string
	Public     bool

	// Cell is nil until the variable cache resolves this node, at
	// which point it holds the host's opaque variable-cell value
	// (conventionally a *module.Variable, but ir does not depend on
	// the module package — it only stores and CAS-publishes the
	// pointer).
	Cell any
}

// Resolved reports whether b names a resolved variable cell.
func (b *Binding) Resolved() bool { return b != nil && b.Cell != nil }

// resolvable is embedded by every node kind whose Binding may be
// mutated in place by the variable cache.
type resolvable struct {
	state atomic.Pointer[Binding]
}

// Load returns the node's current Binding.
func (r *resolvable) Load() *Binding { return r.state.Load() }

// CompareAndSwap atomically replaces old with new, returning false
// (and performing no update) if another goroutine already published a
// different Binding. Callers that lose the race should discard their
// own lookup result and use Load() to read the winner.
func (r *resolvable) CompareAndSwap(old, new *Binding) bool {
	return r.state.CompareAndSwap(old, new)
}

// ToplevelRef is a reference to a module-level variable that has not
// yet been proven to be lexically bound. Its Binding starts out
// carrying only Sym; the evaluator's variable cache resolves it to a
// Cell on first use (spec.md §4.5).
type ToplevelRef struct {
	resolvable
}

func (*ToplevelRef) Kind() Kind { return KindToplevelRef }

// NewToplevelRef builds an unresolved ToplevelRef for sym.
func NewToplevelRef(sym sexpr.Symbol) *ToplevelRef {
	n := &ToplevelRef{}
	n.state.Store(&Binding{Sym: sym})
	return n
}

// ToplevelSet assigns Value to the module-level variable named by its
// Binding, resolved the same way as ToplevelRef.
type ToplevelSet struct {
	resolvable
	Value Node
}

func (*ToplevelSet) Kind() Kind { return KindToplevelSet }

// NewToplevelSet builds an unresolved ToplevelSet for sym.
func NewToplevelSet(sym sexpr.Symbol, value Node) *ToplevelSet {
	n := &ToplevelSet{Value: value}
	n.state.Store(&Binding{Sym: sym})
	return n
}

// ModuleRef is an explicit `(@ mod sym)` / `(@@ mod sym)` reference:
// Public is true for `@` (public interface only), false for `@@`
// (private access).
type ModuleRef struct {
	resolvable
}

func (*ModuleRef) Kind() Kind { return KindModuleRef }

// NewModuleRef builds an unresolved ModuleRef.
func NewModuleRef(moduleName []string, sym sexpr.Symbol, public bool) *ModuleRef {
	n := &ModuleRef{}
	n.state.Store(&Binding{Sym: sym, ModuleName: moduleName, Public: public})
	return n
}

// ModuleSet assigns Value to an explicitly named module variable.
type ModuleSet struct {
	resolvable
	Value Node
}

func (*ModuleSet) Kind() Kind { return KindModuleSet }

// NewModuleSet builds an unresolved ModuleSet.
func NewModuleSet(moduleName []string, sym sexpr.Symbol, public bool, value Node) *ModuleSet {
	n := &ModuleSet{Value: value}
	n.state.Store(&Binding{Sym: sym, ModuleName: moduleName, Public: public})
	return n
}
