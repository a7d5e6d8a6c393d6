// Package env implements the memoizer's lexical environment: an
// ordered sequence of bound names used to resolve a symbol to a
// de Bruijn-style frame index, or to recognise it as free (and so a
// candidate for a toplevel/module reference, or for being shadowed
// out of keyword-like status such as `else`/`=>` in `cond`).
//
// Adapted from the teacher's runtime.Environment (a chain of scopes
// searched innermost-first), generalized from a name->value map to a
// plain name sequence, since the memoizer never holds values — only
// the shape of the binding structure matters to it.
package env

// Env is an immutable, persistent sequence of bound symbols,
// most-recently-bound first. The zero value is the empty (toplevel)
// environment.
//
// nested tracks whether any frame has been pushed at all, independent
// of vars: a zero-formal lambda body still runs inside a frame (so
// `define` there is misplaced), even though it contributes no names to
// vars. This mirrors the original memoizer's env representation,
// where the top level is distinguished from "inside a lambda" by
// whether env is the empty list or a (possibly empty-headed) pair,
// not by how many names are bound.
type Env struct {
	vars   []string
	nested bool
}

// Empty is the environment with no lexical bindings.
var Empty = Env{}

// LexicalIndex returns the frame index of sym — the position of its
// first (innermost) occurrence — or -1 if sym is not lexically bound.
func (e Env) LexicalIndex(sym string) int {
	for i, v := range e.vars {
		if v == sym {
			return i
		}
	}
	return -1
}

// IsFree reports whether sym has no lexical binding in e. This is
// exactly `lexical-index(env, sym) = -1`: it is what lets the
// memoizer recognise `else`/`=>` as literal keywords only when they
// have not been locally shadowed.
func (e Env) IsFree(sym string) bool {
	return e.LexicalIndex(sym) == -1
}

// Extend returns a new environment in which vars (given in source
// order) are bound so that the first source variable ends up deepest
// and the last ends up at index 0 of its own scope: extend walks vars
// in reverse and prepends each one, matching the lowering spec.md
// §4.3 uses for lambda/let formals.
//
// lexical-index(Extend(e, vars), vars[i]) == len(vars)-1-i, for every
// i at which vars[i] does not reoccur later in vars.
func (e Env) Extend(vars ...string) Env {
	if len(vars) == 0 {
		return Env{vars: e.vars, nested: true}
	}
	next := make([]string, 0, len(vars)+len(e.vars))
	for i := len(vars) - 1; i >= 0; i-- {
		next = append(next, vars[i])
	}
	next = append(next, e.vars...)
	return Env{vars: next, nested: true}
}

// Len reports how many lexical slots are bound in e's innermost
// frame set (the whole chain, since Env is a flat sequence rather
// than a chain of frames — the memoizer only ever needs the combined
// index space described in spec.md §3).
func (e Env) Len() int { return len(e.vars) }

// IsTopLevel reports whether e is the outermost environment that
// `define` is only valid in — no enclosing lambda/let frame has been
// pushed, even an empty one.
func (e Env) IsTopLevel() bool { return !e.nested }
