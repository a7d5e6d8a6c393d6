package module

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/schemeboot/memoize/pkg/sexpr"
)

// Gensym produces fresh, globally unique symbols for the memoizer's
// internal lowerings — `or`'s "classic (let ((t e)) (if t t rest))"
// expansion and `cond`'s `=>` clause both need one fresh name per use
// that cannot collide with anything the programmer wrote.
//
// Uniqueness is derived from a random UUID (v4) rather than a process
// counter, so that two Gensym instances in two unrelated memoizer
// invocations — e.g. across two goroutines memoizing independent
// expressions in the reference module-system implementation — can
// never produce a colliding name, at the cost of symbols being longer
// than a plain counter would give.
type Gensym struct {
	prefix string
}

// NewGensym creates a generator whose symbols are printed as
// <prefix><12-hex-chars>.
func NewGensym(prefix string) *Gensym {
	if prefix == "" {
		prefix = "g"
	}
	return &Gensym{prefix: prefix}
}

// Next returns a fresh symbol.
func (g *Gensym) Next() sexpr.Symbol {
	id := uuid.New()
	// 12 hex chars (6 bytes) of the UUID is enough entropy to make
	// collision a non-concern for a single process's compile run
	// while keeping printed IR readable.
	return sexpr.Symbol(fmt.Sprintf("%s%x", g.prefix, id[:6]))
}
