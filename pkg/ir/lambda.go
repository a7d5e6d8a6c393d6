package ir

import "github.com/schemeboot/memoize/pkg/sexpr"

// ArityShape distinguishes the three shapes an arity-spec can take.
type ArityShape int

const (
	// ArityFixed: exactly Nreq arguments, no rest, no optionals, no
	// keywords.
	ArityFixed ArityShape = iota
	// ArityRest: Nreq required arguments, then the rest collected into
	// a single trailing list parameter.
	ArityRest
	// ArityFull: the general case — required, optional, keyword, and
	// rest parameters, plus a case-lambda alternate.
	ArityFull
)

// KwEntry is one `(keyword . index)` pair of a keyword-argument spec:
// Keyword is the `#:name` the caller passes, Index is the binding
// slot it fills, counting the lambda's own slots from its first
// required parameter (0) through optionals, rest, then keywords.
type KwEntry struct {
	Keyword sexpr.Keyword
	Index   int
}

// KwSpec is the keyword-argument portion of a Full arity-spec. A nil
// *KwSpec means the lambda takes no keyword arguments at all
// (spec.md §3: "kw-spec is either false ... or (allow-other-keys?,
// ((keyword . index) …))").
type KwSpec struct {
	AllowOtherKeys bool
	Keywords       []KwEntry
}

// Arity is the parameter-shape record attached to a Lambda node. For
// ArityFixed and ArityRest, only Nreq (and RestFlag) are meaningful;
// Nopt, Kw, Inits, and Alternate are the zero value. For ArityFull all
// fields are meaningful.
//
// Invariant (spec.md §3): Nreq + Nopt + (1 if RestFlag else 0) +
// len(Kw.Keywords) equals the number of binding slots the body sees
// before its own Lets — see SlotCount.
type Arity struct {
	Shape    ArityShape
	Nreq     int
	RestFlag bool

	Nopt      int
	Kw        *KwSpec
	Inits     []Node
	Alternate *Lambda
}

// SlotCount returns the number of lexical slots the formals of this
// arity occupy, matching spec.md §3's invariant expression.
func (a Arity) SlotCount() int {
	n := a.Nreq
	if a.RestFlag {
		n++
	}
	if a.Shape == ArityFull {
		n += a.Nopt
		if a.Kw != nil {
			n += len(a.Kw.Keywords)
		}
	}
	return n
}

// Lambda is a procedure literal: Body is evaluated in the environment
// formed by extending the closure's lexical environment with the
// arity's binding slots, and Arity describes those slots, chaining to
// further clauses via Arity.Alternate for case-lambda.
type Lambda struct {
	Body  Node
	Arity Arity
}

func (*Lambda) Kind() Kind { return KindLambda }
