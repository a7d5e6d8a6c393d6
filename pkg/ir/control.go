package ir

// Begin sequences one or more forms, evaluated in order; the value of
// the last form is the value of the Begin. The memoizer never builds
// a Begin of fewer than one form — a single form passes through
// unwrapped instead (spec.md §4.3).
type Begin struct {
	Forms []Node
}

func (*Begin) Kind() Kind { return KindBegin }

// NewBegin constructs a Begin node. It panics if given no forms: a
// zero-form Begin is an invariant violation, never reachable from
// valid Scheme source (the memoizer's `(begin)` validation rejects it
// earlier).
func NewBegin(forms ...Node) *Begin {
	if len(forms) == 0 {
		panic("ir: Begin requires at least one form")
	}
	return &Begin{Forms: forms}
}

// If is a two- or three-armed conditional. Else is never nil: a
// missing else-branch is lowered to Quote(Unspecified) by the
// memoizer, so the evaluator never needs to special-case a nil Else.
type If struct {
	Test, Then, Else Node
}

func (*If) Kind() Kind { return KindIf }

// Let allocates one lexical frame of len(Inits) slots, evaluates each
// Init in the outer environment, then evaluates Body with the frame in
// scope. Plain `let` puts its init expressions here; `letrec` and
// named-`let` put Quote(Unspecified) placeholders here and assign the
// real values with LexicalSets at the head of Body, inside the frame.
type Let struct {
	Inits []Node
	Body  Node
}

func (*Let) Kind() Kind { return KindLet }

// Dynwind models `(@dynamic-wind pre expr post)`: pre and post bracket
// the evaluation of expr, and run even if expr exits non-locally.
type Dynwind struct {
	Pre, Expr, Post Node
}

func (*Dynwind) Kind() Kind { return KindDynwind }

// WithFluids binds each Fluids[i] to Vals[i] for the dynamic extent of
// Body, restoring the previous fluid value on exit (including
// non-local exit).
type WithFluids struct {
	Fluids, Vals []Node
	Body         Node
}

func (*WithFluids) Kind() Kind { return KindWithFluids }

// Prompt models `(@prompt tag expr handler)`, a delimited-continuation
// boundary. Memoization does not model Prompt's semantics at all: it
// is a flat three-child node handed wholly to the evaluator.
type Prompt struct {
	Tag, Expr, Handler Node
}

func (*Prompt) Kind() Kind { return KindPrompt }
