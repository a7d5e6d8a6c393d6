package ir

// Apply models `(@apply proc args)`: invoke Proc with the elements of
// the list that the single Args expression evaluates to as its
// arguments.
type Apply struct {
	Proc, Args Node
}

func (*Apply) Kind() Kind { return KindApply }

// Cont models `(@call-with-current-continuation proc)`: invoke Proc
// with the current continuation reified as its sole argument.
type Cont struct {
	Proc Node
}

func (*Cont) Kind() Kind { return KindCont }

// CallWithValues models `(@call-with-values producer consumer)`:
// invoke Producer with no arguments, then invoke Consumer with
// whatever values Producer returned.
type CallWithValues struct {
	Producer, Consumer Node
}

func (*CallWithValues) Kind() Kind { return KindCallWithValues }

// Call is an ordinary procedure call: evaluate Proc and each of Args
// left to right, then invoke the resulting procedure. Nargs is
// len(Args), carried explicitly so the evaluator need not recompute
// it (matching the original's separate nargs field).
type Call struct {
	Proc  Node
	Nargs int
	Args  []Node
}

// NewCall builds a Call node, deriving Nargs from args.
func NewCall(proc Node, args ...Node) *Call {
	return &Call{Proc: proc, Nargs: len(args), Args: args}
}

func (*Call) Kind() Kind { return KindCall }
