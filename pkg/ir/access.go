package ir

// Typecode returns n's Kind. Backs the exported
// memoized-expression-typecode.
func Typecode(n Node) Kind { return n.Kind() }

// Data returns n's raw payload. Since every Node is already its own
// payload struct (one field set per named slot, rather than a tagged
// pair CAR/CDR chain), Data is simply n itself; callers type-switch on
// it the same way the evaluator type-switches on Kind().
func Data(n Node) any { return n }
