package module

import (
	"fmt"

	"github.com/schemeboot/memoize/pkg/ir"
)

// registerPrimitives installs the five internal memoizer primitives
// (spec.md §4.3) into mod's macro table. Each one validates the
// already-memoized children it is handed and emits the matching IR
// node. An argument-count mismatch is returned as an ordinary error,
// which the memoizer reports as a syntax error against the source
// form; the count checks here are the only arity check these forms
// get.
func registerPrimitives(mod *Module) {
	mod.DefineMacro("@apply", PrimitiveBinding(primitiveApply))
	mod.DefineMacro("@call-with-current-continuation", PrimitiveBinding(primitiveCallCC))
	mod.DefineMacro("@call-with-values", PrimitiveBinding(primitiveCallWithValues))
	mod.DefineMacro("@dynamic-wind", PrimitiveBinding(primitiveDynamicWind))
	mod.DefineMacro("@prompt", PrimitiveBinding(primitivePrompt))
}

func primitiveApply(children []ir.Node) (ir.Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("@apply: expected 2 arguments (proc args), got %d", len(children))
	}
	return &ir.Apply{Proc: children[0], Args: children[1]}, nil
}

func primitiveCallCC(children []ir.Node) (ir.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("@call-with-current-continuation: expected 1 argument, got %d", len(children))
	}
	return &ir.Cont{Proc: children[0]}, nil
}

func primitiveCallWithValues(children []ir.Node) (ir.Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("@call-with-values: expected 2 arguments, got %d", len(children))
	}
	return &ir.CallWithValues{Producer: children[0], Consumer: children[1]}, nil
}

func primitiveDynamicWind(children []ir.Node) (ir.Node, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("@dynamic-wind: expected 3 arguments, got %d", len(children))
	}
	return &ir.Dynwind{Pre: children[0], Expr: children[1], Post: children[2]}, nil
}

func primitivePrompt(children []ir.Node) (ir.Node, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("@prompt: expected 3 arguments, got %d", len(children))
	}
	return &ir.Prompt{Tag: children[0], Expr: children[1], Handler: children[2]}, nil
}
