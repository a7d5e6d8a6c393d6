package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

var unmemoizeExpression bool

var unmemoizeCmd = &cobra.Command{
	Use:   "unmemoize [file]",
	Short: "Memoize Scheme source, then dump the resulting IR tree",
	Long: `Memoizes each top-level form and prints its IR as an indented tree
of tag names, rather than un-memoizing it back to an S-expression.
Use "schemememo memoize" to get the printable S-expression form
instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnmemoize,
}

func init() {
	rootCmd.AddCommand(unmemoizeCmd)
	unmemoizeCmd.Flags().BoolVarP(&unmemoizeExpression, "expression", "e", false, "read an expression from the command line")
}

func runUnmemoize(cmd *cobra.Command, args []string) error {
	input, err := readInput(unmemoizeExpression, args)
	if err != nil {
		return err
	}

	m, err := newMemoizer()
	if err != nil {
		return err
	}

	forms, err := sexpr.NewReader(input, inputFilename(args)).ReadAll()
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	for _, form := range forms {
		node, err := m.MemoizeExpression(form)
		if err != nil {
			return fmt.Errorf("error memoizing form: %w", err)
		}
		dumpNode(node, 0)
	}
	return nil
}

func dumpNode(n ir.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	switch v := n.(type) {
	case *ir.Begin:
		fmt.Printf("%sBegin (%d forms)\n", pad, len(v.Forms))
		for _, f := range v.Forms {
			dumpNode(f, indent+1)
		}
	case *ir.If:
		fmt.Printf("%sIf\n", pad)
		dumpNode(v.Test, indent+1)
		dumpNode(v.Then, indent+1)
		dumpNode(v.Else, indent+1)
	case *ir.Let:
		fmt.Printf("%sLet (%d inits)\n", pad, len(v.Inits))
		for _, i := range v.Inits {
			dumpNode(i, indent+1)
		}
		dumpNode(v.Body, indent+1)
	case *ir.Lambda:
		fmt.Printf("%sLambda (nreq=%d rest=%v nopt=%d)\n", pad, v.Arity.Nreq, v.Arity.RestFlag, v.Arity.Nopt)
		dumpNode(v.Body, indent+1)
	case *ir.Call:
		fmt.Printf("%sCall (%d args)\n", pad, len(v.Args))
		dumpNode(v.Proc, indent+1)
		for _, a := range v.Args {
			dumpNode(a, indent+1)
		}
	case *ir.Quote:
		fmt.Printf("%sQuote: %v\n", pad, v.Datum)
	case *ir.ToplevelRef:
		fmt.Printf("%sToplevelRef: %s\n", pad, v.Load().Sym)
	case *ir.Define:
		fmt.Printf("%sDefine: %s\n", pad, v.Name)
		dumpNode(v.Value, indent+1)
	default:
		fmt.Printf("%s%s\n", pad, ir.TagName(n.Kind()))
	}
}
