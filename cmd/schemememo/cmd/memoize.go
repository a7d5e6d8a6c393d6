package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemeboot/memoize/pkg/sexpr"
)

var (
	memoizeExpression bool
	memoizeDumpIR     bool
)

var memoizeCmd = &cobra.Command{
	Use:   "memoize [file]",
	Short: "Memoize Scheme source into IR and print its un-memoized form",
	Long: `Reads one or more top-level Scheme forms, memoizes each into IR,
then prints the IR back out through the un-memoizer.

If no file is provided, reads from stdin. Use -e to memoize a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMemoize,
}

func init() {
	rootCmd.AddCommand(memoizeCmd)
	memoizeCmd.Flags().BoolVarP(&memoizeExpression, "expression", "e", false, "memoize an expression from the command line")
	memoizeCmd.Flags().BoolVar(&memoizeDumpIR, "dump-ir", false, "print the IR as an indented tag tree instead of un-memoizing it")
}

func runMemoize(cmd *cobra.Command, args []string) error {
	input, err := readInput(memoizeExpression, args)
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
		if memoizeDumpIR {
			dumpNode(node, 0)
			continue
		}
		fmt.Println(sexpr.Write(m.UnmemoizeExpression(node)))
	}
	return nil
}

func inputFilename(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "<stdin>"
}
