package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/scheme"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

var tagsExpression bool

var tagsCmd = &cobra.Command{
	Use:   "tags [file]",
	Short: "Print the IR tag of each top-level form",
	Long: `Memoizes each top-level form and prints its tag name, one per
line, without printing the (potentially large) IR itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().BoolVarP(&tagsExpression, "expression", "e", false, "read an expression from the command line")
}

func runTags(cmd *cobra.Command, args []string) error {
	input, err := readInput(tagsExpression, args)
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
		k := scheme.MemoizedExpressionTypecode(node)
		fmt.Printf("%s (%d)\n", ir.TagName(k), int(k))
	}
	return nil
}
