package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "schemememo",
	Short: "Scheme bootstrap memoizer",
	Long: `schemememo lowers Scheme source forms into the tagged IR a
boot evaluator consumes, and can print that IR back out as a
(lossy) S-expression for inspection.

It implements the memoize/unmemoize pair of a Scheme bootstrap
evaluator's front end: special forms, module references, and the
lambda/lambda*/case-lambda family are recognized exactly as the
evaluator itself would recognize them.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}
