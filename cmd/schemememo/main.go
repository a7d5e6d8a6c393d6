// Command schemememo is a CLI front end to the bootstrap memoizer: it
// memoizes Scheme source into IR, prints IR back out through the
// un-memoizer, and reports the tag of a top-level form.
package main

import (
	"fmt"
	"os"

	"github.com/schemeboot/memoize/cmd/schemememo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
