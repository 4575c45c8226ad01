// Command sargdump translates DuckDB filter pushdown JSON into a search
// argument and prints it.
package main

import (
	"fmt"
	"os"

	"github.com/hugr-lab/pushdown/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sargdump:", err)
		os.Exit(1)
	}
}
