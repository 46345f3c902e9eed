// Command contactlens queries and watches a structured contact store.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/contactlens/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
