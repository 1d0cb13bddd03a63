// Command griddemo demonstrates the gridkit row models end to end: "serve"
// exposes a generated data set over the rest wire protocol, and "view" opens
// a desktop table that scrolls through it via the server-side row model.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "griddemo",
		Short:         "Demo grid server and viewer for gridkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newViewCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "griddemo:", err)
		os.Exit(1)
	}
}
