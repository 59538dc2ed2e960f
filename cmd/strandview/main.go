// Command strandview displays an assembly graph: node contours drawn as
// thick ribbons joined by inferred or explicit links, with drag, pan and zoom.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/strand/internal/ui"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the root command and reports any error on stderr, since the
// root command silences cobra's own error output.
func execute(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", ui.Bad.Sprint("error:"), err)
		return 1
	}
	return 0
}
