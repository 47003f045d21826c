// Command crimehours renders violent crime counts by hour of day from a
// crime-incident export.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/crimehours/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	// ExitErrors have already been reported by the command's formatter.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
