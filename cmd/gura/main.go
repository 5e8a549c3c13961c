// Command gura validates, reformats and converts Gura configuration files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	exitSuccess = 0
	exitUsage   = 1
	exitIOError = 2
	exitParse   = 3
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
	os.Exit(exitSuccess)
}

// exitError carries an explicit process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return exitUsage
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gura",
		Short:         "Tooling for Gura configuration files",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newConvertCmd())
	return root
}
