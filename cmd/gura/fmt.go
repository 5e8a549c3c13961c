package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gura-conf/gura/pkgs/parser"
	"github.com/gura-conf/gura/pkgs/serializer"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Reprint a Gura file in canonical form",
		Long: "Parses the file and prints it back with two-space indentation,\n" +
			"inline scalar arrays and minimal string escaping. Comments and the\n" +
			"original formatting are not preserved.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := parser.ParseFile(path)
			if err != nil {
				return &exitError{code: exitParse, err: err}
			}
			out := serializer.Dump(doc)
			if len(out) > 0 {
				out += "\n"
			}
			if write {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					return &exitError{code: exitIOError, err: err}
				}
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place instead of printing")
	return cmd
}
