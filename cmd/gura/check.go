package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gura-conf/gura/pkgs/parser"
)

func newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate Gura files and report the first error in each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchFiles(cmd, args)
			}
			failed := false
			for _, path := range args {
				if err := checkFile(cmd, path); err != nil {
					failed = true
				}
			}
			if failed {
				return &exitError{code: exitParse, err: fmt.Errorf("validation failed")}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate whenever a file changes")
	return cmd
}

func checkFile(cmd *cobra.Command, path string) error {
	if _, err := parser.ParseFile(path); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	return nil
}

// watchFiles validates the files once, then re-validates each one as it
// changes on disk until the command's context is cancelled.
func watchFiles(cmd *cobra.Command, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &exitError{code: exitIOError, err: err}
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return &exitError{code: exitIOError, err: fmt.Errorf("cannot watch %s: %w", path, err)}
		}
		_ = checkFile(cmd, path)
	}

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				_ = checkFile(cmd, ev.Name)
			}
			// Some editors replace the file on save; re-arm the watch.
			if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
				if _, statErr := os.Stat(ev.Name); statErr == nil {
					_ = watcher.Add(ev.Name)
					_ = checkFile(cmd, ev.Name)
				}
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", werr)
		}
	}
}
