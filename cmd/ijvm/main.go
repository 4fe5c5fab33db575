// Command ijvm loads a binary IJVM image and runs it to completion,
// reading standard input and writing standard output. This is the
// external collaborator spec.md §1/§6 scopes out of the core engine: it
// only wires Load/Run/Destroy and inspectors together, it implements none
// of the interpreter's semantics itself.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ijvm/ijvm"
	"ijvm/internal/trace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var traceEnabled bool

	cmd := &cobra.Command{
		Use:   "ijvm <image>",
		Short: "Run a binary IJVM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args[0], traceEnabled)
		},
	}

	cmd.Flags().BoolVar(&traceEnabled, "trace", false, "log each dispatcher step at debug level")
	return cmd
}

func runImage(path string, traceEnabled bool) error {
	m, err := ijvm.Load(path)
	if err != nil {
		if errors.Is(err, ijvm.ErrBadMagic) {
			fmt.Fprintln(os.Stderr, "ijvm: not a valid image:", err)
		} else {
			fmt.Fprintln(os.Stderr, "ijvm: failed to load image:", err)
		}
		return err
	}
	defer m.Destroy()

	m.SetLogger(trace.New(traceEnabled))

	m.Run()

	if err := m.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "ijvm:", err)
		return err
	}
	return nil
}
