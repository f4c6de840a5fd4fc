// This is the main-driver for lirbf: a LIR-to-brainfuck compiler with
// an optional built-in interpreter for running the result directly.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/skx/lirbf/compiler"
	"github.com/skx/lirbf/interp"
	"github.com/skx/lirbf/optim"
	"github.com/spf13/cobra"
)

var (
	brainfuck bool
	optimize  bool
)

func main() {
	root := &cobra.Command{
		Use:           "lirbf [file]",
		Short:         "Compile LIR source to brainfuck",
		Long:          "lirbf compiles a small linear imperative language (LIR) to brainfuck.\nGiven a file (or \"-\"/no argument for stdin), it compiles and interprets\nthe result, unless -b/--brainfuck is given, in which case it prints the\ngenerated brainfuck to stdout instead of running it.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompile,
	}

	root.Flags().BoolVarP(&brainfuck, "brainfuck", "b", false, "Print generated BF to stdout and exit; do not interpret")
	root.Flags().BoolVarP(&optimize, "optimize", "o", true, "Run the peephole optimizer before interpreting or printing")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lirbf: %s\n", err)
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	bf, err := compiler.New(src).Compile()
	if err != nil {
		return err
	}

	if optimize {
		bf = optim.Optimize(bf)
	}

	if brainfuck {
		fmt.Fprint(cmd.OutOrStdout(), bf)
		return nil
	}

	in := interp.New(false)
	return in.Run(bf, cmd.InOrStdin(), cmd.OutOrStdout())
}

// readSource returns source text from args[0], "-", or stdin when args
// is empty.
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}
