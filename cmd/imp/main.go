package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HalmaiErik/utcn-imp/internal/diagfmt"
	"github.com/HalmaiErik/utcn-imp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "imp",
	Short: "IMP language compiler and virtual machine",
	Long:  `imp compiles IMP source files to bytecode and executes them on a stack-based virtual machine`,

	// Errors are rendered by main via diagfmt, not by cobra.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		diagfmt.FormatError(os.Stderr, err, useColor(os.Stderr))
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent --color flag against whether f is a
// terminal.
func useColor(f *os.File) bool {
	colorFlag, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
