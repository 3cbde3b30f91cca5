package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/diagfmt"
	"github.com/HalmaiErik/utcn-imp/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse file.imp",
	Short: "Parse an IMP source file and dump the AST",
	Long:  `Parse builds the abstract syntax tree of an IMP source file and prints it as an indented tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0])
	if err != nil {
		return err
	}
	return diagfmt.FormatModule(os.Stdout, result.Builder, result.Module)
}
