package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/diagfmt"
	"github.com/HalmaiErik/utcn-imp/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize file.imp",
	Short: "Tokenize an IMP source file",
	Long:  `Tokenize breaks down an IMP source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	result, err := driver.Tokenize(args[0])
	if err != nil {
		return err
	}
	return diagfmt.FormatTokens(os.Stdout, result.Tokens)
}
