package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
	"github.com/HalmaiErik/utcn-imp/internal/driver"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm file.imp|file.impc",
	Short: "Disassemble a program",
	Long:  `Disasm prints the bytecode listing of a compiled artifact, or compiles a source file first`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	path := args[0]

	var (
		prog *bytecode.Program
		err  error
	)
	if strings.HasSuffix(path, ".impc") {
		prog, err = driver.ReadArtifact(path)
	} else {
		prog, err = driver.Compile(path, nil)
	}
	if err != nil {
		return err
	}
	return bytecode.Disasm(os.Stdout, prog)
}
