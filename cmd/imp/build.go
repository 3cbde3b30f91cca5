package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file.imp...",
	Short: "Compile IMP sources to bytecode artifacts",
	Long:  `Build compiles each source file to a .impc bytecode artifact. Multiple files compile in parallel`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "artifact path (single source file only)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	if output != "" {
		if len(args) != 1 {
			return fmt.Errorf("-o requires exactly one source file, got %d", len(args))
		}
		prog, err := driver.Compile(args[0], nil)
		if err != nil {
			return err
		}
		if err := driver.WriteArtifact(output, prog); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s -> %s\n", args[0], output)
		return nil
	}

	results, err := driver.BuildAll(args)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintf(os.Stdout, "%s -> %s\n", res.Source, res.Output)
	}
	return nil
}
