package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/driver"
	"github.com/HalmaiErik/utcn-imp/internal/project"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.imp]",
	Short: "Compile and execute an IMP program",
	Long:  `Run compiles a source file to bytecode and executes it. Without an argument the entry point comes from the nearest imp.toml`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("trace", false, "print each executed instruction to stderr")
	runCmd.Flags().Bool("no-cache", false, "always recompile, bypassing the program cache")
}

func runRun(cmd *cobra.Command, args []string) error {
	path, err := resolveEntry(args)
	if err != nil {
		return err
	}

	opts := driver.RunOptions{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}

	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		opts.Trace = os.Stderr
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		// A broken cache never blocks a run.
		if cache, err := driver.OpenDiskCache("imp"); err == nil {
			opts.Cache = cache
		}
	}

	return driver.Run(path, opts)
}

// resolveEntry picks the file to run: the explicit argument, or the manifest
// entry point.
func resolveEntry(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	m, ok, err := project.Load(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no %s found; pass a file explicitly, e.g.: imp run path/to/main.imp", project.ManifestName)
	}
	return m.MainPath(), nil
}
