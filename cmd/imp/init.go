package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new IMP project",
	Long:  `Init writes a starter imp.toml and main.imp. With a name, the project goes into a new directory`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

const manifestTemplate = `[package]
name = %q

[run]
main = "main.imp"
`

const mainTemplate = `func print_int(v: int): int = "print_int";
func print_newline(): int = "print_newline";

print_int(42);
print_newline();
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	name := "main"
	if len(args) == 1 {
		name = args[0]
		dir = name
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %q: %w", dir, err)
		}
	}

	manifestPath := filepath.Join(dir, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, fmt.Appendf(nil, manifestTemplate, name), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", manifestPath, err)
	}
	mainPath := filepath.Join(dir, "main.imp")
	if err := os.WriteFile(mainPath, []byte(mainTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", mainPath, err)
	}

	fmt.Fprintf(os.Stdout, "created %s and %s\n", manifestPath, mainPath)
	return nil
}
