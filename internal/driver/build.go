package driver

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
)

// BuildResult reports one compiled artifact.
type BuildResult struct {
	Source string
	Output string
}

// OutputName derives the artifact path for a source file: main.imp → main.impc.
func OutputName(path string) string {
	base := strings.TrimSuffix(path, ".imp")
	return base + ".impc"
}

// BuildAll compiles each source file to a .impc artifact next to it. Files
// compile in parallel; each pipeline is independent (VM execution is not
// involved). The first failure cancels the rest.
func BuildAll(paths []string) ([]BuildResult, error) {
	results := make([]BuildResult, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			prog, err := Compile(path, nil)
			if err != nil {
				return err
			}
			out := OutputName(path)
			if err := WriteArtifact(out, prog); err != nil {
				return err
			}
			results[i] = BuildResult{Source: path, Output: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteArtifact persists a compiled program.
func WriteArtifact(path string, prog *bytecode.Program) error {
	data, err := bytecode.MarshalArtifact(prog)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// ReadArtifact loads a compiled program from disk.
func ReadArtifact(path string) (*bytecode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return bytecode.UnmarshalArtifact(data)
}
