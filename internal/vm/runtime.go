package vm

import (
	"fmt"
)

// Native is a runtime function invoked by CALL when the callee resolves to a
// prototype. A native pops its declared arguments from the live operand
// stack and pushes exactly one result.
type Native func(in *Interp) error

// Registry maps primitive names to native implementations.
type Registry map[string]Native

// DefaultRegistry returns the built-in native table. Each Interp gets its
// own copy, so embedders can add entries without affecting others.
func DefaultRegistry() Registry {
	return Registry{
		"print_int":     printInt,
		"read_int":      readInt,
		"print_newline": printNewline,
	}
}

// printInt pops one integer, prints it, and pushes it back unchanged.
func printInt(in *Interp) error {
	v, err := in.PopInt()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(in.Output(), "%d", v); err != nil {
		return err
	}
	in.PushInt(v)
	return nil
}

// readInt reads one integer from the interpreter's input and pushes it.
func readInt(in *Interp) error {
	var v int64
	if _, err := fmt.Fscan(in.Input(), &v); err != nil {
		return fmt.Errorf("failed to read integer: %w", err)
	}
	in.PushInt(v)
	return nil
}

// printNewline prints a line terminator and pushes zero.
func printNewline(in *Interp) error {
	if _, err := fmt.Fprintln(in.Output()); err != nil {
		return err
	}
	in.PushInt(0)
	return nil
}
