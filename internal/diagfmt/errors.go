// Package diagfmt renders toolchain output for humans: errors, token
// streams, AST trees, and disassembly listings.
package diagfmt

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/HalmaiErik/utcn-imp/internal/compiler"
	"github.com/HalmaiErik/utcn-imp/internal/parser"
	"github.com/HalmaiErik/utcn-imp/internal/source"
	"github.com/HalmaiErik/utcn-imp/internal/vm"
)

var (
	locColor   = color.New(color.FgCyan, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	faultColor = color.New(color.FgMagenta, color.Bold)
)

// FormatError writes a diagnostic line for any toolchain error. Structured
// errors keep the "[name:line:column] message" contract; the location is
// highlighted when useColor is set.
func FormatError(w io.Writer, err error, useColor bool) {
	var (
		parseErr   *parser.Error
		lowerErr   *compiler.Error
		faultErr   *vm.Fault
		loc        source.Location
		msg        string
		structured bool
	)
	switch {
	case errors.As(err, &parseErr):
		loc, msg, structured = parseErr.Loc, parseErr.Msg, true
	case errors.As(err, &lowerErr):
		loc, msg, structured = lowerErr.Loc, lowerErr.Msg, true
	case errors.As(err, &faultErr):
		if useColor {
			faultColor.Fprintf(w, "fault %s:", faultErr.Code)
			fmt.Fprintf(w, " %s (pc=%04x op=%s)\n", faultErr.Msg, faultErr.PC, faultErr.Op)
		} else {
			fmt.Fprintf(w, "%s\n", faultErr.Error())
		}
		return
	}

	if !structured {
		if useColor {
			errColor.Fprint(w, "error:")
			fmt.Fprintf(w, " %v\n", err)
		} else {
			fmt.Fprintf(w, "error: %v\n", err)
		}
		return
	}

	if useColor {
		locColor.Fprintf(w, "[%s]", loc)
		fmt.Fprintf(w, " %s\n", msg)
	} else {
		fmt.Fprintf(w, "[%s] %s\n", loc, msg)
	}
}
