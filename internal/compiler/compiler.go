// Package compiler lowers a parsed module to bytecode.
//
// Lowering is stack-oriented: locals live on the operand stack (a let leaves
// its value in place as the variable's slot) and variable references compile
// to PEEK with a depth computed at compile time. Module-level code starts at
// offset 0 and ends with STOP; function bodies follow it, with their entry
// offsets recorded in the program's function table.
package compiler

import (
	"fmt"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
	"github.com/HalmaiErik/utcn-imp/internal/source"
)

// Error is a lowering error at a known source location (unknown identifier,
// duplicate declaration, operand width overflow).
type Error struct {
	Loc source.Location
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Loc, e.Msg)
}

type symbolKind uint8

const (
	symFunc symbolKind = iota
	symProto
)

// global is a module-level callable: a user function or a native prototype.
type global struct {
	kind symbolKind
	id   uint32
}

type funcWork struct {
	id   uint32
	data *ast.ItemFuncData
}

type compiler struct {
	b       *ast.Builder
	asm     *bytecode.Assembler
	globals map[string]global
	work    []funcWork
}

// Compile lowers the module to a program. Declarations are collected first,
// so top-level code and function bodies may refer to functions declared
// later in the source.
func Compile(b *ast.Builder, m *ast.Module) (*bytecode.Program, error) {
	c := &compiler{
		b:       b,
		asm:     bytecode.NewAssembler(),
		globals: make(map[string]global),
	}

	if err := c.declareItems(m); err != nil {
		return nil, err
	}

	// Module-level statements execute in source order, then STOP.
	top := c.newFrame(nil, false)
	for _, itemID := range m.Items {
		item := b.Items.Get(itemID)
		if item.Kind != ast.ItemStmt {
			continue
		}
		if err := top.compileStmt(b.Items.Stmt(itemID).Stmt); err != nil {
			return nil, err
		}
	}
	c.asm.Emit(bytecode.Stop)

	for _, fw := range c.work {
		c.asm.SetFuncEntry(fw.id, c.asm.Pos())
		fr := c.newFrame(fw.data.Params, true)
		if err := fr.compileStmt(fw.data.Body); err != nil {
			return nil, err
		}
		// Implicit 'return 0' for bodies that fall off the end.
		c.asm.EmitU64(bytecode.PushInt, 0)
		c.asm.Emit(bytecode.Ret)
	}

	return c.asm.Finish(), nil
}

// declareItems registers every func/proto name before any code is emitted.
func (c *compiler) declareItems(m *ast.Module) error {
	for _, itemID := range m.Items {
		item := c.b.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemFunc:
			data := c.b.Items.Func(itemID)
			if _, exists := c.globals[data.Name]; exists {
				return &Error{Loc: item.Loc, Msg: fmt.Sprintf("duplicate declaration of '%s'", data.Name)}
			}
			id, err := c.asm.DeclareFunc(data.Name, len(data.Params))
			if err != nil {
				return &Error{Loc: item.Loc, Msg: "function table overflow"}
			}
			c.globals[data.Name] = global{kind: symFunc, id: id}
			c.work = append(c.work, funcWork{id: id, data: data})

		case ast.ItemProto:
			data := c.b.Items.Proto(itemID)
			if _, exists := c.globals[data.Name]; exists {
				return &Error{Loc: item.Loc, Msg: fmt.Sprintf("duplicate declaration of '%s'", data.Name)}
			}
			id, err := c.asm.DeclareProto(data.Name, data.Primitive, len(data.Params))
			if err != nil {
				return &Error{Loc: item.Loc, Msg: "prototype table overflow"}
			}
			c.globals[data.Name] = global{kind: symProto, id: id}
		}
	}
	return nil
}
