package compiler

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
)

// localBinding maps a name to its frame-relative stack slot.
type localBinding struct {
	name string
	slot int
}

// frame tracks the compile-time stack shape of one activation: module-level
// code or one function body.
//
// Slot numbering is frame-relative. In a function, slot 0 holds the callee
// reference and slots 1..N the arguments, so depth starts at N+1; at module
// level depth starts at 0. depth is the number of values the emitted code
// has on the frame's stack at the current point.
type frame struct {
	c      *compiler
	locals []localBinding
	depth  int
	inFunc bool
}

func (c *compiler) newFrame(params []ast.Param, inFunc bool) *frame {
	fr := &frame{c: c, inFunc: inFunc}
	if inFunc {
		fr.depth = len(params) + 1
		for i, p := range params {
			fr.locals = append(fr.locals, localBinding{name: p.Name, slot: i + 1})
		}
	}
	return fr
}

func (fr *frame) compileStmt(id ast.StmtID) error {
	stmts := fr.c.b.Stmts
	stmt := stmts.Get(id)
	asm := fr.c.asm

	switch stmt.Kind {
	case ast.StmtExpr:
		if err := fr.compileExpr(stmts.Expr(id).Expr); err != nil {
			return err
		}
		asm.Emit(bytecode.Pop)
		fr.depth--
		return nil

	case ast.StmtLet:
		data := stmts.Let(id)
		if err := fr.compileExpr(data.Init); err != nil {
			return err
		}
		// The initializer's value stays on the stack as the variable's slot.
		fr.locals = append(fr.locals, localBinding{name: data.Name, slot: fr.depth - 1})
		return nil

	case ast.StmtReturn:
		if !fr.inFunc {
			return &Error{Loc: stmt.Loc, Msg: "return outside of a function"}
		}
		if err := fr.compileExpr(stmts.Return(id).Expr); err != nil {
			return err
		}
		asm.Emit(bytecode.Ret)
		fr.depth--
		return nil

	case ast.StmtWhile:
		data := stmts.While(id)
		top := asm.Pos()
		if err := fr.compileExpr(data.Cond); err != nil {
			return err
		}
		exit := asm.EmitJump(bytecode.JumpFalse)
		fr.depth--
		if err := fr.compileScoped(data.Body); err != nil {
			return err
		}
		asm.EmitU32(bytecode.Jump, top)
		asm.PatchU32(exit, asm.Pos())
		return nil

	case ast.StmtIf:
		data := stmts.If(id)
		if err := fr.compileExpr(data.Cond); err != nil {
			return err
		}
		toElse := asm.EmitJump(bytecode.JumpFalse)
		fr.depth--
		if err := fr.compileScoped(data.Then); err != nil {
			return err
		}
		if data.Else.IsValid() {
			toEnd := asm.EmitJump(bytecode.Jump)
			asm.PatchU32(toElse, asm.Pos())
			if err := fr.compileScoped(data.Else); err != nil {
				return err
			}
			asm.PatchU32(toEnd, asm.Pos())
		} else {
			asm.PatchU32(toElse, asm.Pos())
		}
		return nil

	case ast.StmtBlock:
		return fr.compileBlock(id)

	default:
		return &Error{Loc: stmt.Loc, Msg: fmt.Sprintf("unsupported statement kind %d", stmt.Kind)}
	}
}

func (fr *frame) compileBlock(id ast.StmtID) error {
	entryDepth := fr.depth
	entryLocals := len(fr.locals)
	for _, stmtID := range fr.c.b.Stmts.Block(id).Body {
		if err := fr.compileStmt(stmtID); err != nil {
			return err
		}
	}
	fr.popScope(entryDepth, entryLocals)
	return nil
}

// compileScoped compiles a single-statement body (while body, if branch) in
// its own scope, so a let declared there does not leak a stack slot past the
// join point.
func (fr *frame) compileScoped(id ast.StmtID) error {
	entryDepth := fr.depth
	entryLocals := len(fr.locals)
	if err := fr.compileStmt(id); err != nil {
		return err
	}
	fr.popScope(entryDepth, entryLocals)
	return nil
}

// popScope drops the slots of locals declared since the scope was entered.
func (fr *frame) popScope(entryDepth, entryLocals int) {
	for fr.depth > entryDepth {
		fr.c.asm.Emit(bytecode.Pop)
		fr.depth--
	}
	fr.locals = fr.locals[:entryLocals]
}

func (fr *frame) compileExpr(id ast.ExprID) error {
	exprs := fr.c.b.Exprs
	expr := exprs.Get(id)
	asm := fr.c.asm

	switch expr.Kind {
	case ast.ExprInt:
		asm.EmitU64(bytecode.PushInt, exprs.Int(id).Value)
		fr.depth++
		return nil

	case ast.ExprRef:
		return fr.compileRef(id)

	case ast.ExprBinary:
		data := exprs.Binary(id)
		if err := fr.compileExpr(data.LHS); err != nil {
			return err
		}
		if err := fr.compileExpr(data.RHS); err != nil {
			return err
		}
		switch data.Op {
		case ast.BinAdd:
			asm.Emit(bytecode.Add)
		case ast.BinSub:
			asm.Emit(bytecode.Sub)
		case ast.BinMul:
			asm.Emit(bytecode.Mul)
		case ast.BinEquals:
			asm.Emit(bytecode.Equals)
		}
		fr.depth--
		return nil

	case ast.ExprCall:
		data := exprs.Call(id)
		if err := fr.compileExpr(data.Callee); err != nil {
			return err
		}
		for _, arg := range data.Args {
			if err := fr.compileExpr(arg); err != nil {
				return err
			}
		}
		argc, err := safecast.Conv[uint8](len(data.Args))
		if err != nil {
			return &Error{Loc: expr.Loc, Msg: fmt.Sprintf("too many call arguments (%d)", len(data.Args))}
		}
		asm.EmitU8(bytecode.Call, argc)
		// Callee and arguments are consumed, one result is pushed.
		fr.depth -= len(data.Args)
		return nil

	default:
		return &Error{Loc: expr.Loc, Msg: fmt.Sprintf("unsupported expression kind %d", expr.Kind)}
	}
}

// compileRef resolves an identifier: innermost local first, then the global
// func/proto tables.
func (fr *frame) compileRef(id ast.ExprID) error {
	exprs := fr.c.b.Exprs
	expr := exprs.Get(id)
	name := exprs.Ref(id).Name

	for i := len(fr.locals) - 1; i >= 0; i-- {
		if fr.locals[i].name != name {
			continue
		}
		depthFromTop, err := safecast.Conv[uint32](fr.depth - 1 - fr.locals[i].slot)
		if err != nil {
			return &Error{Loc: expr.Loc, Msg: fmt.Sprintf("stack depth overflow referencing '%s'", name)}
		}
		fr.c.asm.EmitU32(bytecode.Peek, depthFromTop)
		fr.depth++
		return nil
	}

	if g, ok := fr.c.globals[name]; ok {
		switch g.kind {
		case symFunc:
			fr.c.asm.EmitU32(bytecode.PushFunc, g.id)
		case symProto:
			fr.c.asm.EmitU32(bytecode.PushProto, g.id)
		}
		fr.depth++
		return nil
	}

	return &Error{Loc: expr.Loc, Msg: fmt.Sprintf("unknown identifier '%s'", name)}
}
