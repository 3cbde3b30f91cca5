package ast

import (
	"github.com/HalmaiErik/utcn-imp/internal/source"
)

// ExprKind discriminates expression nodes.
type ExprKind uint8

const (
	// ExprRef is an identifier reference.
	ExprRef ExprKind = iota
	// ExprInt is an integer literal.
	ExprInt
	// ExprCall is a call expression.
	ExprCall
	// ExprBinary is a binary operator expression.
	ExprBinary
)

// BinaryOp enumerates the binary operators.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinEquals
)

func (op BinaryOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinEquals:
		return "=="
	}
	return "?"
}

// Expr is the expression node header; Payload indexes the kind's data arena.
type Expr struct {
	Kind    ExprKind
	Loc     source.Location
	Payload PayloadID
}

// ExprRefData is the payload of an identifier reference.
type ExprRefData struct {
	Name string
}

// ExprIntData is the payload of an integer literal.
type ExprIntData struct {
	Value uint64
}

// ExprCallData is the payload of a call; Args are in source order.
type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

// ExprBinaryData is the payload of a binary operator expression.
type ExprBinaryData struct {
	Op  BinaryOp
	LHS ExprID
	RHS ExprID
}

// Exprs manages allocation of expression nodes.
type Exprs struct {
	Arena    *Arena[Expr]
	Refs     *Arena[ExprRefData]
	Ints     *Arena[ExprIntData]
	Calls    *Arena[ExprCallData]
	Binaries *Arena[ExprBinaryData]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Refs:     NewArena[ExprRefData](capHint),
		Ints:     NewArena[ExprIntData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, loc source.Location, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Loc:     loc,
		Payload: PayloadID(payload),
	}))
}

// NewRef allocates an identifier reference expression.
func (e *Exprs) NewRef(loc source.Location, name string) ExprID {
	return e.new(ExprRef, loc, e.Refs.Allocate(ExprRefData{Name: name}))
}

// NewInt allocates an integer literal expression.
func (e *Exprs) NewInt(loc source.Location, value uint64) ExprID {
	return e.new(ExprInt, loc, e.Ints.Allocate(ExprIntData{Value: value}))
}

// NewCall allocates a call expression.
func (e *Exprs) NewCall(loc source.Location, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, loc, e.Calls.Allocate(ExprCallData{Callee: callee, Args: args}))
}

// NewBinary allocates a binary operator expression.
func (e *Exprs) NewBinary(loc source.Location, op BinaryOp, lhs, rhs ExprID) ExprID {
	return e.new(ExprBinary, loc, e.Binaries.Allocate(ExprBinaryData{Op: op, LHS: lhs, RHS: rhs}))
}

// Get returns the expression header for id.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Ref returns the payload of an ExprRef node, or nil for other kinds.
func (e *Exprs) Ref(id ExprID) *ExprRefData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprRef {
		return e.Refs.Get(uint32(expr.Payload))
	}
	return nil
}

// Int returns the payload of an ExprInt node, or nil for other kinds.
func (e *Exprs) Int(id ExprID) *ExprIntData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprInt {
		return e.Ints.Get(uint32(expr.Payload))
	}
	return nil
}

// Call returns the payload of an ExprCall node, or nil for other kinds.
func (e *Exprs) Call(id ExprID) *ExprCallData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprCall {
		return e.Calls.Get(uint32(expr.Payload))
	}
	return nil
}

// Binary returns the payload of an ExprBinary node, or nil for other kinds.
func (e *Exprs) Binary(id ExprID) *ExprBinaryData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprBinary {
		return e.Binaries.Get(uint32(expr.Payload))
	}
	return nil
}
