package ast

import (
	"github.com/HalmaiErik/utcn-imp/internal/source"
)

// StmtKind discriminates statement nodes.
type StmtKind uint8

const (
	// StmtExpr is an expression statement.
	StmtExpr StmtKind = iota
	// StmtReturn is a return statement.
	StmtReturn
	// StmtWhile is a while loop.
	StmtWhile
	// StmtIf is an if statement with an optional else branch.
	StmtIf
	// StmtLet is a variable binding.
	StmtLet
	// StmtBlock is a brace-delimited statement sequence.
	StmtBlock
)

// Stmt is the statement node header; Payload indexes the kind's data arena.
type Stmt struct {
	Kind    StmtKind
	Loc     source.Location
	Payload PayloadID
}

// StmtExprData is the payload of an expression statement.
type StmtExprData struct {
	Expr ExprID
}

// StmtReturnData is the payload of a return statement.
type StmtReturnData struct {
	Expr ExprID
}

// StmtWhileData is the payload of a while loop.
type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtIfData is the payload of an if statement.
// Else is NoStmtID when the else branch is absent.
type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// StmtLetData is the payload of a let binding.
type StmtLetData struct {
	Name string
	Type string
	Init ExprID
}

// StmtBlockData is the payload of a block; Body is in source order.
type StmtBlockData struct {
	Body []StmtID
}

// Stmts manages allocation of statement nodes.
type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Returns *Arena[StmtReturnData]
	Whiles  *Arena[StmtWhileData]
	Ifs     *Arena[StmtIfData]
	Lets    *Arena[StmtLetData]
	Blocks  *Arena[StmtBlockData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Lets:    NewArena[StmtLetData](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, loc source.Location, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Loc:     loc,
		Payload: PayloadID(payload),
	}))
}

// NewExpr allocates an expression statement.
func (s *Stmts) NewExpr(loc source.Location, expr ExprID) StmtID {
	return s.new(StmtExpr, loc, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

// NewReturn allocates a return statement.
func (s *Stmts) NewReturn(loc source.Location, expr ExprID) StmtID {
	return s.new(StmtReturn, loc, s.Returns.Allocate(StmtReturnData{Expr: expr}))
}

// NewWhile allocates a while loop.
func (s *Stmts) NewWhile(loc source.Location, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, loc, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

// NewIf allocates an if statement; pass NoStmtID for a missing else branch.
func (s *Stmts) NewIf(loc source.Location, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, loc, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

// NewLet allocates a let binding.
func (s *Stmts) NewLet(loc source.Location, name, typ string, init ExprID) StmtID {
	return s.new(StmtLet, loc, s.Lets.Allocate(StmtLetData{Name: name, Type: typ, Init: init}))
}

// NewBlock allocates a block statement.
func (s *Stmts) NewBlock(loc source.Location, body []StmtID) StmtID {
	return s.new(StmtBlock, loc, s.Blocks.Allocate(StmtBlockData{Body: body}))
}

// Get returns the statement header for id.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// Expr returns the payload of a StmtExpr node, or nil for other kinds.
func (s *Stmts) Expr(id StmtID) *StmtExprData {
	if stmt := s.Get(id); stmt != nil && stmt.Kind == StmtExpr {
		return s.Exprs.Get(uint32(stmt.Payload))
	}
	return nil
}

// Return returns the payload of a StmtReturn node, or nil for other kinds.
func (s *Stmts) Return(id StmtID) *StmtReturnData {
	if stmt := s.Get(id); stmt != nil && stmt.Kind == StmtReturn {
		return s.Returns.Get(uint32(stmt.Payload))
	}
	return nil
}

// While returns the payload of a StmtWhile node, or nil for other kinds.
func (s *Stmts) While(id StmtID) *StmtWhileData {
	if stmt := s.Get(id); stmt != nil && stmt.Kind == StmtWhile {
		return s.Whiles.Get(uint32(stmt.Payload))
	}
	return nil
}

// If returns the payload of a StmtIf node, or nil for other kinds.
func (s *Stmts) If(id StmtID) *StmtIfData {
	if stmt := s.Get(id); stmt != nil && stmt.Kind == StmtIf {
		return s.Ifs.Get(uint32(stmt.Payload))
	}
	return nil
}

// Let returns the payload of a StmtLet node, or nil for other kinds.
func (s *Stmts) Let(id StmtID) *StmtLetData {
	if stmt := s.Get(id); stmt != nil && stmt.Kind == StmtLet {
		return s.Lets.Get(uint32(stmt.Payload))
	}
	return nil
}

// Block returns the payload of a StmtBlock node, or nil for other kinds.
func (s *Stmts) Block(id StmtID) *StmtBlockData {
	if stmt := s.Get(id); stmt != nil && stmt.Kind == StmtBlock {
		return s.Blocks.Get(uint32(stmt.Payload))
	}
	return nil
}
