package ast

import (
	"github.com/HalmaiErik/utcn-imp/internal/source"
)

// ItemKind discriminates top-level items.
type ItemKind uint8

const (
	// ItemProto is a function prototype bound to a native primitive.
	ItemProto ItemKind = iota
	// ItemFunc is a user-defined function.
	ItemFunc
	// ItemStmt is a top-level statement.
	ItemStmt
)

// Param is one (name, type) parameter pair, in declaration order.
type Param struct {
	Name string
	Type string
}

// Item is the top-level node header; Payload indexes the kind's data arena.
type Item struct {
	Kind    ItemKind
	Loc     source.Location
	Payload PayloadID
}

// ItemProtoData declares an external function: a signature forwarded to the
// native runtime entry named Primitive.
type ItemProtoData struct {
	Name       string
	Params     []Param
	ReturnType string
	Primitive  string
}

// ItemFuncData is a user-defined function with a block body.
type ItemFuncData struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       StmtID
}

// ItemStmtData wraps a statement appearing at the top level.
type ItemStmtData struct {
	Stmt StmtID
}

// Items manages allocation of top-level items.
type Items struct {
	Arena  *Arena[Item]
	Protos *Arena[ItemProtoData]
	Funcs  *Arena[ItemFuncData]
	Stmts  *Arena[ItemStmtData]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:  NewArena[Item](capHint),
		Protos: NewArena[ItemProtoData](capHint),
		Funcs:  NewArena[ItemFuncData](capHint),
		Stmts:  NewArena[ItemStmtData](capHint),
	}
}

func (it *Items) new(kind ItemKind, loc source.Location, payload uint32) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind:    kind,
		Loc:     loc,
		Payload: PayloadID(payload),
	}))
}

// NewProto allocates a prototype declaration.
func (it *Items) NewProto(loc source.Location, data ItemProtoData) ItemID {
	return it.new(ItemProto, loc, it.Protos.Allocate(data))
}

// NewFunc allocates a function declaration.
func (it *Items) NewFunc(loc source.Location, data ItemFuncData) ItemID {
	return it.new(ItemFunc, loc, it.Funcs.Allocate(data))
}

// NewStmt allocates a top-level statement item.
func (it *Items) NewStmt(loc source.Location, stmt StmtID) ItemID {
	return it.new(ItemStmt, loc, it.Stmts.Allocate(ItemStmtData{Stmt: stmt}))
}

// Get returns the item header for id.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// Proto returns the payload of an ItemProto node, or nil for other kinds.
func (it *Items) Proto(id ItemID) *ItemProtoData {
	if item := it.Get(id); item != nil && item.Kind == ItemProto {
		return it.Protos.Get(uint32(item.Payload))
	}
	return nil
}

// Func returns the payload of an ItemFunc node, or nil for other kinds.
func (it *Items) Func(id ItemID) *ItemFuncData {
	if item := it.Get(id); item != nil && item.Kind == ItemFunc {
		return it.Funcs.Get(uint32(item.Payload))
	}
	return nil
}

// Stmt returns the payload of an ItemStmt node, or nil for other kinds.
func (it *Items) Stmt(id ItemID) *ItemStmtData {
	if item := it.Get(id); item != nil && item.Kind == ItemStmt {
		return it.Stmts.Get(uint32(item.Payload))
	}
	return nil
}
