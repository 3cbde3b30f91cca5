package ast

// Builder bundles the arenas for one compilation. It outlives parsing,
// lowering, and any diagnostics that still point into the tree.
type Builder struct {
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
}

// NewBuilder creates a builder whose arenas are preallocated to capHint
// elements each; 0 picks a small default.
func NewBuilder(capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Builder{
		Items: NewItems(capHint),
		Stmts: NewStmts(capHint),
		Exprs: NewExprs(capHint),
	}
}

// Module is an ordered sequence of top-level items. Order is significant:
// it is both declaration order and top-level execution order.
type Module struct {
	Items []ItemID
}
