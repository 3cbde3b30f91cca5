package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
)

// FormatModule writes an indented tree dump of the module.
func FormatModule(w io.Writer, b *ast.Builder, m *ast.Module) error {
	p := astPrinter{w: w, b: b}
	for _, itemID := range m.Items {
		p.item(itemID, 0)
	}
	return p.err
}

type astPrinter struct {
	w   io.Writer
	b   *ast.Builder
	err error
}

func (p *astPrinter) line(indent int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", indent), fmt.Sprintf(format, args...))
}

func params(ps []ast.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Name + ": " + p.Type
	}
	return strings.Join(parts, ", ")
}

func (p *astPrinter) item(id ast.ItemID, indent int) {
	item := p.b.Items.Get(id)
	switch item.Kind {
	case ast.ItemProto:
		data := p.b.Items.Proto(id)
		p.line(indent, "ProtoDecl %s(%s): %s = %q", data.Name, params(data.Params), data.ReturnType, data.Primitive)
	case ast.ItemFunc:
		data := p.b.Items.Func(id)
		p.line(indent, "FuncDecl %s(%s): %s", data.Name, params(data.Params), data.ReturnType)
		p.stmt(data.Body, indent+1)
	case ast.ItemStmt:
		p.stmt(p.b.Items.Stmt(id).Stmt, indent)
	}
}

func (p *astPrinter) stmt(id ast.StmtID, indent int) {
	stmt := p.b.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtExpr:
		p.line(indent, "ExprStmt")
		p.expr(p.b.Stmts.Expr(id).Expr, indent+1)
	case ast.StmtReturn:
		p.line(indent, "ReturnStmt")
		p.expr(p.b.Stmts.Return(id).Expr, indent+1)
	case ast.StmtWhile:
		data := p.b.Stmts.While(id)
		p.line(indent, "WhileStmt")
		p.expr(data.Cond, indent+1)
		p.stmt(data.Body, indent+1)
	case ast.StmtIf:
		data := p.b.Stmts.If(id)
		p.line(indent, "IfStmt")
		p.expr(data.Cond, indent+1)
		p.stmt(data.Then, indent+1)
		if data.Else.IsValid() {
			p.line(indent, "Else")
			p.stmt(data.Else, indent+1)
		}
	case ast.StmtLet:
		data := p.b.Stmts.Let(id)
		p.line(indent, "LetStmt %s: %s", data.Name, data.Type)
		p.expr(data.Init, indent+1)
	case ast.StmtBlock:
		p.line(indent, "BlockStmt")
		for _, stmtID := range p.b.Stmts.Block(id).Body {
			p.stmt(stmtID, indent+1)
		}
	}
}

func (p *astPrinter) expr(id ast.ExprID, indent int) {
	expr := p.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprRef:
		p.line(indent, "RefExpr %s", p.b.Exprs.Ref(id).Name)
	case ast.ExprInt:
		p.line(indent, "IntExpr %d", p.b.Exprs.Int(id).Value)
	case ast.ExprCall:
		data := p.b.Exprs.Call(id)
		p.line(indent, "CallExpr")
		p.expr(data.Callee, indent+1)
		for _, arg := range data.Args {
			p.expr(arg, indent+1)
		}
	case ast.ExprBinary:
		data := p.b.Exprs.Binary(id)
		p.line(indent, "BinaryExpr %s", data.Op)
		p.expr(data.LHS, indent+1)
		p.expr(data.RHS, indent+1)
	}
}
