package parser_test

import (
	"testing"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
)

// parseExprOf parses a single expression statement and returns its expression.
func parseExprOf(t *testing.T, src string) (ast.ExprID, *ast.Builder) {
	t.Helper()
	m, b := parse(t, src+";")
	if len(m.Items) != 1 {
		t.Fatalf("module has %d items, want 1", len(m.Items))
	}
	stmtID := b.Items.Stmt(m.Items[0]).Stmt
	data := b.Stmts.Expr(stmtID)
	if data == nil {
		t.Fatal("statement is not an expression statement")
	}
	return data.Expr, b
}

// wantBinary asserts id is a binary node with the given operator.
func wantBinary(t *testing.T, b *ast.Builder, id ast.ExprID, op ast.BinaryOp) *ast.ExprBinaryData {
	t.Helper()
	data := b.Exprs.Binary(id)
	if data == nil {
		t.Fatalf("expression kind = %v, want binary", b.Exprs.Get(id).Kind)
	}
	if data.Op != op {
		t.Fatalf("operator = %s, want %s", data.Op, op)
	}
	return data
}

func wantInt(t *testing.T, b *ast.Builder, id ast.ExprID, value uint64) {
	t.Helper()
	data := b.Exprs.Int(id)
	if data == nil {
		t.Fatalf("expression kind = %v, want integer literal", b.Exprs.Get(id).Kind)
	}
	if data.Value != value {
		t.Errorf("value = %d, want %d", data.Value, value)
	}
}

func wantRef(t *testing.T, b *ast.Builder, id ast.ExprID, name string) {
	t.Helper()
	data := b.Exprs.Ref(id)
	if data == nil {
		t.Fatalf("expression kind = %v, want reference", b.Exprs.Get(id).Kind)
	}
	if data.Name != name {
		t.Errorf("name = %q, want %q", data.Name, name)
	}
}

// "1 + 2 * 3" must parse as ADD(1, MUL(2, 3)).
func TestPrecedenceMulOverAdd(t *testing.T) {
	id, b := parseExprOf(t, "1 + 2 * 3")

	add := wantBinary(t, b, id, ast.BinAdd)
	wantInt(t, b, add.LHS, 1)
	mul := wantBinary(t, b, add.RHS, ast.BinMul)
	wantInt(t, b, mul.LHS, 2)
	wantInt(t, b, mul.RHS, 3)
}

// "10 - 3 - 2" must parse as SUB(SUB(10, 3), 2).
func TestLeftAssociativity(t *testing.T) {
	id, b := parseExprOf(t, "10 - 3 - 2")

	outer := wantBinary(t, b, id, ast.BinSub)
	wantInt(t, b, outer.RHS, 2)
	inner := wantBinary(t, b, outer.LHS, ast.BinSub)
	wantInt(t, b, inner.LHS, 10)
	wantInt(t, b, inner.RHS, 3)
}

// Equality binds loosest: "a + 1 == b * 2" is EQUALS(ADD, MUL).
func TestEqualityBindsLoosest(t *testing.T) {
	id, b := parseExprOf(t, "a + 1 == b * 2")

	eq := wantBinary(t, b, id, ast.BinEquals)
	wantBinary(t, b, eq.LHS, ast.BinAdd)
	wantBinary(t, b, eq.RHS, ast.BinMul)
}

// "f(1)(2)" chains: CallExpr(CallExpr(RefExpr(f), [1]), [2]).
func TestCallChaining(t *testing.T) {
	id, b := parseExprOf(t, "f(1)(2)")

	outer := b.Exprs.Call(id)
	if outer == nil {
		t.Fatal("expression is not a call")
	}
	if len(outer.Args) != 1 {
		t.Fatalf("outer call has %d args, want 1", len(outer.Args))
	}
	wantInt(t, b, outer.Args[0], 2)

	inner := b.Exprs.Call(outer.Callee)
	if inner == nil {
		t.Fatal("outer callee is not a call")
	}
	if len(inner.Args) != 1 {
		t.Fatalf("inner call has %d args, want 1", len(inner.Args))
	}
	wantInt(t, b, inner.Args[0], 1)
	wantRef(t, b, inner.Callee, "f")
}

// Call binds tighter than '*': "2 * f(3)" is MUL(2, CALL).
func TestCallBindsTighterThanMul(t *testing.T) {
	id, b := parseExprOf(t, "2 * f(3)")

	mul := wantBinary(t, b, id, ast.BinMul)
	wantInt(t, b, mul.LHS, 2)
	if b.Exprs.Call(mul.RHS) == nil {
		t.Error("rhs is not a call")
	}
}

func TestCallArguments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		argc  int
	}{
		{"no args", "f()", 0},
		{"one arg", "f(1)", 1},
		{"three args", "f(1, x, 2 + 3)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, b := parseExprOf(t, tt.input)
			call := b.Exprs.Call(id)
			if call == nil {
				t.Fatal("expression is not a call")
			}
			if len(call.Args) != tt.argc {
				t.Errorf("got %d args, want %d", len(call.Args), tt.argc)
			}
		})
	}
}

func TestTermExpressions(t *testing.T) {
	refID, b := parseExprOf(t, "counter")
	wantRef(t, b, refID, "counter")

	intID, b := parseExprOf(t, "42")
	wantInt(t, b, intID, 42)
}
