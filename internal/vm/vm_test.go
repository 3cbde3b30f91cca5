package vm_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/HalmaiErik/utcn-imp/internal/ast"
	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
	"github.com/HalmaiErik/utcn-imp/internal/compiler"
	"github.com/HalmaiErik/utcn-imp/internal/lexer"
	"github.com/HalmaiErik/utcn-imp/internal/parser"
	"github.com/HalmaiErik/utcn-imp/internal/source"
	"github.com/HalmaiErik/utcn-imp/internal/vm"
)

const prelude = `func print_int(x: int): int = "print_int";
func print_newline(): int = "print_newline";
func read_int(): int = "read_int";
`

func compile(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	fs := source.NewFileSet()
	b := ast.NewBuilder(0)
	p := parser.New(lexer.New(fs.AddVirtual("test.imp", []byte(src))), b)
	m, err := p.ParseModule()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	prog, err := compiler.Compile(b, m)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return prog
}

// run compiles src with the prelude, executes it with stdin as input, and
// returns what it printed.
func run(t *testing.T, src, stdin string) string {
	t.Helper()
	prog := compile(t, prelude+src)
	var out bytes.Buffer
	in := vm.New(prog, vm.Options{
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
	})
	if err := in.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if in.State() != vm.Halted {
		t.Fatalf("state = %s, want halted", in.State())
	}
	return out.String()
}

// runFault executes a hand-assembled program and returns the fault.
func runFault(t *testing.T, prog *bytecode.Program) *vm.Fault {
	t.Helper()
	in := vm.New(prog, vm.Options{Stdout: &bytes.Buffer{}})
	err := in.Run()
	if err == nil {
		t.Fatal("run succeeded, want fault")
	}
	if in.State() != vm.Faulted {
		t.Fatalf("state = %s, want faulted", in.State())
	}
	var f *vm.Fault
	if !errors.As(err, &f) {
		t.Fatalf("error type %T, want *vm.Fault", err)
	}
	return f
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"precedence", "1 + 2 * 3", "7"},
		{"left assoc sub", "10 - 3 - 2", "5"},
		{"equals true", "2 + 2 == 4", "1"},
		{"equals false", "1 == 2", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, "print_int("+tt.expr+");", "")
			if got != tt.want {
				t.Errorf("printed %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIfElse(t *testing.T) {
	src := `
let x : int = 3;
if (x == 3) {
	print_int(1);
} else {
	print_int(2);
}
if (x == 4) {
	print_int(3);
} else {
	print_int(4);
}
`
	if got := run(t, src, ""); got != "14" {
		t.Errorf("printed %q, want %q", got, "14")
	}
}

// The language has no assignment, so the loop condition is driven by input:
// the body runs once per zero read and stops at the first nonzero.
func TestWhileLoop(t *testing.T) {
	src := `
while (read_int() == 0) {
	print_int(7);
}
`
	if got := run(t, src, "0 0 0 1"); got != "777" {
		t.Errorf("printed %q, want %q", got, "777")
	}

	neverEntered := `
while (1 == 2) {
	print_int(9);
}
print_int(3);
`
	if got := run(t, neverEntered, ""); got != "3" {
		t.Errorf("printed %q, want %q", got, "3")
	}
}

func TestCountdownByRecursion(t *testing.T) {
	src := `
func upto(n: int): int {
	if (n == 0) {
		return 0;
	}
	upto(n - 1);
	print_int(n);
	return n;
}
upto(4);
`
	if got := run(t, src, ""); got != "1234" {
		t.Errorf("printed %q, want %q", got, "1234")
	}
}

func TestUserFunctions(t *testing.T) {
	src := `
func add(x: int, y: int): int {
	return x + y;
}
func twice(x: int): int {
	return add(x, x);
}
print_int(twice(21));
`
	if got := run(t, src, ""); got != "42" {
		t.Errorf("printed %q, want %q", got, "42")
	}
}

func TestRecursion(t *testing.T) {
	src := `
func fact(n: int): int {
	if (n == 0) {
		return 1;
	}
	return n * fact(n - 1);
}
print_int(fact(6));
`
	if got := run(t, src, ""); got != "720" {
		t.Errorf("printed %q, want %q", got, "720")
	}
}

func TestImplicitZeroReturn(t *testing.T) {
	src := `
func silent(): int {
	let a : int = 9;
}
print_int(silent());
`
	if got := run(t, src, ""); got != "0" {
		t.Errorf("printed %q, want %q", got, "0")
	}
}

func TestReadInt(t *testing.T) {
	src := `print_int(read_int() + read_int());`
	if got := run(t, src, "20 22"); got != "42" {
		t.Errorf("printed %q, want %q", got, "42")
	}
}

func TestPrintNewline(t *testing.T) {
	src := `
print_int(1);
print_newline();
print_int(2);
`
	if got := run(t, src, ""); got != "1\n2" {
		t.Errorf("printed %q, want %q", got, "1\n2")
	}
}

// print_int's result is its argument, so calls compose.
func TestPrintIntPassesThrough(t *testing.T) {
	if got := run(t, "print_int(print_int(5) + 1);", ""); got != "56" {
		t.Errorf("printed %q, want %q", got, "56")
	}
}

func TestCustomNative(t *testing.T) {
	prog := compile(t, `func triple(x: int): int = "triple";
print_int(triple(5));
func print_int(x: int): int = "print_int";
`)
	var out bytes.Buffer
	in := vm.New(prog, vm.Options{
		Stdout: &out,
		Natives: vm.Registry{
			"triple": func(in *vm.Interp) error {
				v, err := in.PopInt()
				if err != nil {
					return err
				}
				in.PushInt(v * 3)
				return nil
			},
		},
	})
	if err := in.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "15" {
		t.Errorf("printed %q, want %q", out.String(), "15")
	}
}

func TestTraceOutput(t *testing.T) {
	prog := compile(t, "1;")
	var trace bytes.Buffer
	in := vm.New(prog, vm.Options{Trace: &trace})
	if err := in.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	listing := trace.String()
	for _, want := range []string{"PUSH_INT", "POP", "STOP"} {
		if !strings.Contains(listing, want) {
			t.Errorf("trace %q missing %q", listing, want)
		}
	}
}

func TestFaults(t *testing.T) {
	tests := []struct {
		name string
		code FaultProgram
		want vm.FaultCode
	}{
		{"stack underflow", func(asm *bytecode.Assembler) {
			asm.Emit(bytecode.Pop)
		}, vm.FaultStackUnderflow},
		{"unknown opcode", func(asm *bytecode.Assembler) {
			asm.Emit(bytecode.Opcode(0xEE))
		}, vm.FaultUnknownOpcode},
		{"truncated operand", func(asm *bytecode.Assembler) {
			asm.Emit(bytecode.PushInt)
		}, vm.FaultDecode},
		{"running off the end", func(asm *bytecode.Assembler) {
			asm.EmitU64(bytecode.PushInt, 1)
			asm.Emit(bytecode.Pop)
		}, vm.FaultDecode},
		{"not callable", func(asm *bytecode.Assembler) {
			asm.EmitU64(bytecode.PushInt, 7)
			asm.EmitU8(bytecode.Call, 0)
		}, vm.FaultNotCallable},
		{"bad function id", func(asm *bytecode.Assembler) {
			asm.EmitU32(bytecode.PushFunc, 42)
		}, vm.FaultBadReference},
		{"type mismatch in add", func(asm *bytecode.Assembler) {
			asm.DeclareFunc("f", 0)
			asm.EmitU32(bytecode.PushFunc, 0)
			asm.EmitU64(bytecode.PushInt, 1)
			asm.Emit(bytecode.Add)
		}, vm.FaultTypeMismatch},
		{"return without frame", func(asm *bytecode.Assembler) {
			asm.EmitU64(bytecode.PushInt, 1)
			asm.Emit(bytecode.Ret)
		}, vm.FaultNoFrame},
		{"peek past bottom", func(asm *bytecode.Assembler) {
			asm.EmitU64(bytecode.PushInt, 1)
			asm.EmitU32(bytecode.Peek, 5)
		}, vm.FaultStackUnderflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm := bytecode.NewAssembler()
			tt.code(asm)
			f := runFault(t, asm.Finish())
			if f.Code != tt.want {
				t.Errorf("fault code = %s, want %s", f.Code, tt.want)
			}
		})
	}
}

type FaultProgram func(asm *bytecode.Assembler)

func TestArityMismatchFault(t *testing.T) {
	asm := bytecode.NewAssembler()
	fid, _ := asm.DeclareFunc("two", 2)
	asm.EmitU32(bytecode.PushFunc, fid)
	asm.EmitU64(bytecode.PushInt, 1)
	asm.EmitU8(bytecode.Call, 1)
	asm.Emit(bytecode.Stop)
	asm.SetFuncEntry(fid, 0)

	f := runFault(t, asm.Finish())
	if f.Code != vm.FaultArityMismatch {
		t.Errorf("fault code = %s, want %s", f.Code, vm.FaultArityMismatch)
	}
	if !strings.Contains(f.Msg, "'two'") {
		t.Errorf("fault message %q does not name the callee", f.Msg)
	}
}

func TestUnknownPrimitiveFault(t *testing.T) {
	asm := bytecode.NewAssembler()
	pid, _ := asm.DeclareProto("p", "no_such_native", 0)
	asm.EmitU32(bytecode.PushProto, pid)
	asm.EmitU8(bytecode.Call, 0)
	asm.Emit(bytecode.Stop)

	f := runFault(t, asm.Finish())
	if f.Code != vm.FaultUnknownPrimitive {
		t.Errorf("fault code = %s, want %s", f.Code, vm.FaultUnknownPrimitive)
	}
}

func TestCallDepthFault(t *testing.T) {
	prog := compile(t, `func loop(): int { return loop(); }
loop();
`)
	in := vm.New(prog, vm.Options{MaxCallDepth: 16})
	err := in.Run()
	var f *vm.Fault
	if !errors.As(err, &f) {
		t.Fatalf("error = %v, want *vm.Fault", err)
	}
	if f.Code != vm.FaultCallDepth {
		t.Errorf("fault code = %s, want %s", f.Code, vm.FaultCallDepth)
	}
}

// A native that pushes more than one result is caught by the dispatcher.
func TestNativeStackDiscipline(t *testing.T) {
	asm := bytecode.NewAssembler()
	pid, _ := asm.DeclareProto("bad", "bad", 0)
	asm.EmitU32(bytecode.PushProto, pid)
	asm.EmitU8(bytecode.Call, 0)
	asm.Emit(bytecode.Stop)
	prog := asm.Finish()

	in := vm.New(prog, vm.Options{
		Natives: vm.Registry{
			"bad": func(in *vm.Interp) error {
				in.PushInt(1)
				in.PushInt(2)
				return nil
			},
		},
	})
	err := in.Run()
	var f *vm.Fault
	if !errors.As(err, &f) {
		t.Fatalf("error = %v, want *vm.Fault", err)
	}
	if f.Code != vm.FaultNative {
		t.Errorf("fault code = %s, want %s", f.Code, vm.FaultNative)
	}
}

func TestFaultFormat(t *testing.T) {
	asm := bytecode.NewAssembler()
	asm.Emit(bytecode.Pop)
	f := runFault(t, asm.Finish())

	msg := f.Error()
	if !strings.Contains(msg, "VM1003") {
		t.Errorf("Error() = %q, want the stable code in it", msg)
	}
	if !strings.Contains(msg, "pc=0000") {
		t.Errorf("Error() = %q, want the faulting pc in it", msg)
	}
}

// The fault is terminal: Run after a fault reports the same fault.
func TestFaultIsSticky(t *testing.T) {
	asm := bytecode.NewAssembler()
	asm.Emit(bytecode.Pop)
	in := vm.New(asm.Finish(), vm.Options{})

	first := in.Run()
	second := in.Run()
	if first == nil || second == nil {
		t.Fatal("expected both runs to report the fault")
	}
	if first.Error() != second.Error() {
		t.Errorf("second run reported %q, first %q", second.Error(), first.Error())
	}
	if in.Fault() == nil {
		t.Error("Fault() = nil after a faulted run")
	}
}
