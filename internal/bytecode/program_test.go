package bytecode

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestCursorRoundTrip(t *testing.T) {
	asm := NewAssembler()
	asm.EmitU64(PushInt, 0xDEADBEEFCAFE)
	asm.Emit(Stop)
	prog := asm.Finish()

	c := prog.At(0)
	op, err := c.Op()
	if err != nil {
		t.Fatalf("Op() failed: %v", err)
	}
	if op != PushInt {
		t.Fatalf("opcode = %s, want %s", op, PushInt)
	}
	v, err := c.U64()
	if err != nil {
		t.Fatalf("U64() failed: %v", err)
	}
	if v != 0xDEADBEEFCAFE {
		t.Errorf("operand = %#x, want %#x", v, uint64(0xDEADBEEFCAFE))
	}
	op, err = c.Op()
	if err != nil {
		t.Fatalf("Op() failed: %v", err)
	}
	if op != Stop {
		t.Errorf("opcode = %s, want %s", op, Stop)
	}
	if c.PC != prog.Len() {
		t.Errorf("cursor stopped at %d, want %d", c.PC, prog.Len())
	}
}

func TestCursorOperandWidths(t *testing.T) {
	asm := NewAssembler()
	asm.EmitU32(PushFunc, 7)
	asm.EmitU8(Call, 3)
	asm.EmitU32(Jump, 0x01020304)
	prog := asm.Finish()

	c := prog.At(0)
	if op, _ := c.Op(); op != PushFunc {
		t.Fatalf("opcode = %s, want %s", op, PushFunc)
	}
	if id, _ := c.U32(); id != 7 {
		t.Errorf("func id = %d, want 7", id)
	}
	if op, _ := c.Op(); op != Call {
		t.Fatalf("opcode = %s, want %s", op, Call)
	}
	if argc, _ := c.U8(); argc != 3 {
		t.Errorf("argc = %d, want 3", argc)
	}
	if op, _ := c.Op(); op != Jump {
		t.Fatalf("opcode = %s, want %s", op, Jump)
	}
	if tgt, _ := c.U32(); tgt != 0x01020304 {
		t.Errorf("target = %#x, want 0x01020304", tgt)
	}
}

// A read past the end of the buffer must fail, never return garbage.
func TestCursorPastEnd(t *testing.T) {
	asm := NewAssembler()
	asm.Emit(PushInt)
	asm.EmitU32(Jump, 0) // 5 bytes where PUSH_INT wants an 8-byte operand
	prog := asm.Finish()

	c := prog.At(0)
	if _, err := c.Op(); err != nil {
		t.Fatalf("Op() failed: %v", err)
	}
	_, err := c.U64()
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("U64() error = %v, want *DecodeError", err)
	}
	if derr.PC != 1 || derr.Want != 8 {
		t.Errorf("decode error pc=%d want=%d, expected pc=1 want=8", derr.PC, derr.Want)
	}

	empty := New(nil, nil, nil).At(0)
	if _, err := empty.Op(); err == nil {
		t.Error("Op() on empty program succeeded, want error")
	}
}

func TestJumpPatching(t *testing.T) {
	asm := NewAssembler()
	at := asm.EmitJump(JumpFalse)
	asm.Emit(Pop)
	target := asm.Pos()
	asm.Emit(Stop)
	asm.PatchU32(at, target)
	prog := asm.Finish()

	c := prog.At(0)
	if op, _ := c.Op(); op != JumpFalse {
		t.Fatalf("opcode = %s, want %s", op, JumpFalse)
	}
	got, err := c.U32()
	if err != nil {
		t.Fatalf("U32() failed: %v", err)
	}
	if got != target {
		t.Errorf("patched target = %d, want %d", got, target)
	}
}

func TestTables(t *testing.T) {
	asm := NewAssembler()
	fid, err := asm.DeclareFunc("main", 0)
	if err != nil {
		t.Fatalf("DeclareFunc failed: %v", err)
	}
	pid, err := asm.DeclareProto("print_int", "print_int", 1)
	if err != nil {
		t.Fatalf("DeclareProto failed: %v", err)
	}
	asm.Emit(Stop)
	asm.SetFuncEntry(fid, 1)
	prog := asm.Finish()

	fn, ok := prog.Func(fid)
	if !ok {
		t.Fatal("Func lookup failed")
	}
	if fn.Name != "main" || fn.NumParams != 0 || fn.Entry != 1 {
		t.Errorf("func entry = %+v", fn)
	}
	pr, ok := prog.Proto(pid)
	if !ok {
		t.Fatal("Proto lookup failed")
	}
	if pr.Name != "print_int" || pr.Primitive != "print_int" || pr.NumParams != 1 {
		t.Errorf("proto entry = %+v", pr)
	}
	if _, ok := prog.Func(99); ok {
		t.Error("out-of-range func id resolved")
	}
	if _, ok := prog.Proto(99); ok {
		t.Error("out-of-range proto id resolved")
	}
}

func TestOpcodeStrings(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{PushFunc, "PUSH_FUNC"},
		{PushInt, "PUSH_INT"},
		{JumpFalse, "JUMP_FALSE"},
		{Stop, "STOP"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
	if Opcode(numOpcodes).Valid() {
		t.Error("out-of-range opcode reported valid")
	}
	if got := Opcode(200).String(); got != "INVALID" {
		t.Errorf("invalid opcode String() = %q, want %q", got, "INVALID")
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	asm := NewAssembler()
	fid, _ := asm.DeclareFunc("f", 2)
	asm.DeclareProto("print_int", "print_int", 1)
	asm.EmitU64(PushInt, 41)
	asm.Emit(Stop)
	asm.SetFuncEntry(fid, 9)
	prog := asm.Finish()

	data, err := MarshalArtifact(prog)
	if err != nil {
		t.Fatalf("MarshalArtifact failed: %v", err)
	}
	got, err := UnmarshalArtifact(data)
	if err != nil {
		t.Fatalf("UnmarshalArtifact failed: %v", err)
	}
	if got.Len() != prog.Len() {
		t.Errorf("code length = %d, want %d", got.Len(), prog.Len())
	}
	c := got.At(0)
	if op, _ := c.Op(); op != PushInt {
		t.Errorf("first opcode = %s, want %s", op, PushInt)
	}
	if v, _ := c.U64(); v != 41 {
		t.Errorf("operand = %d, want 41", v)
	}
	fn, ok := got.Func(fid)
	if !ok || fn.Name != "f" || fn.NumParams != 2 || fn.Entry != 9 {
		t.Errorf("func entry = %+v ok=%v", fn, ok)
	}
	if got.NumProtos() != 1 {
		t.Errorf("NumProtos = %d, want 1", got.NumProtos())
	}
}

func TestArtifactSchemaRejection(t *testing.T) {
	data, err := msgpack.Marshal(artifact{Schema: ArtifactSchemaVersion + 1})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := UnmarshalArtifact(data); err == nil {
		t.Fatal("UnmarshalArtifact accepted an unknown schema version")
	}

	if _, err := UnmarshalArtifact([]byte{0xc1}); err == nil {
		t.Fatal("UnmarshalArtifact accepted malformed bytes")
	}
}
