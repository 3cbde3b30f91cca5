package bytecode

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisasmListing(t *testing.T) {
	asm := NewAssembler()
	fid, _ := asm.DeclareFunc("main", 0)
	pid, _ := asm.DeclareProto("print_int", "print_int", 1)
	asm.EmitU32(PushProto, pid)
	asm.EmitU64(PushInt, 42)
	asm.EmitU8(Call, 1)
	asm.Emit(Pop)
	asm.Emit(Stop)
	asm.SetFuncEntry(fid, 0)
	prog := asm.Finish()

	var buf bytes.Buffer
	if err := Disasm(&buf, prog); err != nil {
		t.Fatalf("Disasm failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"func   0    main/0",
		"proto  0    print_int/1 = \"print_int\"",
		"PUSH_PROTO 0 (print_int)",
		"PUSH_INT   42",
		"CALL       1",
		"STOP",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestDisasmRejectsInvalidOpcode(t *testing.T) {
	prog := New([]byte{0xEE}, nil, nil)
	var buf bytes.Buffer
	if err := Disasm(&buf, prog); err == nil {
		t.Error("Disasm accepted an invalid opcode")
	}
}
