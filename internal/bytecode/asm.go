package bytecode

import (
	"encoding/binary"

	"fortio.org/safecast"
)

// Assembler builds a Program by appending instructions. Jump targets that are
// not known yet are emitted as placeholders and patched once resolved.
type Assembler struct {
	code   []byte
	funcs  []FuncInfo
	protos []ProtoInfo
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Pos returns the offset the next emitted byte will land at.
func (a *Assembler) Pos() uint32 {
	return uint32(len(a.code))
}

// Emit appends an opcode with no operand.
func (a *Assembler) Emit(op Opcode) {
	a.code = append(a.code, byte(op))
}

// EmitU8 appends an opcode with a u8 operand.
func (a *Assembler) EmitU8(op Opcode, v uint8) {
	a.code = append(a.code, byte(op), v)
}

// EmitU32 appends an opcode with a little-endian u32 operand.
func (a *Assembler) EmitU32(op Opcode, v uint32) {
	a.code = append(a.code, byte(op))
	a.code = binary.LittleEndian.AppendUint32(a.code, v)
}

// EmitU64 appends an opcode with a little-endian u64 operand.
func (a *Assembler) EmitU64(op Opcode, v uint64) {
	a.code = append(a.code, byte(op))
	a.code = binary.LittleEndian.AppendUint64(a.code, v)
}

// EmitJump appends a jump with a placeholder target and returns the offset
// of the operand for a later PatchU32.
func (a *Assembler) EmitJump(op Opcode) uint32 {
	a.code = append(a.code, byte(op))
	at := a.Pos()
	a.code = binary.LittleEndian.AppendUint32(a.code, 0)
	return at
}

// PatchU32 overwrites the u32 at a previously returned operand offset.
func (a *Assembler) PatchU32(at uint32, v uint32) {
	binary.LittleEndian.PutUint32(a.code[at:at+4], v)
}

// DeclareFunc adds a function table entry with an unresolved entry point and
// returns its id.
func (a *Assembler) DeclareFunc(name string, numParams int) (uint32, error) {
	id, err := safecast.Conv[uint32](len(a.funcs))
	if err != nil {
		return 0, err
	}
	a.funcs = append(a.funcs, FuncInfo{Name: name, NumParams: numParams})
	return id, nil
}

// SetFuncEntry resolves a declared function's entry offset.
func (a *Assembler) SetFuncEntry(id uint32, entry uint32) {
	a.funcs[id].Entry = entry
}

// DeclareProto adds a prototype table entry and returns its id.
func (a *Assembler) DeclareProto(name, primitive string, numParams int) (uint32, error) {
	id, err := safecast.Conv[uint32](len(a.protos))
	if err != nil {
		return 0, err
	}
	a.protos = append(a.protos, ProtoInfo{Name: name, Primitive: primitive, NumParams: numParams})
	return id, nil
}

// Finish seals the assembled output into a Program. The assembler must not
// be used afterwards.
func (a *Assembler) Finish() *Program {
	p := New(a.code, a.funcs, a.protos)
	a.code = nil
	a.funcs = nil
	a.protos = nil
	return p
}
