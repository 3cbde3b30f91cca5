package bytecode

import (
	"encoding/binary"
	"fmt"
)

// FuncInfo describes one user function: its entry point is an absolute offset
// into the code buffer.
type FuncInfo struct {
	Name      string
	NumParams int
	Entry     uint32
}

// ProtoInfo describes one native-bound prototype. Primitive is the name
// looked up in the native runtime table at call time.
type ProtoInfo struct {
	Name      string
	Primitive string
	NumParams int
}

// Program holds the compiled output: an immutable code buffer plus the
// function and prototype tables PUSH_FUNC/PUSH_PROTO ids index into.
// The VM never mutates a Program; it only advances cursors over it.
type Program struct {
	code   []byte
	funcs  []FuncInfo
	protos []ProtoInfo
}

// New creates a program over code and its tables. The caller hands over
// ownership of all three slices.
func New(code []byte, funcs []FuncInfo, protos []ProtoInfo) *Program {
	return &Program{code: code, funcs: funcs, protos: protos}
}

// Len returns the code buffer length in bytes.
func (p *Program) Len() uint32 {
	return uint32(len(p.code))
}

// Func returns the function table entry for id.
func (p *Program) Func(id uint32) (FuncInfo, bool) {
	if int(id) >= len(p.funcs) {
		return FuncInfo{}, false
	}
	return p.funcs[id], true
}

// Proto returns the prototype table entry for id.
func (p *Program) Proto(id uint32) (ProtoInfo, bool) {
	if int(id) >= len(p.protos) {
		return ProtoInfo{}, false
	}
	return p.protos[id], true
}

// NumFuncs returns the function table size.
func (p *Program) NumFuncs() int {
	return len(p.funcs)
}

// NumProtos returns the prototype table size.
func (p *Program) NumProtos() int {
	return len(p.protos)
}

// DecodeError reports a typed read past the end of the code buffer. It is a
// contract violation: the program was truncated or an operand width lied.
// A read never returns garbage instead.
type DecodeError struct {
	PC   uint32
	Want uint32
	Have uint32
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode past end of program: pc=%d want=%d byte(s) have=%d", e.PC, e.Want, e.Have)
}

// Cursor reads fixed-width little-endian values from the program code,
// advancing the program counter past each read.
type Cursor struct {
	prog *Program
	PC   uint32
}

// At returns a cursor positioned at pc.
func (p *Program) At(pc uint32) Cursor {
	return Cursor{prog: p, PC: pc}
}

func (c *Cursor) take(n uint32) ([]byte, error) {
	if uint64(c.PC)+uint64(n) > uint64(len(c.prog.code)) {
		return nil, &DecodeError{PC: c.PC, Want: n, Have: c.prog.Len() - min(c.PC, c.prog.Len())}
	}
	b := c.prog.code[c.PC : c.PC+n]
	c.PC += n
	return b, nil
}

// Op reads the next byte as an opcode.
func (c *Cursor) Op() (Opcode, error) {
	v, err := c.U8()
	return Opcode(v), err
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U32 reads a little-endian 32-bit value.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U64 reads a little-endian 64-bit value.
func (c *Cursor) U64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
