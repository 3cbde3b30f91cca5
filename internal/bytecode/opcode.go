package bytecode

// Opcode is one byte identifying a VM instruction. Operand bytes, if any,
// follow the opcode directly: no header, no alignment padding.
type Opcode uint8

const (
	// PushFunc pushes a reference to a user function. Operand: u32 function id.
	PushFunc Opcode = iota
	// PushProto pushes a reference to a native-bound prototype. Operand: u32 prototype id.
	PushProto
	// PushInt pushes a literal integer. Operand: u64 value.
	PushInt
	// Peek duplicates the value at the given depth onto the top.
	// Operand: u32 depth from the top, 0 = top of stack.
	Peek
	// Pop discards the top of the stack.
	Pop
	// Call pops callee plus N arguments, invokes, pushes one result.
	// Operand: u8 argument count.
	Call
	// Add pops two operands and pushes their sum.
	Add
	// Sub pops two operands and pushes their difference.
	Sub
	// Mul pops two operands and pushes their product.
	Mul
	// Equals pops two operands and pushes 1 if equal, 0 otherwise.
	Equals
	// Ret returns from the current call, propagating the top of the stack.
	Ret
	// JumpFalse pops the condition and jumps if it is zero. Operand: u32 absolute offset.
	JumpFalse
	// Jump transfers control unconditionally. Operand: u32 absolute offset.
	Jump
	// Stop halts execution.
	Stop

	numOpcodes
)

var opcodeNames = [...]string{
	PushFunc:  "PUSH_FUNC",
	PushProto: "PUSH_PROTO",
	PushInt:   "PUSH_INT",
	Peek:      "PEEK",
	Pop:       "POP",
	Call:      "CALL",
	Add:       "ADD",
	Sub:       "SUB",
	Mul:       "MUL",
	Equals:    "EQUALS",
	Ret:       "RET",
	JumpFalse: "JUMP_FALSE",
	Jump:      "JUMP",
	Stop:      "STOP",
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	return op < numOpcodes
}

func (op Opcode) String() string {
	if op.Valid() {
		return opcodeNames[op]
	}
	return "INVALID"
}
