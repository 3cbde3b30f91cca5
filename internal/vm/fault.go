package vm

import (
	"fmt"

	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
)

// FaultCode identifies the type of execution fault.
type FaultCode int

// Stable fault codes - do not change values.
const (
	FaultUnknownOpcode    FaultCode = 1001 // VM1001: undecodable opcode
	FaultDecode           FaultCode = 1002 // VM1002: read past end of program
	FaultStackUnderflow   FaultCode = 1003 // VM1003: operand stack underflow
	FaultNotCallable      FaultCode = 1004 // VM1004: callee is not a function
	FaultArityMismatch    FaultCode = 1005 // VM1005: wrong argument count
	FaultUnknownPrimitive FaultCode = 1006 // VM1006: unresolved native name
	FaultTypeMismatch     FaultCode = 1007 // VM1007: non-integer operand
	FaultCallDepth        FaultCode = 1008 // VM1008: call stack overflow
	FaultNoFrame          FaultCode = 1009 // VM1009: RET with empty call stack
	FaultBadReference     FaultCode = 1010 // VM1010: func/proto id out of table range
	FaultNative           FaultCode = 1011 // VM1011: native function failed
)

// String returns the code as "VM1001" format.
func (c FaultCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// Fault is a terminal execution error. None are recoverable mid-program:
// the interpreter stays Faulted once one is raised.
type Fault struct {
	Code FaultCode
	PC   uint32
	Op   bytecode.Opcode
	Msg  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault %s: %s (pc=%04x op=%s)", f.Code, f.Msg, f.PC, f.Op)
}
