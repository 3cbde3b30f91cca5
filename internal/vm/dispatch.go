package vm

import (
	"fmt"

	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
)

// step fetches, decodes, and executes one instruction.
func (in *Interp) step() {
	opPC := in.pc
	cur := in.prog.At(in.pc)

	op, err := cur.Op()
	if err != nil {
		in.fail(FaultDecode, opPC, 0, "%v", err)
		return
	}

	if in.trace != nil {
		fmt.Fprintf(in.trace, "%04x  %-10s depth=%d frames=%d\n", opPC, op, len(in.stack), len(in.frames))
	}

	switch op {
	case bytecode.PushInt:
		v, err := cur.U64()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		in.PushInt(int64(v))
		in.pc = cur.PC

	case bytecode.PushFunc:
		id, err := cur.U32()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		if _, ok := in.prog.Func(id); !ok {
			in.fail(FaultBadReference, opPC, op, "no function with id %d", id)
			return
		}
		in.Push(FuncValue(id))
		in.pc = cur.PC

	case bytecode.PushProto:
		id, err := cur.U32()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		if _, ok := in.prog.Proto(id); !ok {
			in.fail(FaultBadReference, opPC, op, "no prototype with id %d", id)
			return
		}
		in.Push(ProtoValue(id))
		in.pc = cur.PC

	case bytecode.Peek:
		depth, err := cur.U32()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		idx := len(in.stack) - 1 - int(depth)
		if idx < 0 {
			in.fail(FaultStackUnderflow, opPC, op, "peek depth %d exceeds stack depth %d", depth, len(in.stack))
			return
		}
		in.Push(in.stack[idx])
		in.pc = cur.PC

	case bytecode.Pop:
		if _, ok := in.pop(opPC, op); ok {
			in.pc = cur.PC
		}

	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Equals:
		in.execBinary(opPC, op)
		if in.state == Running {
			in.pc = cur.PC
		}

	case bytecode.Call:
		argc, err := cur.U8()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		in.pc = cur.PC
		in.execCall(opPC, int(argc))

	case bytecode.Ret:
		in.execRet(opPC)

	case bytecode.Jump:
		target, err := cur.U32()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		in.pc = target

	case bytecode.JumpFalse:
		target, err := cur.U32()
		if err != nil {
			in.fail(FaultDecode, opPC, op, "%v", err)
			return
		}
		cond, ok := in.pop(opPC, op)
		if !ok {
			return
		}
		if cond.Kind != ValInt {
			in.fail(FaultTypeMismatch, opPC, op, "condition is %s, expected integer", cond)
			return
		}
		if cond.Int == 0 {
			in.pc = target
		} else {
			in.pc = cur.PC
		}

	case bytecode.Stop:
		in.state = Halted

	default:
		in.fail(FaultUnknownOpcode, opPC, op, "undecodable opcode 0x%02x", uint8(op))
	}
}

func (in *Interp) pop(opPC uint32, op bytecode.Opcode) (Value, bool) {
	if len(in.stack) == 0 {
		in.fail(FaultStackUnderflow, opPC, op, "operand stack underflow")
		return Value{}, false
	}
	v := in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
	return v, true
}

func (in *Interp) execBinary(opPC uint32, op bytecode.Opcode) {
	rhs, ok := in.pop(opPC, op)
	if !ok {
		return
	}
	lhs, ok := in.pop(opPC, op)
	if !ok {
		return
	}
	if lhs.Kind != ValInt || rhs.Kind != ValInt {
		in.fail(FaultTypeMismatch, opPC, op, "operands are %s and %s, expected integers", lhs, rhs)
		return
	}

	switch op {
	case bytecode.Add:
		in.PushInt(lhs.Int + rhs.Int)
	case bytecode.Sub:
		in.PushInt(lhs.Int - rhs.Int)
	case bytecode.Mul:
		in.PushInt(lhs.Int * rhs.Int)
	case bytecode.Equals:
		if lhs.Int == rhs.Int {
			in.PushInt(1)
		} else {
			in.PushInt(0)
		}
	}
}

// execCall dispatches CALL: the callee sits below its argc arguments.
func (in *Interp) execCall(opPC uint32, argc int) {
	calleeIdx := len(in.stack) - argc - 1
	if calleeIdx < 0 {
		in.fail(FaultStackUnderflow, opPC, bytecode.Call, "call with %d argument(s) on stack of depth %d", argc, len(in.stack))
		return
	}
	callee := in.stack[calleeIdx]

	switch callee.Kind {
	case ValFunc:
		fn, _ := in.prog.Func(callee.Ref)
		if fn.NumParams != argc {
			in.fail(FaultArityMismatch, opPC, bytecode.Call, "'%s' takes %d argument(s), got %d", fn.Name, fn.NumParams, argc)
			return
		}
		if len(in.frames) >= in.maxCallDepth {
			in.fail(FaultCallDepth, opPC, bytecode.Call, "call stack overflow at depth %d", len(in.frames))
			return
		}
		in.frames = append(in.frames, Frame{RetPC: in.pc, Base: calleeIdx})
		in.pc = fn.Entry

	case ValProto:
		proto, _ := in.prog.Proto(callee.Ref)
		if proto.NumParams != argc {
			in.fail(FaultArityMismatch, opPC, bytecode.Call, "'%s' takes %d argument(s), got %d", proto.Name, proto.NumParams, argc)
			return
		}
		native, ok := in.natives[proto.Primitive]
		if !ok {
			in.fail(FaultUnknownPrimitive, opPC, bytecode.Call, "no native function %q", proto.Primitive)
			return
		}
		if err := native(in); err != nil {
			in.fail(FaultNative, opPC, bytecode.Call, "%s: %v", proto.Primitive, err)
			return
		}
		// The native popped its arguments and pushed one result; all that
		// remains above the callee slot must be that result.
		if len(in.stack) != calleeIdx+2 {
			in.fail(FaultNative, opPC, bytecode.Call, "%s violated stack discipline: depth %d, expected %d", proto.Primitive, len(in.stack), calleeIdx+2)
			return
		}
		in.stack[calleeIdx] = in.stack[calleeIdx+1]
		in.stack = in.stack[:calleeIdx+1]

	default:
		in.fail(FaultNotCallable, opPC, bytecode.Call, "callee %s is not callable", callee)
	}
}

// execRet pops the current frame, drops the callee and argument slots, and
// propagates the top of the stack as the call's result.
func (in *Interp) execRet(opPC uint32) {
	if len(in.frames) == 0 {
		in.fail(FaultNoFrame, opPC, bytecode.Ret, "return with empty call stack")
		return
	}
	result, ok := in.pop(opPC, bytecode.Ret)
	if !ok {
		return
	}
	fr := in.frames[len(in.frames)-1]
	in.frames = in.frames[:len(in.frames)-1]

	if len(in.stack) < fr.Base {
		in.fail(FaultStackUnderflow, opPC, bytecode.Ret, "frame base %d below stack depth %d", fr.Base, len(in.stack))
		return
	}
	in.stack = in.stack[:fr.Base]
	in.Push(result)
	in.pc = fr.RetPC
}
