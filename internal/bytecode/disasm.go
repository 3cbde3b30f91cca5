package bytecode

import (
	"fmt"
	"io"
)

// Disasm writes a human-readable listing of the program to w: the function
// and prototype tables first, then one line per instruction.
func Disasm(w io.Writer, p *Program) error {
	for id, fn := range p.funcs {
		fmt.Fprintf(w, "func   %-4d %s/%d entry=%04x\n", id, fn.Name, fn.NumParams, fn.Entry)
	}
	for id, proto := range p.protos {
		fmt.Fprintf(w, "proto  %-4d %s/%d = %q\n", id, proto.Name, proto.NumParams, proto.Primitive)
	}

	c := p.At(0)
	for c.PC < p.Len() {
		pc := c.PC
		op, err := c.Op()
		if err != nil {
			return err
		}
		if !op.Valid() {
			return fmt.Errorf("invalid opcode 0x%02x at %04x", uint8(op), pc)
		}

		switch op {
		case PushFunc, PushProto:
			id, err := c.U32()
			if err != nil {
				return err
			}
			name := "?"
			if op == PushFunc {
				if fn, ok := p.Func(id); ok {
					name = fn.Name
				}
			} else {
				if proto, ok := p.Proto(id); ok {
					name = proto.Name
				}
			}
			fmt.Fprintf(w, "%04x  %-10s %d (%s)\n", pc, op, id, name)
		case PushInt:
			v, err := c.U64()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%04x  %-10s %d\n", pc, op, v)
		case Peek:
			depth, err := c.U32()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%04x  %-10s %d\n", pc, op, depth)
		case Call:
			argc, err := c.U8()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%04x  %-10s %d\n", pc, op, argc)
		case Jump, JumpFalse:
			target, err := c.U32()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%04x  %-10s %04x\n", pc, op, target)
		default:
			fmt.Fprintf(w, "%04x  %s\n", pc, op)
		}
	}
	return nil
}
