package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/HalmaiErik/utcn-imp/internal/bytecode"
)

// State describes where execution stands.
type State uint8

const (
	// Running means the dispatch loop is still making progress.
	Running State = iota
	// Halted means a STOP was executed.
	Halted
	// Faulted means a terminal execution error was raised.
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Options configures interpreter execution.
type Options struct {
	Stdin        io.Reader // input for natives; defaults to os.Stdin
	Stdout       io.Writer // output for natives; defaults to os.Stdout
	Natives      Registry  // merged over the default native table
	MaxCallDepth int       // call stack limit; defaults to 1 << 14
	Trace        io.Writer // per-instruction listing when non-nil
}

// Interp executes one program: a fetch-decode-dispatch loop over the program
// counter, an operand stack, and a call stack. It is single-threaded and
// exclusively owns its runtime state; the program bytes are never mutated.
type Interp struct {
	prog   *bytecode.Program
	stack  []Value
	frames []Frame
	pc     uint32
	state  State
	fault  *Fault

	natives      map[string]Native
	stdin        *bufio.Reader
	stdout       io.Writer
	trace        io.Writer
	maxCallDepth int
}

// New creates an interpreter for prog positioned at offset 0.
func New(prog *bytecode.Program, opts Options) *Interp {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.MaxCallDepth == 0 {
		opts.MaxCallDepth = 1 << 14
	}

	natives := DefaultRegistry()
	for name, fn := range opts.Natives {
		natives[name] = fn
	}

	return &Interp{
		prog:         prog,
		state:        Running,
		natives:      natives,
		stdin:        bufio.NewReader(opts.Stdin),
		stdout:       opts.Stdout,
		trace:        opts.Trace,
		maxCallDepth: opts.MaxCallDepth,
	}
}

// State returns the current execution state.
func (in *Interp) State() State {
	return in.state
}

// Fault returns the terminal fault, if execution faulted.
func (in *Interp) Fault() *Fault {
	return in.fault
}

// Input returns the reader natives consume from.
func (in *Interp) Input() *bufio.Reader {
	return in.stdin
}

// Output returns the writer natives print to.
func (in *Interp) Output() io.Writer {
	return in.stdout
}

// Run executes until STOP or a fault. A program that never reaches either
// runs forever; cancellation is not part of the execution contract.
func (in *Interp) Run() error {
	for in.state == Running {
		in.step()
	}
	if in.state == Faulted {
		return in.fault
	}
	return nil
}

// fail moves the interpreter into the Faulted state. The first fault wins.
func (in *Interp) fail(code FaultCode, pc uint32, op bytecode.Opcode, format string, args ...any) {
	in.state = Faulted
	in.fault = &Fault{
		Code: code,
		PC:   pc,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Push appends a value to the operand stack.
func (in *Interp) Push(v Value) {
	in.stack = append(in.stack, v)
}

// PushInt appends an integer to the operand stack.
func (in *Interp) PushInt(v int64) {
	in.Push(IntValue(v))
}

// PopInt removes the top of the stack, which must be an integer. It is the
// entry point for natives, so it reports plain errors rather than faulting.
func (in *Interp) PopInt() (int64, error) {
	if len(in.stack) == 0 {
		return 0, fmt.Errorf("stack underflow")
	}
	v := in.stack[len(in.stack)-1]
	if v.Kind != ValInt {
		return 0, fmt.Errorf("expected integer on stack, got %s", v)
	}
	in.stack = in.stack[:len(in.stack)-1]
	return v.Int, nil
}

// StackDepth returns the operand stack depth.
func (in *Interp) StackDepth() int {
	return len(in.stack)
}
