package vm

// Frame is one call stack entry: where to resume in the caller and where the
// frame's slots start on the operand stack. Base indexes the callee slot;
// arguments sit directly above it.
type Frame struct {
	RetPC uint32
	Base  int
}
