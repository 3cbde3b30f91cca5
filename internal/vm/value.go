package vm

import "fmt"

// ValueKind discriminates operand stack values.
type ValueKind uint8

const (
	// ValInt is a 64-bit integer.
	ValInt ValueKind = iota
	// ValFunc is a reference to a user function (Ref is the function id).
	ValFunc
	// ValProto is a reference to a native-bound prototype (Ref is the prototype id).
	ValProto
)

// Value is one operand stack slot. All runtime data is fixed-width: an
// integer or a reference into one of the program's tables.
type Value struct {
	Kind ValueKind
	Int  int64
	Ref  uint32
}

// IntValue wraps an integer.
func IntValue(v int64) Value {
	return Value{Kind: ValInt, Int: v}
}

// FuncValue wraps a user function reference.
func FuncValue(id uint32) Value {
	return Value{Kind: ValFunc, Ref: id}
}

// ProtoValue wraps a prototype reference.
func ProtoValue(id uint32) Value {
	return Value{Kind: ValProto, Ref: id}
}

func (v Value) String() string {
	switch v.Kind {
	case ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ValFunc:
		return fmt.Sprintf("func#%d", v.Ref)
	case ValProto:
		return fmt.Sprintf("proto#%d", v.Ref)
	}
	return "invalid"
}
