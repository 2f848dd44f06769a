package regir

// CompiledFuncEntity is the translator's output for one function: its
// register-frame size, the flat IR instruction sequence (primary words
// interleaved with their parameter-continuation words), and the
// function-local constant pool. A finalizer callback (outside this
// package's concern) takes ownership of this value; nothing here is
// mutated again afterward.
type CompiledFuncEntity struct {
	RegisterCount uint16
	Instructions  []Instruction
	Constants     []TypedVal
}

// Len returns the instruction word count, including continuations.
func (e *CompiledFuncEntity) Len() int { return len(e.Instructions) }
