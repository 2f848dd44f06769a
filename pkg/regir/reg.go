// Package regir defines the register-machine intermediate representation:
// the flat instruction word stream, register addressing, the
// function-local constant pool, and the compiled-function entity the
// translator hands off to a finalizer callback.
package regir

import "fmt"

// Reg is a 16-bit signed index into a per-invocation register file.
// Non-negative values address the function's register frame (locals
// first, then dynamically allocated temporaries). Negative values address
// the function-local constant pool, indexed from -1 downward.
type Reg int16

// IsConst reports whether r addresses the constant pool.
func (r Reg) IsConst() bool { return r < 0 }

// ConstIndex returns the zero-based constant-pool index for a constant
// register. Only valid when IsConst() is true.
func (r Reg) ConstIndex() int { return int(-r - 1) }

// RegFromConstIndex builds the Reg for the i'th constant-pool entry.
func RegFromConstIndex(i int) Reg { return Reg(-(i + 1)) }

func (r Reg) String() string {
	if r.IsConst() {
		return fmt.Sprintf("c%d", r.ConstIndex())
	}
	return fmt.Sprintf("r%d", int(r))
}

// RegSpan is a contiguous range of registers: a start register and a
// length known only at the use site (e.g. "however many branch params
// this frame has").
type RegSpan struct {
	Start Reg
}

// Reg returns the i'th register in the span.
func (s RegSpan) Reg(i int) Reg { return s.Start + Reg(i) }

func (s RegSpan) String() string { return fmt.Sprintf("span(%s..)", s.Start) }

// BoundedRegSpan is a RegSpan with an explicit, known length.
type BoundedRegSpan struct {
	Start Reg
	Len   uint16
}

func NewBoundedRegSpan(start Reg, length int) BoundedRegSpan {
	return BoundedRegSpan{Start: start, Len: uint16(length)}
}

// Reg returns the i'th register in the span; panics if i is out of range.
func (s BoundedRegSpan) Reg(i int) Reg {
	if i < 0 || uint16(i) >= s.Len {
		panic(fmt.Sprintf("BoundedRegSpan: index %d out of range [0,%d)", i, s.Len))
	}
	return s.Start + Reg(i)
}

// End returns the register one past the last register in the span.
func (s BoundedRegSpan) End() Reg { return s.Start + Reg(s.Len) }

// Overlaps reports whether s and other share at least one register.
func (s BoundedRegSpan) Overlaps(other BoundedRegSpan) bool {
	if s.Len == 0 || other.Len == 0 {
		return false
	}
	return s.Start < other.End() && other.Start < s.End()
}

// Disjoint is the converse of Overlaps, spelled out because the copy-span
// encoding rule is phrased as a disjointness proof:
// (result_start+len <= value_start) || (value_start+len <= result_start).
func (s BoundedRegSpan) Disjoint(other BoundedRegSpan) bool {
	return !s.Overlaps(other)
}

// ToSlice materializes the span's registers. Only used by tests; the
// hot translation path never allocates this.
func (s BoundedRegSpan) ToSlice() []Reg {
	out := make([]Reg, s.Len)
	for i := range out {
		out[i] = s.Reg(i)
	}
	return out
}
