package regir

import "math"

// maxConstants bounds the constant pool so every entry's index still fits
// the negative half of a signed i16 Reg.
const maxConstants = math.MaxInt16

// ConstPool is the function-local constant pool: entries appended when an
// immediate doesn't fit inline in the chosen IR encoding. Spec calls this
// "deduplication-free" — unlike a typical constant table, pushing the
// same value twice allocates two entries, because the translator never
// needs to compare constants for identity once a Reg has been handed
// back to the value stack.
type ConstPool struct {
	values []TypedVal
}

// Alloc interns v and returns its negative Reg.
func (p *ConstPool) Alloc(v TypedVal) (Reg, error) {
	if len(p.values) >= maxConstants {
		return 0, ErrConstantPoolTooLarge
	}
	p.values = append(p.values, v)
	return RegFromConstIndex(len(p.values) - 1), nil
}

// At returns the value at a negative constant Reg.
func (p *ConstPool) At(r Reg) TypedVal {
	return p.values[r.ConstIndex()]
}

// Len returns the number of interned constants.
func (p *ConstPool) Len() int { return len(p.values) }

// Values exposes the pool in allocation order, for packaging into a
// CompiledFuncEntity.
func (p *ConstPool) Values() []TypedVal { return p.values }

// Reset clears the pool for reuse across functions.
func (p *ConstPool) Reset() { p.values = p.values[:0] }
