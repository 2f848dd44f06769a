package regir

import (
	"fmt"
	"math"

	"github.com/minz/wasmreg/pkg/wasmshape"
)

// TypedVal is a value type paired with its untyped 64-bit bit pattern,
// the payload every numeric/reference constant is stored as (matching
// wasmi's UntypedVal convention so bit patterns, not language-level
// numbers, are what gets folded and compared).
type TypedVal struct {
	Type wasmshape.ValType
	Bits uint64
}

func I32Val(v int32) TypedVal  { return TypedVal{wasmshape.ValTypeI32, uint64(uint32(v))} }
func I64Val(v int64) TypedVal  { return TypedVal{wasmshape.ValTypeI64, uint64(v)} }
func F32Val(v float32) TypedVal {
	return TypedVal{wasmshape.ValTypeF32, uint64(math.Float32bits(v))}
}
func F64Val(v float64) TypedVal {
	return TypedVal{wasmshape.ValTypeF64, math.Float64bits(v)}
}

func (v TypedVal) I32() int32     { return int32(uint32(v.Bits)) }
func (v TypedVal) I64() int64     { return int64(v.Bits) }
func (v TypedVal) F32() float32   { return math.Float32frombits(uint32(v.Bits)) }
func (v TypedVal) F64() float64   { return math.Float64frombits(v.Bits) }

// IsZero reports whether the value's bit pattern is the all-zero pattern
// for its type. Used by the x+0/x*0/x|0 family of algebraic identities.
func (v TypedVal) IsZero() bool {
	switch v.Type {
	case wasmshape.ValTypeF32:
		return v.Bits == 0 || v.Bits == uint64(math.Float32bits(float32(math.Copysign(0, -1))))
	case wasmshape.ValTypeF64:
		return v.Bits == 0 || v.Bits == math.Float64bits(math.Copysign(0, -1))
	default:
		return v.Bits == 0
	}
}

// IsAllOnes reports whether the value is the all-ones bit pattern for an
// integer type (the x&-1=x identity).
func (v TypedVal) IsAllOnes() bool {
	switch v.Type {
	case wasmshape.ValTypeI32:
		return uint32(v.Bits) == 0xFFFFFFFF
	case wasmshape.ValTypeI64:
		return v.Bits == 0xFFFFFFFFFFFFFFFF
	default:
		return false
	}
}

// FitsImm16 reports whether the value fits a 16-bit field in the
// encoding the given opcode family expects: signed when signed is true,
// unsigned otherwise.
func (v TypedVal) FitsImm16(signed bool) bool {
	switch v.Type {
	case wasmshape.ValTypeI32:
		if signed {
			x := v.I32()
			return x >= math.MinInt16 && x <= math.MaxInt16
		}
		return uint32(v.Bits) <= math.MaxUint16
	case wasmshape.ValTypeI64:
		if signed {
			x := v.I64()
			return x >= math.MinInt16 && x <= math.MaxInt16
		}
		return v.Bits <= math.MaxUint16
	default:
		return false
	}
}

func (v TypedVal) String() string {
	switch v.Type {
	case wasmshape.ValTypeI32:
		return fmt.Sprintf("i32:%d", v.I32())
	case wasmshape.ValTypeI64:
		return fmt.Sprintf("i64:%d", v.I64())
	case wasmshape.ValTypeF32:
		return fmt.Sprintf("f32:%v", v.F32())
	case wasmshape.ValTypeF64:
		return fmt.Sprintf("f64:%v", v.F64())
	default:
		return fmt.Sprintf("%s:0x%x", v.Type, v.Bits)
	}
}
