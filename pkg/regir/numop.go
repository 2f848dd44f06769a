package regir

import (
	"math"
	"math/bits"

	"github.com/minz/wasmreg/pkg/wasmshape"
)

// NumOp is a canonical (type-erased) numeric operator. The visitor
// dispatches on (NumOp, ValType) to find both the constant-folding
// function and the family of opcodes (register-register, Imm16-rhs,
// Imm16-lhs) available for it — this is the encoding-selection
// contract expressed as data instead of one handler per concrete
// opcode.
type NumOp uint8

const (
	NumAdd NumOp = iota
	NumSub
	NumMul
	NumDivS
	NumDivU
	NumRemS
	NumRemU
	NumAnd
	NumOr
	NumXor
	NumShl
	NumShrS
	NumShrU
	NumRotl
	NumRotr
	NumEq
	NumNe
	NumLtS
	NumLtU
	NumGtS
	NumGtU
	NumLeS
	NumLeU
	NumGeS
	NumGeU
	NumFAdd
	NumFSub
	NumFMul
	NumFDiv
	NumFMin
	NumFMax
	NumFCopysign
	NumFEq
	NumFNe
	NumFLt
	NumFGt
	NumFLe
	NumFGe
)

// Commutative reports whether operand order doesn't affect the result,
// which determines whether an Imm16 constant may be folded on the right
// alone (commutative) or needs both _lhs/_rhs variants.
func (n NumOp) Commutative() bool {
	switch n {
	case NumAdd, NumMul, NumAnd, NumOr, NumXor, NumEq, NumNe,
		NumFAdd, NumFMul, NumFEq, NumFNe, NumFMin, NumFMax:
		return true
	default:
		return false
	}
}

// IsDivRem reports whether n is one of the operators whose constant
// zero right-hand side is a trapping condition
// rather than an ordinary fold.
func (n NumOp) IsDivRem() bool {
	switch n {
	case NumDivS, NumDivU, NumRemS, NumRemU:
		return true
	default:
		return false
	}
}

func (n NumOp) IsFloat() bool { return n >= NumFAdd }

func (n NumOp) IsComparison() bool {
	switch n {
	case NumEq, NumNe, NumLtS, NumLtU, NumGtS, NumGtU, NumLeS, NumLeU, NumGeS, NumGeU,
		NumFEq, NumFNe, NumFLt, NumFGt, NumFLe, NumFGe:
		return true
	default:
		return false
	}
}

// EvalInt performs the integer fold for n over (a, b) at the given
// width (32 or 64). ok is false for the div/rem-by-zero case and for
// the signed-division overflow case (see DivRemOverflows), which the
// caller must lower to a Trap instead of folding.
func EvalInt(n NumOp, width int, a, b int64) (result int64, ok bool) {
	mask := uint64(math.MaxUint32)
	bitWidth := 32
	if width == 64 {
		mask = math.MaxUint64
		bitWidth = 64
	}
	ua, ub := uint64(a)&mask, uint64(b)&mask
	switch n {
	case NumAdd:
		return int64((ua + ub) & mask), true
	case NumSub:
		return int64((ua - ub) & mask), true
	case NumMul:
		return int64((ua * ub) & mask), true
	case NumDivS:
		sa, sb := signExtend(ua, bitWidth), signExtend(ub, bitWidth)
		if sb == 0 {
			return 0, false
		}
		if sa == math.MinInt64 && bitWidth == 64 && sb == -1 {
			return 0, false // overflow, handled by caller as a distinct trap
		}
		if bitWidth == 32 && sa == math.MinInt32 && sb == -1 {
			return 0, false
		}
		return int64(uint64(sa/sb) & mask), true
	case NumDivU:
		if ub == 0 {
			return 0, false
		}
		return int64((ua / ub) & mask), true
	case NumRemS:
		sa, sb := signExtend(ua, bitWidth), signExtend(ub, bitWidth)
		if sb == 0 {
			return 0, false
		}
		if sb == -1 {
			return 0, true // a % -1 == 0, never overflows
		}
		return int64(uint64(sa%sb) & mask), true
	case NumRemU:
		if ub == 0 {
			return 0, false
		}
		return int64((ua % ub) & mask), true
	case NumAnd:
		return int64(ua & ub), true
	case NumOr:
		return int64(ua | ub), true
	case NumXor:
		return int64(ua ^ ub), true
	case NumShl:
		shift := uint(ub) % uint(bitWidth)
		return int64((ua << shift) & mask), true
	case NumShrS:
		sa := signExtend(ua, bitWidth)
		shift := uint(ub) % uint(bitWidth)
		return int64(uint64(sa>>shift) & mask), true
	case NumShrU:
		shift := uint(ub) % uint(bitWidth)
		return int64((ua >> shift) & mask), true
	case NumRotl:
		shift := uint(ub) % uint(bitWidth)
		if bitWidth == 32 {
			return int64(uint64(bits.RotateLeft32(uint32(ua), int(shift)))), true
		}
		return int64(bits.RotateLeft64(ua, int(shift))), true
	case NumRotr:
		shift := uint(ub) % uint(bitWidth)
		if bitWidth == 32 {
			return int64(uint64(bits.RotateLeft32(uint32(ua), -int(shift)))), true
		}
		return int64(bits.RotateLeft64(ua, -int(shift))), true
	case NumEq:
		return boolInt(ua == ub), true
	case NumNe:
		return boolInt(ua != ub), true
	case NumLtS:
		return boolInt(signExtend(ua, bitWidth) < signExtend(ub, bitWidth)), true
	case NumLtU:
		return boolInt(ua < ub), true
	case NumGtS:
		return boolInt(signExtend(ua, bitWidth) > signExtend(ub, bitWidth)), true
	case NumGtU:
		return boolInt(ua > ub), true
	case NumLeS:
		return boolInt(signExtend(ua, bitWidth) <= signExtend(ub, bitWidth)), true
	case NumLeU:
		return boolInt(ua <= ub), true
	case NumGeS:
		return boolInt(signExtend(ua, bitWidth) >= signExtend(ub, bitWidth)), true
	case NumGeU:
		return boolInt(ua >= ub), true
	default:
		panic("regir: EvalInt called with non-integer NumOp")
	}
}

// DivRemOverflows reports the i32.div_s(MIN,-1)/i64.div_s(MIN,-1) trap
// case, distinct from division by zero.
func DivRemOverflows(n NumOp, width int, a, b int64) bool {
	if n != NumDivS {
		return false
	}
	mask := uint64(math.MaxUint32)
	bitWidth := 32
	if width == 64 {
		mask = math.MaxUint64
		bitWidth = 64
	}
	sa, sb := signExtend(uint64(a)&mask, bitWidth), signExtend(uint64(b)&mask, bitWidth)
	if sb != -1 {
		return false
	}
	if bitWidth == 32 {
		return sa == math.MinInt32
	}
	return sa == math.MinInt64
}

func signExtend(u uint64, bitWidth int) int64 {
	if bitWidth == 32 {
		return int64(int32(uint32(u)))
	}
	return int64(u)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// EvalFloat performs the float fold for n over (a, b), width 32 or 64,
// matching Wasm's IEEE-754 semantics including NaN propagation: if either
// operand is NaN, the result is the canonical quiet-NaN bit pattern for
// the width, whatever the operands' NaN payloads were.
func EvalFloat(n NumOp, width int, a, b uint64) (result uint64) {
	if width == 32 {
		fa, fb := math.Float32frombits(uint32(a)), math.Float32frombits(uint32(b))
		if r, isNaN := foldNaN32(fa, fb); isNaN {
			return uint64(math.Float32bits(r))
		}
		return uint64(math.Float32bits(evalFloat32(n, fa, fb)))
	}
	fa, fb := math.Float64frombits(a), math.Float64frombits(b)
	if r, isNaN := foldNaN64(fa, fb); isNaN {
		return math.Float64bits(r)
	}
	return math.Float64bits(evalFloat64(n, fa, fb))
}

const canonicalNaN32 = 0x7fc00000
const canonicalNaN64 = 0x7ff8000000000000

func foldNaN32(a, b float32) (float32, bool) {
	switch {
	case math.IsNaN(float64(a)):
		return math.Float32frombits(canonicalNaN32), true
	case math.IsNaN(float64(b)):
		return math.Float32frombits(canonicalNaN32), true
	default:
		return 0, false
	}
}

func foldNaN64(a, b float64) (float64, bool) {
	switch {
	case math.IsNaN(a):
		return math.Float64frombits(canonicalNaN64), true
	case math.IsNaN(b):
		return math.Float64frombits(canonicalNaN64), true
	default:
		return 0, false
	}
}

func evalFloat32(n NumOp, a, b float32) float32 {
	switch n {
	case NumFAdd:
		return a + b
	case NumFSub:
		return a - b
	case NumFMul:
		return a * b
	case NumFDiv:
		return a / b
	case NumFMin:
		return float32(math.Min(float64(a), float64(b)))
	case NumFMax:
		return float32(math.Max(float64(a), float64(b)))
	case NumFCopysign:
		return float32(math.Copysign(float64(a), float64(b)))
	default:
		panic("regir: evalFloat32 called with non-arithmetic NumOp")
	}
}

func evalFloat64(n NumOp, a, b float64) float64 {
	switch n {
	case NumFAdd:
		return a + b
	case NumFSub:
		return a - b
	case NumFMul:
		return a * b
	case NumFDiv:
		return a / b
	case NumFMin:
		return math.Min(a, b)
	case NumFMax:
		return math.Max(a, b)
	case NumFCopysign:
		return math.Copysign(a, b)
	default:
		panic("regir: evalFloat64 called with non-arithmetic NumOp")
	}
}

// EvalFloatCompare folds a floating comparison. NaN operands make every
// comparison false except Ne, which is true (IEEE-754 unordered rules).
func EvalFloatCompare(n NumOp, width int, a, b uint64) bool {
	var fa, fb float64
	var nan bool
	if width == 32 {
		x, y := math.Float32frombits(uint32(a)), math.Float32frombits(uint32(b))
		nan = math.IsNaN(float64(x)) || math.IsNaN(float64(y))
		fa, fb = float64(x), float64(y)
	} else {
		fa, fb = math.Float64frombits(a), math.Float64frombits(b)
		nan = math.IsNaN(fa) || math.IsNaN(fb)
	}
	if nan {
		return n == NumFNe
	}
	switch n {
	case NumFEq:
		return fa == fb
	case NumFNe:
		return fa != fb
	case NumFLt:
		return fa < fb
	case NumFGt:
		return fa > fb
	case NumFLe:
		return fa <= fb
	case NumFGe:
		return fa >= fb
	default:
		panic("regir: EvalFloatCompare called with non-comparison NumOp")
	}
}

// ValTypeWidth returns 32 or 64 for an integer ValType.
func ValTypeWidth(t wasmshape.ValType) int {
	if t == wasmshape.ValTypeI64 {
		return 64
	}
	return 32
}
