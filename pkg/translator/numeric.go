package translator

import (
	"math"
	"math/bits"

	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

// isNumericOp reports whether op is one of the arithmetic/comparison/
// bitwise operators dispatched through (regir.NumOp, ValType) or the
// unary family (eqz/clz/ctz/popcnt/neg/abs/sqrt) — the contiguous range
// wasmop.go lays these out in.
func isNumericOp(op WasmOp) bool {
	return op >= OpI32Add && op <= OpF64Sqrt
}

func isConversionOp(op WasmOp) bool {
	return op >= OpI32WrapI64 && op <= OpF64ReinterpretI64
}

type binarySpec struct {
	n regir.NumOp
	t wasmshape.ValType
}

var binaryOps = map[WasmOp]binarySpec{
	OpI32Add: {regir.NumAdd, wasmshape.ValTypeI32}, OpI32Sub: {regir.NumSub, wasmshape.ValTypeI32},
	OpI32Mul: {regir.NumMul, wasmshape.ValTypeI32}, OpI32DivS: {regir.NumDivS, wasmshape.ValTypeI32},
	OpI32DivU: {regir.NumDivU, wasmshape.ValTypeI32}, OpI32RemS: {regir.NumRemS, wasmshape.ValTypeI32},
	OpI32RemU: {regir.NumRemU, wasmshape.ValTypeI32}, OpI32And: {regir.NumAnd, wasmshape.ValTypeI32},
	OpI32Or: {regir.NumOr, wasmshape.ValTypeI32}, OpI32Xor: {regir.NumXor, wasmshape.ValTypeI32},
	OpI32Shl: {regir.NumShl, wasmshape.ValTypeI32}, OpI32ShrS: {regir.NumShrS, wasmshape.ValTypeI32},
	OpI32ShrU: {regir.NumShrU, wasmshape.ValTypeI32}, OpI32Rotl: {regir.NumRotl, wasmshape.ValTypeI32},
	OpI32Rotr: {regir.NumRotr, wasmshape.ValTypeI32}, OpI32Eq: {regir.NumEq, wasmshape.ValTypeI32},
	OpI32Ne: {regir.NumNe, wasmshape.ValTypeI32}, OpI32LtS: {regir.NumLtS, wasmshape.ValTypeI32},
	OpI32LtU: {regir.NumLtU, wasmshape.ValTypeI32}, OpI32GtS: {regir.NumGtS, wasmshape.ValTypeI32},
	OpI32GtU: {regir.NumGtU, wasmshape.ValTypeI32}, OpI32LeS: {regir.NumLeS, wasmshape.ValTypeI32},
	OpI32LeU: {regir.NumLeU, wasmshape.ValTypeI32}, OpI32GeS: {regir.NumGeS, wasmshape.ValTypeI32},
	OpI32GeU: {regir.NumGeU, wasmshape.ValTypeI32},

	OpI64Add: {regir.NumAdd, wasmshape.ValTypeI64}, OpI64Sub: {regir.NumSub, wasmshape.ValTypeI64},
	OpI64Mul: {regir.NumMul, wasmshape.ValTypeI64}, OpI64DivS: {regir.NumDivS, wasmshape.ValTypeI64},
	OpI64DivU: {regir.NumDivU, wasmshape.ValTypeI64}, OpI64RemS: {regir.NumRemS, wasmshape.ValTypeI64},
	OpI64RemU: {regir.NumRemU, wasmshape.ValTypeI64}, OpI64And: {regir.NumAnd, wasmshape.ValTypeI64},
	OpI64Or: {regir.NumOr, wasmshape.ValTypeI64}, OpI64Xor: {regir.NumXor, wasmshape.ValTypeI64},
	OpI64Shl: {regir.NumShl, wasmshape.ValTypeI64}, OpI64ShrS: {regir.NumShrS, wasmshape.ValTypeI64},
	OpI64ShrU: {regir.NumShrU, wasmshape.ValTypeI64}, OpI64Rotl: {regir.NumRotl, wasmshape.ValTypeI64},
	OpI64Rotr: {regir.NumRotr, wasmshape.ValTypeI64}, OpI64Eq: {regir.NumEq, wasmshape.ValTypeI64},
	OpI64Ne: {regir.NumNe, wasmshape.ValTypeI64}, OpI64LtS: {regir.NumLtS, wasmshape.ValTypeI64},
	OpI64LtU: {regir.NumLtU, wasmshape.ValTypeI64}, OpI64GtS: {regir.NumGtS, wasmshape.ValTypeI64},
	OpI64GtU: {regir.NumGtU, wasmshape.ValTypeI64}, OpI64LeS: {regir.NumLeS, wasmshape.ValTypeI64},
	OpI64LeU: {regir.NumLeU, wasmshape.ValTypeI64}, OpI64GeS: {regir.NumGeS, wasmshape.ValTypeI64},
	OpI64GeU: {regir.NumGeU, wasmshape.ValTypeI64},

	OpF32Add: {regir.NumFAdd, wasmshape.ValTypeF32}, OpF32Sub: {regir.NumFSub, wasmshape.ValTypeF32},
	OpF32Mul: {regir.NumFMul, wasmshape.ValTypeF32}, OpF32Div: {regir.NumFDiv, wasmshape.ValTypeF32},
	OpF32Min: {regir.NumFMin, wasmshape.ValTypeF32}, OpF32Max: {regir.NumFMax, wasmshape.ValTypeF32},
	OpF32Copysign: {regir.NumFCopysign, wasmshape.ValTypeF32}, OpF32Eq: {regir.NumFEq, wasmshape.ValTypeF32},
	OpF32Ne: {regir.NumFNe, wasmshape.ValTypeF32}, OpF32Lt: {regir.NumFLt, wasmshape.ValTypeF32},
	OpF32Gt: {regir.NumFGt, wasmshape.ValTypeF32}, OpF32Le: {regir.NumFLe, wasmshape.ValTypeF32},
	OpF32Ge: {regir.NumFGe, wasmshape.ValTypeF32},

	OpF64Add: {regir.NumFAdd, wasmshape.ValTypeF64}, OpF64Sub: {regir.NumFSub, wasmshape.ValTypeF64},
	OpF64Mul: {regir.NumFMul, wasmshape.ValTypeF64}, OpF64Div: {regir.NumFDiv, wasmshape.ValTypeF64},
	OpF64Min: {regir.NumFMin, wasmshape.ValTypeF64}, OpF64Max: {regir.NumFMax, wasmshape.ValTypeF64},
	OpF64Copysign: {regir.NumFCopysign, wasmshape.ValTypeF64}, OpF64Eq: {regir.NumFEq, wasmshape.ValTypeF64},
	OpF64Ne: {regir.NumFNe, wasmshape.ValTypeF64}, OpF64Lt: {regir.NumFLt, wasmshape.ValTypeF64},
	OpF64Gt: {regir.NumFGt, wasmshape.ValTypeF64}, OpF64Le: {regir.NumFLe, wasmshape.ValTypeF64},
	OpF64Ge: {regir.NumFGe, wasmshape.ValTypeF64},
}

type unaryKind uint8

const (
	unaryEqz unaryKind = iota
	unaryClz
	unaryCtz
	unaryPopcnt
	unaryNeg
	unaryAbs
	unarySqrt
)

type unarySpec struct {
	kind   unaryKind
	t      wasmshape.ValType
	opcode regir.Opcode
}

var unaryOps = map[WasmOp]unarySpec{
	OpI32Eqz:    {unaryEqz, wasmshape.ValTypeI32, regir.OpI32Eqz},
	OpI32Clz:    {unaryClz, wasmshape.ValTypeI32, regir.OpI32Clz},
	OpI32Ctz:    {unaryCtz, wasmshape.ValTypeI32, regir.OpI32Ctz},
	OpI32Popcnt: {unaryPopcnt, wasmshape.ValTypeI32, regir.OpI32Popcnt},
	OpI64Eqz:    {unaryEqz, wasmshape.ValTypeI64, regir.OpI64Eqz},

	OpF32Neg:  {unaryNeg, wasmshape.ValTypeF32, regir.OpF32Neg},
	OpF32Abs:  {unaryAbs, wasmshape.ValTypeF32, regir.OpF32Abs},
	OpF32Sqrt: {unarySqrt, wasmshape.ValTypeF32, regir.OpF32Sqrt},
	OpF64Neg:  {unaryNeg, wasmshape.ValTypeF64, regir.OpF64Neg},
	OpF64Abs:  {unaryAbs, wasmshape.ValTypeF64, regir.OpF64Abs},
	OpF64Sqrt: {unarySqrt, wasmshape.ValTypeF64, regir.OpF64Sqrt},
}

// visitNumeric dispatches one numeric operator event to its binary or
// unary translation, looking the opcode up in whichever of binaryOps/
// unaryOps claims it.
func (t *FuncTranslator) visitNumeric(op WasmOp) error {
	if t.bail() {
		return nil
	}
	if spec, ok := binaryOps[op]; ok {
		return t.translateBinary(spec.n, spec.t)
	}
	if spec, ok := unaryOps[op]; ok {
		return t.translateUnary(spec.kind, spec.t, spec.opcode)
	}
	invariant("visitNumeric: unrecognized numeric operator %d", op)
	return nil
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// translateBinary implements the encoding-selection contract for a
// binary numeric operator: a known-zero divisor traps immediately, two
// constant operands fold to a constant (including the overflow trap for
// MIN/-1 signed division), one side collapsing via an algebraic
// identity skips the operator entirely, and anything else falls through
// to the Imm16/register-register encoder.
func (t *FuncTranslator) translateBinary(n regir.NumOp, vt wasmshape.ValType) error {
	rhs := t.vs.Pop()
	lhs := t.vs.Pop()
	width := regir.ValTypeWidth(vt)

	if n.IsDivRem() && rhs.IsConst() && rhs.Const().IsZero() {
		t.enc.PushInstr(regir.MakeTrap(regir.TrapIntegerDivisionByZero))
		t.reachable = false
		return nil
	}

	if lhs.IsConst() && rhs.IsConst() {
		if n == regir.NumDivS && regir.DivRemOverflows(n, width, lhs.Const().I64(), rhs.Const().I64()) {
			t.enc.PushInstr(regir.MakeTrap(regir.TrapIntegerOverflow))
			t.reachable = false
			return nil
		}
		t.vs.PushConst(foldBinaryConst(n, vt, width, lhs.Const(), rhs.Const()))
		return nil
	}

	if v, ok := algebraicIdentity(n, vt, lhs, rhs); ok {
		t.pushProvider(v)
		return nil
	}
	return t.encodeBinaryDynamic(n, vt, lhs, rhs)
}

// foldBinaryConst evaluates n over two constant operands at translation
// time. Comparisons and floats route through their own eval paths;
// everything else shares EvalInt's masked-bit-pattern result (notably
// not sign-extended — the i32 bit pattern for a negative result is
// stored as its positive unsigned twin).
func foldBinaryConst(n regir.NumOp, vt wasmshape.ValType, width int, lhs, rhs regir.TypedVal) regir.TypedVal {
	if n.IsFloat() {
		if n.IsComparison() {
			return regir.I32Val(boolToI32(regir.EvalFloatCompare(n, width, lhs.Bits, rhs.Bits)))
		}
		bits := regir.EvalFloat(n, width, lhs.Bits, rhs.Bits)
		if width == 64 {
			return regir.TypedVal{Type: wasmshape.ValTypeF64, Bits: bits}
		}
		return regir.TypedVal{Type: wasmshape.ValTypeF32, Bits: bits}
	}

	result, ok := regir.EvalInt(n, width, lhs.I64(), rhs.I64())
	if !ok {
		invariant("foldBinaryConst: EvalInt rejected (%d, %s)", n, vt)
	}
	if n.IsComparison() {
		return regir.I32Val(int32(result))
	}
	if width == 64 {
		return regir.I64Val(result)
	}
	return regir.I32Val(int32(result))
}

func algebraicIdentity(n regir.NumOp, vt wasmshape.ValType, lhs, rhs Provider) (Provider, bool) {
	if vt.IsFloat() {
		return Provider{}, false
	}
	if rhs.IsConst() {
		c := rhs.Const()
		switch n {
		case regir.NumAdd, regir.NumSub, regir.NumOr, regir.NumXor,
			regir.NumShl, regir.NumShrS, regir.NumShrU, regir.NumRotl, regir.NumRotr:
			if c.IsZero() {
				return lhs, true
			}
		case regir.NumMul:
			if c.IsZero() {
				return rhs, true
			}
			if isOne(c) {
				return lhs, true
			}
		case regir.NumAnd:
			if c.IsZero() {
				return rhs, true
			}
			if c.IsAllOnes() {
				return lhs, true
			}
		}
	}
	if lhs.IsConst() {
		c := lhs.Const()
		switch n {
		case regir.NumAdd, regir.NumOr, regir.NumXor:
			if c.IsZero() {
				return rhs, true
			}
		case regir.NumMul:
			if c.IsZero() {
				return lhs, true
			}
			if isOne(c) {
				return rhs, true
			}
		case regir.NumAnd:
			if c.IsZero() {
				return lhs, true
			}
			if c.IsAllOnes() {
				return rhs, true
			}
		}
	}
	return Provider{}, false
}

func isOne(v regir.TypedVal) bool {
	if v.Type == wasmshape.ValTypeI64 {
		return v.I64() == 1
	}
	return v.I32() == 1
}

// imm16Signed reports whether the Imm16 field for n should be range
// checked as signed (arithmetic/signed compares) or as a raw unsigned
// bit pattern (bitwise ops, unsigned compares, shift amounts).
func imm16Signed(n regir.NumOp) bool {
	switch n {
	case regir.NumDivU, regir.NumRemU, regir.NumLtU, regir.NumGtU, regir.NumLeU, regir.NumGeU,
		regir.NumAnd, regir.NumOr, regir.NumXor, regir.NumEq, regir.NumNe,
		regir.NumShl, regir.NumShrU, regir.NumRotl, regir.NumRotr:
		return false
	default:
		return true
	}
}

func imm16Value(c regir.TypedVal, signed bool) int32 {
	if c.Type == wasmshape.ValTypeI64 {
		if signed {
			return int32(c.I64())
		}
		return int32(uint16(c.I64()))
	}
	if signed {
		return c.I32()
	}
	return int32(uint16(uint32(c.I32())))
}

func negateImm(c regir.TypedVal) regir.TypedVal {
	if c.Type == wasmshape.ValTypeI64 {
		return regir.I64Val(-c.I64())
	}
	return regir.I32Val(-c.I32())
}

// encodeBinaryDynamic implements the remaining encoding-selection steps
// once neither operand folds away: Imm16 fit (rhs, then lhs for
// non-commutative ops), the sub-as-add-negate rewrite, and finally the
// register-register fallback.
func (t *FuncTranslator) encodeBinaryDynamic(n regir.NumOp, vt wasmshape.ValType, lhs, rhs Provider) error {
	signed := imm16Signed(n)

	if rhs.IsConst() {
		c := rhs.Const()
		if !c.Type.IsFloat() && c.FitsImm16(signed) {
			if n.IsDivRem() {
				if op, ok := regir.Imm16RhsNonZeroOpcode(n, vt); ok {
					return t.emitBinaryImm16(op, lhs, int16(imm16Value(c, signed)))
				}
			} else if op, ok := regir.Imm16RhsOpcode(n, vt); ok {
				return t.emitBinaryImm16(op, lhs, int16(imm16Value(c, signed)))
			}
		}
	}

	if lhs.IsConst() && !n.Commutative() {
		c := lhs.Const()
		if !c.Type.IsFloat() && c.FitsImm16(signed) {
			if op, ok := regir.Imm16LhsOpcode(n, vt); ok {
				return t.emitBinaryImm16Lhs(op, int16(imm16Value(c, signed)), rhs)
			}
		}
	}

	if n == regir.NumSub && rhs.IsConst() && !rhs.Const().Type.IsFloat() {
		neg := negateImm(rhs.Const())
		if neg.FitsImm16(true) {
			if op, ok := regir.Imm16RhsOpcode(regir.NumAdd, vt); ok {
				return t.emitBinaryImm16(op, lhs, int16(imm16Value(neg, true)))
			}
		}
	}

	return t.encodeBinaryFallback(n, vt, lhs, rhs)
}

func (t *FuncTranslator) emitBinaryImm16(op regir.Opcode, lhs Provider, imm int16) error {
	lhsReg, err := lhs.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeBinaryImm16(op, dst, lhsReg, imm))
	return nil
}

func (t *FuncTranslator) emitBinaryImm16Lhs(op regir.Opcode, imm int16, rhs Provider) error {
	rhsReg, err := rhs.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeBinaryImm16(op, dst, rhsReg, imm))
	return nil
}

func (t *FuncTranslator) encodeBinaryFallback(n regir.NumOp, vt wasmshape.ValType, lhs, rhs Provider) error {
	lhsReg, err := lhs.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	rhsReg, err := rhs.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	op, ok := regir.BaseOpcode(n, vt)
	if !ok {
		invariant("encodeBinaryFallback: no base opcode for (%d, %s)", n, vt)
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeBinary(op, dst, lhsReg, rhsReg))
	return nil
}

func (t *FuncTranslator) translateUnary(kind unaryKind, vt wasmshape.ValType, op regir.Opcode) error {
	v := t.vs.Pop()
	if v.IsConst() {
		t.vs.PushConst(foldUnaryConst(kind, vt, v.Const()))
		return nil
	}
	src, err := v.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeUnary(op, dst, src))
	return nil
}

func foldUnaryConst(kind unaryKind, vt wasmshape.ValType, c regir.TypedVal) regir.TypedVal {
	switch kind {
	case unaryEqz:
		return regir.I32Val(boolToI32(c.IsZero()))
	case unaryClz:
		if vt == wasmshape.ValTypeI64 {
			return regir.I64Val(int64(bits.LeadingZeros64(uint64(c.I64()))))
		}
		return regir.I32Val(int32(bits.LeadingZeros32(uint32(c.I32()))))
	case unaryCtz:
		if vt == wasmshape.ValTypeI64 {
			return regir.I64Val(int64(bits.TrailingZeros64(uint64(c.I64()))))
		}
		return regir.I32Val(int32(bits.TrailingZeros32(uint32(c.I32()))))
	case unaryPopcnt:
		if vt == wasmshape.ValTypeI64 {
			return regir.I64Val(int64(bits.OnesCount64(uint64(c.I64()))))
		}
		return regir.I32Val(int32(bits.OnesCount32(uint32(c.I32()))))
	case unaryNeg:
		if vt == wasmshape.ValTypeF64 {
			return regir.F64Val(-c.F64())
		}
		return regir.F32Val(-c.F32())
	case unaryAbs:
		if vt == wasmshape.ValTypeF64 {
			return regir.F64Val(math.Abs(c.F64()))
		}
		return regir.F32Val(float32(math.Abs(float64(c.F32()))))
	case unarySqrt:
		if vt == wasmshape.ValTypeF64 {
			return regir.F64Val(math.Sqrt(c.F64()))
		}
		return regir.F32Val(float32(math.Sqrt(float64(c.F32()))))
	}
	invariant("foldUnaryConst: unknown kind %d", kind)
	return regir.TypedVal{}
}
