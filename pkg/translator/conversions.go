package translator

import (
	"math"

	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

type convKind uint8

const (
	convWrap convKind = iota
	convExtendS
	convExtendU
	convDemote
	convPromote
	convTruncS
	convTruncU
	convTruncSatS
	convTruncSatU
	convConvertS
	convConvertU
	convReinterpret
)

type conversionSpec struct {
	opcode   regir.Opcode
	kind     convKind
	fromType wasmshape.ValType
	toType   wasmshape.ValType
	fromBits int // source width for sign-extension folds (8/16/32/64)
	feature  FeatureSet
	name     string
}

var conversionSpecs = map[WasmOp]conversionSpec{
	OpI32WrapI64: {regir.OpI32WrapI64, convWrap, wasmshape.ValTypeI64, wasmshape.ValTypeI32, 0, 0, "i32.wrap_i64"},

	OpI64ExtendI32S: {regir.OpI64ExtendI32S, convExtendS, wasmshape.ValTypeI32, wasmshape.ValTypeI64, 32, 0, "i64.extend_i32_s"},
	OpI64ExtendI32U: {regir.OpI64ExtendI32U, convExtendU, wasmshape.ValTypeI32, wasmshape.ValTypeI64, 32, 0, "i64.extend_i32_u"},

	OpI32Extend8S:  {regir.OpI32Extend8S, convExtendS, wasmshape.ValTypeI32, wasmshape.ValTypeI32, 8, FeatureSignExtension, "i32.extend8_s"},
	OpI32Extend16S: {regir.OpI32Extend16S, convExtendS, wasmshape.ValTypeI32, wasmshape.ValTypeI32, 16, FeatureSignExtension, "i32.extend16_s"},
	OpI64Extend8S:  {regir.OpI64Extend8S, convExtendS, wasmshape.ValTypeI64, wasmshape.ValTypeI64, 8, FeatureSignExtension, "i64.extend8_s"},
	OpI64Extend16S: {regir.OpI64Extend16S, convExtendS, wasmshape.ValTypeI64, wasmshape.ValTypeI64, 16, FeatureSignExtension, "i64.extend16_s"},
	OpI64Extend32S: {regir.OpI64Extend32S, convExtendS, wasmshape.ValTypeI64, wasmshape.ValTypeI64, 32, FeatureSignExtension, "i64.extend32_s"},

	OpF32DemoteF64:  {regir.OpF32DemoteF64, convDemote, wasmshape.ValTypeF64, wasmshape.ValTypeF32, 0, 0, "f32.demote_f64"},
	OpF64PromoteF32: {regir.OpF64PromoteF32, convPromote, wasmshape.ValTypeF32, wasmshape.ValTypeF64, 0, 0, "f64.promote_f32"},

	OpI32TruncF32S: {regir.OpI32TruncF32S, convTruncS, wasmshape.ValTypeF32, wasmshape.ValTypeI32, 0, 0, "i32.trunc_f32_s"},
	OpI32TruncF32U: {regir.OpI32TruncF32U, convTruncU, wasmshape.ValTypeF32, wasmshape.ValTypeI32, 0, 0, "i32.trunc_f32_u"},
	OpI32TruncF64S: {regir.OpI32TruncF64S, convTruncS, wasmshape.ValTypeF64, wasmshape.ValTypeI32, 0, 0, "i32.trunc_f64_s"},
	OpI32TruncF64U: {regir.OpI32TruncF64U, convTruncU, wasmshape.ValTypeF64, wasmshape.ValTypeI32, 0, 0, "i32.trunc_f64_u"},
	OpI64TruncF32S: {regir.OpI64TruncF32S, convTruncS, wasmshape.ValTypeF32, wasmshape.ValTypeI64, 0, 0, "i64.trunc_f32_s"},
	OpI64TruncF32U: {regir.OpI64TruncF32U, convTruncU, wasmshape.ValTypeF32, wasmshape.ValTypeI64, 0, 0, "i64.trunc_f32_u"},
	OpI64TruncF64S: {regir.OpI64TruncF64S, convTruncS, wasmshape.ValTypeF64, wasmshape.ValTypeI64, 0, 0, "i64.trunc_f64_s"},
	OpI64TruncF64U: {regir.OpI64TruncF64U, convTruncU, wasmshape.ValTypeF64, wasmshape.ValTypeI64, 0, 0, "i64.trunc_f64_u"},

	OpI32TruncSatF32S: {regir.OpI32TruncSatF32S, convTruncSatS, wasmshape.ValTypeF32, wasmshape.ValTypeI32, 0, FeatureNontrappingFloatToInt, "i32.trunc_sat_f32_s"},
	OpI32TruncSatF32U: {regir.OpI32TruncSatF32U, convTruncSatU, wasmshape.ValTypeF32, wasmshape.ValTypeI32, 0, FeatureNontrappingFloatToInt, "i32.trunc_sat_f32_u"},
	OpI32TruncSatF64S: {regir.OpI32TruncSatF64S, convTruncSatS, wasmshape.ValTypeF64, wasmshape.ValTypeI32, 0, FeatureNontrappingFloatToInt, "i32.trunc_sat_f64_s"},
	OpI32TruncSatF64U: {regir.OpI32TruncSatF64U, convTruncSatU, wasmshape.ValTypeF64, wasmshape.ValTypeI32, 0, FeatureNontrappingFloatToInt, "i32.trunc_sat_f64_u"},
	OpI64TruncSatF32S: {regir.OpI64TruncSatF32S, convTruncSatS, wasmshape.ValTypeF32, wasmshape.ValTypeI64, 0, FeatureNontrappingFloatToInt, "i64.trunc_sat_f32_s"},
	OpI64TruncSatF32U: {regir.OpI64TruncSatF32U, convTruncSatU, wasmshape.ValTypeF32, wasmshape.ValTypeI64, 0, FeatureNontrappingFloatToInt, "i64.trunc_sat_f32_u"},
	OpI64TruncSatF64S: {regir.OpI64TruncSatF64S, convTruncSatS, wasmshape.ValTypeF64, wasmshape.ValTypeI64, 0, FeatureNontrappingFloatToInt, "i64.trunc_sat_f64_s"},
	OpI64TruncSatF64U: {regir.OpI64TruncSatF64U, convTruncSatU, wasmshape.ValTypeF64, wasmshape.ValTypeI64, 0, FeatureNontrappingFloatToInt, "i64.trunc_sat_f64_u"},

	OpF32ConvertI32S: {regir.OpF32ConvertI32S, convConvertS, wasmshape.ValTypeI32, wasmshape.ValTypeF32, 0, 0, "f32.convert_i32_s"},
	OpF32ConvertI32U: {regir.OpF32ConvertI32U, convConvertU, wasmshape.ValTypeI32, wasmshape.ValTypeF32, 0, 0, "f32.convert_i32_u"},
	OpF32ConvertI64S: {regir.OpF32ConvertI64S, convConvertS, wasmshape.ValTypeI64, wasmshape.ValTypeF32, 0, 0, "f32.convert_i64_s"},
	OpF32ConvertI64U: {regir.OpF32ConvertI64U, convConvertU, wasmshape.ValTypeI64, wasmshape.ValTypeF32, 0, 0, "f32.convert_i64_u"},
	OpF64ConvertI32S: {regir.OpF64ConvertI32S, convConvertS, wasmshape.ValTypeI32, wasmshape.ValTypeF64, 0, 0, "f64.convert_i32_s"},
	OpF64ConvertI32U: {regir.OpF64ConvertI32U, convConvertU, wasmshape.ValTypeI32, wasmshape.ValTypeF64, 0, 0, "f64.convert_i32_u"},
	OpF64ConvertI64S: {regir.OpF64ConvertI64S, convConvertS, wasmshape.ValTypeI64, wasmshape.ValTypeF64, 0, 0, "f64.convert_i64_s"},
	OpF64ConvertI64U: {regir.OpF64ConvertI64U, convConvertU, wasmshape.ValTypeI64, wasmshape.ValTypeF64, 0, 0, "f64.convert_i64_u"},

	OpI32ReinterpretF32: {regir.OpI32ReinterpretF32, convReinterpret, wasmshape.ValTypeF32, wasmshape.ValTypeI32, 0, 0, "i32.reinterpret_f32"},
	OpI64ReinterpretF64: {regir.OpI64ReinterpretF64, convReinterpret, wasmshape.ValTypeF64, wasmshape.ValTypeI64, 0, 0, "i64.reinterpret_f64"},
	OpF32ReinterpretI32: {regir.OpF32ReinterpretI32, convReinterpret, wasmshape.ValTypeI32, wasmshape.ValTypeF32, 0, 0, "f32.reinterpret_i32"},
	OpF64ReinterpretI64: {regir.OpF64ReinterpretI64, convReinterpret, wasmshape.ValTypeI64, wasmshape.ValTypeF64, 0, 0, "f64.reinterpret_i64"},
}

// visitConversion implements the numeric-conversion family: wrap,
// extend, demote/promote, (saturating) truncation, convert, and bit
// reinterpretation all share the same unary register shape, so only the
// constant-fold path needs to branch on convKind.
func (t *FuncTranslator) visitConversion(op WasmOp) error {
	if t.bail() {
		return nil
	}
	spec, ok := conversionSpecs[op]
	if !ok {
		invariant("visitConversion: unrecognized conversion operator %d", op)
	}
	if spec.feature != 0 && !t.cfg.EnabledFeatures.Has(spec.feature) {
		panicUnsupported(spec.name)
	}

	v := t.vs.Pop()
	if v.IsConst() {
		folded, trapped := foldConversionConst(spec, v.Const())
		if trapped {
			t.enc.PushInstr(regir.MakeTrap(regir.TrapIntegerOverflow))
			t.reachable = false
			return nil
		}
		t.vs.PushConst(folded)
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
	t.enc.PushInstr(regir.MakeUnary(spec.opcode, dst, src))
	return nil
}

// foldConversionConst evaluates a conversion over a constant operand at
// translation time. Only the trapping truncations (convTruncS/U) can
// report trapped=true; every other kind always succeeds.
func foldConversionConst(spec conversionSpec, c regir.TypedVal) (regir.TypedVal, bool) {
	switch spec.kind {
	case convWrap:
		return regir.I32Val(int32(uint32(c.I64()))), false
	case convExtendS:
		return foldExtendS(spec, c), false
	case convExtendU:
		return foldExtendU(spec, c), false
	case convDemote:
		return regir.F32Val(float32(c.F64())), false
	case convPromote:
		return regir.F64Val(float64(c.F32())), false
	case convTruncS:
		return truncToInt(spec, c, true)
	case convTruncU:
		return truncToInt(spec, c, false)
	case convTruncSatS:
		return truncSatToInt(spec, c, true), false
	case convTruncSatU:
		return truncSatToInt(spec, c, false), false
	case convConvertS:
		return foldConvertS(spec, c), false
	case convConvertU:
		return foldConvertU(spec, c), false
	case convReinterpret:
		return regir.TypedVal{Type: spec.toType, Bits: c.Bits}, false
	}
	invariant("foldConversionConst: unknown conversion kind %d", spec.kind)
	return regir.TypedVal{}, false
}

// foldExtendS sign-extends the low fromBits bits of c (read out of
// whichever of i32/i64 the source type actually is) up to toType's full
// width. The same formula covers both i32.extend8_s-style intra-width
// folds and i64.extend_i32_s's full-width widening.
func foldExtendS(spec conversionSpec, c regir.TypedVal) regir.TypedVal {
	var raw uint64
	if spec.fromType == wasmshape.ValTypeI64 {
		raw = uint64(c.I64())
	} else {
		raw = uint64(uint32(c.I32()))
	}
	mask := uint64(1)<<uint(spec.fromBits) - 1
	low := raw & mask
	signBit := uint64(1) << uint(spec.fromBits-1)
	var extended int64
	if low&signBit != 0 {
		extended = int64(low | ^mask)
	} else {
		extended = int64(low)
	}
	if spec.toType == wasmshape.ValTypeI64 {
		return regir.I64Val(extended)
	}
	return regir.I32Val(int32(extended))
}

// foldExtendU zero-extends the low fromBits bits of c up to toType's
// full width (only i64.extend_i32_u uses this family today).
func foldExtendU(spec conversionSpec, c regir.TypedVal) regir.TypedVal {
	var raw uint64
	if spec.fromType == wasmshape.ValTypeI64 {
		raw = uint64(c.I64())
	} else {
		raw = uint64(uint32(c.I32()))
	}
	mask := uint64(1)<<uint(spec.fromBits) - 1
	low := raw & mask
	if spec.toType == wasmshape.ValTypeI64 {
		return regir.I64Val(int64(low))
	}
	return regir.I32Val(int32(uint32(low)))
}

func foldConvertS(spec conversionSpec, c regir.TypedVal) regir.TypedVal {
	var v int64
	if spec.fromType == wasmshape.ValTypeI64 {
		v = c.I64()
	} else {
		v = int64(c.I32())
	}
	if spec.toType == wasmshape.ValTypeF64 {
		return regir.F64Val(float64(v))
	}
	return regir.F32Val(float32(v))
}

func foldConvertU(spec conversionSpec, c regir.TypedVal) regir.TypedVal {
	var v uint64
	if spec.fromType == wasmshape.ValTypeI64 {
		v = uint64(c.I64())
	} else {
		v = uint64(uint32(c.I32()))
	}
	if spec.toType == wasmshape.ValTypeF64 {
		return regir.F64Val(float64(v))
	}
	return regir.F32Val(float32(v))
}

// floatOf reads c's bit pattern as whichever float width t names.
func floatOf(t wasmshape.ValType, c regir.TypedVal) float64 {
	if t == wasmshape.ValTypeF64 {
		return c.F64()
	}
	return float64(c.F32())
}

// truncToInt folds a constant float truncation to an integer. NaN or a
// value outside the target's representable range traps
// (TrapIntegerOverflow is this core's closest existing trap code for an
// invalid conversion; regir.TrapCode has no dedicated one).
func truncToInt(spec conversionSpec, c regir.TypedVal, signed bool) (regir.TypedVal, bool) {
	f := floatOf(spec.fromType, c)
	if math.IsNaN(f) {
		return regir.TypedVal{}, true
	}
	truncated := math.Trunc(f)

	bitWidth := 32
	if spec.toType == wasmshape.ValTypeI64 {
		bitWidth = 64
	}
	lo, hi := truncRange(bitWidth, signed)
	if truncated < lo || truncated >= hi {
		return regir.TypedVal{}, true
	}

	if signed {
		if spec.toType == wasmshape.ValTypeI64 {
			return regir.I64Val(int64(truncated)), false
		}
		return regir.I32Val(int32(truncated)), false
	}
	if spec.toType == wasmshape.ValTypeI64 {
		return regir.I64Val(int64(uint64(truncated))), false
	}
	return regir.I32Val(int32(uint32(truncated))), false
}

func truncSatToInt(spec conversionSpec, c regir.TypedVal, signed bool) regir.TypedVal {
	f := floatOf(spec.fromType, c)
	bitWidth := 32
	if spec.toType == wasmshape.ValTypeI64 {
		bitWidth = 64
	}

	var result int64
	switch {
	case math.IsNaN(f):
		result = 0
	default:
		truncated := math.Trunc(f)
		lo, hi := truncRange(bitWidth, signed)
		switch {
		case truncated < lo:
			result = int64(lo)
			if !signed {
				result = 0
			}
		case truncated >= hi:
			if signed {
				if bitWidth == 64 {
					result = math.MaxInt64
				} else {
					result = math.MaxInt32
				}
			} else {
				if bitWidth == 64 {
					result = -1 // all 64 bits set: MaxUint64's bit pattern
				} else {
					result = int64(uint32(math.MaxUint32))
				}
			}
		default:
			if signed {
				result = int64(truncated)
			} else {
				result = int64(uint64(truncated))
			}
		}
	}

	if spec.toType == wasmshape.ValTypeI64 {
		return regir.I64Val(result)
	}
	return regir.I32Val(int32(result))
}

// truncRange returns the half-open [lo, hi) range a truncated float
// must fall within to convert without trapping/saturating.
func truncRange(bitWidth int, signed bool) (lo, hi float64) {
	switch {
	case bitWidth == 32 && signed:
		return math.MinInt32, math.MaxInt32 + 1
	case bitWidth == 32 && !signed:
		return 0, math.MaxUint32 + 1
	case bitWidth == 64 && signed:
		return math.MinInt64, math.MaxInt64 + 1
	default: // 64, unsigned
		return 0, math.MaxUint64 + 1
	}
}
