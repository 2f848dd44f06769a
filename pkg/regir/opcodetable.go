package regir

import "github.com/minz/wasmreg/pkg/wasmshape"

// numOpKey indexes the opcode-variant tables by (operator, type).
type numOpKey struct {
	op NumOp
	t  wasmshape.ValType
}

// baseOpcodes is the register-register opcode for each (NumOp, ValType)
// this core implements. Entries absent here mean this core doesn't
// carry that exact combination as a worked example (e.g. most i64
// bitwise ops are present but i64 clz is not spelled out) — the opcode
// families are representative, not exhaustive.
var baseOpcodes = map[numOpKey]Opcode{
	{NumAdd, wasmshape.ValTypeI32}: OpI32Add,
	{NumSub, wasmshape.ValTypeI32}: OpI32Sub,
	{NumMul, wasmshape.ValTypeI32}: OpI32Mul,
	{NumDivS, wasmshape.ValTypeI32}: OpI32DivS,
	{NumDivU, wasmshape.ValTypeI32}: OpI32DivU,
	{NumRemS, wasmshape.ValTypeI32}: OpI32RemS,
	{NumRemU, wasmshape.ValTypeI32}: OpI32RemU,
	{NumAnd, wasmshape.ValTypeI32}: OpI32And,
	{NumOr, wasmshape.ValTypeI32}:  OpI32Or,
	{NumXor, wasmshape.ValTypeI32}: OpI32Xor,
	{NumShl, wasmshape.ValTypeI32}: OpI32Shl,
	{NumShrS, wasmshape.ValTypeI32}: OpI32ShrS,
	{NumShrU, wasmshape.ValTypeI32}: OpI32ShrU,
	{NumRotl, wasmshape.ValTypeI32}: OpI32Rotl,
	{NumRotr, wasmshape.ValTypeI32}: OpI32Rotr,
	{NumEq, wasmshape.ValTypeI32}:  OpI32Eq,
	{NumNe, wasmshape.ValTypeI32}:  OpI32Ne,
	{NumLtS, wasmshape.ValTypeI32}: OpI32LtS,
	{NumLtU, wasmshape.ValTypeI32}: OpI32LtU,
	{NumGtS, wasmshape.ValTypeI32}: OpI32GtS,
	{NumGtU, wasmshape.ValTypeI32}: OpI32GtU,
	{NumLeS, wasmshape.ValTypeI32}: OpI32LeS,
	{NumLeU, wasmshape.ValTypeI32}: OpI32LeU,
	{NumGeS, wasmshape.ValTypeI32}: OpI32GeS,
	{NumGeU, wasmshape.ValTypeI32}: OpI32GeU,

	{NumAdd, wasmshape.ValTypeI64}: OpI64Add,
	{NumSub, wasmshape.ValTypeI64}: OpI64Sub,
	{NumMul, wasmshape.ValTypeI64}: OpI64Mul,
	{NumDivS, wasmshape.ValTypeI64}: OpI64DivS,
	{NumDivU, wasmshape.ValTypeI64}: OpI64DivU,
	{NumRemS, wasmshape.ValTypeI64}: OpI64RemS,
	{NumRemU, wasmshape.ValTypeI64}: OpI64RemU,
	{NumAnd, wasmshape.ValTypeI64}: OpI64And,
	{NumOr, wasmshape.ValTypeI64}:  OpI64Or,
	{NumXor, wasmshape.ValTypeI64}: OpI64Xor,
	{NumShl, wasmshape.ValTypeI64}: OpI64Shl,
	{NumShrS, wasmshape.ValTypeI64}: OpI64ShrS,
	{NumShrU, wasmshape.ValTypeI64}: OpI64ShrU,
	{NumRotl, wasmshape.ValTypeI64}: OpI64Rotl,
	{NumRotr, wasmshape.ValTypeI64}: OpI64Rotr,
	{NumEq, wasmshape.ValTypeI64}:  OpI64Eq,
	{NumNe, wasmshape.ValTypeI64}:  OpI64Ne,
	{NumLtS, wasmshape.ValTypeI64}: OpI64LtS,
	{NumLtU, wasmshape.ValTypeI64}: OpI64LtU,
	{NumGtS, wasmshape.ValTypeI64}: OpI64GtS,
	{NumGtU, wasmshape.ValTypeI64}: OpI64GtU,
	{NumLeS, wasmshape.ValTypeI64}: OpI64LeS,
	{NumLeU, wasmshape.ValTypeI64}: OpI64LeU,
	{NumGeS, wasmshape.ValTypeI64}: OpI64GeS,
	{NumGeU, wasmshape.ValTypeI64}: OpI64GeU,

	{NumFAdd, wasmshape.ValTypeF32}: OpF32Add,
	{NumFSub, wasmshape.ValTypeF32}: OpF32Sub,
	{NumFMul, wasmshape.ValTypeF32}: OpF32Mul,
	{NumFDiv, wasmshape.ValTypeF32}: OpF32Div,
	{NumFMin, wasmshape.ValTypeF32}: OpF32Min,
	{NumFMax, wasmshape.ValTypeF32}: OpF32Max,
	{NumFCopysign, wasmshape.ValTypeF32}: OpF32Copysign,
	{NumFEq, wasmshape.ValTypeF32}: OpF32Eq,
	{NumFNe, wasmshape.ValTypeF32}: OpF32Ne,
	{NumFLt, wasmshape.ValTypeF32}: OpF32Lt,
	{NumFGt, wasmshape.ValTypeF32}: OpF32Gt,
	{NumFLe, wasmshape.ValTypeF32}: OpF32Le,
	{NumFGe, wasmshape.ValTypeF32}: OpF32Ge,

	{NumFAdd, wasmshape.ValTypeF64}: OpF64Add,
	{NumFSub, wasmshape.ValTypeF64}: OpF64Sub,
	{NumFMul, wasmshape.ValTypeF64}: OpF64Mul,
	{NumFDiv, wasmshape.ValTypeF64}: OpF64Div,
	{NumFMin, wasmshape.ValTypeF64}: OpF64Min,
	{NumFMax, wasmshape.ValTypeF64}: OpF64Max,
	{NumFCopysign, wasmshape.ValTypeF64}: OpF64Copysign,
	{NumFEq, wasmshape.ValTypeF64}: OpF64Eq,
	{NumFNe, wasmshape.ValTypeF64}: OpF64Ne,
	{NumFLt, wasmshape.ValTypeF64}: OpF64Lt,
	{NumFGt, wasmshape.ValTypeF64}: OpF64Gt,
	{NumFLe, wasmshape.ValTypeF64}: OpF64Le,
	{NumFGe, wasmshape.ValTypeF64}: OpF64Ge,
}

// BaseOpcode returns the register-register opcode for (n, t), and false
// if this core doesn't carry that pairing.
func BaseOpcode(n NumOp, t wasmshape.ValType) (Opcode, bool) {
	op, ok := baseOpcodes[numOpKey{n, t}]
	return op, ok
}

// imm16RhsOpcodes carries the right-immediate variant: commutative ops
// only need this one, non-commutative ops (div, rem, shifts,
// order-sensitive compares) need it for "reg OP imm". Sub has no entry
// here: "reg - imm" is rewritten as "reg + (-imm)".
var imm16RhsOpcodes = map[numOpKey]Opcode{
	{NumAdd, wasmshape.ValTypeI32}: OpI32AddImm16,
	{NumMul, wasmshape.ValTypeI32}: OpI32MulImm16,
	{NumDivS, wasmshape.ValTypeI32}: OpI32DivSImm16Rhs,
	{NumDivU, wasmshape.ValTypeI32}: OpI32DivUImm16Rhs,
	{NumRemS, wasmshape.ValTypeI32}: OpI32RemSImm16Rhs,
	{NumRemU, wasmshape.ValTypeI32}: OpI32RemUImm16Rhs,
	{NumAnd, wasmshape.ValTypeI32}: OpI32AndImm16,
	{NumOr, wasmshape.ValTypeI32}:  OpI32OrImm16,
	{NumXor, wasmshape.ValTypeI32}: OpI32XorImm16,
	{NumShl, wasmshape.ValTypeI32}: OpI32ShlImm16Rhs,
	{NumShrS, wasmshape.ValTypeI32}: OpI32ShrSImm16Rhs,
	{NumShrU, wasmshape.ValTypeI32}: OpI32ShrUImm16Rhs,
	{NumRotl, wasmshape.ValTypeI32}: OpI32RotlImm16Rhs,
	{NumRotr, wasmshape.ValTypeI32}: OpI32RotrImm16Rhs,
	{NumEq, wasmshape.ValTypeI32}:  OpI32EqImm16,
	{NumNe, wasmshape.ValTypeI32}:  OpI32NeImm16,
	{NumLtS, wasmshape.ValTypeI32}: OpI32LtSImm16Rhs,
	{NumLtU, wasmshape.ValTypeI32}: OpI32LtUImm16Rhs,
	{NumGtS, wasmshape.ValTypeI32}: OpI32GtSImm16Rhs,
	{NumGtU, wasmshape.ValTypeI32}: OpI32GtUImm16Rhs,
	{NumLeS, wasmshape.ValTypeI32}: OpI32LeSImm16Rhs,
	{NumLeU, wasmshape.ValTypeI32}: OpI32LeUImm16Rhs,
	{NumGeS, wasmshape.ValTypeI32}: OpI32GeSImm16Rhs,
	{NumGeU, wasmshape.ValTypeI32}: OpI32GeUImm16Rhs,

	{NumAdd, wasmshape.ValTypeI64}: OpI64AddImm16,
	{NumMul, wasmshape.ValTypeI64}: OpI64MulImm16,
	{NumDivS, wasmshape.ValTypeI64}: OpI64DivSImm16RhsNonZero,
	{NumDivU, wasmshape.ValTypeI64}: OpI64DivUImm16RhsNonZero,
	{NumRemS, wasmshape.ValTypeI64}: OpI64RemSImm16RhsNonZero,
	{NumRemU, wasmshape.ValTypeI64}: OpI64RemUImm16RhsNonZero,
	{NumAnd, wasmshape.ValTypeI64}: OpI64AndImm16,
	{NumOr, wasmshape.ValTypeI64}:  OpI64OrImm16,
	{NumXor, wasmshape.ValTypeI64}: OpI64XorImm16,
	{NumShl, wasmshape.ValTypeI64}: OpI64ShlImm16Rhs,
	{NumShrS, wasmshape.ValTypeI64}: OpI64ShrSImm16Rhs,
	{NumShrU, wasmshape.ValTypeI64}: OpI64ShrUImm16Rhs,
	{NumEq, wasmshape.ValTypeI64}:  OpI64EqImm16,
	{NumNe, wasmshape.ValTypeI64}:  OpI64NeImm16,
}

// imm16RhsNonZeroOpcodes is the div/rem variant used when the constant
// right-hand side is both Imm16-sized and known non-zero.
var imm16RhsNonZeroOpcodes = map[numOpKey]Opcode{
	{NumDivS, wasmshape.ValTypeI32}: OpI32DivSImm16RhsNonZero,
	{NumDivU, wasmshape.ValTypeI32}: OpI32DivUImm16RhsNonZero,
	{NumRemS, wasmshape.ValTypeI32}: OpI32RemSImm16RhsNonZero,
	{NumRemU, wasmshape.ValTypeI32}: OpI32RemUImm16RhsNonZero,
	{NumDivS, wasmshape.ValTypeI64}: OpI64DivSImm16RhsNonZero,
	{NumDivU, wasmshape.ValTypeI64}: OpI64DivUImm16RhsNonZero,
	{NumRemS, wasmshape.ValTypeI64}: OpI64RemSImm16RhsNonZero,
	{NumRemU, wasmshape.ValTypeI64}: OpI64RemUImm16RhsNonZero,
}

// imm16LhsOpcodes carries the left-immediate variant for non-commutative
// ops whose only reducible immediate lives on the left ("imm OP reg").
var imm16LhsOpcodes = map[numOpKey]Opcode{
	{NumSub, wasmshape.ValTypeI32}:  OpI32SubImm16Lhs,
	{NumDivS, wasmshape.ValTypeI32}: OpI32DivSImm16Lhs,
	{NumDivU, wasmshape.ValTypeI32}: OpI32DivUImm16Lhs,
	{NumRemS, wasmshape.ValTypeI32}: OpI32RemSImm16Lhs,
	{NumRemU, wasmshape.ValTypeI32}: OpI32RemUImm16Lhs,
	{NumShl, wasmshape.ValTypeI32}:  OpI32ShlImm16Lhs,
	{NumShrS, wasmshape.ValTypeI32}: OpI32ShrSImm16Lhs,
	{NumShrU, wasmshape.ValTypeI32}: OpI32ShrUImm16Lhs,
	{NumLtS, wasmshape.ValTypeI32}:  OpI32LtSImm16Lhs,
	{NumLtU, wasmshape.ValTypeI32}:  OpI32LtUImm16Lhs,
	{NumGtS, wasmshape.ValTypeI32}:  OpI32GtSImm16Lhs,
	{NumGtU, wasmshape.ValTypeI32}:  OpI32GtUImm16Lhs,
	{NumLeS, wasmshape.ValTypeI32}:  OpI32LeSImm16Lhs,
	{NumLeU, wasmshape.ValTypeI32}:  OpI32LeUImm16Lhs,
	{NumGeS, wasmshape.ValTypeI32}:  OpI32GeSImm16Lhs,
	{NumGeU, wasmshape.ValTypeI32}:  OpI32GeUImm16Lhs,

	{NumSub, wasmshape.ValTypeI64}: OpI64SubImm16Lhs,
}

// Imm16RhsOpcode returns the "reg OP imm" variant for (n, t), if any.
func Imm16RhsOpcode(n NumOp, t wasmshape.ValType) (Opcode, bool) {
	op, ok := imm16RhsOpcodes[numOpKey{n, t}]
	return op, ok
}

// Imm16RhsNonZeroOpcode returns the div/rem variant that elides the
// zero-check because the immediate divisor is known non-zero.
func Imm16RhsNonZeroOpcode(n NumOp, t wasmshape.ValType) (Opcode, bool) {
	op, ok := imm16RhsNonZeroOpcodes[numOpKey{n, t}]
	return op, ok
}

// Imm16LhsOpcode returns the "imm OP reg" variant for (n, t), if any.
func Imm16LhsOpcode(n NumOp, t wasmshape.ValType) (Opcode, bool) {
	op, ok := imm16LhsOpcodes[numOpKey{n, t}]
	return op, ok
}

// InvertCompare returns the comparison that holds exactly when n does
// not — used to rewrite "imm OP reg" into "reg INVERT(OP) ... " forms
// and by br_if/select fusion's conservative fallback.
func InvertCompare(n NumOp) NumOp {
	switch n {
	case NumEq:
		return NumNe
	case NumNe:
		return NumEq
	case NumLtS:
		return NumGeS
	case NumLtU:
		return NumGeU
	case NumGtS:
		return NumLeS
	case NumGtU:
		return NumLeU
	case NumLeS:
		return NumGtS
	case NumLeU:
		return NumGtU
	case NumGeS:
		return NumLtS
	case NumGeU:
		return NumLtU
	default:
		panic("regir: InvertCompare called on a non-comparison NumOp")
	}
}

// SwapCompare returns the comparison that holds when operands are
// swapped (lhs OP rhs) == (rhs SwapCompare(OP) lhs) — used to convert an
// "imm OP reg" shape into a canonical "reg OP' imm" shape when only a
// _rhs opcode exists.
func SwapCompare(n NumOp) NumOp {
	switch n {
	case NumLtS:
		return NumGtS
	case NumLtU:
		return NumGtU
	case NumGtS:
		return NumLtS
	case NumGtU:
		return NumLtU
	case NumLeS:
		return NumGeS
	case NumLeU:
		return NumGeU
	case NumGeS:
		return NumLeS
	case NumGeU:
		return NumLeU
	default:
		return n // Eq/Ne/arithmetic are already symmetric
	}
}
