package regir

// Opcode is a single IR operation discriminant. The IR is a sealed,
// closed tagged union: this is the complete list of primary
// and continuation opcodes this core emits. The opcode families below
// are representative, not exhaustive — every *mechanism* (constant
// folding, algebraic identity, Imm16 selection, lhs/rhs variant choice,
// fusion) is fully implemented and demonstrated on a representative
// opcode from each family rather than spelled out for every type/width
// combination.
type Opcode uint16

const (
	OpInvalid Opcode = iota

	// --- Control ---
	OpTrap
	OpConsumeFuel
	OpBranch
	OpBranchCmpFallback
	OpBranchCmpI32Eq
	OpBranchCmpI32Ne
	OpBranchCmpI32LtS
	OpBranchCmpI32LtU
	OpBranchCmpI32GtS
	OpBranchCmpI32GtU
	OpBranchCmpI32LeS
	OpBranchCmpI32LeU
	OpBranchCmpI32GeS
	OpBranchCmpI32GeU
	OpBranchCmpI32EqImm
	OpBranchCmpI32NeImm
	OpBranchCmpI64Eq
	OpBranchCmpI64Ne
	OpBranchEqz
	OpBranchNez
	OpBranchTable0
	OpBranchTable1
	OpBranchTable2
	OpBranchTable3
	OpBranchTableSpan
	OpBranchTableMany

	// --- Return ---
	OpReturn
	OpReturnReg
	OpReturnReg2
	OpReturnReg3
	OpReturnImm32
	OpReturnI64Imm32
	OpReturnF64Imm32
	OpReturnSpan
	OpReturnMany
	OpReturnNezReg
	OpReturnNezImm32

	// --- Copy ---
	OpCopy
	OpCopy2
	OpCopyImm32
	OpCopyI64Imm32
	OpCopyF64Imm32
	OpCopySpan
	OpCopySpanNonOverlapping
	OpCopyMany
	OpCopyManyNonOverlapping

	// --- Call ---
	OpCallInternal
	OpCallInternal0
	OpCallImported
	OpCallImported0
	OpCallIndirect
	OpCallIndirect0
	OpReturnCallInternal
	OpReturnCallInternal0
	OpReturnCallImported
	OpReturnCallImported0
	OpReturnCallIndirect
	OpReturnCallIndirect0

	// --- Select ---
	OpSelect
	OpSelectRev
	OpSelectImm32
	OpSelectI64Imm32
	OpSelectF64Imm32
	OpSelectCmpI32Eq
	OpSelectCmpI32Ne
	OpSelectCmpI32LtS
	OpSelectCmpI32LtU
	OpSelectCmpI32GtS
	OpSelectCmpI32GtU
	OpSelectCmpI32LeS
	OpSelectCmpI32LeU
	OpSelectCmpI32GeS
	OpSelectCmpI32GeU
	OpSelectCmpI64Eq
	OpSelectCmpI64Ne
	OpSelectCmpI64LtS
	OpSelectCmpI64LtU
	OpSelectCmpI64GtS
	OpSelectCmpI64GtU
	OpSelectCmpI64LeS
	OpSelectCmpI64LeU
	OpSelectCmpI64GeS
	OpSelectCmpI64GeU
	OpSelectCmpF32Eq
	OpSelectCmpF32Ne
	OpSelectCmpF32Lt
	OpSelectCmpF32Gt
	OpSelectCmpF32Le
	OpSelectCmpF32Ge
	OpSelectCmpF64Eq
	OpSelectCmpF64Ne
	OpSelectCmpF64Lt
	OpSelectCmpF64Gt
	OpSelectCmpF64Le
	OpSelectCmpF64Ge

	// --- Globals ---
	OpGlobalGet
	OpGlobalSet
	OpGlobalSetI32Imm16
	OpGlobalSetI64Imm16

	// --- Memory load/store, representative per type/width ---
	OpI32Load
	OpI32LoadOffset16
	OpI32LoadAt
	OpI64Load
	OpI64LoadOffset16
	OpI64LoadAt
	OpF32Load
	OpF32LoadOffset16
	OpF32LoadAt
	OpF64Load
	OpF64LoadOffset16
	OpF64LoadAt
	OpI32Load8S
	OpI32Load8U
	OpI32Load16S
	OpI32Load16U
	OpI64Load8S
	OpI64Load8U
	OpI64Load16S
	OpI64Load16U
	OpI64Load32S
	OpI64Load32U

	OpI32Store
	OpI32StoreOffset16
	OpI32StoreAt
	OpI32StoreImm16
	OpI64Store
	OpI64StoreOffset16
	OpI64StoreAt
	OpI64StoreImm16
	OpF32Store
	OpF32StoreOffset16
	OpF32StoreAt
	OpF64Store
	OpF64StoreOffset16
	OpF64StoreAt
	OpI32Store8
	OpI32Store8Imm16
	OpI32Store16
	OpI32Store16Imm16
	OpI64Store8
	OpI64Store8Imm16
	OpI64Store16
	OpI64Store16Imm16
	OpI64Store32
	OpI64Store32Imm16

	// --- Numeric: i32 ---
	OpI32Add
	OpI32AddImm16
	OpI32Sub
	OpI32SubImm16Lhs
	OpI32Mul
	OpI32MulImm16
	OpI32DivS
	OpI32DivSImm16Rhs
	OpI32DivSImm16RhsNonZero
	OpI32DivSImm16Lhs
	OpI32DivU
	OpI32DivUImm16Rhs
	OpI32DivUImm16RhsNonZero
	OpI32DivUImm16Lhs
	OpI32RemS
	OpI32RemSImm16Rhs
	OpI32RemSImm16RhsNonZero
	OpI32RemSImm16Lhs
	OpI32RemU
	OpI32RemUImm16Rhs
	OpI32RemUImm16RhsNonZero
	OpI32RemUImm16Lhs
	OpI32And
	OpI32AndImm16
	OpI32Or
	OpI32OrImm16
	OpI32Xor
	OpI32XorImm16
	OpI32Shl
	OpI32ShlImm16Rhs
	OpI32ShlImm16Lhs
	OpI32ShrS
	OpI32ShrSImm16Rhs
	OpI32ShrSImm16Lhs
	OpI32ShrU
	OpI32ShrUImm16Rhs
	OpI32ShrUImm16Lhs
	OpI32Rotl
	OpI32RotlImm16Rhs
	OpI32Rotr
	OpI32RotrImm16Rhs
	OpI32Eq
	OpI32EqImm16
	OpI32Ne
	OpI32NeImm16
	OpI32LtS
	OpI32LtSImm16Rhs
	OpI32LtSImm16Lhs
	OpI32LtU
	OpI32LtUImm16Rhs
	OpI32LtUImm16Lhs
	OpI32GtS
	OpI32GtSImm16Rhs
	OpI32GtSImm16Lhs
	OpI32GtU
	OpI32GtUImm16Rhs
	OpI32GtUImm16Lhs
	OpI32LeS
	OpI32LeSImm16Rhs
	OpI32LeSImm16Lhs
	OpI32LeU
	OpI32LeUImm16Rhs
	OpI32LeUImm16Lhs
	OpI32GeS
	OpI32GeSImm16Rhs
	OpI32GeSImm16Lhs
	OpI32GeU
	OpI32GeUImm16Rhs
	OpI32GeUImm16Lhs
	OpI32Clz
	OpI32Ctz
	OpI32Popcnt
	OpI32Eqz

	// --- Numeric: i64 (representative subset, mirrors i32) ---
	OpI64Add
	OpI64AddImm16
	OpI64Sub
	OpI64SubImm16Lhs
	OpI64Mul
	OpI64MulImm16
	OpI64DivS
	OpI64DivSImm16RhsNonZero
	OpI64DivU
	OpI64DivUImm16RhsNonZero
	OpI64RemS
	OpI64RemSImm16RhsNonZero
	OpI64RemU
	OpI64RemUImm16RhsNonZero
	OpI64And
	OpI64AndImm16
	OpI64Or
	OpI64OrImm16
	OpI64Xor
	OpI64XorImm16
	OpI64Shl
	OpI64ShlImm16Rhs
	OpI64ShrS
	OpI64ShrSImm16Rhs
	OpI64ShrU
	OpI64ShrUImm16Rhs
	OpI64Rotl
	OpI64Rotr
	OpI64Eq
	OpI64EqImm16
	OpI64Ne
	OpI64NeImm16
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU
	OpI64Eqz

	// --- Numeric: f32/f64 (representative subset) ---
	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Min
	OpF32Max
	OpF32Copysign
	OpF32Eq
	OpF32Ne
	OpF32Lt
	OpF32Gt
	OpF32Le
	OpF32Ge
	OpF32Neg
	OpF32Abs
	OpF32Sqrt

	OpF64Add
	OpF64Sub
	OpF64Mul
	OpF64Div
	OpF64Min
	OpF64Max
	OpF64Copysign
	OpF64Eq
	OpF64Ne
	OpF64Lt
	OpF64Gt
	OpF64Le
	OpF64Ge
	OpF64Neg
	OpF64Abs
	OpF64Sqrt

	// --- Conversions / reinterpret (representative) ---
	OpI32WrapI64
	OpI64ExtendI32S
	OpI64ExtendI32U
	OpI32Extend8S
	OpI32Extend16S
	OpI64Extend8S
	OpI64Extend16S
	OpI64Extend32S
	OpF32DemoteF64
	OpF64PromoteF32
	OpI32TruncF32S
	OpI32TruncF32U
	OpI32TruncF64S
	OpI32TruncF64U
	OpI64TruncF32S
	OpI64TruncF32U
	OpI64TruncF64S
	OpI64TruncF64U
	OpI32TruncSatF32S
	OpI32TruncSatF32U
	OpI32TruncSatF64S
	OpI32TruncSatF64U
	OpI64TruncSatF32S
	OpI64TruncSatF32U
	OpI64TruncSatF64S
	OpI64TruncSatF64U
	OpF32ConvertI32S
	OpF32ConvertI32U
	OpF32ConvertI64S
	OpF32ConvertI64U
	OpF64ConvertI32S
	OpF64ConvertI32U
	OpF64ConvertI64S
	OpF64ConvertI64U
	OpI32ReinterpretF32
	OpI64ReinterpretF64
	OpF32ReinterpretI32
	OpF64ReinterpretI64

	// --- Reference / table / memory bulk ---
	OpRefFunc
	OpRefIsNull
	OpTableGet
	OpTableGetImm
	OpTableSet
	OpTableSetAt
	OpTableSize
	OpTableGrow
	OpTableGrowImm
	OpTableFill
	OpTableFillImm
	OpTableFillExact
	OpTableCopy
	OpTableCopyImm
	OpTableInit
	OpTableInitImm
	OpElemDrop
	OpMemorySize
	OpMemoryGrow
	OpMemoryGrowImm
	OpMemoryFill
	OpMemoryFillImm
	OpMemoryFillExact
	OpMemoryCopy
	OpMemoryCopyImm
	OpMemoryInit
	OpMemoryInitImm
	OpDataDrop

	// --- Parameter-continuation words (never executed independently) ---
	OpContRegister
	OpContRegister2
	OpContRegister3
	OpContRegisterList
	OpContRegisterAndOffsetHi
	OpContImm16AndOffsetHi
	OpContCallIndirectParams
	OpContCallIndirectParamsImm16
	OpContMemoryIndex
	OpContTableIndex
	OpContDataSegmentIdx
	OpContElementSegmentIdx
	OpContConst32
	OpContI64Const32
	OpContF64Const32
	OpContBranchTableTarget

	opcodeCount
)

// IsContinuation reports whether op is a parameter-continuation word: it
// must immediately follow its parent primary instruction and is never
// itself a jump/fusion target nor independently executed.
func (op Opcode) IsContinuation() bool {
	return op >= OpContRegister && op < opcodeCount
}

// TrapCode identifies why a Trap instruction fires.
type TrapCode uint8

const (
	TrapUnreachable TrapCode = iota
	TrapIntegerDivisionByZero
	TrapIntegerOverflow
	TrapMemoryOutOfBounds
	TrapTableOutOfBounds
	TrapIndirectCallTypeMismatch
	TrapIndirectCallToNull
	TrapStackOverflow
)

func (t TrapCode) String() string {
	switch t {
	case TrapUnreachable:
		return "unreachable"
	case TrapIntegerDivisionByZero:
		return "integer_division_by_zero"
	case TrapIntegerOverflow:
		return "integer_overflow"
	case TrapMemoryOutOfBounds:
		return "memory_out_of_bounds"
	case TrapTableOutOfBounds:
		return "table_out_of_bounds"
	case TrapIndirectCallTypeMismatch:
		return "indirect_call_type_mismatch"
	case TrapIndirectCallToNull:
		return "indirect_call_to_null"
	case TrapStackOverflow:
		return "stack_overflow"
	default:
		return "trap"
	}
}
