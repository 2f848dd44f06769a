package translator

import "github.com/minz/wasmreg/pkg/wasmshape"

// WasmOp is the exhaustive tag of operator events the visitor dispatches
// on. The alphabet spans MVP,
// sign-extension, nontrapping-float-to-int, bulk-memory,
// reference-types and tail-call, matching every opcode family this
// core's regir package carries (a representative subset per family, not
// every concrete Wasm instruction — see pkg/regir/opcode.go's header
// comment).
type WasmOp uint16

const (
	OpUnreachable WasmOp = iota
	OpNop
	OpBlock
	OpLoop
	OpIf
	OpElse
	OpEnd
	OpBr
	OpBrIf
	OpBrTable
	OpReturn
	OpCall
	OpCallIndirect
	OpReturnCall
	OpReturnCallIndirect
	OpDrop
	OpSelect

	OpLocalGet
	OpLocalSet
	OpLocalTee
	OpGlobalGet
	OpGlobalSet

	OpI32Const
	OpI64Const
	OpF32Const
	OpF64Const

	// Loads/stores, representative per type/width.
	OpI32Load
	OpI64Load
	OpF32Load
	OpF64Load
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
	OpI64Store
	OpF32Store
	OpF64Store
	OpI32Store8
	OpI32Store16
	OpI64Store8
	OpI64Store16
	OpI64Store32

	OpMemorySize
	OpMemoryGrow
	OpMemoryFill
	OpMemoryCopy
	OpMemoryInit
	OpDataDrop

	OpRefFunc
	OpRefIsNull
	OpTableGet
	OpTableSet
	OpTableSize
	OpTableGrow
	OpTableFill
	OpTableCopy
	OpTableInit
	OpElemDrop

	// Numeric, all widths dispatch through NumOp + ValType (see numeric.go).
	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32DivS
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32Shl
	OpI32ShrS
	OpI32ShrU
	OpI32Rotl
	OpI32Rotr
	OpI32Eq
	OpI32Ne
	OpI32LtS
	OpI32LtU
	OpI32GtS
	OpI32GtU
	OpI32LeS
	OpI32LeU
	OpI32GeS
	OpI32GeU
	OpI32Eqz
	OpI32Clz
	OpI32Ctz
	OpI32Popcnt

	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Shl
	OpI64ShrS
	OpI64ShrU
	OpI64Rotl
	OpI64Rotr
	OpI64Eq
	OpI64Ne
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU
	OpI64Eqz

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

	// Conversions / reinterpret / sign-extension / nontrapping-float-to-int.
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
)

// MemArg is a load/store's byte offset and memory index. Alignment is
// not carried.
type MemArg struct {
	Offset uint32
	Mem    wasmshape.MemIdx
}

// Event is one operator in the input stream: the tag plus whichever
// immediates that tag needs. Unused fields for a given Op are simply
// zero — mirroring how `regir.Instruction` reuses one struct shape
// across every opcode rather than a Go type per variant.
type Event struct {
	Op WasmOp

	// block/loop/if
	BlockType BlockType

	// br/br_if/br_table
	Depth   int   // br/br_if: target depth; br_table: default target
	Targets []int // br_table: explicit arm depths

	// local.get/set/tee, global.get/set
	Index uint32

	// call/call_indirect/return_call/return_call_indirect
	FuncIdx  wasmshape.FuncIdx
	TypeIdx  wasmshape.TypeIdx
	TableIdx wasmshape.TableIdx

	// i32.const/i64.const/f32.const/f64.const
	ConstI32 int32
	ConstI64 int64
	ConstF32 float32
	ConstF64 float64

	// loads/stores, memory/table bulk ops
	Mem   MemArg
	Elem  wasmshape.ElemIdx
	Data  wasmshape.DataIdx
	Mem2     wasmshape.MemIdx   // memory.copy's second (source) memory index
	TableIdx2 wasmshape.TableIdx // table.copy's second (source) table index
}
