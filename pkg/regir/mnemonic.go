package regir

// mnemonics gives the textual name printed by pkg/disasm for every
// opcode this core emits, one name per Opcode. The table is kept
// separate from the disassembler itself, which owns operand layout and
// formatting; this file only owns the name.
var mnemonics = map[Opcode]string{
	OpTrap:        "trap",
	OpConsumeFuel: "consume_fuel",
	OpBranch:      "branch",

	OpBranchCmpFallback: "branch_cmp_fallback",
	OpBranchCmpI32Eq:    "branch_cmp.i32.eq",
	OpBranchCmpI32Ne:    "branch_cmp.i32.ne",
	OpBranchCmpI32LtS:   "branch_cmp.i32.lt_s",
	OpBranchCmpI32LtU:   "branch_cmp.i32.lt_u",
	OpBranchCmpI32GtS:   "branch_cmp.i32.gt_s",
	OpBranchCmpI32GtU:   "branch_cmp.i32.gt_u",
	OpBranchCmpI32LeS:   "branch_cmp.i32.le_s",
	OpBranchCmpI32LeU:   "branch_cmp.i32.le_u",
	OpBranchCmpI32GeS:   "branch_cmp.i32.ge_s",
	OpBranchCmpI32GeU:   "branch_cmp.i32.ge_u",
	OpBranchCmpI32EqImm: "branch_cmp.i32.eq_imm",
	OpBranchCmpI32NeImm: "branch_cmp.i32.ne_imm",
	OpBranchCmpI64Eq:    "branch_cmp.i64.eq",
	OpBranchCmpI64Ne:    "branch_cmp.i64.ne",
	OpBranchEqz:         "branch_eqz",
	OpBranchNez:         "branch_nez",
	OpBranchTable0:      "branch_table.0",
	OpBranchTable1:      "branch_table.1",
	OpBranchTable2:      "branch_table.2",
	OpBranchTable3:      "branch_table.3",
	OpBranchTableSpan:   "branch_table.span",
	OpBranchTableMany:   "branch_table.many",

	OpReturn:         "return",
	OpReturnReg:      "return.reg",
	OpReturnReg2:     "return.reg2",
	OpReturnReg3:     "return.reg3",
	OpReturnImm32:    "return.imm32",
	OpReturnI64Imm32: "return.i64imm32",
	OpReturnF64Imm32: "return.f64imm32",
	OpReturnSpan:     "return.span",
	OpReturnMany:     "return.many",
	OpReturnNezReg:   "return_nez.reg",
	OpReturnNezImm32: "return_nez.imm32",

	OpCopy:                   "copy",
	OpCopy2:                  "copy2",
	OpCopyImm32:              "copy.imm32",
	OpCopyI64Imm32:           "copy.i64imm32",
	OpCopyF64Imm32:           "copy.f64imm32",
	OpCopySpan:               "copy.span",
	OpCopySpanNonOverlapping: "copy.span_nonoverlap",
	OpCopyMany:               "copy.many",
	OpCopyManyNonOverlapping: "copy.many_nonoverlap",

	OpCallInternal:        "call.internal",
	OpCallInternal0:       "call.internal0",
	OpCallImported:        "call.imported",
	OpCallImported0:       "call.imported0",
	OpCallIndirect:        "call.indirect",
	OpCallIndirect0:       "call.indirect0",
	OpReturnCallInternal:  "return_call.internal",
	OpReturnCallInternal0: "return_call.internal0",
	OpReturnCallImported:  "return_call.imported",
	OpReturnCallImported0: "return_call.imported0",
	OpReturnCallIndirect:  "return_call.indirect",
	OpReturnCallIndirect0: "return_call.indirect0",

	OpSelect:          "select",
	OpSelectRev:        "select_rev",
	OpSelectImm32:      "select.imm32",
	OpSelectI64Imm32:   "select.i64imm32",
	OpSelectF64Imm32:   "select.f64imm32",
	OpSelectCmpI32Eq:  "select_cmp.i32.eq",
	OpSelectCmpI32Ne:  "select_cmp.i32.ne",
	OpSelectCmpI32LtS: "select_cmp.i32.lt_s",
	OpSelectCmpI32LtU: "select_cmp.i32.lt_u",
	OpSelectCmpI32GtS: "select_cmp.i32.gt_s",
	OpSelectCmpI32GtU: "select_cmp.i32.gt_u",
	OpSelectCmpI32LeS: "select_cmp.i32.le_s",
	OpSelectCmpI32LeU: "select_cmp.i32.le_u",
	OpSelectCmpI32GeS: "select_cmp.i32.ge_s",
	OpSelectCmpI32GeU: "select_cmp.i32.ge_u",
	OpSelectCmpI64Eq:  "select_cmp.i64.eq",
	OpSelectCmpI64Ne:  "select_cmp.i64.ne",
	OpSelectCmpI64LtS: "select_cmp.i64.lt_s",
	OpSelectCmpI64LtU: "select_cmp.i64.lt_u",
	OpSelectCmpI64GtS: "select_cmp.i64.gt_s",
	OpSelectCmpI64GtU: "select_cmp.i64.gt_u",
	OpSelectCmpI64LeS: "select_cmp.i64.le_s",
	OpSelectCmpI64LeU: "select_cmp.i64.le_u",
	OpSelectCmpI64GeS: "select_cmp.i64.ge_s",
	OpSelectCmpI64GeU: "select_cmp.i64.ge_u",
	OpSelectCmpF32Eq:  "select_cmp.f32.eq",
	OpSelectCmpF32Ne:  "select_cmp.f32.ne",
	OpSelectCmpF32Lt:  "select_cmp.f32.lt",
	OpSelectCmpF32Gt:  "select_cmp.f32.gt",
	OpSelectCmpF32Le:  "select_cmp.f32.le",
	OpSelectCmpF32Ge:  "select_cmp.f32.ge",
	OpSelectCmpF64Eq:  "select_cmp.f64.eq",
	OpSelectCmpF64Ne:  "select_cmp.f64.ne",
	OpSelectCmpF64Lt:  "select_cmp.f64.lt",
	OpSelectCmpF64Gt:  "select_cmp.f64.gt",
	OpSelectCmpF64Le:  "select_cmp.f64.le",
	OpSelectCmpF64Ge:  "select_cmp.f64.ge",

	OpGlobalGet:         "global.get",
	OpGlobalSet:         "global.set",
	OpGlobalSetI32Imm16: "global.set_i32.imm16",
	OpGlobalSetI64Imm16: "global.set_i64.imm16",

	OpI32Load: "i32.load", OpI32LoadOffset16: "i32.load.offset16", OpI32LoadAt: "i32.load.at",
	OpI64Load: "i64.load", OpI64LoadOffset16: "i64.load.offset16", OpI64LoadAt: "i64.load.at",
	OpF32Load: "f32.load", OpF32LoadOffset16: "f32.load.offset16", OpF32LoadAt: "f32.load.at",
	OpF64Load: "f64.load", OpF64LoadOffset16: "f64.load.offset16", OpF64LoadAt: "f64.load.at",
	OpI32Load8S: "i32.load8_s", OpI32Load8U: "i32.load8_u",
	OpI32Load16S: "i32.load16_s", OpI32Load16U: "i32.load16_u",
	OpI64Load8S: "i64.load8_s", OpI64Load8U: "i64.load8_u",
	OpI64Load16S: "i64.load16_s", OpI64Load16U: "i64.load16_u",
	OpI64Load32S: "i64.load32_s", OpI64Load32U: "i64.load32_u",

	OpI32Store: "i32.store", OpI32StoreOffset16: "i32.store.offset16", OpI32StoreAt: "i32.store.at", OpI32StoreImm16: "i32.store.imm16",
	OpI64Store: "i64.store", OpI64StoreOffset16: "i64.store.offset16", OpI64StoreAt: "i64.store.at", OpI64StoreImm16: "i64.store.imm16",
	OpF32Store: "f32.store", OpF32StoreOffset16: "f32.store.offset16", OpF32StoreAt: "f32.store.at",
	OpF64Store: "f64.store", OpF64StoreOffset16: "f64.store.offset16", OpF64StoreAt: "f64.store.at",
	OpI32Store8: "i32.store8", OpI32Store8Imm16: "i32.store8.imm16",
	OpI32Store16: "i32.store16", OpI32Store16Imm16: "i32.store16.imm16",
	OpI64Store8: "i64.store8", OpI64Store8Imm16: "i64.store8.imm16",
	OpI64Store16: "i64.store16", OpI64Store16Imm16: "i64.store16.imm16",
	OpI64Store32: "i64.store32", OpI64Store32Imm16: "i64.store32.imm16",

	OpRefFunc: "ref.func", OpRefIsNull: "ref.is_null",
	OpTableGet: "table.get", OpTableGetImm: "table.get.imm",
	OpTableSet: "table.set", OpTableSetAt: "table.set.at",
	OpTableSize: "table.size",
	OpTableGrow: "table.grow", OpTableGrowImm: "table.grow.imm",
	OpTableFill: "table.fill", OpTableFillImm: "table.fill.imm", OpTableFillExact: "table.fill.exact",
	OpTableCopy: "table.copy", OpTableCopyImm: "table.copy.imm",
	OpTableInit: "table.init", OpTableInitImm: "table.init.imm",
	OpElemDrop: "elem.drop",

	OpMemorySize: "memory.size",
	OpMemoryGrow: "memory.grow", OpMemoryGrowImm: "memory.grow.imm",
	OpMemoryFill: "memory.fill", OpMemoryFillImm: "memory.fill.imm", OpMemoryFillExact: "memory.fill.exact",
	OpMemoryCopy: "memory.copy", OpMemoryCopyImm: "memory.copy.imm",
	OpMemoryInit: "memory.init", OpMemoryInitImm: "memory.init.imm",
	OpDataDrop: "data.drop",

	OpContRegister:                 "<reg>",
	OpContRegister2:                "<reg2>",
	OpContRegister3:                "<reg3>",
	OpContRegisterList:             "<reg_list>",
	OpContRegisterAndOffsetHi:      "<reg_offset_hi>",
	OpContImm16AndOffsetHi:         "<imm16_offset_hi>",
	OpContCallIndirectParams:       "<call_indirect_params>",
	OpContCallIndirectParamsImm16:  "<call_indirect_params.imm16>",
	OpContMemoryIndex:              "<memory_idx>",
	OpContTableIndex:               "<table_idx>",
	OpContDataSegmentIdx:           "<data_idx>",
	OpContElementSegmentIdx:        "<elem_idx>",
	OpContConst32:                  "<const32>",
	OpContI64Const32:               "<i64const32>",
	OpContF64Const32:               "<f64const32>",
	OpContBranchTableTarget:        "<br_table_target>",
}

func init() {
	for op := range numericOpcodeNames {
		mnemonics[op] = numericOpcodeNames[op]
	}
}

// Mnemonic returns op's disassembly name, or the fallback "op?" if op
// isn't in the table (every declared opcode should be; this is a safety
// net, not a documented extension point — the IR is a sealed union).
func (op Opcode) Mnemonic() string {
	if m, ok := mnemonics[op]; ok {
		return m
	}
	return "op?"
}
