package regir

// numericOpcodeNames names every numeric/conversion opcode. Kept separate from mnemonic.go's
// control/memory/table table simply because the list is long and purely
// mechanical — one dotted name per (NumOp, ValType, variant) triple.
var numericOpcodeNames = map[Opcode]string{
	OpI32Add: "i32.add", OpI32AddImm16: "i32.add.imm16",
	OpI32Sub: "i32.sub", OpI32SubImm16Lhs: "i32.sub.imm16_lhs",
	OpI32Mul: "i32.mul", OpI32MulImm16: "i32.mul.imm16",
	OpI32DivS: "i32.div_s", OpI32DivSImm16Rhs: "i32.div_s.imm16_rhs", OpI32DivSImm16RhsNonZero: "i32.div_s.imm16_rhs_nz", OpI32DivSImm16Lhs: "i32.div_s.imm16_lhs",
	OpI32DivU: "i32.div_u", OpI32DivUImm16Rhs: "i32.div_u.imm16_rhs", OpI32DivUImm16RhsNonZero: "i32.div_u.imm16_rhs_nz", OpI32DivUImm16Lhs: "i32.div_u.imm16_lhs",
	OpI32RemS: "i32.rem_s", OpI32RemSImm16Rhs: "i32.rem_s.imm16_rhs", OpI32RemSImm16RhsNonZero: "i32.rem_s.imm16_rhs_nz", OpI32RemSImm16Lhs: "i32.rem_s.imm16_lhs",
	OpI32RemU: "i32.rem_u", OpI32RemUImm16Rhs: "i32.rem_u.imm16_rhs", OpI32RemUImm16RhsNonZero: "i32.rem_u.imm16_rhs_nz", OpI32RemUImm16Lhs: "i32.rem_u.imm16_lhs",
	OpI32And: "i32.and", OpI32AndImm16: "i32.and.imm16",
	OpI32Or: "i32.or", OpI32OrImm16: "i32.or.imm16",
	OpI32Xor: "i32.xor", OpI32XorImm16: "i32.xor.imm16",
	OpI32Shl: "i32.shl", OpI32ShlImm16Rhs: "i32.shl.imm16_rhs", OpI32ShlImm16Lhs: "i32.shl.imm16_lhs",
	OpI32ShrS: "i32.shr_s", OpI32ShrSImm16Rhs: "i32.shr_s.imm16_rhs", OpI32ShrSImm16Lhs: "i32.shr_s.imm16_lhs",
	OpI32ShrU: "i32.shr_u", OpI32ShrUImm16Rhs: "i32.shr_u.imm16_rhs", OpI32ShrUImm16Lhs: "i32.shr_u.imm16_lhs",
	OpI32Rotl: "i32.rotl", OpI32RotlImm16Rhs: "i32.rotl.imm16_rhs",
	OpI32Rotr: "i32.rotr", OpI32RotrImm16Rhs: "i32.rotr.imm16_rhs",
	OpI32Eq: "i32.eq", OpI32EqImm16: "i32.eq.imm16",
	OpI32Ne: "i32.ne", OpI32NeImm16: "i32.ne.imm16",
	OpI32LtS: "i32.lt_s", OpI32LtSImm16Rhs: "i32.lt_s.imm16_rhs", OpI32LtSImm16Lhs: "i32.lt_s.imm16_lhs",
	OpI32LtU: "i32.lt_u", OpI32LtUImm16Rhs: "i32.lt_u.imm16_rhs", OpI32LtUImm16Lhs: "i32.lt_u.imm16_lhs",
	OpI32GtS: "i32.gt_s", OpI32GtSImm16Rhs: "i32.gt_s.imm16_rhs", OpI32GtSImm16Lhs: "i32.gt_s.imm16_lhs",
	OpI32GtU: "i32.gt_u", OpI32GtUImm16Rhs: "i32.gt_u.imm16_rhs", OpI32GtUImm16Lhs: "i32.gt_u.imm16_lhs",
	OpI32LeS: "i32.le_s", OpI32LeSImm16Rhs: "i32.le_s.imm16_rhs", OpI32LeSImm16Lhs: "i32.le_s.imm16_lhs",
	OpI32LeU: "i32.le_u", OpI32LeUImm16Rhs: "i32.le_u.imm16_rhs", OpI32LeUImm16Lhs: "i32.le_u.imm16_lhs",
	OpI32GeS: "i32.ge_s", OpI32GeSImm16Rhs: "i32.ge_s.imm16_rhs", OpI32GeSImm16Lhs: "i32.ge_s.imm16_lhs",
	OpI32GeU: "i32.ge_u", OpI32GeUImm16Rhs: "i32.ge_u.imm16_rhs", OpI32GeUImm16Lhs: "i32.ge_u.imm16_lhs",
	OpI32Clz: "i32.clz", OpI32Ctz: "i32.ctz", OpI32Popcnt: "i32.popcnt", OpI32Eqz: "i32.eqz",

	OpI64Add: "i64.add", OpI64AddImm16: "i64.add.imm16",
	OpI64Sub: "i64.sub", OpI64SubImm16Lhs: "i64.sub.imm16_lhs",
	OpI64Mul: "i64.mul", OpI64MulImm16: "i64.mul.imm16",
	OpI64DivS: "i64.div_s", OpI64DivSImm16RhsNonZero: "i64.div_s.imm16_rhs_nz",
	OpI64DivU: "i64.div_u", OpI64DivUImm16RhsNonZero: "i64.div_u.imm16_rhs_nz",
	OpI64RemS: "i64.rem_s", OpI64RemSImm16RhsNonZero: "i64.rem_s.imm16_rhs_nz",
	OpI64RemU: "i64.rem_u", OpI64RemUImm16RhsNonZero: "i64.rem_u.imm16_rhs_nz",
	OpI64And: "i64.and", OpI64AndImm16: "i64.and.imm16",
	OpI64Or: "i64.or", OpI64OrImm16: "i64.or.imm16",
	OpI64Xor: "i64.xor", OpI64XorImm16: "i64.xor.imm16",
	OpI64Shl: "i64.shl", OpI64ShlImm16Rhs: "i64.shl.imm16_rhs",
	OpI64ShrS: "i64.shr_s", OpI64ShrSImm16Rhs: "i64.shr_s.imm16_rhs",
	OpI64ShrU: "i64.shr_u", OpI64ShrUImm16Rhs: "i64.shr_u.imm16_rhs",
	OpI64Rotl: "i64.rotl", OpI64Rotr: "i64.rotr",
	OpI64Eq: "i64.eq", OpI64EqImm16: "i64.eq.imm16",
	OpI64Ne: "i64.ne", OpI64NeImm16: "i64.ne.imm16",
	OpI64LtS: "i64.lt_s", OpI64LtU: "i64.lt_u",
	OpI64GtS: "i64.gt_s", OpI64GtU: "i64.gt_u",
	OpI64LeS: "i64.le_s", OpI64LeU: "i64.le_u",
	OpI64GeS: "i64.ge_s", OpI64GeU: "i64.ge_u",
	OpI64Eqz: "i64.eqz",

	OpF32Add: "f32.add", OpF32Sub: "f32.sub", OpF32Mul: "f32.mul", OpF32Div: "f32.div",
	OpF32Min: "f32.min", OpF32Max: "f32.max", OpF32Copysign: "f32.copysign",
	OpF32Eq: "f32.eq", OpF32Ne: "f32.ne", OpF32Lt: "f32.lt", OpF32Gt: "f32.gt", OpF32Le: "f32.le", OpF32Ge: "f32.ge",
	OpF32Neg: "f32.neg", OpF32Abs: "f32.abs", OpF32Sqrt: "f32.sqrt",

	OpF64Add: "f64.add", OpF64Sub: "f64.sub", OpF64Mul: "f64.mul", OpF64Div: "f64.div",
	OpF64Min: "f64.min", OpF64Max: "f64.max", OpF64Copysign: "f64.copysign",
	OpF64Eq: "f64.eq", OpF64Ne: "f64.ne", OpF64Lt: "f64.lt", OpF64Gt: "f64.gt", OpF64Le: "f64.le", OpF64Ge: "f64.ge",
	OpF64Neg: "f64.neg", OpF64Abs: "f64.abs", OpF64Sqrt: "f64.sqrt",

	OpI32WrapI64: "i32.wrap_i64",
	OpI64ExtendI32S: "i64.extend_i32_s", OpI64ExtendI32U: "i64.extend_i32_u",
	OpI32Extend8S: "i32.extend8_s", OpI32Extend16S: "i32.extend16_s",
	OpI64Extend8S: "i64.extend8_s", OpI64Extend16S: "i64.extend16_s", OpI64Extend32S: "i64.extend32_s",
	OpF32DemoteF64: "f32.demote_f64", OpF64PromoteF32: "f64.promote_f32",
	OpI32TruncF32S: "i32.trunc_f32_s", OpI32TruncF32U: "i32.trunc_f32_u",
	OpI32TruncF64S: "i32.trunc_f64_s", OpI32TruncF64U: "i32.trunc_f64_u",
	OpI64TruncF32S: "i64.trunc_f32_s", OpI64TruncF32U: "i64.trunc_f32_u",
	OpI64TruncF64S: "i64.trunc_f64_s", OpI64TruncF64U: "i64.trunc_f64_u",
	OpI32TruncSatF32S: "i32.trunc_sat_f32_s", OpI32TruncSatF32U: "i32.trunc_sat_f32_u",
	OpI32TruncSatF64S: "i32.trunc_sat_f64_s", OpI32TruncSatF64U: "i32.trunc_sat_f64_u",
	OpI64TruncSatF32S: "i64.trunc_sat_f32_s", OpI64TruncSatF32U: "i64.trunc_sat_f32_u",
	OpI64TruncSatF64S: "i64.trunc_sat_f64_s", OpI64TruncSatF64U: "i64.trunc_sat_f64_u",
	OpF32ConvertI32S: "f32.convert_i32_s", OpF32ConvertI32U: "f32.convert_i32_u",
	OpF32ConvertI64S: "f32.convert_i64_s", OpF32ConvertI64U: "f32.convert_i64_u",
	OpF64ConvertI32S: "f64.convert_i32_s", OpF64ConvertI32U: "f64.convert_i32_u",
	OpF64ConvertI64S: "f64.convert_i64_s", OpF64ConvertI64U: "f64.convert_i64_u",
	OpI32ReinterpretF32: "i32.reinterpret_f32", OpI64ReinterpretF64: "i64.reinterpret_f64",
	OpF32ReinterpretI32: "f32.reinterpret_i32", OpF64ReinterpretI64: "f64.reinterpret_i64",
}
