package regir

// Instruction is one IR word. Every variant shares one struct shape with
// generic fields rather than a family of Go types per opcode — the Op
// discriminant says which fields are meaningful. A, B, C are register
// operands (their meaning depends on Op: result/dest, lhs, rhs, or plain
// operand list slots for continuations); Imm carries an immediate, a raw
// bit pattern, an index (memory/table/data/elem), or an offset depending
// on Op; Offset carries a resolved (or not-yet-resolved placeholder)
// signed branch delta.
type Instruction struct {
	Op     Opcode
	A      Reg
	B      Reg
	C      Reg
	Imm    int64
	Offset int32
	Trap   TrapCode
}

// Control instructions.

func MakeTrap(code TrapCode) Instruction {
	return Instruction{Op: OpTrap, Trap: code}
}

func MakeConsumeFuel(amount int64) Instruction {
	return Instruction{Op: OpConsumeFuel, Imm: amount}
}

func MakeBranch(offset int32) Instruction {
	return Instruction{Op: OpBranch, Offset: offset}
}

func MakeBranchEqz(condition Reg, offset int32) Instruction {
	return Instruction{Op: OpBranchEqz, A: condition, Offset: offset}
}

func MakeBranchNez(condition Reg, offset int32) Instruction {
	return Instruction{Op: OpBranchNez, A: condition, Offset: offset}
}

// MakeBranchCmp builds a fused compare+branch instruction: branch taken
// when `lhs OP rhs` holds.
func MakeBranchCmp(op Opcode, lhs, rhs Reg, offset int32) Instruction {
	return Instruction{Op: op, A: lhs, B: rhs, Offset: offset}
}

// Return instructions.

func MakeReturn() Instruction { return Instruction{Op: OpReturn} }

func MakeReturnReg(r Reg) Instruction { return Instruction{Op: OpReturnReg, A: r} }

func MakeReturnReg2(r0, r1 Reg) Instruction {
	return Instruction{Op: OpReturnReg2, A: r0, B: r1}
}

func MakeReturnReg3(r0, r1, r2 Reg) Instruction {
	return Instruction{Op: OpReturnReg3, A: r0, B: r1, C: r2}
}

func MakeReturnImm32(bits int64) Instruction {
	return Instruction{Op: OpReturnImm32, Imm: bits}
}

func MakeReturnSpan(start Reg, length int) Instruction {
	return Instruction{Op: OpReturnSpan, A: start, Imm: int64(length)}
}

func MakeReturnMany() Instruction { return Instruction{Op: OpReturnMany} }

// Copy instructions.

func MakeCopy(dst, src Reg) Instruction { return Instruction{Op: OpCopy, A: dst, B: src} }

func MakeCopy2(dst0, dst1, src0, src1 Reg) Instruction {
	// A single word with no continuation: A/B carry the first pair,
	// C carries dst1 and Imm carries src1.
	return Instruction{Op: OpCopy2, A: dst0, B: src0, C: dst1, Imm: int64(src1)}
}

func MakeCopyImm32(dst Reg, bits int32) Instruction {
	return Instruction{Op: OpCopyImm32, A: dst, Imm: int64(bits)}
}

func MakeCopySpan(result BoundedRegSpan, values BoundedRegSpan, nonOverlapping bool) Instruction {
	op := OpCopySpan
	if nonOverlapping {
		op = OpCopySpanNonOverlapping
	}
	return Instruction{Op: op, A: result.Start, B: values.Start, Imm: int64(result.Len)}
}

func MakeCopyMany(nonOverlapping bool) Instruction {
	op := OpCopyMany
	if nonOverlapping {
		op = OpCopyManyNonOverlapping
	}
	return Instruction{Op: op}
}

// Select instructions.

func MakeSelect(dst, condition, ifTrue, ifFalse Reg) Instruction {
	return Instruction{Op: OpSelect, A: dst, B: condition, C: ifTrue, Imm: int64(ifFalse)}
}

func MakeSelectImm32(dst, condition Reg, ifTrueBits int32, ifFalse Reg) Instruction {
	return Instruction{Op: OpSelectImm32, A: dst, B: condition, C: ifFalse, Imm: int64(ifTrueBits)}
}

// MakeSelectCmp fuses a comparison's operands directly into select's
// condition slot.
func MakeSelectCmp(op Opcode, dst, lhs, rhs, ifTrue, ifFalse Reg) Instruction {
	return Instruction{Op: op, A: dst, B: lhs, C: rhs, Imm: int64(ifTrue)<<16 | int64(uint16(ifFalse))}
}

// Globals.

func MakeGlobalGet(dst Reg, idx uint32) Instruction {
	return Instruction{Op: OpGlobalGet, A: dst, Imm: int64(idx)}
}

func MakeGlobalSet(idx uint32, value Reg) Instruction {
	return Instruction{Op: OpGlobalSet, A: value, Imm: int64(idx)}
}

// Numeric register-register binary op.
func MakeBinary(op Opcode, dst, lhs, rhs Reg) Instruction {
	return Instruction{Op: op, A: dst, B: lhs, C: rhs}
}

// Numeric op with a folded-in 16-bit immediate (either side, depending on op).
func MakeBinaryImm16(op Opcode, dst, reg Reg, imm16 int16) Instruction {
	return Instruction{Op: op, A: dst, B: reg, Imm: int64(imm16)}
}

func MakeUnary(op Opcode, dst, src Reg) Instruction {
	return Instruction{Op: op, A: dst, B: src}
}

// Memory load/store.

func MakeLoad(op Opcode, dst, base Reg, offsetLo uint32) Instruction {
	return Instruction{Op: op, A: dst, B: base, Imm: int64(offsetLo)}
}

func MakeLoadOffset16(op Opcode, dst, base Reg, offset16 uint16) Instruction {
	return Instruction{Op: op, A: dst, B: base, Imm: int64(offset16)}
}

func MakeLoadAt(op Opcode, dst Reg, address uint32) Instruction {
	return Instruction{Op: op, A: dst, Imm: int64(address)}
}

func MakeStore(op Opcode, base, value Reg, offsetLo uint32) Instruction {
	return Instruction{Op: op, A: base, B: value, Imm: int64(offsetLo)}
}

func MakeStoreImm16(op Opcode, base Reg, offset16 uint16, imm16 int16) Instruction {
	return Instruction{Op: op, A: base, Imm: int64(offset16)<<16 | int64(uint16(imm16))}
}

func MakeStoreOffset16(op Opcode, base, value Reg, offset16 uint16) Instruction {
	return Instruction{Op: op, A: base, B: value, Imm: int64(offset16)}
}

func MakeStoreAt(op Opcode, value Reg, address uint32) Instruction {
	return Instruction{Op: op, A: value, Imm: int64(address)}
}

// Calls.

func MakeCallInternal(results BoundedRegSpan, fn uint32) Instruction {
	return Instruction{Op: OpCallInternal, A: results.Start, Imm: int64(fn), Offset: int32(results.Len)}
}

func MakeCallIndirect(results BoundedRegSpan, typeIdx uint32) Instruction {
	return Instruction{Op: OpCallIndirect, A: results.Start, Imm: int64(typeIdx), Offset: int32(results.Len)}
}

func MakeReturnCallInternal(fn uint32) Instruction {
	return Instruction{Op: OpReturnCallInternal, Imm: int64(fn)}
}

// Continuations.

func MakeContRegister(r Reg) Instruction { return Instruction{Op: OpContRegister, A: r} }

func MakeContRegister2(r0, r1 Reg) Instruction {
	return Instruction{Op: OpContRegister2, A: r0, B: r1}
}

func MakeContRegister3(r0, r1, r2 Reg) Instruction {
	return Instruction{Op: OpContRegister3, A: r0, B: r1, C: r2}
}

func MakeContRegisterList(r0, r1, r2 Reg) Instruction {
	return Instruction{Op: OpContRegisterList, A: r0, B: r1, C: r2}
}

func MakeContConst32(bits int32) Instruction {
	return Instruction{Op: OpContConst32, Imm: int64(bits)}
}

func MakeContMemoryIndex(idx uint32) Instruction {
	return Instruction{Op: OpContMemoryIndex, Imm: int64(idx)}
}

func MakeContTableIndex(idx uint32) Instruction {
	return Instruction{Op: OpContTableIndex, Imm: int64(idx)}
}

func MakeContDataSegmentIdx(idx uint32) Instruction {
	return Instruction{Op: OpContDataSegmentIdx, Imm: int64(idx)}
}

func MakeContElementSegmentIdx(idx uint32) Instruction {
	return Instruction{Op: OpContElementSegmentIdx, Imm: int64(idx)}
}

func MakeContBranchTableTarget(offset int32) Instruction {
	return Instruction{Op: OpContBranchTableTarget, Offset: offset}
}

func MakeContCallIndirectParams(tableIdx uint32, index Reg) Instruction {
	return Instruction{Op: OpContCallIndirectParams, A: index, Imm: int64(tableIdx)}
}

func MakeContCallIndirectParamsImm16(tableIdx uint32, index16 uint16) Instruction {
	return Instruction{Op: OpContCallIndirectParamsImm16, Imm: int64(tableIdx)<<16 | int64(index16)}
}

// Globals, imm16 set form.

func MakeGlobalSetImm16(op Opcode, idx uint32, imm16 int16) Instruction {
	return Instruction{Op: op, Imm: int64(idx)<<16 | int64(uint16(imm16))}
}

// Select, remaining variants.

func MakeSelectRev(dst, condition, ifTrue, ifFalse Reg) Instruction {
	return Instruction{Op: OpSelectRev, A: dst, B: condition, C: ifTrue, Imm: int64(ifFalse)}
}

// Return, remaining variants.

func MakeReturnReg2Inst(r0, r1 Reg) Instruction { return MakeReturnReg2(r0, r1) }

func MakeReturnNezReg(condition, value Reg) Instruction {
	return Instruction{Op: OpReturnNezReg, A: condition, B: value}
}

func MakeReturnNezImm32(condition Reg, bits int32) Instruction {
	return Instruction{Op: OpReturnNezImm32, A: condition, Imm: int64(bits)}
}

// Calls, indirect and tail variants.

func MakeCallImported(results BoundedRegSpan, importIdx uint32) Instruction {
	return Instruction{Op: OpCallImported, A: results.Start, Imm: int64(importIdx), Offset: int32(results.Len)}
}

func MakeReturnCallImported(importIdx uint32) Instruction {
	return Instruction{Op: OpReturnCallImported, Imm: int64(importIdx)}
}

func MakeReturnCallIndirect(typeIdx uint32) Instruction {
	return Instruction{Op: OpReturnCallIndirect, Imm: int64(typeIdx)}
}

// Branch table, dedicated-arity forms. The primary word carries the
// index register and the explicit target count; explicit targets ride
// OpContBranchTableTarget continuations, one per arm, followed by one
// more continuation for the default target.
func MakeBranchTable(op Opcode, index Reg, numTargets int) Instruction {
	return Instruction{Op: op, A: index, Imm: int64(numTargets)}
}

// Reference types.

func MakeRefFunc(dst Reg, fn uint32) Instruction {
	return Instruction{Op: OpRefFunc, A: dst, Imm: int64(fn)}
}

func MakeRefIsNull(dst, src Reg) Instruction {
	return Instruction{Op: OpRefIsNull, A: dst, B: src}
}

// Tables.

func MakeTableGet(dst, idx Reg, table uint32) Instruction {
	return Instruction{Op: OpTableGet, A: dst, B: idx, Imm: int64(table)}
}

func MakeTableGetImm(dst Reg, table, idx uint32) Instruction {
	return Instruction{Op: OpTableGetImm, A: dst, Imm: int64(table)<<32 | int64(idx)}
}

func MakeTableSet(idx, value Reg, table uint32) Instruction {
	return Instruction{Op: OpTableSet, A: idx, B: value, Imm: int64(table)}
}

func MakeTableSetAt(value Reg, table, idx uint32) Instruction {
	return Instruction{Op: OpTableSetAt, A: value, Imm: int64(table)<<32 | int64(idx)}
}

func MakeTableSize(dst Reg, table uint32) Instruction {
	return Instruction{Op: OpTableSize, A: dst, Imm: int64(table)}
}

func MakeTableGrow(dst, delta, initVal Reg, table uint32) Instruction {
	return Instruction{Op: OpTableGrow, A: dst, B: delta, C: initVal, Imm: int64(table)}
}

func MakeTableGrowImm(dst Reg, deltaImm int32, initVal Reg, table uint32) Instruction {
	return Instruction{Op: OpTableGrowImm, A: dst, C: initVal, Imm: int64(table)<<32 | int64(uint32(deltaImm))}
}

func MakeTableFill(table uint32, idx, value, count Reg) Instruction {
	return Instruction{Op: OpTableFill, A: idx, B: value, C: count, Imm: int64(table)}
}

func MakeTableFillImm(table uint32, idx, value Reg, count uint32) Instruction {
	return Instruction{Op: OpTableFillImm, A: idx, B: value, Imm: int64(table)<<32 | int64(count)}
}

func MakeTableCopy(dstTable, srcTable uint32, dstIdx, srcIdx, count Reg) Instruction {
	return Instruction{Op: OpTableCopy, A: dstIdx, B: srcIdx, C: count, Imm: int64(dstTable)<<32 | int64(srcTable)}
}

func MakeTableInit(table uint32, elem uint32, dstIdx, srcIdx, count Reg) Instruction {
	return Instruction{Op: OpTableInit, A: dstIdx, B: srcIdx, C: count, Imm: int64(table)<<32 | int64(elem)}
}

func MakeElemDrop(elem uint32) Instruction {
	return Instruction{Op: OpElemDrop, Imm: int64(elem)}
}

// Memory bulk ops.

func MakeMemorySize(dst Reg) Instruction { return Instruction{Op: OpMemorySize, A: dst} }

func MakeMemoryGrow(dst, delta Reg) Instruction {
	return Instruction{Op: OpMemoryGrow, A: dst, B: delta}
}

func MakeMemoryGrowImm(dst Reg, deltaPages int32) Instruction {
	return Instruction{Op: OpMemoryGrowImm, A: dst, Imm: int64(deltaPages)}
}

func MakeMemoryFill(dstAddr, value, count Reg) Instruction {
	return Instruction{Op: OpMemoryFill, A: dstAddr, B: value, C: count}
}

func MakeMemoryFillImm(dstAddr Reg, valueImm uint8, count Reg) Instruction {
	return Instruction{Op: OpMemoryFillImm, A: dstAddr, C: count, Imm: int64(valueImm)}
}

func MakeMemoryCopy(dstAddr, srcAddr, count Reg) Instruction {
	return Instruction{Op: OpMemoryCopy, A: dstAddr, B: srcAddr, C: count}
}

func MakeMemoryInit(data uint32, dstAddr, srcAddr, count Reg) Instruction {
	return Instruction{Op: OpMemoryInit, A: dstAddr, B: srcAddr, C: count, Imm: int64(data)}
}

func MakeDataDrop(data uint32) Instruction {
	return Instruction{Op: OpDataDrop, Imm: int64(data)}
}
