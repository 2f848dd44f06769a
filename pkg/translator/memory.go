package translator

import (
	"math"

	"github.com/minz/wasmreg/pkg/regir"
)

// isLoadOp/isStoreOp delimit the load/store family the same way
// isNumericOp/isConversionOp do, over the contiguous range wasmop.go
// lays them out in.
func isLoadOp(op WasmOp) bool {
	return op >= OpI32Load && op <= OpI64Load32U
}

func isStoreOp(op WasmOp) bool {
	return op >= OpI32Store && op <= OpI64Store32
}

type loadSpec struct {
	op         regir.Opcode
	offset16Op regir.Opcode // 0 if this width has no Offset16 variant
	atOp       regir.Opcode // 0 if this width has no constant-address variant
}

var loadOps = map[WasmOp]loadSpec{
	OpI32Load: {regir.OpI32Load, regir.OpI32LoadOffset16, regir.OpI32LoadAt},
	OpI64Load: {regir.OpI64Load, regir.OpI64LoadOffset16, regir.OpI64LoadAt},
	OpF32Load: {regir.OpF32Load, regir.OpF32LoadOffset16, regir.OpF32LoadAt},
	OpF64Load: {regir.OpF64Load, regir.OpF64LoadOffset16, regir.OpF64LoadAt},

	OpI32Load8S:  {op: regir.OpI32Load8S},
	OpI32Load8U:  {op: regir.OpI32Load8U},
	OpI32Load16S: {op: regir.OpI32Load16S},
	OpI32Load16U: {op: regir.OpI32Load16U},
	OpI64Load8S:  {op: regir.OpI64Load8S},
	OpI64Load8U:  {op: regir.OpI64Load8U},
	OpI64Load16S: {op: regir.OpI64Load16S},
	OpI64Load16U: {op: regir.OpI64Load16U},
	OpI64Load32S: {op: regir.OpI64Load32S},
	OpI64Load32U: {op: regir.OpI64Load32U},
}

type storeSpec struct {
	op         regir.Opcode
	offset16Op regir.Opcode // 0 if this width has no Offset16 variant
	atOp       regir.Opcode // 0 if this width has no constant-address variant
	imm16Op    regir.Opcode // 0 if this width has no constant-value variant
}

var storeOps = map[WasmOp]storeSpec{
	OpI32Store: {regir.OpI32Store, regir.OpI32StoreOffset16, regir.OpI32StoreAt, regir.OpI32StoreImm16},
	OpI64Store: {regir.OpI64Store, regir.OpI64StoreOffset16, regir.OpI64StoreAt, regir.OpI64StoreImm16},
	OpF32Store: {op: regir.OpF32Store, offset16Op: regir.OpF32StoreOffset16, atOp: regir.OpF32StoreAt},
	OpF64Store: {op: regir.OpF64Store, offset16Op: regir.OpF64StoreOffset16, atOp: regir.OpF64StoreAt},

	OpI32Store8:  {op: regir.OpI32Store8, imm16Op: regir.OpI32Store8Imm16},
	OpI32Store16: {op: regir.OpI32Store16, imm16Op: regir.OpI32Store16Imm16},
	OpI64Store8:  {op: regir.OpI64Store8, imm16Op: regir.OpI64Store8Imm16},
	OpI64Store16: {op: regir.OpI64Store16, imm16Op: regir.OpI64Store16Imm16},
	OpI64Store32: {op: regir.OpI64Store32, imm16Op: regir.OpI64Store32Imm16},
}

// foldAddress adds mem's byte offset to a constant base address, folding
// to a single absolute address only when the sum stays within 32 bits —
// otherwise the add is left to the runtime, which is the one that traps
// on an out-of-bounds access.
func foldAddress(base regir.TypedVal, offset uint32) (uint32, bool) {
	sum := uint64(uint32(base.I32())) + uint64(offset)
	if sum > math.MaxUint32 {
		return 0, false
	}
	return uint32(sum), true
}

func (t *FuncTranslator) visitLoad(op WasmOp, mem MemArg) error {
	if t.bail() {
		return nil
	}
	spec := loadOps[op]
	base := t.vs.Pop()

	if spec.atOp != 0 && base.IsConst() {
		if addr, ok := foldAddress(base.Const(), mem.Offset); ok {
			dst, err := t.vs.PushDynamic()
			if err != nil {
				return err
			}
			t.enc.PushInstr(regir.MakeLoadAt(spec.atOp, dst, addr))
			return nil
		}
	}

	baseReg, err := base.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	if spec.offset16Op != 0 && mem.Offset <= math.MaxUint16 {
		t.enc.PushInstr(regir.MakeLoadOffset16(spec.offset16Op, dst, baseReg, uint16(mem.Offset)))
		return nil
	}
	t.enc.PushInstr(regir.MakeLoad(spec.op, dst, baseReg, mem.Offset))
	return nil
}

func (t *FuncTranslator) visitStore(op WasmOp, mem MemArg) error {
	if t.bail() {
		return nil
	}
	spec := storeOps[op]
	base, value := t.vs.Pop2()

	if spec.imm16Op != 0 && value.IsConst() {
		c := value.Const()
		if !c.Type.IsFloat() && c.FitsImm16(true) && mem.Offset <= math.MaxUint16 {
			baseReg, err := base.ResolveReg(t.vs.Pool())
			if err != nil {
				return err
			}
			t.enc.PushInstr(regir.MakeStoreImm16(spec.imm16Op, baseReg, uint16(mem.Offset), int16(imm16Value(c, true))))
			return nil
		}
	}

	if spec.atOp != 0 && base.IsConst() {
		if addr, ok := foldAddress(base.Const(), mem.Offset); ok {
			valueReg, err := value.ResolveReg(t.vs.Pool())
			if err != nil {
				return err
			}
			t.enc.PushInstr(regir.MakeStoreAt(spec.atOp, valueReg, addr))
			return nil
		}
	}

	baseReg, err := base.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	valueReg, err := value.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	if spec.offset16Op != 0 && mem.Offset <= math.MaxUint16 {
		t.enc.PushInstr(regir.MakeStoreOffset16(spec.offset16Op, baseReg, valueReg, uint16(mem.Offset)))
		return nil
	}
	t.enc.PushInstr(regir.MakeStore(spec.op, baseReg, valueReg, mem.Offset))
	return nil
}
