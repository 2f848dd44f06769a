package translator

import (
	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

// visitMiscExtension handles every operator Visit's main switch and the
// numeric/conversion/load/store families don't claim: memory/table
// management and reference types. Most of these gate on a proposal
// feature bit before touching the stack.
func (t *FuncTranslator) visitMiscExtension(ev Event) error {
	if t.bail() {
		return nil
	}
	switch ev.Op {
	case OpMemorySize:
		return t.visitMemorySize()
	case OpMemoryGrow:
		return t.visitMemoryGrow()
	case OpMemoryFill:
		t.requireFeature(FeatureBulkMemory, "memory.fill")
		return t.visitMemoryFill()
	case OpMemoryCopy:
		t.requireFeature(FeatureBulkMemory, "memory.copy")
		return t.visitMemoryCopy()
	case OpMemoryInit:
		t.requireFeature(FeatureBulkMemory, "memory.init")
		return t.visitMemoryInit(uint32(ev.Data))
	case OpDataDrop:
		t.requireFeature(FeatureBulkMemory, "data.drop")
		t.enc.PushInstr(regir.MakeDataDrop(uint32(ev.Data)))
		return nil
	case OpRefFunc:
		t.requireFeature(FeatureReferenceTypes, "ref.func")
		return t.visitRefFunc(ev.FuncIdx)
	case OpRefIsNull:
		t.requireFeature(FeatureReferenceTypes, "ref.is_null")
		return t.visitRefIsNull()
	case OpTableGet:
		t.requireFeature(FeatureReferenceTypes, "table.get")
		return t.visitTableGet(uint32(ev.TableIdx))
	case OpTableSet:
		t.requireFeature(FeatureReferenceTypes, "table.set")
		return t.visitTableSet(uint32(ev.TableIdx))
	case OpTableSize:
		t.requireFeature(FeatureReferenceTypes, "table.size")
		return t.visitTableSize(uint32(ev.TableIdx))
	case OpTableGrow:
		t.requireFeature(FeatureReferenceTypes, "table.grow")
		return t.visitTableGrow(uint32(ev.TableIdx))
	case OpTableFill:
		t.requireFeature(FeatureBulkMemory, "table.fill")
		return t.visitTableFill(uint32(ev.TableIdx))
	case OpTableCopy:
		t.requireFeature(FeatureBulkMemory, "table.copy")
		return t.visitTableCopy(uint32(ev.TableIdx), uint32(ev.TableIdx2))
	case OpTableInit:
		t.requireFeature(FeatureBulkMemory, "table.init")
		return t.visitTableInit(uint32(ev.TableIdx), uint32(ev.Elem))
	case OpElemDrop:
		t.requireFeature(FeatureBulkMemory, "elem.drop")
		t.enc.PushInstr(regir.MakeElemDrop(uint32(ev.Elem)))
		return nil
	}
	invariant("visitMiscExtension: unrecognized operator %d", ev.Op)
	return nil
}

func (t *FuncTranslator) requireFeature(want FeatureSet, name string) {
	if !t.cfg.EnabledFeatures.Has(want) {
		panicUnsupported(name)
	}
}

func (t *FuncTranslator) visitMemorySize() error {
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeMemorySize(dst))
	return nil
}

func (t *FuncTranslator) visitMemoryGrow() error {
	delta := t.vs.Pop()
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	if delta.IsConst() {
		t.enc.PushInstr(regir.MakeMemoryGrowImm(dst, delta.Const().I32()))
		return nil
	}
	deltaReg, err := delta.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeMemoryGrow(dst, deltaReg))
	return nil
}

func (t *FuncTranslator) visitMemoryFill() error {
	dst, value, count := t.vs.Pop3()
	dstReg, err := dst.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	countReg, err := count.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	if value.IsConst() && !value.Const().Type.IsFloat() {
		t.enc.PushInstr(regir.MakeMemoryFillImm(dstReg, uint8(value.Const().I32()), countReg))
		return nil
	}
	valueReg, err := value.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeMemoryFill(dstReg, valueReg, countReg))
	return nil
}

func (t *FuncTranslator) visitMemoryCopy() error {
	dst, src, count := t.vs.Pop3()
	dstReg, err := dst.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	srcReg, err := src.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	countReg, err := count.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeMemoryCopy(dstReg, srcReg, countReg))
	return nil
}

func (t *FuncTranslator) visitMemoryInit(data uint32) error {
	dst, src, count := t.vs.Pop3()
	dstReg, err := dst.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	srcReg, err := src.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	countReg, err := count.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeMemoryInit(data, dstReg, srcReg, countReg))
	return nil
}

func (t *FuncTranslator) visitRefFunc(fn wasmshape.FuncIdx) error {
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeRefFunc(dst, uint32(fn)))
	return nil
}

func (t *FuncTranslator) visitRefIsNull() error {
	v := t.vs.Pop()
	src, err := v.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeRefIsNull(dst, src))
	return nil
}

func (t *FuncTranslator) visitTableGet(table uint32) error {
	idx := t.vs.Pop()
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	if idx.IsConst() {
		t.enc.PushInstr(regir.MakeTableGetImm(dst, table, uint32(idx.Const().I32())))
		return nil
	}
	idxReg, err := idx.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableGet(dst, idxReg, table))
	return nil
}

func (t *FuncTranslator) visitTableSet(table uint32) error {
	idx, value := t.vs.Pop2()
	if idx.IsConst() {
		valueReg, err := value.ResolveReg(t.vs.Pool())
		if err != nil {
			return err
		}
		t.enc.PushInstr(regir.MakeTableSetAt(valueReg, table, uint32(idx.Const().I32())))
		return nil
	}
	idxReg, err := idx.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	valueReg, err := value.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableSet(idxReg, valueReg, table))
	return nil
}

func (t *FuncTranslator) visitTableSize(table uint32) error {
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableSize(dst, table))
	return nil
}

// visitTableGrow pops [initVal, delta] (delta on top) and pushes the
// table's prior size (or -1 on failure, a runtime concern).
func (t *FuncTranslator) visitTableGrow(table uint32) error {
	initVal, delta := t.vs.Pop2()
	initValReg, err := initVal.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	if delta.IsConst() {
		t.enc.PushInstr(regir.MakeTableGrowImm(dst, delta.Const().I32(), initValReg, table))
		return nil
	}
	deltaReg, err := delta.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableGrow(dst, deltaReg, initValReg, table))
	return nil
}

func (t *FuncTranslator) visitTableFill(table uint32) error {
	idx, value, count := t.vs.Pop3()
	idxReg, err := idx.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	valueReg, err := value.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	if count.IsConst() {
		t.enc.PushInstr(regir.MakeTableFillImm(table, idxReg, valueReg, uint32(count.Const().I32())))
		return nil
	}
	countReg, err := count.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableFill(table, idxReg, valueReg, countReg))
	return nil
}

func (t *FuncTranslator) visitTableCopy(dstTable, srcTable uint32) error {
	dst, src, count := t.vs.Pop3()
	dstReg, err := dst.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	srcReg, err := src.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	countReg, err := count.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableCopy(dstTable, srcTable, dstReg, srcReg, countReg))
	return nil
}

func (t *FuncTranslator) visitTableInit(table, elem uint32) error {
	dst, src, count := t.vs.Pop3()
	dstReg, err := dst.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	srcReg, err := src.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	countReg, err := count.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeTableInit(table, elem, dstReg, srcReg, countReg))
	return nil
}
