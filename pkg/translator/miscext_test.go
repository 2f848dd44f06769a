package translator

import (
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
)

func TestTableOpsRequireReferenceTypesFeature(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("table.get without FeatureReferenceTypes should panic")
		}
	}()
	featureTranslate(t, EngineConfig{}, []Event{
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpTableGet, TableIdx: 0},
		{Op: OpDrop},
	})
}

func TestTableGetConstantIndexUsesImmVariant(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureReferenceTypes}, []Event{
		{Op: OpI32Const, ConstI32: 3},
		{Op: OpTableGet, TableIdx: 1},
		{Op: OpDrop},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpTableGetImm {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected OpTableGetImm for a constant table index, got %v", entity.Instructions)
	}
}

func TestTableSetOperandOrderIsIndexThenValue(t *testing.T) {
	// table.set pushes the index first, then the value; a constant index
	// with a non-constant value must fold to TableSetAt keyed on the
	// index, not the value.
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureReferenceTypes}, []Event{
		{Op: OpI32Const, ConstI32: 5},
		{Op: OpRefFunc, FuncIdx: 2},
		{Op: OpTableSet, TableIdx: 0},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpTableSetAt {
			found = true
			if in.Imm != 5 {
				t.Fatalf("table.set folded index = %d, want 5 (the constant index, not the value)", in.Imm)
			}
		}
	}
	if !found {
		t.Fatalf("expected OpTableSetAt for a constant index, got %v", entity.Instructions)
	}
}

func TestTableSetNonConstantIndexUsesBaseForm(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureReferenceTypes}, []Event{
		{Op: OpRefFunc, FuncIdx: 1},
		{Op: OpRefFunc, FuncIdx: 2},
		{Op: OpTableSet, TableIdx: 0},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpTableSet {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the base OpTableSet form, got %v", entity.Instructions)
	}
}

func TestTableSizeAndGrow(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureReferenceTypes}, []Event{
		{Op: OpTableSize, TableIdx: 0},
		{Op: OpDrop},
		{Op: OpRefFunc, FuncIdx: 0},
		{Op: OpI32Const, ConstI32: 2},
		{Op: OpTableGrow, TableIdx: 0},
		{Op: OpDrop},
	})
	var sawSize, sawGrowImm bool
	for _, in := range entity.Instructions {
		switch in.Op {
		case regir.OpTableSize:
			sawSize = true
		case regir.OpTableGrowImm:
			sawGrowImm = true
			if in.Imm != 2 {
				t.Fatalf("table.grow delta = %d, want 2", in.Imm)
			}
		}
	}
	if !sawSize || !sawGrowImm {
		t.Fatalf("expected TableSize and TableGrowImm, got %v", entity.Instructions)
	}
}

func TestTableFillCopyInitRequireBulkMemoryFeature(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("table.fill without FeatureBulkMemory should panic")
		}
	}()
	featureTranslate(t, EngineConfig{EnabledFeatures: FeatureReferenceTypes}, []Event{
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpRefFunc, FuncIdx: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpTableFill, TableIdx: 0},
	})
}

func TestTableCopyAndInit(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureBulkMemory | FeatureReferenceTypes}, []Event{
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 1},
		{Op: OpI32Const, ConstI32: 2},
		{Op: OpTableCopy, TableIdx: 0, TableIdx2: 1},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 2},
		{Op: OpTableInit, TableIdx: 0, Elem: 3},
	})
	var sawCopy, sawInit bool
	for _, in := range entity.Instructions {
		if in.Op == regir.OpTableCopy {
			sawCopy = true
		}
		if in.Op == regir.OpTableInit {
			sawInit = true
		}
	}
	if !sawCopy || !sawInit {
		t.Fatalf("expected TableCopy and TableInit, got %v", entity.Instructions)
	}
}

func TestElemDropWithBulkMemoryFeature(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureBulkMemory}, []Event{
		{Op: OpElemDrop, Elem: 4},
	})
	if len(entity.Instructions) < 1 || entity.Instructions[0].Op != regir.OpElemDrop {
		t.Fatalf("expected ElemDrop as the first instruction, got %v", entity.Instructions)
	}
}

func TestRefFuncAndRefIsNull(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureReferenceTypes}, []Event{
		{Op: OpRefFunc, FuncIdx: 7},
		{Op: OpRefIsNull},
		{Op: OpDrop},
	})
	var sawRefFunc, sawRefIsNull bool
	for _, in := range entity.Instructions {
		if in.Op == regir.OpRefFunc {
			sawRefFunc = true
			if in.Imm != 7 {
				t.Fatalf("ref.func index = %d, want 7", in.Imm)
			}
		}
		if in.Op == regir.OpRefIsNull {
			sawRefIsNull = true
		}
	}
	if !sawRefFunc || !sawRefIsNull {
		t.Fatalf("expected RefFunc and RefIsNull, got %v", entity.Instructions)
	}
}
