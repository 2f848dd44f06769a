package translator

import (
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

func TestLoadConstantAddressFoldsToLoadAt(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, []wasmshape.ValType{wasmshape.ValTypeI32}, []Event{
		{Op: OpI32Const, ConstI32: 100},
		{Op: OpI32Load, Mem: MemArg{Offset: 4}},
		{Op: OpReturn},
	})
	ins := entity.Instructions
	if len(ins) != 2 || ins[0].Op != regir.OpI32LoadAt || ins[1].Op != regir.OpReturnReg || ins[1].A != ins[0].A {
		t.Fatalf("expected a folded I32LoadAt whose dynamic register is returned directly, got %v", entity.Instructions)
	}
}

func TestLoadConstantAddressEmitsLoadAtInstruction(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, nil, []Event{
		{Op: OpI32Const, ConstI32: 100},
		{Op: OpI32Load, Mem: MemArg{Offset: 4}},
		{Op: OpDrop},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpI32LoadAt {
			found = true
			if in.Imm != 104 {
				t.Fatalf("folded address = %d, want 104", in.Imm)
			}
		}
	}
	if !found {
		t.Fatalf("expected a folded I32LoadAt, got %v", entity.Instructions)
	}
}

func TestLoadSmallOffsetUsesOffset16Variant(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, nil, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpI32Load, Mem: MemArg{Offset: 8}},
		{Op: OpDrop},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpI32LoadOffset16 {
			found = true
		}
		if in.Op == regir.OpI32Load {
			t.Fatalf("a 16-bit-fitting offset should prefer the Offset16 form, got base I32Load in %v", entity.Instructions)
		}
	}
	if !found {
		t.Fatalf("expected OpI32LoadOffset16, got %v", entity.Instructions)
	}
}

func TestLoadLargeOffsetUsesBaseForm(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, nil, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpI32Load, Mem: MemArg{Offset: 1 << 20}},
		{Op: OpDrop},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpI32Load {
			found = true
			if in.Imm != 1<<20 {
				t.Fatalf("offset = %d, want %d", in.Imm, 1<<20)
			}
		}
	}
	if !found {
		t.Fatalf("expected the base I32Load form for an offset beyond 16 bits, got %v", entity.Instructions)
	}
}

func TestStoreConstantValueUsesImm16Variant(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, nil, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpI32Const, ConstI32: 7},
		{Op: OpI32Store, Mem: MemArg{Offset: 2}},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpI32StoreImm16 {
			found = true
			if int16(in.Imm) != 7 {
				t.Fatalf("stored immediate = %d, want 7", int16(in.Imm))
			}
		}
	}
	if !found {
		t.Fatalf("expected OpI32StoreImm16 for a small constant store value, got %v", entity.Instructions)
	}
}

func TestStoreConstantAddressFoldsToStoreAt(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, nil, []Event{
		{Op: OpI32Const, ConstI32: 64},
		{Op: OpLocalGet, Index: 0},
		{Op: OpI32Store, Mem: MemArg{Offset: 4}},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpI32StoreAt {
			found = true
			if in.Imm != 68 {
				t.Fatalf("folded store address = %d, want 68", in.Imm)
			}
		}
	}
	if !found {
		t.Fatalf("expected OpI32StoreAt for a constant base with a non-constant value, got %v", entity.Instructions)
	}
}

func TestStoreRegisterValueAndLargeOffsetUsesBaseForm(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32, wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, nil, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpLocalGet, Index: 1},
		{Op: OpI32Store, Mem: MemArg{Offset: 1 << 20}},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpI32Store {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the base I32Store form, got %v", entity.Instructions)
	}
}

func TestMemorySizeAndGrow(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, nil, []Event{
		{Op: OpMemorySize},
		{Op: OpI32Const, ConstI32: 1},
		{Op: OpMemoryGrow},
		{Op: OpDrop},
		{Op: OpDrop},
	})
	var sawSize, sawGrowImm bool
	for _, in := range entity.Instructions {
		switch in.Op {
		case regir.OpMemorySize:
			sawSize = true
		case regir.OpMemoryGrowImm:
			sawGrowImm = true
			if in.Imm != 1 {
				t.Fatalf("memory.grow immediate = %d, want 1", in.Imm)
			}
		}
	}
	if !sawSize || !sawGrowImm {
		t.Fatalf("expected MemorySize and MemoryGrowImm, got %v", entity.Instructions)
	}
}

func featureTranslate(t *testing.T, cfg EngineConfig, events []Event) regir.CompiledFuncEntity {
	t.Helper()
	tr := NewFuncTranslator(cfg, stubHeader{}, Allocations{}, nil, nil)
	for _, ev := range events {
		if err := tr.Visit(ev); err != nil {
			t.Fatalf("Visit(%v): %v", ev.Op, err)
		}
	}
	if err := tr.Visit(Event{Op: OpEnd}); err != nil {
		t.Fatalf("finalizing end: %v", err)
	}
	entity, _, err := tr.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return entity
}

func TestMemoryBulkOpsRequireBulkMemoryFeature(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("memory.fill without FeatureBulkMemory should panic")
		}
	}()
	featureTranslate(t, EngineConfig{}, []Event{
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpMemoryFill},
	})
}

func TestMemoryFillWithBulkMemoryFeature(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureBulkMemory}, []Event{
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 9},
		{Op: OpI32Const, ConstI32: 16},
		{Op: OpMemoryFill},
	})
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpMemoryFillImm {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MemoryFillImm for a constant fill byte, got %v", entity.Instructions)
	}
}

func TestMemoryCopyAndInit(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureBulkMemory}, []Event{
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 4},
		{Op: OpI32Const, ConstI32: 8},
		{Op: OpMemoryCopy},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Const, ConstI32: 8},
		{Op: OpMemoryInit, Data: 2},
	})
	var sawCopy, sawInit bool
	for _, in := range entity.Instructions {
		if in.Op == regir.OpMemoryCopy {
			sawCopy = true
		}
		if in.Op == regir.OpMemoryInit {
			sawInit = true
			if in.Imm != 2 {
				t.Fatalf("memory.init data index = %d, want 2", in.Imm)
			}
		}
	}
	if !sawCopy || !sawInit {
		t.Fatalf("expected MemoryCopy and MemoryInit, got %v", entity.Instructions)
	}
}

func TestDataDropWithBulkMemoryFeature(t *testing.T) {
	entity := featureTranslate(t, EngineConfig{EnabledFeatures: FeatureBulkMemory}, []Event{
		{Op: OpDataDrop, Data: 1},
	})
	if len(entity.Instructions) < 2 || entity.Instructions[0].Op != regir.OpDataDrop {
		t.Fatalf("expected DataDrop as the first instruction, got %v", entity.Instructions)
	}
}
