package translator

import (
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

// stubHeader answers every ModuleHeader query with a single function
// signature, enough for the call/call_indirect scenarios below without
// a real module decoder.
type stubHeader struct {
	sig wasmshape.FuncType
}

func (h stubHeader) FuncTypeOf(wasmshape.FuncIdx) wasmshape.FuncType { return h.sig }
func (h stubHeader) TypeAt(wasmshape.TypeIdx) wasmshape.FuncType     { return h.sig }
func (h stubHeader) GlobalTypeAt(wasmshape.GlobalIdx) wasmshape.GlobalType {
	return wasmshape.GlobalType{ValType: wasmshape.ValTypeI32, Mutable: true}
}
func (h stubHeader) GlobalInit(wasmshape.GlobalIdx) (uint64, bool) { return 0, false }
func (h stubHeader) MemoryTypeAt(wasmshape.MemIdx) wasmshape.MemoryType {
	return wasmshape.MemoryType{Min: 1}
}
func (h stubHeader) TableTypeAt(wasmshape.TableIdx) wasmshape.TableType {
	return wasmshape.TableType{Element: wasmshape.ValTypeFuncRef}
}
func (h stubHeader) DataSegmentCount() uint32    { return 0 }
func (h stubHeader) ElementSegmentCount() uint32 { return 0 }
func (h stubHeader) ResolveFunc(fn wasmshape.FuncIdx) wasmshape.FuncRef {
	return wasmshape.FuncRef{Index: uint32(fn)}
}

func i32i32(results int) (params, res []wasmshape.ValType) {
	p := make([]wasmshape.ValType, 0)
	for i := 0; i < 2; i++ {
		p = append(p, wasmshape.ValTypeI32)
	}
	r := make([]wasmshape.ValType, results)
	for i := range r {
		r[i] = wasmshape.ValTypeI32
	}
	return p, r
}

func translate(t *testing.T, header wasmshape.ModuleHeader, params, results []wasmshape.ValType, events []Event) regir.CompiledFuncEntity {
	t.Helper()
	tr := NewFuncTranslator(EngineConfig{}, header, Allocations{}, params, results)
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

func TestScenarioEmptyFunction(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, nil, nil)
	if len(entity.Instructions) != 1 || entity.Instructions[0].Op != regir.OpReturn {
		t.Fatalf("empty void function should lower to a single Return, got %v", entity.Instructions)
	}
}

func TestScenarioIdentity(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	results := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, results, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpReturn},
	})
	if len(entity.Instructions) != 1 {
		t.Fatalf("identity function should be one instruction, got %v", entity.Instructions)
	}
	if entity.Instructions[0].Op != regir.OpReturnReg || entity.Instructions[0].A != 0 {
		t.Fatalf("expected ReturnReg(r0), got %v", entity.Instructions[0])
	}
}

func TestScenarioConstantReturn(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, []wasmshape.ValType{wasmshape.ValTypeI32}, []Event{
		{Op: OpI32Const, ConstI32: 42},
		{Op: OpReturn},
	})
	if len(entity.Instructions) != 1 || entity.Instructions[0].Op != regir.OpReturnImm32 || entity.Instructions[0].Imm != 42 {
		t.Fatalf("expected ReturnImm32(42), got %v", entity.Instructions)
	}
}

func TestScenarioConstantFoldAdd(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, []wasmshape.ValType{wasmshape.ValTypeI32}, []Event{
		{Op: OpI32Const, ConstI32: 2},
		{Op: OpI32Const, ConstI32: 3},
		{Op: OpI32Add},
		{Op: OpReturn},
	})
	if len(entity.Instructions) != 1 || entity.Instructions[0].Op != regir.OpReturnImm32 || entity.Instructions[0].Imm != 5 {
		t.Fatalf("2+3 should constant-fold to ReturnImm32(5), got %v", entity.Instructions)
	}
}

func TestScenarioAlgebraicIdentityAddZero(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, params, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32Add},
		{Op: OpReturn},
	})
	if len(entity.Instructions) != 1 || entity.Instructions[0].Op != regir.OpReturnReg || entity.Instructions[0].A != 0 {
		t.Fatalf("x+0 should fold away entirely to ReturnReg(r0), got %v", entity.Instructions)
	}
}

func TestScenarioDirectCallTwoParams(t *testing.T) {
	params, results := i32i32(1)
	header := stubHeader{sig: wasmshape.FuncType{Params: params, Results: results}}
	entity := translate(t, header, params, results, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpLocalGet, Index: 1},
		{Op: OpCall, FuncIdx: 3},
		{Op: OpReturn},
	})
	if len(entity.Instructions) < 2 {
		t.Fatalf("call should emit at least a CallInternal plus its argument list, got %v", entity.Instructions)
	}
	if entity.Instructions[0].Op != regir.OpCallInternal {
		t.Fatalf("expected CallInternal first, got %v", entity.Instructions[0].Op)
	}
	if entity.Instructions[0].Imm != 3 {
		t.Fatalf("call target = %d, want 3", entity.Instructions[0].Imm)
	}
}

func TestScenarioReversedArgumentCall(t *testing.T) {
	params, results := i32i32(1)
	header := stubHeader{sig: wasmshape.FuncType{Params: params, Results: results}}
	entity := translate(t, header, params, results, []Event{
		{Op: OpLocalGet, Index: 1},
		{Op: OpLocalGet, Index: 0},
		{Op: OpCall, FuncIdx: 0},
		{Op: OpReturn},
	})
	if entity.Instructions[0].Op != regir.OpCallInternal {
		t.Fatalf("expected CallInternal, got %v", entity.Instructions[0].Op)
	}
	// The argument continuation should carry r1 then r0, preserving
	// source order even though it's the reverse of the functions's own
	// parameter registers.
	var regs []regir.Reg
	for _, in := range entity.Instructions[1:] {
		if in.Op == regir.OpContRegister {
			regs = append(regs, in.A)
		} else if in.Op == regir.OpContRegister2 {
			regs = append(regs, in.A, in.B)
		}
	}
	if len(regs) != 2 || regs[0] != 1 || regs[1] != 0 {
		t.Fatalf("argument registers = %v, want [r1, r0]", regs)
	}
}

func TestScenarioDivByConstantZeroTraps(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, params, params, []Event{
		{Op: OpLocalGet, Index: 0},
		{Op: OpI32Const, ConstI32: 0},
		{Op: OpI32DivS},
		{Op: OpReturn},
	})
	if len(entity.Instructions) != 1 || entity.Instructions[0].Op != regir.OpTrap {
		t.Fatalf("div by constant zero should lower to a Trap, got %v", entity.Instructions)
	}
	if entity.Instructions[0].Trap != regir.TrapIntegerDivisionByZero {
		t.Fatalf("trap code = %v, want TrapIntegerDivisionByZero", entity.Instructions[0].Trap)
	}
}

func TestScenarioDivOverflowTrapsDistinctly(t *testing.T) {
	params := []wasmshape.ValType{wasmshape.ValTypeI32}
	entity := translate(t, stubHeader{}, nil, params, []Event{
		{Op: OpI32Const, ConstI32: -2147483648},
		{Op: OpI32Const, ConstI32: -1},
		{Op: OpI32DivS},
		{Op: OpReturn},
	})
	if len(entity.Instructions) != 1 || entity.Instructions[0].Op != regir.OpTrap {
		t.Fatalf("MinInt32/-1 should lower to a Trap, got %v", entity.Instructions)
	}
	if entity.Instructions[0].Trap != regir.TrapIntegerOverflow {
		t.Fatalf("trap code = %v, want TrapIntegerOverflow (distinct from division-by-zero)", entity.Instructions[0].Trap)
	}
}

func TestScenarioBranchTableAllTargetsEqualDefaultCollapsesToBranch(t *testing.T) {
	entity := translate(t, stubHeader{}, nil, nil, []Event{
		{Op: OpBlock, BlockType: BlockType{}},
		{Op: OpLocalGet, Index: 0},
		{Op: OpBrTable, Targets: []int{0, 0, 0}, Depth: 0},
		{Op: OpEnd},
	})
	// The br_table's only reachable outcome is "branch to depth 0" no
	// matter the index, since every arm and the default agree — the
	// encoder should collapse it to a single unconditional Branch rather
	// than emit a multi-way table (spec's br_table "all targets equal
	// default" collapse).
	found := false
	for _, in := range entity.Instructions {
		if in.Op == regir.OpBranch {
			found = true
		}
		if in.Op == regir.OpBranchTable0 || in.Op == regir.OpBranchTable1 ||
			in.Op == regir.OpBranchTable2 || in.Op == regir.OpBranchTable3 ||
			in.Op == regir.OpBranchTableMany {
			t.Fatalf("expected the br_table to collapse to a plain Branch, found %v", in.Op)
		}
	}
	if !found {
		t.Fatal("expected a plain Branch instruction somewhere in the output")
	}
}
