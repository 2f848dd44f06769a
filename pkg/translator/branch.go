package translator

import (
	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

// branchArity returns how many values a branch to the frame at depth
// (0 = innermost) must carry: a loop's header parameters, or a
// block/if's results.
func (t *FuncTranslator) branchArity(depth int) int {
	f := t.cs.At(depth)
	if f.Kind == FrameLoop {
		return f.BlockType.Params
	}
	return f.BlockType.Results
}

// branchTableOpcode picks the arity-specific branch-table opcode; the
// representative opcode families follow the same 0/1/2/.../Many
// pattern as copy and call; br_table's continuation words carry
// per-target offsets rather than registers, so there is no "span" shape
// to prefer over "many" once the fixed arities are exhausted.
func branchTableOpcode(numTargets int) regir.Opcode {
	switch numTargets {
	case 0:
		return regir.OpBranchTable0
	case 1:
		return regir.OpBranchTable1
	case 2:
		return regir.OpBranchTable2
	case 3:
		return regir.OpBranchTable3
	default:
		return regir.OpBranchTableMany
	}
}

func (t *FuncTranslator) targetLabel(f *ControlFrame) LabelHandle {
	if f.Kind == FrameLoop {
		return f.HeaderLabel
	}
	return f.EndLabel
}

// emitBranchTo copies vals into the target frame's branch-param
// registers (if any) and emits the branch/back-edge instruction,
// recording that the frame was reached via a real branch so its `end`
// knows to merge through the branch-param registers.
func (t *FuncTranslator) emitBranchTo(depth int, vals []Provider) error {
	f := t.cs.At(depth)
	f.BranchCount++
	if len(vals) > 0 {
		if err := t.enc.EncodeCopies(f.BranchParams, vals, t.vs.Pool()); err != nil {
			return err
		}
	}
	t.enc.EmitBranch(t.targetLabel(f))
	return nil
}

func (t *FuncTranslator) visitBr(depth int) error {
	if t.bail() {
		return nil
	}
	n := t.branchArity(depth)
	vals := make([]Provider, n)
	t.vs.PopN(vals)
	if err := t.emitBranchTo(depth, vals); err != nil {
		return err
	}
	t.reachable = false
	return nil
}

// visitBrIf implements  "br_if": with no branch parameters it
// fuses directly into a conditional branch; with parameters it needs an
// inverted guard so the parameter copy only runs on the taken path,
// since the untaken path must leave the operand stack exactly as it
// found it.
func (t *FuncTranslator) visitBrIf(depth int) error {
	if t.bail() {
		return nil
	}
	cond := t.vs.Pop()
	n := t.branchArity(depth)

	if cond.IsConst() {
		if cond.Const().I32() != 0 {
			vals := make([]Provider, n)
			t.vs.PopN(vals)
			if err := t.emitBranchTo(depth, vals); err != nil {
				return err
			}
			t.reachable = false
		}
		return nil
	}

	condReg, err := cond.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}

	if n == 0 {
		f := t.cs.At(depth)
		f.BranchCount++
		t.enc.EmitBranchNez(condReg, t.targetLabel(f))
		return nil
	}

	skip := t.enc.Labels().NewLabel()
	t.enc.EmitBranchEqz(condReg, skip)
	vals := append([]Provider(nil), t.vs.PeekN(n)...)
	if err := t.emitBranchTo(depth, vals); err != nil {
		return err
	}
	return t.enc.PinLabel(skip)
}

// visitBrTable dispatches on a dynamic index into a target-depth list.
// A constant index folds to a single direct branch, and a table whose
// every listed target already agrees with the default degenerates to
// the same single branch once the index has been evaluated (the index
// is still popped even though its value no longer matters). Otherwise
// every arm shares the operand copy (br_table's arms are required to
// agree on arity and type) before the dispatch instruction's
// continuation words carry each arm's resolved-or-deferred offset.
func (t *FuncTranslator) visitBrTable(targets []int, defaultDepth int) error {
	if t.bail() {
		return nil
	}
	n := t.branchArity(defaultDepth)
	index := t.vs.Pop()

	if index.IsConst() {
		depth := defaultDepth
		if i := index.Const().I32(); i >= 0 && int(i) < len(targets) {
			depth = targets[i]
		}
		vals := make([]Provider, n)
		t.vs.PopN(vals)
		if err := t.emitBranchTo(depth, vals); err != nil {
			return err
		}
		t.reachable = false
		return nil
	}

	if allTargetsEqualDefault(targets, defaultDepth) {
		vals := make([]Provider, n)
		t.vs.PopN(vals)
		if err := t.emitBranchTo(defaultDepth, vals); err != nil {
			return err
		}
		t.reachable = false
		return nil
	}

	vals := append([]Provider(nil), t.vs.PeekN(n)...)
	if n > 0 {
		f := t.cs.At(defaultDepth)
		if err := t.enc.EncodeCopies(f.BranchParams, vals, t.vs.Pool()); err != nil {
			return err
		}
	}
	t.vs.TruncateTo(t.vs.Height() - n)

	indexReg, err := index.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeBranchTable(branchTableOpcode(len(targets)), indexReg, len(targets)))

	t.brTable.start(len(targets))
	for _, depth := range targets {
		f := t.cs.At(depth)
		f.BranchCount++
		offset, _ := t.enc.Labels().TryResolve(t.targetLabel(f), t.enc.Len())
		t.enc.AppendInstr(regir.MakeContBranchTableTarget(offset))
		t.brTable.advance()
	}
	if !t.brTable.done() {
		invariant("branch table emitted %d continuations, expected %d", t.brTable.emitted, t.brTable.total)
	}

	fd := t.cs.At(defaultDepth)
	fd.BranchCount++
	defOffset, _ := t.enc.Labels().TryResolve(t.targetLabel(fd), t.enc.Len())
	t.enc.AppendInstr(regir.MakeContBranchTableTarget(defOffset))

	t.reachable = false
	return nil
}

func allTargetsEqualDefault(targets []int, defaultDepth int) bool {
	for _, d := range targets {
		if d != defaultDepth {
			return false
		}
	}
	return true
}

func (t *FuncTranslator) visitReturn() error {
	if t.bail() {
		return nil
	}
	vals := make([]Provider, len(t.funcResults))
	t.vs.PopN(vals)
	if err := t.enc.EncodeReturn(vals, t.vs.Pool()); err != nil {
		return err
	}
	t.reachable = false
	return nil
}

func (t *FuncTranslator) visitCall(fn wasmshape.FuncIdx) error {
	if t.bail() {
		return nil
	}
	ft := t.header.FuncTypeOf(fn)
	args := make([]Provider, len(ft.Params))
	t.vs.PopN(args)
	results, err := t.vs.PushDynamicN(len(ft.Results))
	if err != nil {
		return err
	}

	ref := t.header.ResolveFunc(fn)
	if ref.Imported {
		t.enc.PushInstr(regir.MakeCallImported(results, ref.Index))
	} else {
		t.enc.PushInstr(regir.MakeCallInternal(results, ref.Index))
	}
	if err := t.enc.appendRegisterList(args, t.vs.Pool()); err != nil {
		return err
	}
	t.bumpCall()
	return nil
}

func (t *FuncTranslator) visitCallIndirect(typeIdx wasmshape.TypeIdx, table wasmshape.TableIdx) error {
	if t.bail() {
		return nil
	}
	ft := t.header.TypeAt(typeIdx)
	index := t.vs.Pop()
	args := make([]Provider, len(ft.Params))
	t.vs.PopN(args)
	results, err := t.vs.PushDynamicN(len(ft.Results))
	if err != nil {
		return err
	}

	t.enc.PushInstr(regir.MakeCallIndirect(results, uint32(typeIdx)))
	if err := t.appendCallIndirectParams(table, index); err != nil {
		return err
	}
	if err := t.enc.appendRegisterList(args, t.vs.Pool()); err != nil {
		return err
	}
	t.bumpCall()
	return nil
}

func (t *FuncTranslator) visitReturnCall(fn wasmshape.FuncIdx) error {
	if t.bail() {
		return nil
	}
	if !t.cfg.EnabledFeatures.Has(FeatureTailCall) {
		panicUnsupported("return_call")
	}
	ft := t.header.FuncTypeOf(fn)
	args := make([]Provider, len(ft.Params))
	t.vs.PopN(args)

	ref := t.header.ResolveFunc(fn)
	if ref.Imported {
		t.enc.PushInstr(regir.MakeReturnCallImported(ref.Index))
	} else {
		t.enc.PushInstr(regir.MakeReturnCallInternal(ref.Index))
	}
	if err := t.enc.appendRegisterList(args, t.vs.Pool()); err != nil {
		return err
	}
	t.reachable = false
	return nil
}

func (t *FuncTranslator) visitReturnCallIndirect(typeIdx wasmshape.TypeIdx, table wasmshape.TableIdx) error {
	if t.bail() {
		return nil
	}
	if !t.cfg.EnabledFeatures.Has(FeatureTailCall) {
		panicUnsupported("return_call_indirect")
	}
	ft := t.header.TypeAt(typeIdx)
	index := t.vs.Pop()
	args := make([]Provider, len(ft.Params))
	t.vs.PopN(args)

	t.enc.PushInstr(regir.MakeReturnCallIndirect(uint32(typeIdx)))
	if err := t.appendCallIndirectParams(table, index); err != nil {
		return err
	}
	if err := t.enc.appendRegisterList(args, t.vs.Pool()); err != nil {
		return err
	}
	t.reachable = false
	return nil
}

// appendCallIndirectParams chooses the Imm16 or full-register
// continuation form for call_indirect's table/index pair, following the
// encoding-selection contract's "Imm16 fit" step.
func (t *FuncTranslator) appendCallIndirectParams(table wasmshape.TableIdx, index Provider) error {
	if index.IsConst() {
		c := index.Const()
		if !c.Type.IsFloat() && c.FitsImm16(false) {
			t.enc.AppendInstr(regir.MakeContCallIndirectParamsImm16(uint32(table), uint16(c.I32())))
			return nil
		}
	}
	indexReg, err := index.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.AppendInstr(regir.MakeContCallIndirectParams(uint32(table), indexReg))
	return nil
}

func (t *FuncTranslator) bumpCall() {
	anchor, hasAnchor := t.currentFuelAnchor()
	t.fuel.Bump(&t.enc, anchor, hasAnchor, FuelClassCall, 0)
	t.enc.BreakFusion()
}

// visitSelect implements  "select". A constant condition folds
// away entirely; otherwise it tries the imm32 form when the true arm is
// already a constant, then compare-fusion, falling back to the plain
// three-register form.
func (t *FuncTranslator) visitSelect() error {
	if t.bail() {
		return nil
	}
	cond := t.vs.Pop()
	ifFalse := t.vs.Pop()
	ifTrue := t.vs.Pop()

	if cond.IsConst() {
		if cond.Const().I32() != 0 {
			t.pushProvider(ifTrue)
		} else {
			t.pushProvider(ifFalse)
		}
		return nil
	}

	condReg, err := cond.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}

	if ifTrue.IsConst() && !ifFalse.IsConst() {
		ifFalseReg, err := ifFalse.ResolveReg(t.vs.Pool())
		if err != nil {
			return err
		}
		t.enc.PushInstr(regir.MakeSelectImm32(dst, condReg, int32(uint32(ifTrue.Const().Bits)), ifFalseReg))
		return nil
	}

	ifTrueReg, err := ifTrue.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	ifFalseReg, err := ifFalse.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	if _, ok := t.enc.TryFuseSelect(dst, condReg, ifTrueReg, ifFalseReg); ok {
		return nil
	}
	t.enc.PushInstr(regir.MakeSelect(dst, condReg, ifTrueReg, ifFalseReg))
	return nil
}
