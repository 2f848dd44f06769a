package translator

import (
	"github.com/minz/wasmreg/pkg/regir"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

// FuncTranslator is the function builder's state machine:
// it owns the value stack, the control-frame stack, the instruction
// encoder, and the fuel model for exactly one function at a time. A
// caller drives it by calling NewFuncTranslator, then Visit once per
// operator event in source order, then Finish.
type FuncTranslator struct {
	cfg    EngineConfig
	header wasmshape.ModuleHeader

	vs   ValueStack
	cs   ControlStack
	enc  Encoder
	fuel FuelModel

	reachable   bool
	numLocals   int
	localTypes  []wasmshape.ValType
	funcResults []wasmshape.ValType

	brTable brTableCounter
}

// Allocations is one aggregate carrying every reusable buffer: the
// translator consumes it by value and returns it by value on finish. A
// caller feeds the zero value on the first function and then threads
// the value Finish returns into the next NewFuncTranslator to avoid
// reallocating the value/control stacks and the IR buffer.
type Allocations struct {
	vs  ValueStack
	cs  ControlStack
	enc Encoder
}

// NewFuncTranslator starts translating a new function. alloc is the
// bundle returned by a prior Finish, or the zero value for the first
// function of a translation session.
func NewFuncTranslator(cfg EngineConfig, header wasmshape.ModuleHeader, alloc Allocations, localTypes []wasmshape.ValType, results []wasmshape.ValType) *FuncTranslator {
	t := &FuncTranslator{
		cfg:         cfg,
		header:      header,
		vs:          alloc.vs,
		cs:          alloc.cs,
		enc:         alloc.enc,
		localTypes:  localTypes,
		funcResults: results,
		numLocals:   len(localTypes),
		reachable:   true,
	}
	t.vs.Init(t.numLocals)
	t.cs.Reset()
	t.enc.Reset()
	t.fuel.Reset(cfg.FuelCosts)
	t.brTable.reset()

	// The function body is itself an implicit Block frame, translate an
	// unconditional return"). Its BranchParams exist so that a `br`
	// targeting the function's own depth is lowered exactly like any
	// other branch to a Block — Finish/endBlock special-cases only the
	// final "push results vs. return" step once the frame pops.
	anchor, hasAnchor := t.fuel.NewAnchor(&t.enc)
	span, err := t.vs.ReserveSpan(len(results))
	if err != nil {
		// Finish/Visit callers propagate translation errors; the
		// constructor itself has no error return, so an allocation
		// failure this early (more registers than locals already
		// claimed) is an internal invariant.
		invariant("reserving function result span: %v", err)
	}
	t.cs.Push(ControlFrame{
		Kind:          FrameBlock,
		BlockType:     BlockType{Params: 0, Results: len(results)},
		BaseHeight:    0,
		EndLabel:      t.enc.Labels().NewLabel(),
		BranchParams:  span,
		Reachable:     true,
		FuelAnchor:    anchor,
		HasFuelAnchor: hasAnchor,
	})
	return t
}

// bail reports whether the current operator should be skipped entirely:
// unreachable code touches neither stack nor control state, except
// `else`/`end` which must still pop their frame.
func (t *FuncTranslator) bail() bool { return !t.reachable }

// numResults returns the function's own result count; nothing calls it,
// since endBlock reads the count from the frame's BlockType. Locals are simply
// registers [0, numLocals) reserved by NewFuncTranslator; no
// initialization IR is required because the runtime zero-fills the
// register frame before the function runs.
func (t *FuncTranslator) numResults() int { return len(t.funcResults) }

// Visit dispatches one operator event.
func (t *FuncTranslator) Visit(ev Event) error {
	switch ev.Op {
	case OpUnreachable:
		return t.visitUnreachable()
	case OpNop:
		return nil
	case OpDrop:
		return t.visitDrop()
	case OpBlock:
		return t.visitBlock(ev.BlockType)
	case OpLoop:
		return t.visitLoop(ev.BlockType)
	case OpIf:
		return t.visitIf(ev.BlockType)
	case OpElse:
		return t.visitElse()
	case OpEnd:
		return t.visitEnd()
	case OpBr:
		return t.visitBr(ev.Depth)
	case OpBrIf:
		return t.visitBrIf(ev.Depth)
	case OpBrTable:
		return t.visitBrTable(ev.Targets, ev.Depth)
	case OpReturn:
		return t.visitReturn()
	case OpCall:
		return t.visitCall(ev.FuncIdx)
	case OpCallIndirect:
		return t.visitCallIndirect(ev.TypeIdx, ev.TableIdx)
	case OpReturnCall:
		return t.visitReturnCall(ev.FuncIdx)
	case OpReturnCallIndirect:
		return t.visitReturnCallIndirect(ev.TypeIdx, ev.TableIdx)
	case OpSelect:
		return t.visitSelect()
	case OpLocalGet:
		return t.visitLocalGet(ev.Index)
	case OpLocalSet:
		return t.visitLocalSet(ev.Index)
	case OpLocalTee:
		return t.visitLocalTee(ev.Index)
	case OpGlobalGet:
		return t.visitGlobalGet(ev.Index)
	case OpGlobalSet:
		return t.visitGlobalSet(ev.Index)
	case OpI32Const:
		return t.visitConst(regir.I32Val(ev.ConstI32))
	case OpI64Const:
		return t.visitConst(regir.I64Val(ev.ConstI64))
	case OpF32Const:
		return t.visitConst(regir.F32Val(ev.ConstF32))
	case OpF64Const:
		return t.visitConst(regir.F64Val(ev.ConstF64))
	}

	if isNumericOp(ev.Op) {
		return t.visitNumeric(ev.Op)
	}
	if isConversionOp(ev.Op) {
		return t.visitConversion(ev.Op)
	}
	if isLoadOp(ev.Op) {
		return t.visitLoad(ev.Op, ev.Mem)
	}
	if isStoreOp(ev.Op) {
		return t.visitStore(ev.Op, ev.Mem)
	}
	return t.visitMiscExtension(ev)
}

// Finish finalizes the function: it checks every label was pinned,
// applies the fuel prologue bump, and packages the compiled entity plus
// the reusable allocation bundle. No register-defragmentation or
// branch-offset update pass runs; the instruction stream and its branch
// offsets are copied out exactly as emitted.
func (t *FuncTranslator) Finish() (regir.CompiledFuncEntity, Allocations, error) {
	if !t.enc.Labels().AllPinned() {
		invariant("unpinned label at function finalization")
	}
	if t.fuel.Enabled() {
		// Anchors are bumped only for calls (bumpCall) during
		// translation; other emitted instructions add no fuel cost. The
		// prologue bump adds the one-time register-frame copy cost on
		// top of that.
		if t.enc.Len() > 0 {
			t.fuel.PrologueBump(&t.enc, 0, t.enc.instrs[0].Op == regir.OpConsumeFuel, int(t.vs.MaxRegister()))
		}
	}

	entity := regir.CompiledFuncEntity{
		RegisterCount: uint16(t.vs.MaxRegister()),
		Instructions:  append([]regir.Instruction(nil), t.enc.Instructions()...),
		Constants:     append([]regir.TypedVal(nil), t.vs.Pool().Values()...),
	}
	alloc := Allocations{vs: t.vs, cs: t.cs, enc: t.enc}
	return entity, alloc, nil
}

func (t *FuncTranslator) visitUnreachable() error {
	if t.bail() {
		return nil
	}
	t.enc.PushInstr(regir.MakeTrap(regir.TrapUnreachable))
	t.reachable = false
	return nil
}

func (t *FuncTranslator) visitDrop() error {
	if t.bail() {
		return nil
	}
	t.vs.Pop()
	return nil
}

func (t *FuncTranslator) visitConst(v regir.TypedVal) error {
	if t.bail() {
		return nil
	}
	t.vs.PushConst(v)
	return nil
}

func (t *FuncTranslator) visitLocalGet(idx uint32) error {
	if t.bail() {
		return nil
	}
	t.vs.PushLocal(int(idx))
	return nil
}

func (t *FuncTranslator) visitLocalSet(idx uint32) error {
	if t.bail() {
		return nil
	}
	local := regir.Reg(idx)
	v := t.vs.Pop()
	if !v.IsConst() && v.Reg() == local {
		// `local.get x; local.set x` is a no-op: the value being written
		// back already came from local x. Checked before preservation so
		// the fresh preserved register PreserveLocal would otherwise
		// allocate for this very occurrence never gets allocated.
		return nil
	}
	if err := PreserveLocal(&t.vs, &t.enc, local); err != nil {
		return err
	}
	return t.storeLocal(local, v)
}

func (t *FuncTranslator) visitLocalTee(idx uint32) error {
	if t.bail() {
		return nil
	}
	local := regir.Reg(idx)
	v := t.vs.Peek()
	if !v.IsConst() && v.Reg() == local {
		return nil
	}
	if err := PreserveLocal(&t.vs, &t.enc, local); err != nil {
		return err
	}
	return t.storeLocal(local, v)
}

// storeLocal emits the copy/const-copy that writes v into local, without
// touching the value stack (the caller has already popped or left the
// value on the stack per local.set/local.tee's differing contracts).
func (t *FuncTranslator) storeLocal(local regir.Reg, v Provider) error {
	if !v.IsConst() && v.Reg() == local {
		// `local.set x` immediately following a push of local x itself is
		// a no-op: source and destination coincide.
		return nil
	}
	r, err := v.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeCopy(local, r))
	return nil
}

// pushProvider pushes p back onto the operand stack, dispatching on
// whether it's a constant or an already-resolved register. Used
// wherever a constant-fold reuses one of its operands verbatim (e.g.
// select with a constant condition) instead of materializing a fresh
// register.
func (t *FuncTranslator) pushProvider(p Provider) {
	if p.IsConst() {
		t.vs.PushConst(p.Const())
	} else {
		t.vs.PushRegister(p.Reg())
	}
}

func (t *FuncTranslator) visitGlobalGet(idx uint32) error {
	if t.bail() {
		return nil
	}
	gt := t.header.GlobalTypeAt(wasmshape.GlobalIdx(idx))
	if !gt.Mutable {
		if bits, ok := t.header.GlobalInit(wasmshape.GlobalIdx(idx)); ok {
			t.vs.PushConst(regir.TypedVal{Type: gt.ValType, Bits: bits})
			return nil
		}
	}
	dst, err := t.vs.PushDynamic()
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeGlobalGet(dst, idx))
	return nil
}

func (t *FuncTranslator) visitGlobalSet(idx uint32) error {
	if t.bail() {
		return nil
	}
	v := t.vs.Pop()
	gt := t.header.GlobalTypeAt(wasmshape.GlobalIdx(idx))
	if v.IsConst() && !gt.ValType.IsFloat() {
		c := v.Const()
		if c.Type == wasmshape.ValTypeI32 && c.FitsImm16(true) {
			t.enc.PushInstr(regir.MakeGlobalSetImm16(regir.OpGlobalSetI32Imm16, idx, int16(c.I32())))
			return nil
		}
		if c.Type == wasmshape.ValTypeI64 && c.FitsImm16(true) {
			t.enc.PushInstr(regir.MakeGlobalSetImm16(regir.OpGlobalSetI64Imm16, idx, int16(c.I64())))
			return nil
		}
	}
	r, err := v.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.PushInstr(regir.MakeGlobalSet(idx, r))
	return nil
}
