package translator

// visitBlock implements  "block": a block never needs its own
// branch target resolved until `end`, and its inputs stay on the value
// stack exactly where the caller left them — the frame's BranchParams
// are branch-param registers reserved now but only materialized as real
// stack slots once some path (fallthrough or `br`) needs to merge into
// them.
func (t *FuncTranslator) visitBlock(bt BlockType) error {
	if t.bail() {
		t.pushUnreachableFrame(FrameBlock, bt)
		return nil
	}
	baseHeight := t.vs.Height() - bt.Params
	span, err := t.vs.ReserveSpan(bt.Results)
	if err != nil {
		return err
	}
	anchor, hasAnchor := t.currentFuelAnchor()
	t.cs.Push(ControlFrame{
		Kind:          FrameBlock,
		BlockType:     bt,
		BaseHeight:    baseHeight,
		EndLabel:      t.enc.Labels().NewLabel(),
		BranchParams:  span,
		Reachable:     true,
		FuelAnchor:    anchor,
		HasFuelAnchor: hasAnchor,
	})
	return nil
}

// visitLoop implements  "loop": the loop's own parameters are
// immediately copied into fresh contiguous registers so that a `br`
// back to the header always lands the next iteration's inputs in the
// same place, and the header label is pinned right there — a loop
// never needs to defer-resolve its own backward branch target.
func (t *FuncTranslator) visitLoop(bt BlockType) error {
	if t.bail() {
		t.pushUnreachableFrame(FrameLoop, bt)
		return nil
	}
	vals := make([]Provider, bt.Params)
	t.vs.PopN(vals)
	span, err := t.vs.PushDynamicN(bt.Params)
	if err != nil {
		return err
	}
	if err := t.enc.EncodeCopies(span, vals, t.vs.Pool()); err != nil {
		return err
	}
	header := t.enc.Labels().NewLabel()
	if err := t.enc.PinLabel(header); err != nil {
		return err
	}
	// Loops always get a fresh fuel anchor: the back edge is where an
	// iteration's cost needs its own counter.
	anchor, hasAnchor := t.fuel.NewAnchor(&t.enc)
	t.cs.Push(ControlFrame{
		Kind:          FrameLoop,
		BlockType:     bt,
		BaseHeight:    t.vs.Height() - bt.Params,
		HeaderLabel:   header,
		BranchParams:  span,
		Reachable:     true,
		FuelAnchor:    anchor,
		HasFuelAnchor: hasAnchor,
	})
	return nil
}

// visitIf implements  "if": the condition decides whether a
// real conditional branch is needed at all. A constant condition
// statically kills one side, but the else-provider snapshot is still
// taken unconditionally — `else`'s bookkeeping (restoring the operand
// stack to the if's own inputs) runs regardless of whether the dead
// side's body ever touches the stack.
func (t *FuncTranslator) visitIf(bt BlockType) error {
	if t.bail() {
		t.pushUnreachableFrame(FrameIf, bt)
		return nil
	}
	cond := t.vs.Pop()
	baseHeight := t.vs.Height() - bt.Params
	span, err := t.vs.ReserveSpan(bt.Results)
	if err != nil {
		return err
	}

	inputs := append([]Provider(nil), t.vs.PeekN(bt.Params)...)
	for _, p := range inputs {
		t.vs.IncUsage(p)
	}

	frame := ControlFrame{
		Kind:          FrameIf,
		BlockType:     bt,
		BaseHeight:    baseHeight,
		EndLabel:      t.enc.Labels().NewLabel(),
		BranchParams:  span,
		ElseProviders: inputs,
	}

	if cond.IsConst() {
		condTrue := cond.Const().I32() != 0
		frame.ThenReachable = condTrue
		frame.ElseReachable = !condTrue
		frame.FuelAnchor, frame.HasFuelAnchor = t.currentFuelAnchor()
		t.cs.Push(frame)
		t.reachable = condTrue
		return nil
	}

	frame.HasElseLabel = true
	frame.ElseLabel = t.enc.Labels().NewLabel()
	frame.ThenReachable = true
	frame.ElseReachable = true

	condReg, err := cond.ResolveReg(t.vs.Pool())
	if err != nil {
		return err
	}
	t.enc.EmitBranchEqz(condReg, frame.ElseLabel)
	// The fresh anchor starts right after the branch: it accounts for
	// the then-body's cost, separately from whatever anchor covers the
	// else body once `else` allocates its own.
	frame.FuelAnchor, frame.HasFuelAnchor = t.fuel.NewAnchor(&t.enc)

	t.cs.Push(frame)
	return nil
}

// visitElse implements  "else": if the then-branch's tail is
// reachable and a real else exists, then's results are copied into the
// branch-param registers and an unconditional branch skips over the
// else body entirely; either way, the operand stack is then rolled back
// to the if's own inputs so the else body starts from the same state
// the then body did.
func (t *FuncTranslator) visitElse() error {
	top := t.cs.Top()
	if top.Kind == FrameUnreachable {
		if top.MaskedKind == FrameIf {
			top.HasVisitedElse = true
		}
		return nil
	}
	if top.Kind != FrameIf {
		invariant("else encountered outside an if frame")
	}

	top.EndOfThenReachable = t.reachable
	if top.HasElseLabel && top.EndOfThenReachable {
		vals := make([]Provider, top.BlockType.Results)
		t.vs.PopN(vals)
		if err := t.enc.EncodeCopies(top.BranchParams, vals, t.vs.Pool()); err != nil {
			return err
		}
		t.enc.EmitBranch(top.EndLabel)
	}
	if top.HasElseLabel {
		if err := t.enc.PinLabel(top.ElseLabel); err != nil {
			return err
		}
	}

	t.vs.TruncateTo(top.BaseHeight)
	for _, p := range top.ElseProviders {
		if p.IsConst() {
			t.vs.PushConst(p.Const())
		} else {
			t.vs.PushRegister(p.Reg())
			t.vs.DecUsage(p)
		}
	}

	top.HasVisitedElse = true
	if top.HasElseLabel {
		t.reachable = true
	} else {
		t.reachable = top.ElseReachable
	}
	return nil
}

// visitEnd dispatches by frame kind.
func (t *FuncTranslator) visitEnd() error {
	top := t.cs.Top()
	if top.Kind == FrameUnreachable {
		t.cs.Pop()
		return nil
	}
	switch top.Kind {
	case FrameBlock:
		return t.endBlock()
	case FrameLoop:
		return t.endLoop()
	case FrameIf:
		return t.endIf()
	}
	invariant("end on frame of unknown kind %d", top.Kind)
	return nil
}

// endBlock also handles the outermost function-body frame: popping it
// translates the function's implicit trailing return instead of pushing
// branch-param registers back onto a (nonexistent) enclosing stack.
func (t *FuncTranslator) endBlock() error {
	f := t.cs.Pop()
	outermost := t.cs.Empty()
	branched := f.BranchCount > 0

	if t.reachable && (branched || outermost) {
		vals := append([]Provider(nil), t.vs.PeekN(f.BlockType.Results)...)
		if branched {
			if err := t.enc.EncodeCopies(f.BranchParams, vals, t.vs.Pool()); err != nil {
				return err
			}
		}
	}

	reachableAfter := t.reachable || branched

	if outermost {
		if err := t.enc.PinLabelIfUnpinned(f.EndLabel); err != nil {
			return err
		}
		if reachableAfter {
			var vals []Provider
			if branched {
				vals = make([]Provider, f.BlockType.Results)
				for i := range vals {
					vals[i] = RegProvider(f.BranchParams.Reg(i))
				}
			} else {
				vals = t.vs.PeekN(f.BlockType.Results)
			}
			if err := t.enc.EncodeReturn(vals, t.vs.Pool()); err != nil {
				return err
			}
		}
		t.vs.TruncateTo(f.BaseHeight)
		t.reachable = false
		return nil
	}

	if err := t.enc.PinLabelIfUnpinned(f.EndLabel); err != nil {
		return err
	}
	if branched {
		t.vs.TruncateTo(f.BaseHeight)
		for i := 0; i < f.BlockType.Results; i++ {
			t.vs.PushRegister(f.BranchParams.Reg(i))
		}
	}
	t.reachable = reachableAfter
	return nil
}

// endLoop implements  "loop end": a loop has exactly one exit
// (fallthrough), so there is no merge to perform and the header label
// was already pinned at entry.
func (t *FuncTranslator) endLoop() error {
	t.cs.Pop()
	return nil
}

// endIf implements  "if end", including the §4 supplement
// "missing else forwards inputs to outputs (identity)": when no else
// ever appeared in the operator stream, `end` synthesizes one, wiring
// the if's own snapshot of its inputs as the else-path's results.
func (t *FuncTranslator) endIf() error {
	f := t.cs.Pop()

	var elseTailReachable bool
	if !f.HasVisitedElse {
		f.EndOfThenReachable = t.reachable
		if f.HasElseLabel && f.EndOfThenReachable {
			vals := make([]Provider, f.BlockType.Results)
			t.vs.PopN(vals)
			if err := t.enc.EncodeCopies(f.BranchParams, vals, t.vs.Pool()); err != nil {
				return err
			}
			t.enc.EmitBranch(f.EndLabel)
		}
		if f.HasElseLabel {
			if err := t.enc.PinLabel(f.ElseLabel); err != nil {
				return err
			}
			if f.ElseReachable {
				idVals := append([]Provider(nil), f.ElseProviders...)
				if err := t.enc.EncodeCopies(f.BranchParams, idVals, t.vs.Pool()); err != nil {
					return err
				}
				for _, p := range f.ElseProviders {
					t.vs.DecUsage(p)
				}
			}
		}
		elseTailReachable = f.ElseReachable
	} else {
		if t.reachable {
			vals := make([]Provider, f.BlockType.Results)
			t.vs.PopN(vals)
			if err := t.enc.EncodeCopies(f.BranchParams, vals, t.vs.Pool()); err != nil {
				return err
			}
		}
		elseTailReachable = t.reachable
	}

	t.vs.TruncateTo(f.BaseHeight)
	if err := t.enc.PinLabelIfUnpinned(f.EndLabel); err != nil {
		return err
	}

	reachableAfter := f.EndOfThenReachable || elseTailReachable || f.BranchCount > 0
	outermost := t.cs.Empty()
	if outermost {
		if reachableAfter {
			vals := make([]Provider, f.BlockType.Results)
			for i := range vals {
				vals[i] = RegProvider(f.BranchParams.Reg(i))
			}
			if err := t.enc.EncodeReturn(vals, t.vs.Pool()); err != nil {
				return err
			}
		}
		t.reachable = false
		return nil
	}

	for i := 0; i < f.BlockType.Results; i++ {
		t.vs.PushRegister(f.BranchParams.Reg(i))
	}
	t.reachable = reachableAfter
	return nil
}

// pushUnreachableFrame records a block/loop/if entered while already in
// dead code: its matching else/end must still balance the control-frame
// stack, but nothing about it needs labels, registers, or fuel.
func (t *FuncTranslator) pushUnreachableFrame(kind FrameKind, bt BlockType) {
	t.cs.Push(ControlFrame{Kind: FrameUnreachable, MaskedKind: kind, BlockType: bt})
}

// currentFuelAnchor returns the innermost live frame's anchor, for
// constructs that inherit their parent's fuel accounting rather than
// opening a fresh anchor.
func (t *FuncTranslator) currentFuelAnchor() (int, bool) {
	if t.cs.Empty() {
		return 0, false
	}
	f := t.cs.Top()
	return f.FuelAnchor, f.HasFuelAnchor
}
