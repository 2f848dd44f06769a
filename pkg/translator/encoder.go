package translator

import (
	"github.com/minz/wasmreg/pkg/regir"
)

// Encoder owns the IR instruction buffer, the label registry, and the
// "last instruction" cursor fusion inspects.
type Encoder struct {
	instrs []regir.Instruction
	labels LabelRegistry

	// lastPrimary is the index of the most recently appended primary
	// (non-continuation) instruction, or -1 if none or if the last
	// append was a label pin / other fusion-breaking event. Continuation
	// words never update this — a continuation can never itself become
	// the fusion anchor for a later instruction.
	lastPrimary int
}

// Reset clears the encoder for reuse across functions.
func (e *Encoder) Reset() {
	e.instrs = e.instrs[:0]
	e.labels.Reset()
	e.lastPrimary = -1
}

// Labels exposes the label registry.
func (e *Encoder) Labels() *LabelRegistry { return &e.labels }

// Len returns the current instruction count.
func (e *Encoder) Len() int { return len(e.instrs) }

// Instructions exposes the buffer (read-only use by callers finalizing
// a function).
func (e *Encoder) Instructions() []regir.Instruction { return e.instrs }

// PushInstr appends a primary instruction and returns its index. It
// becomes the new fusion cursor.
func (e *Encoder) PushInstr(i regir.Instruction) int {
	idx := len(e.instrs)
	e.instrs = append(e.instrs, i)
	e.lastPrimary = idx
	return idx
}

// AppendInstr appends a parameter-continuation word. Continuations are
// never fuseable and never become the fusion cursor.
func (e *Encoder) AppendInstr(i regir.Instruction) int {
	idx := len(e.instrs)
	e.instrs = append(e.instrs, i)
	return idx
}

// BreakFusion clears the fusion cursor — called whenever something
// happens that must not be reordered across a pinned label or a call
// with observable side effects.
func (e *Encoder) BreakFusion() { e.lastPrimary = -1 }

// LastPrimary returns the index of the fusable instruction, or -1.
func (e *Encoder) LastPrimary() int { return e.lastPrimary }

// At returns the instruction at idx.
func (e *Encoder) At(idx int) regir.Instruction { return e.instrs[idx] }

// PinLabel pins a label at the encoder's current position and breaks
// fusion across it.
func (e *Encoder) PinLabel(h LabelHandle) error {
	err := e.labels.Pin(h, len(e.instrs), e.instrs)
	e.BreakFusion()
	return err
}

// PinLabelIfUnpinned idempotently pins h at the current position and
// breaks fusion across it.
func (e *Encoder) PinLabelIfUnpinned(h LabelHandle) error {
	err := e.labels.PinIfUnpinned(h, len(e.instrs), e.instrs)
	e.BreakFusion()
	return err
}

// EmitBranch unconditionally branches to h, resolving the offset
// immediately if h is already pinned (a backward branch, e.g. a loop's
// header) or emitting a placeholder patched later (a forward branch).
func (e *Encoder) EmitBranch(h LabelHandle) int {
	idx := len(e.instrs)
	offset, _ := e.labels.TryResolve(h, idx)
	return e.PushInstr(regir.MakeBranch(offset))
}

// EmitBranchEqz/EmitBranchNez are the conditional forms, with the same
// resolve-or-defer behavior. They attempt compare-fusion first.
func (e *Encoder) EmitBranchEqz(condition regir.Reg, h LabelHandle) int {
	if fused, ok := e.tryFuseCompareBranch(condition, h, false); ok {
		return fused
	}
	idx := len(e.instrs)
	offset, _ := e.labels.TryResolve(h, idx)
	return e.PushInstr(regir.MakeBranchEqz(condition, offset))
}

func (e *Encoder) EmitBranchNez(condition regir.Reg, h LabelHandle) int {
	if fused, ok := e.tryFuseCompareBranch(condition, h, true); ok {
		return fused
	}
	idx := len(e.instrs)
	offset, _ := e.labels.TryResolve(h, idx)
	return e.PushInstr(regir.MakeBranchNez(condition, offset))
}

// compareBranchOpcodes maps a comparison opcode to its fused
// BranchCmp{...} counterpart. Populated for the representative i32
// comparisons this core carries.
var compareBranchOpcodes = map[regir.Opcode]regir.Opcode{
	regir.OpI32Eq:  regir.OpBranchCmpI32Eq,
	regir.OpI32Ne:  regir.OpBranchCmpI32Ne,
	regir.OpI32LtS: regir.OpBranchCmpI32LtS,
	regir.OpI32LtU: regir.OpBranchCmpI32LtU,
	regir.OpI32GtS: regir.OpBranchCmpI32GtS,
	regir.OpI32GtU: regir.OpBranchCmpI32GtU,
	regir.OpI32LeS: regir.OpBranchCmpI32LeS,
	regir.OpI32LeU: regir.OpBranchCmpI32LeU,
	regir.OpI32GeS: regir.OpBranchCmpI32GeS,
	regir.OpI32GeU: regir.OpBranchCmpI32GeU,
}

// tryFuseCompareBranch inspects the fusion cursor: if it is a comparison
// whose result register is exactly `condition` and nothing else could
// have consumed that result in between, rewrite it into a BranchCmp*
// instruction in place and drop the standalone compare. wantNez selects
// branch-if-true (Nez) vs branch-if-false (Eqz) polarity.
func (e *Encoder) tryFuseCompareBranch(condition regir.Reg, h LabelHandle, wantNez bool) (int, bool) {
	if e.lastPrimary < 0 || e.lastPrimary != len(e.instrs)-1 {
		return 0, false
	}
	last := e.instrs[e.lastPrimary]
	cmpOp, isCompare := compareBranchOpcodes[last.Op]
	if !isCompare || last.A != condition {
		return 0, false
	}
	op := cmpOp
	if !wantNez {
		op = invertedBranchCmp[cmpOp]
	}
	e.instrs = e.instrs[:e.lastPrimary]
	idx := len(e.instrs)
	offset, _ := e.labels.TryResolve(h, idx)
	e.lastPrimary = -1
	return e.PushInstr(regir.MakeBranchCmp(op, last.B, last.C, offset)), true
}

// invertedBranchCmp gives the BranchCmp opcode for "branch if NOT cmp",
// used when an eqz-polarity branch fuses a comparison.
var invertedBranchCmp = map[regir.Opcode]regir.Opcode{
	regir.OpBranchCmpI32Eq:  regir.OpBranchCmpI32Ne,
	regir.OpBranchCmpI32Ne:  regir.OpBranchCmpI32Eq,
	regir.OpBranchCmpI32LtS: regir.OpBranchCmpI32GeS,
	regir.OpBranchCmpI32LtU: regir.OpBranchCmpI32GeU,
	regir.OpBranchCmpI32GtS: regir.OpBranchCmpI32LeS,
	regir.OpBranchCmpI32GtU: regir.OpBranchCmpI32LeU,
	regir.OpBranchCmpI32LeS: regir.OpBranchCmpI32GtS,
	regir.OpBranchCmpI32LeU: regir.OpBranchCmpI32GtU,
	regir.OpBranchCmpI32GeS: regir.OpBranchCmpI32LtS,
	regir.OpBranchCmpI32GeU: regir.OpBranchCmpI32LtU,
}

// selectFuseOpcodes maps a comparison opcode to its fused
// select-on-compare counterpart.
var selectFuseOpcodes = map[regir.Opcode]regir.Opcode{
	regir.OpI32Eq:  regir.OpSelectCmpI32Eq,
	regir.OpI32Ne:  regir.OpSelectCmpI32Ne,
	regir.OpI32LtS: regir.OpSelectCmpI32LtS,
	regir.OpI32LtU: regir.OpSelectCmpI32LtU,
	regir.OpI32GtS: regir.OpSelectCmpI32GtS,
	regir.OpI32GtU: regir.OpSelectCmpI32GtU,
	regir.OpI32LeS: regir.OpSelectCmpI32LeS,
	regir.OpI32LeU: regir.OpSelectCmpI32LeU,
	regir.OpI32GeS: regir.OpSelectCmpI32GeS,
	regir.OpI32GeU: regir.OpSelectCmpI32GeU,

	regir.OpI64Eq:  regir.OpSelectCmpI64Eq,
	regir.OpI64Ne:  regir.OpSelectCmpI64Ne,
	regir.OpI64LtS: regir.OpSelectCmpI64LtS,
	regir.OpI64LtU: regir.OpSelectCmpI64LtU,
	regir.OpI64GtS: regir.OpSelectCmpI64GtS,
	regir.OpI64GtU: regir.OpSelectCmpI64GtU,
	regir.OpI64LeS: regir.OpSelectCmpI64LeS,
	regir.OpI64LeU: regir.OpSelectCmpI64LeU,
	regir.OpI64GeS: regir.OpSelectCmpI64GeS,
	regir.OpI64GeU: regir.OpSelectCmpI64GeU,

	regir.OpF32Eq: regir.OpSelectCmpF32Eq,
	regir.OpF32Ne: regir.OpSelectCmpF32Ne,
	regir.OpF32Lt: regir.OpSelectCmpF32Lt,
	regir.OpF32Gt: regir.OpSelectCmpF32Gt,
	regir.OpF32Le: regir.OpSelectCmpF32Le,
	regir.OpF32Ge: regir.OpSelectCmpF32Ge,

	regir.OpF64Eq: regir.OpSelectCmpF64Eq,
	regir.OpF64Ne: regir.OpSelectCmpF64Ne,
	regir.OpF64Lt: regir.OpSelectCmpF64Lt,
	regir.OpF64Gt: regir.OpSelectCmpF64Gt,
	regir.OpF64Le: regir.OpSelectCmpF64Le,
	regir.OpF64Ge: regir.OpSelectCmpF64Ge,
}

// TryFuseSelect inspects the fusion cursor the same way
// tryFuseCompareBranch does, for `select`'s condition operand. Returns
// the fused instruction's index and true on success.
func (e *Encoder) TryFuseSelect(dst, condition, ifTrue, ifFalse regir.Reg) (int, bool) {
	if e.lastPrimary < 0 || e.lastPrimary != len(e.instrs)-1 {
		return 0, false
	}
	last := e.instrs[e.lastPrimary]
	op, ok := selectFuseOpcodes[last.Op]
	if !ok || last.A != condition {
		return 0, false
	}
	e.instrs = e.instrs[:e.lastPrimary]
	e.lastPrimary = -1
	return e.PushInstr(regir.MakeSelectCmp(op, dst, last.B, last.C, ifTrue, ifFalse)), true
}
