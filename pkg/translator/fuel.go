package translator

import "github.com/minz/wasmreg/pkg/regir"

// FuelCosts is the opaque per-instruction-class cost provider. A nil
// FuelCosts disables metering entirely: no fuel anchors are ever
// allocated.
type FuelCosts interface {
	Base() uint64
	Instance() uint64
	Load() uint64
	Store() uint64
	Call() uint64
	CopyPerRegister() uint64
}

// FuelClass classifies an emitted instruction for cost lookup.
type FuelClass uint8

const (
	FuelClassBase FuelClass = iota
	FuelClassInstance
	FuelClassLoad
	FuelClassStore
	FuelClassCall
	FuelClassCopy // cost multiplied by register count
)

func costFor(c FuelCosts, class FuelClass, registers int) uint64 {
	switch class {
	case FuelClassInstance:
		return c.Instance()
	case FuelClassLoad:
		return c.Load()
	case FuelClassStore:
		return c.Store()
	case FuelClassCall:
		return c.Call()
	case FuelClassCopy:
		return c.CopyPerRegister() * uint64(registers)
	default:
		return c.Base()
	}
}

// FuelModel tracks whether metering is enabled and bumps fuel anchors.
// Only calls (via bumpCall) and the function prologue bump an anchor;
// other emitted instructions are not charged.
type FuelModel struct {
	costs  FuelCosts
	active bool
}

func (fm *FuelModel) Reset(costs FuelCosts) {
	fm.costs = costs
	fm.active = costs != nil
}

// Enabled reports whether fuel metering is active for this translation.
func (fm *FuelModel) Enabled() bool { return fm.active }

// NewAnchor emits a ConsumeFuel(0) placeholder via enc and returns its
// instruction index, to be bumped by subsequent Bump calls. Returns
// (0, false) if metering is disabled.
func (fm *FuelModel) NewAnchor(enc *Encoder) (int, bool) {
	if !fm.active {
		return 0, false
	}
	idx := enc.PushInstr(regir.MakeConsumeFuel(0))
	return idx, true
}

// Bump adds the cost for class to the anchor instruction at anchorIdx.
// A no-op if metering is disabled.
func (fm *FuelModel) Bump(enc *Encoder, anchorIdx int, hasAnchor bool, class FuelClass, registers int) {
	if !fm.active || !hasAnchor {
		return
	}
	enc.instrs[anchorIdx].Imm += int64(costFor(fm.costs, class, registers))
}

// BumpCopy is the convenience form for the frequent copy-cost case.
func (fm *FuelModel) BumpCopy(enc *Encoder, anchorIdx int, hasAnchor bool, registers int) {
	fm.Bump(enc, anchorIdx, hasAnchor, FuelClassCopy, registers)
}

// PrologueBump increments the function's initial ConsumeFuel by the
// copy cost proportional to the register-frame size, on finalization.
func (fm *FuelModel) PrologueBump(enc *Encoder, anchorIdx int, hasAnchor bool, registerFrameSize int) {
	fm.Bump(enc, anchorIdx, hasAnchor, FuelClassCopy, registerFrameSize)
}
