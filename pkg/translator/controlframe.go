package translator

import "github.com/minz/wasmreg/pkg/regir"

// FrameKind tags a control frame's flavor.
type FrameKind uint8

const (
	FrameBlock FrameKind = iota
	FrameLoop
	FrameIf
	FrameUnreachable
)

// BlockType is the input/result shape of a block/loop/if.
type BlockType struct {
	Params  int
	Results int
}

// ControlFrame is one entry of the control-frame stack.
type ControlFrame struct {
	Kind FrameKind

	// The kind an Unreachable frame stands in for, so `end` still knows
	// how to behave once reachability returns.
	MaskedKind FrameKind

	BlockType BlockType

	// BaseHeight is the operand-stack height at frame entry, used to
	// truncate the stack on end/branch.
	BaseHeight int

	// EndLabel is the Block/If exit label; for Loop it is unused (loops
	// exit by falling through, never by label).
	EndLabel LabelHandle
	// HeaderLabel is the Loop's back-branch target; pinned immediately
	// at loop entry.
	HeaderLabel LabelHandle
	// ElseLabel is allocated only for an If with a non-constant
	// condition.
	ElseLabel LabelHandle
	HasElseLabel bool

	// BranchParams is where branching operands must land.
	BranchParams regir.BoundedRegSpan

	// ElseProviders snapshots the If's input providers so `else` can
	// restore them.
	ElseProviders []Provider

	FuelAnchor    int
	HasFuelAnchor bool

	// Reachability sub-flags.
	Reachable          bool
	ThenReachable      bool
	ElseReachable      bool
	EndOfThenReachable bool
	HasVisitedElse     bool

	BranchCount int
}

// ControlStack is the per-function control-frame stack.
type ControlStack struct {
	frames []ControlFrame
}

func (cs *ControlStack) Reset() { cs.frames = cs.frames[:0] }

func (cs *ControlStack) Push(f ControlFrame) { cs.frames = append(cs.frames, f) }

func (cs *ControlStack) Pop() ControlFrame {
	f := cs.frames[len(cs.frames)-1]
	cs.frames = cs.frames[:len(cs.frames)-1]
	return f
}

// Top returns a mutable pointer to the innermost frame.
func (cs *ControlStack) Top() *ControlFrame { return &cs.frames[len(cs.frames)-1] }

// Depth returns the number of frames, including the implicit outermost
// function-body frame.
func (cs *ControlStack) Depth() int { return len(cs.frames) }

// At returns frame i counting from the top (0 = innermost), matching
// Wasm's `br $depth` addressing.
func (cs *ControlStack) At(depthFromTop int) *ControlFrame {
	return &cs.frames[len(cs.frames)-1-depthFromTop]
}

// Empty reports whether the control stack holds no frames.
func (cs *ControlStack) Empty() bool { return len(cs.frames) == 0 }
