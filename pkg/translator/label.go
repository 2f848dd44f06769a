package translator

import (
	"fmt"
	"math"

	"github.com/minz/wasmreg/pkg/regir"
)

// LabelHandle is an opaque reference into the LabelRegistry.
type LabelHandle int

// labelRef is a recorded reference site: the IR index of the
// branch-family instruction whose Offset field still needs patching.
type labelRef struct {
	instrIndex int
}

type labelEntry struct {
	pinned bool
	offset int // instruction index, once pinned
	refs   []labelRef
}

// LabelRegistry tracks forward label references and resolves them to
// signed branch offsets at pinning time.
type LabelRegistry struct {
	labels []labelEntry
}

// NewLabel allocates a new, unpinned label.
func (lr *LabelRegistry) NewLabel() LabelHandle {
	lr.labels = append(lr.labels, labelEntry{})
	return LabelHandle(len(lr.labels) - 1)
}

// Pinned reports whether h has already been pinned.
func (lr *LabelRegistry) Pinned(h LabelHandle) bool {
	return lr.labels[h].pinned
}

// TryResolve returns the signed delta from instrIndex to h's target if h
// is already pinned. If not, it records instrIndex as a pending
// reference and returns (0, false); the caller must still emit a branch
// instruction with a placeholder offset, later patched by Pin.
func (lr *LabelRegistry) TryResolve(h LabelHandle, instrIndex int) (offset int32, resolved bool) {
	e := &lr.labels[h]
	if e.pinned {
		return int32(e.offset - instrIndex), true
	}
	e.refs = append(e.refs, labelRef{instrIndex: instrIndex})
	return 0, false
}

// Pin fixes h's target to the given instruction index and patches every
// pending reference's Offset field in instrs. Pinning an already-pinned
// label is an InternalInvariant violation.
func (lr *LabelRegistry) Pin(h LabelHandle, instrIndex int, instrs []regir.Instruction) error {
	e := &lr.labels[h]
	if e.pinned {
		panic(fmt.Sprintf("translator: label %d pinned twice", h))
	}
	e.pinned = true
	e.offset = instrIndex
	for _, ref := range e.refs {
		delta := instrIndex - ref.instrIndex
		if delta < math.MinInt32 || delta > math.MaxInt32 {
			return regir.ErrBranchOffsetOutOfRange
		}
		instrs[ref.instrIndex].Offset = int32(delta)
	}
	e.refs = nil
	return nil
}

// PinIfUnpinned pins h only if it isn't already pinned (idempotent form
// used where a caller can't easily tell whether a shared label, such as
// an if's end_label with no else, was already pinned on another path).
func (lr *LabelRegistry) PinIfUnpinned(h LabelHandle, instrIndex int, instrs []regir.Instruction) error {
	if lr.labels[h].pinned {
		return nil
	}
	return lr.Pin(h, instrIndex, instrs)
}

// AllPinned reports whether every allocated label has been pinned —
// checked once at function finalization.
func (lr *LabelRegistry) AllPinned() bool {
	for _, e := range lr.labels {
		if !e.pinned {
			return false
		}
	}
	return true
}

// Reset clears the registry for reuse across functions.
func (lr *LabelRegistry) Reset() {
	lr.labels = lr.labels[:0]
}

// Rebase maps every pinned offset and pending reference site through
// remap, which takes an old instruction index and returns the new one.
// The translator itself never calls it; only label_test.go does.
func (lr *LabelRegistry) Rebase(remap func(oldIndex int) int) {
	for i := range lr.labels {
		e := &lr.labels[i]
		if e.pinned {
			e.offset = remap(e.offset)
		}
		for j := range e.refs {
			e.refs[j].instrIndex = remap(e.refs[j].instrIndex)
		}
	}
}
