package translator

import (
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
)

func TestLabelForwardReference(t *testing.T) {
	var lr LabelRegistry
	instrs := []regir.Instruction{
		{}, // 0: placeholder branch, patched below
		{}, // 1
		{}, // 2: where the label pins
	}

	h := lr.NewLabel()
	if lr.Pinned(h) {
		t.Fatal("a fresh label must not be pinned")
	}

	offset, resolved := lr.TryResolve(h, 0)
	if resolved {
		t.Fatal("TryResolve on an unpinned label must defer")
	}
	if offset != 0 {
		t.Fatal("a deferred TryResolve must report a zero placeholder offset")
	}

	if err := lr.Pin(h, 2, instrs); err != nil {
		t.Fatal(err)
	}
	if !lr.Pinned(h) {
		t.Fatal("label should be pinned now")
	}
	if instrs[0].Offset != 2 {
		t.Fatalf("patched offset = %d, want 2", instrs[0].Offset)
	}
	if !lr.AllPinned() {
		t.Fatal("AllPinned should be true once the only label is pinned")
	}
}

func TestLabelBackwardReferenceResolvesImmediately(t *testing.T) {
	var lr LabelRegistry
	h := lr.NewLabel()
	instrs := make([]regir.Instruction, 5)
	if err := lr.Pin(h, 1, instrs); err != nil {
		t.Fatal(err)
	}

	offset, resolved := lr.TryResolve(h, 4)
	if !resolved {
		t.Fatal("TryResolve on a pinned label must resolve immediately")
	}
	if offset != -3 {
		t.Fatalf("offset = %d, want -3 (1-4)", offset)
	}
}

func TestLabelDoublePinPanics(t *testing.T) {
	var lr LabelRegistry
	h := lr.NewLabel()
	instrs := make([]regir.Instruction, 2)
	if err := lr.Pin(h, 0, instrs); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("pinning the same label twice must panic")
		}
	}()
	lr.Pin(h, 1, instrs)
}

func TestLabelPinIfUnpinnedIsIdempotent(t *testing.T) {
	var lr LabelRegistry
	h := lr.NewLabel()
	instrs := make([]regir.Instruction, 2)
	if err := lr.PinIfUnpinned(h, 0, instrs); err != nil {
		t.Fatal(err)
	}
	if err := lr.PinIfUnpinned(h, 1, instrs); err != nil {
		t.Fatal(err)
	}
	if lr.labels[h].offset != 0 {
		t.Fatal("second PinIfUnpinned call must be a no-op")
	}
}

func TestLabelRebase(t *testing.T) {
	var lr LabelRegistry
	h := lr.NewLabel()
	instrs := make([]regir.Instruction, 10)
	lr.TryResolve(h, 3) // pending forward reference at instruction 3
	if err := lr.Pin(h, 7, instrs); err != nil {
		t.Fatal(err)
	}

	lr.Rebase(func(old int) int { return old - 2 })
	if lr.labels[h].offset != 5 {
		t.Fatalf("rebased offset = %d, want 5", lr.labels[h].offset)
	}
}

func TestAllPinnedFalseWithOutstandingLabel(t *testing.T) {
	var lr LabelRegistry
	lr.NewLabel()
	if lr.AllPinned() {
		t.Fatal("a freshly allocated, unpinned label must fail AllPinned")
	}
}
