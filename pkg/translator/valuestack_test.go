package translator

import (
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
)

func TestValueStackLocalsAndConst(t *testing.T) {
	var vs ValueStack
	vs.Init(2) // two locals: r0, r1

	vs.PushLocal(0)
	vs.PushConst(regir.I32Val(7))

	if vs.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", vs.Height())
	}
	b := vs.Pop()
	if !b.IsConst() || b.Const() != regir.I32Val(7) {
		t.Fatalf("top of stack = %v, want const 7", b)
	}
	a := vs.Pop()
	if a.IsConst() || a.Reg() != 0 {
		t.Fatalf("bottom of stack = %v, want local r0", a)
	}
}

func TestValueStackDynamicAllocationIsAboveLocals(t *testing.T) {
	var vs ValueStack
	vs.Init(3)

	r, err := vs.PushDynamic()
	if err != nil {
		t.Fatal(err)
	}
	if r != 3 {
		t.Fatalf("first dynamic register = %v, want r3 (after 3 locals)", r)
	}
	if vs.MaxRegister() != 4 {
		t.Fatalf("MaxRegister() = %v, want 4", vs.MaxRegister())
	}
}

func TestValueStackRefcountReleaseOnTruncate(t *testing.T) {
	var vs ValueStack
	vs.Init(0)

	r, err := vs.PushDynamic()
	if err != nil {
		t.Fatal(err)
	}
	if vs.RefCount(r) != 1 {
		t.Fatalf("RefCount after one push = %d, want 1", vs.RefCount(r))
	}
	vs.PushRegister(r) // a second reference to the same register
	if vs.RefCount(r) != 2 {
		t.Fatalf("RefCount after second push = %d, want 2", vs.RefCount(r))
	}

	vs.TruncateTo(1)
	if vs.RefCount(r) != 1 {
		t.Fatalf("RefCount after truncating one reference = %d, want 1", vs.RefCount(r))
	}
	vs.TruncateTo(0)
	if vs.RefCount(r) != 0 {
		t.Fatalf("RefCount after truncating last reference = %d, want 0", vs.RefCount(r))
	}
}

func TestValueStackLocalsAreNeverRefcounted(t *testing.T) {
	var vs ValueStack
	vs.Init(1)
	vs.PushLocal(0)
	vs.PushLocal(0)
	vs.TruncateTo(0)
	// Locals live outside the refcounting map entirely; RefCount on one
	// always reads the map's zero value.
	if vs.RefCount(regir.Reg(0)) != 0 {
		t.Fatalf("RefCount(local) = %d, want 0 (locals aren't tracked)", vs.RefCount(regir.Reg(0)))
	}
}

func TestValueStackReserveSpanDoesNotPush(t *testing.T) {
	var vs ValueStack
	vs.Init(0)

	span, err := vs.ReserveSpan(3)
	if err != nil {
		t.Fatal(err)
	}
	if vs.Height() != 0 {
		t.Fatalf("ReserveSpan must not push onto the operand stack, height = %d", vs.Height())
	}
	if span.Reg(0) != 0 || span.Reg(2) != 2 {
		t.Fatalf("reserved span = %v", span)
	}
	if vs.MaxRegister() != 3 {
		t.Fatalf("MaxRegister() = %v, want 3", vs.MaxRegister())
	}
}

func TestValueStackAllocConstIsIndependentOfOperandStack(t *testing.T) {
	var vs ValueStack
	vs.Init(0)

	r, err := vs.AllocConst(regir.I32Val(99))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsConst() {
		t.Fatal("AllocConst must return a constant register")
	}
	if vs.Height() != 0 {
		t.Fatal("AllocConst must not touch the operand stack")
	}
	if vs.Pool().At(r) != regir.I32Val(99) {
		t.Fatal("the pool should read back the same value")
	}
}

func TestPreserveLocalRewritesLiveReferences(t *testing.T) {
	var vs ValueStack
	var enc Encoder
	enc.Reset()
	vs.Init(1) // one local, r0

	vs.PushLocal(0)
	vs.PushLocal(0) // two live references to r0 on the stack

	if err := PreserveLocal(&vs, &enc, regir.Reg(0)); err != nil {
		t.Fatal(err)
	}

	top := vs.Peek()
	if top.IsConst() || top.Reg() == 0 {
		t.Fatalf("after preservation the stack slot must point at a fresh register, got %v", top)
	}
	if enc.Len() != 2 {
		t.Fatalf("expected one Copy per live reference, got %d instructions", enc.Len())
	}
	for i := 0; i < enc.Len(); i++ {
		if enc.At(i).Op != regir.OpCopy || enc.At(i).B != 0 {
			t.Fatalf("instruction %d = %v, want a Copy from r0", i, enc.At(i))
		}
	}
}
