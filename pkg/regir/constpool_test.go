package regir

import "testing"

func TestConstPoolAllocIsNotDeduplicating(t *testing.T) {
	var p ConstPool
	r1, err := p.Alloc(I32Val(7))
	if err != nil {
		t.Fatal(err)
	}
	r2, err := p.Alloc(I32Val(7))
	if err != nil {
		t.Fatal(err)
	}
	if r1 == r2 {
		t.Fatal("allocating the same value twice must still produce two distinct entries")
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if p.At(r1) != I32Val(7) || p.At(r2) != I32Val(7) {
		t.Fatal("both entries should read back the interned value")
	}
}

func TestConstPoolResetReusesCapacity(t *testing.T) {
	var p ConstPool
	for i := 0; i < 10; i++ {
		if _, err := p.Alloc(I32Val(int32(i))); err != nil {
			t.Fatal(err)
		}
	}
	p.Reset()
	if p.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", p.Len())
	}
	if len(p.Values()) != 0 {
		t.Fatalf("Values() after Reset = %v, want empty", p.Values())
	}
}

func TestConstPoolOverflow(t *testing.T) {
	var p ConstPool
	for i := 0; i < maxConstants; i++ {
		if _, err := p.Alloc(I32Val(0)); err != nil {
			t.Fatalf("unexpected error at entry %d: %v", i, err)
		}
	}
	if _, err := p.Alloc(I32Val(0)); err != ErrConstantPoolTooLarge {
		t.Fatalf("Alloc past capacity = %v, want ErrConstantPoolTooLarge", err)
	}
}
