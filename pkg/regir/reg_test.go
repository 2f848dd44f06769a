package regir

import "testing"

func TestRegConstRoundTrip(t *testing.T) {
	for i := 0; i < 5; i++ {
		r := RegFromConstIndex(i)
		if !r.IsConst() {
			t.Fatalf("RegFromConstIndex(%d) = %v, should be a const register", i, r)
		}
		if got := r.ConstIndex(); got != i {
			t.Fatalf("RegFromConstIndex(%d).ConstIndex() = %d, want %d", i, got, i)
		}
	}
	if Reg(0).IsConst() {
		t.Error("register 0 is not a constant")
	}
	if Reg(5).IsConst() {
		t.Error("a positive register is not a constant")
	}
}

func TestBoundedRegSpan(t *testing.T) {
	s := NewBoundedRegSpan(Reg(4), 3)
	if s.Reg(0) != 4 || s.Reg(2) != 6 {
		t.Fatalf("span registers wrong: %v, %v", s.Reg(0), s.Reg(2))
	}
	if s.End() != 7 {
		t.Fatalf("End() = %v, want 7", s.End())
	}
	if got := s.ToSlice(); len(got) != 3 || got[0] != 4 || got[2] != 6 {
		t.Fatalf("ToSlice() = %v", got)
	}
}

func TestBoundedRegSpanOverlaps(t *testing.T) {
	a := NewBoundedRegSpan(Reg(0), 4) // [0,4)
	b := NewBoundedRegSpan(Reg(3), 2) // [3,5)
	c := NewBoundedRegSpan(Reg(4), 2) // [4,6)
	empty := NewBoundedRegSpan(Reg(0), 0)

	if !a.Overlaps(b) {
		t.Error("[0,4) and [3,5) should overlap")
	}
	if a.Overlaps(c) {
		t.Error("[0,4) and [4,6) should not overlap (adjacent, not overlapping)")
	}
	if !a.Disjoint(c) {
		t.Error("[0,4) and [4,6) should be disjoint")
	}
	if a.Disjoint(b) {
		t.Error("[0,4) and [3,5) should not be disjoint")
	}
	if a.Overlaps(empty) || empty.Overlaps(a) {
		t.Error("an empty span overlaps nothing")
	}
}

func TestBoundedRegSpanOutOfRangePanics(t *testing.T) {
	s := NewBoundedRegSpan(Reg(0), 2)
	defer func() {
		if recover() == nil {
			t.Error("Reg(2) on a length-2 span should panic")
		}
	}()
	s.Reg(2)
}
