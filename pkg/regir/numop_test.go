package regir

import (
	"math"
	"testing"
)

func TestEvalIntArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		op     NumOp
		width  int
		a, b   int64
		want   int64
		wantOk bool
	}{
		{"i32 add", NumAdd, 32, 2, 3, 5, true},
		{"i32 add wraps", NumAdd, 32, math.MaxInt32, 1, 0x80000000, true},
		{"i32 sub", NumSub, 32, 10, 3, 7, true},
		{"i64 mul", NumMul, 64, 6, 7, 42, true},
		{"i32 div_s", NumDivS, 32, -7, 2, 0xFFFFFFFD, true}, // -3 truncated toward zero, stored as the i32 bit pattern
		{"i32 div_u by zero", NumDivU, 32, 9, 0, 0, false},
		{"i32 div_s by zero", NumDivS, 32, 9, 0, 0, false},
		{"i32 rem_s(-1) never overflows", NumRemS, 32, math.MinInt32, -1, 0, true},
		{"i64 rotl", NumRotl, 64, 1, 1, 2, true},
		{"i32 shr_u masks shift amount", NumShrU, 32, -1, 33, 0x7fffffff, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EvalInt(tt.op, tt.width, tt.a, tt.b)
			if ok != tt.wantOk {
				t.Fatalf("EvalInt(%v,%d,%d,%d) ok=%v, want %v", tt.op, tt.width, tt.a, tt.b, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Fatalf("EvalInt(%v,%d,%d,%d) = %d, want %d", tt.op, tt.width, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDivRemOverflows(t *testing.T) {
	if !DivRemOverflows(NumDivS, 32, math.MinInt32, -1) {
		t.Error("i32.div_s(MinInt32, -1) should overflow")
	}
	if !DivRemOverflows(NumDivS, 64, math.MinInt64, -1) {
		t.Error("i64.div_s(MinInt64, -1) should overflow")
	}
	if DivRemOverflows(NumDivS, 32, 10, -1) {
		t.Error("i32.div_s(10, -1) should not overflow")
	}
	if DivRemOverflows(NumDivU, 32, math.MinInt32, -1) {
		t.Error("div_u is never the overflow trap, only div_s")
	}
	// EvalInt must agree with DivRemOverflows on the overflow case.
	if _, ok := EvalInt(NumDivS, 32, math.MinInt32, -1); ok {
		t.Error("EvalInt should refuse to fold the overflow case")
	}
}

func TestEvalFloatNaNCanonicalization(t *testing.T) {
	someNaN32 := math.Float32bits(float32(math.NaN()))
	// Poison the payload so it's distinguishable from the canonical NaN
	// if propagated unchanged.
	weirdNaN32 := someNaN32 ^ 0x00000001

	got := EvalFloat(NumFAdd, 32, uint64(weirdNaN32), uint64(math.Float32bits(1.0)))
	if uint32(got) != canonicalNaN32 {
		t.Fatalf("f32 NaN result = %#x, want canonical %#x", uint32(got), uint32(canonicalNaN32))
	}

	weirdNaN64 := math.Float64bits(math.NaN()) ^ 1
	got64 := EvalFloat(NumFMul, 64, weirdNaN64, math.Float64bits(2.0))
	if got64 != canonicalNaN64 {
		t.Fatalf("f64 NaN result = %#x, want canonical %#x", got64, uint64(canonicalNaN64))
	}
}

func TestEvalFloatArithmetic(t *testing.T) {
	a := math.Float64bits(1.5)
	b := math.Float64bits(2.5)
	got := EvalFloat(NumFAdd, 64, a, b)
	if math.Float64frombits(got) != 4.0 {
		t.Fatalf("1.5+2.5 = %v, want 4.0", math.Float64frombits(got))
	}
}

func TestEvalFloatCompareNaN(t *testing.T) {
	nan := math.Float64bits(math.NaN())
	one := math.Float64bits(1.0)

	if EvalFloatCompare(NumFEq, 64, nan, one) {
		t.Error("NaN == 1.0 must be false")
	}
	if !EvalFloatCompare(NumFNe, 64, nan, one) {
		t.Error("NaN != 1.0 must be true")
	}
	if EvalFloatCompare(NumFLt, 64, nan, one) || EvalFloatCompare(NumFGe, 64, nan, one) {
		t.Error("every ordered NaN comparison other than Ne must be false")
	}
}

func TestNumOpCommutative(t *testing.T) {
	if !NumAdd.Commutative() {
		t.Error("add is commutative")
	}
	if NumSub.Commutative() {
		t.Error("sub is not commutative")
	}
	if NumDivS.Commutative() {
		t.Error("div_s is not commutative")
	}
}

func TestNumOpIsDivRem(t *testing.T) {
	for _, op := range []NumOp{NumDivS, NumDivU, NumRemS, NumRemU} {
		if !op.IsDivRem() {
			t.Errorf("%v should be IsDivRem", op)
		}
	}
	if NumAdd.IsDivRem() {
		t.Error("add is not a div/rem op")
	}
}
