package regir

import (
	"math"
	"testing"
)

func TestTypedValAccessors(t *testing.T) {
	if got := I32Val(-1).I32(); got != -1 {
		t.Errorf("I32Val(-1).I32() = %d, want -1", got)
	}
	if got := I64Val(42).I64(); got != 42 {
		t.Errorf("I64Val(42).I64() = %d, want 42", got)
	}
	if got := F32Val(1.5).F32(); got != 1.5 {
		t.Errorf("F32Val(1.5).F32() = %v, want 1.5", got)
	}
	if got := F64Val(2.5).F64(); got != 2.5 {
		t.Errorf("F64Val(2.5).F64() = %v, want 2.5", got)
	}
}

func TestTypedValIsZero(t *testing.T) {
	if !I32Val(0).IsZero() {
		t.Error("i32 0 should be zero")
	}
	if I32Val(1).IsZero() {
		t.Error("i32 1 should not be zero")
	}
	if !F64Val(0).IsZero() {
		t.Error("f64 +0.0 should be zero")
	}
	if !F64Val(math.Copysign(0, -1)).IsZero() {
		t.Error("f64 -0.0 should also count as zero for the algebraic identity")
	}
	if F64Val(1.0).IsZero() {
		t.Error("f64 1.0 should not be zero")
	}
}

func TestTypedValIsAllOnes(t *testing.T) {
	if !I32Val(-1).IsAllOnes() {
		t.Error("i32 -1 is the all-ones pattern")
	}
	if !I64Val(-1).IsAllOnes() {
		t.Error("i64 -1 is the all-ones pattern")
	}
	if I32Val(1).IsAllOnes() {
		t.Error("i32 1 is not all-ones")
	}
	if F32Val(1.0).IsAllOnes() {
		t.Error("floats never satisfy IsAllOnes")
	}
}

func TestTypedValFitsImm16(t *testing.T) {
	tests := []struct {
		name   string
		v      TypedVal
		signed bool
		want   bool
	}{
		{"i32 small positive signed", I32Val(100), true, true},
		{"i32 max int16 signed", I32Val(math.MaxInt16), true, true},
		{"i32 one over max int16 signed", I32Val(math.MaxInt16 + 1), true, false},
		{"i32 min int16 signed", I32Val(math.MinInt16), true, true},
		{"i32 one under min int16 signed", I32Val(math.MinInt16 - 1), true, false},
		{"i32 large unsigned", I32Val(int32(uint32(math.MaxUint16))), false, true},
		{"i32 negative unsigned", I32Val(-1), false, false},
		{"i64 in range signed", I64Val(-5), true, true},
		{"i64 out of range signed", I64Val(math.MaxInt16 + 1), true, false},
		{"f32 never fits", F32Val(1.0), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.FitsImm16(tt.signed); got != tt.want {
				t.Errorf("FitsImm16(%v, signed=%v) = %v, want %v", tt.v, tt.signed, got, tt.want)
			}
		})
	}
}
