package translator

import (
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
)

func TestEmitBranchForwardReferencePatchedOnPin(t *testing.T) {
	var enc Encoder
	enc.Reset()

	h := enc.Labels().NewLabel()
	idx := enc.EmitBranch(h) // forward reference, offset patched later
	if enc.At(idx).Op != regir.OpBranch {
		t.Fatalf("expected OpBranch at %d", idx)
	}

	if err := enc.PinLabel(h); err != nil {
		t.Fatal(err)
	}
	if got := enc.At(idx).Offset; got != int32(enc.Len()-idx) {
		t.Fatalf("patched offset = %d, want %d", got, enc.Len()-idx)
	}
}

func TestCompareBranchFusion(t *testing.T) {
	var enc Encoder
	enc.Reset()

	dst, lhs, rhs := regir.Reg(2), regir.Reg(0), regir.Reg(1)
	enc.PushInstr(regir.MakeBinary(regir.OpI32Eq, dst, lhs, rhs))

	h := enc.Labels().NewLabel()
	idx := enc.EmitBranchNez(dst, h)

	if enc.Len() != 1 {
		t.Fatalf("fusion should replace the compare in place, got %d instructions", enc.Len())
	}
	got := enc.At(idx)
	if got.Op != regir.OpBranchCmpI32Eq {
		t.Fatalf("fused op = %v, want OpBranchCmpI32Eq", got.Op)
	}
	if got.A != lhs || got.B != rhs {
		t.Fatalf("fused operands = %v,%v want %v,%v", got.A, got.B, lhs, rhs)
	}
}

func TestCompareBranchFusionInvertsForEqzPolarity(t *testing.T) {
	var enc Encoder
	enc.Reset()

	dst, lhs, rhs := regir.Reg(2), regir.Reg(0), regir.Reg(1)
	enc.PushInstr(regir.MakeBinary(regir.OpI32LtS, dst, lhs, rhs))

	h := enc.Labels().NewLabel()
	idx := enc.EmitBranchEqz(dst, h)

	got := enc.At(idx)
	if got.Op != regir.OpBranchCmpI32GeS {
		t.Fatalf("fused op = %v, want OpBranchCmpI32GeS (the negation of lt_s)", got.Op)
	}
}

func TestCompareBranchNoFusionWhenConditionDiffers(t *testing.T) {
	var enc Encoder
	enc.Reset()

	enc.PushInstr(regir.MakeBinary(regir.OpI32Eq, regir.Reg(2), regir.Reg(0), regir.Reg(1)))
	// Condition register doesn't match the compare's destination: must
	// not fuse, since the branch isn't actually testing that compare.
	h := enc.Labels().NewLabel()
	enc.EmitBranchNez(regir.Reg(5), h)

	if enc.Len() != 2 {
		t.Fatalf("expected no fusion (2 instructions), got %d", enc.Len())
	}
	if enc.At(1).Op != regir.OpBranchNez {
		t.Fatalf("second instruction should be a plain BranchNez, got %v", enc.At(1).Op)
	}
}

func TestCompareBranchNoFusionAcrossBreak(t *testing.T) {
	var enc Encoder
	enc.Reset()

	dst := regir.Reg(2)
	enc.PushInstr(regir.MakeBinary(regir.OpI32Eq, dst, regir.Reg(0), regir.Reg(1)))
	enc.BreakFusion()

	h := enc.Labels().NewLabel()
	enc.EmitBranchNez(dst, h)

	if enc.Len() != 2 {
		t.Fatalf("BreakFusion must prevent fusing across it, got %d instructions", enc.Len())
	}
}

func TestSelectFusion(t *testing.T) {
	var enc Encoder
	enc.Reset()

	dst := regir.Reg(3)
	enc.PushInstr(regir.MakeBinary(regir.OpI32LtS, dst, regir.Reg(0), regir.Reg(1)))

	idx, ok := enc.TryFuseSelect(regir.Reg(4), dst, regir.Reg(5), regir.Reg(6))
	if !ok {
		t.Fatal("select should fuse with the preceding lt_s compare")
	}
	if enc.At(idx).Op != regir.OpSelectCmpI32LtS {
		t.Fatalf("fused op = %v, want OpSelectCmpI32LtS", enc.At(idx).Op)
	}
}
