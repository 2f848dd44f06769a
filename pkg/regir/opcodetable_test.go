package regir

import (
	"testing"

	"github.com/minz/wasmreg/pkg/wasmshape"
)

func TestBaseOpcodeLookup(t *testing.T) {
	op, ok := BaseOpcode(NumAdd, wasmshape.ValTypeI32)
	if !ok || op != OpI32Add {
		t.Fatalf("BaseOpcode(add,i32) = %v,%v, want OpI32Add,true", op, ok)
	}
	if _, ok := BaseOpcode(NumRotl, wasmshape.ValTypeF32); ok {
		t.Fatal("rotl has no float variant")
	}
}

func TestImm16OpcodeFamilies(t *testing.T) {
	if op, ok := Imm16RhsOpcode(NumDivS, wasmshape.ValTypeI32); !ok || op != OpI32DivSImm16Rhs {
		t.Fatalf("Imm16RhsOpcode(div_s,i32) = %v,%v", op, ok)
	}
	if op, ok := Imm16RhsNonZeroOpcode(NumDivS, wasmshape.ValTypeI32); !ok || op != OpI32DivSImm16RhsNonZero {
		t.Fatalf("Imm16RhsNonZeroOpcode(div_s,i32) = %v,%v", op, ok)
	}
	if op, ok := Imm16LhsOpcode(NumSub, wasmshape.ValTypeI32); !ok || op != OpI32SubImm16Lhs {
		t.Fatalf("Imm16LhsOpcode(sub,i32) = %v,%v", op, ok)
	}
	if _, ok := Imm16LhsOpcode(NumAdd, wasmshape.ValTypeI32); ok {
		t.Fatal("add is commutative: it should have no distinct imm16-lhs opcode")
	}
}

func TestInvertCompareIsInvolution(t *testing.T) {
	compares := []NumOp{NumEq, NumNe, NumLtS, NumLtU, NumGtS, NumGtU, NumLeS, NumLeU, NumGeS, NumGeU}
	for _, c := range compares {
		inv := InvertCompare(c)
		if InvertCompare(inv) != c {
			t.Errorf("InvertCompare(InvertCompare(%v)) = %v, want %v", c, InvertCompare(inv), c)
		}
		if inv == c {
			t.Errorf("InvertCompare(%v) returned itself", c)
		}
	}
}

func TestSwapCompare(t *testing.T) {
	if SwapCompare(NumLtS) != NumGtS {
		t.Error("swapping operands of < gives >")
	}
	if SwapCompare(NumEq) != NumEq {
		t.Error("eq is symmetric under swap")
	}
	if SwapCompare(NumAdd) != NumAdd {
		t.Error("a non-comparison NumOp should pass through unchanged")
	}
}
