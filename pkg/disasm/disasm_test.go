package disasm

import (
	"strings"
	"testing"

	"github.com/minz/wasmreg/pkg/regir"
)

func TestDisassembleBasicLines(t *testing.T) {
	entity := regir.CompiledFuncEntity{
		RegisterCount: 3,
		Instructions: []regir.Instruction{
			regir.MakeBinary(regir.OpI32Add, 2, 0, 1),
			regir.MakeReturnReg(2),
		},
	}

	out := Disassemble(entity)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 instruction lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "func (registers=3, constants=0)") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "i32.add") {
		t.Errorf("line 1 should mention i32.add: %q", lines[1])
	}
	if !strings.Contains(lines[2], "return.reg") && !strings.Contains(lines[2], "return") {
		t.Errorf("line 2 should mention a return mnemonic: %q", lines[2])
	}
}

// TestDisassembleFoldsContinuations checks that a primary instruction
// followed by an OpContRegister2 word is rendered as one line, not two,
// and that the next primary after the run starts its own line.
func TestDisassembleFoldsContinuations(t *testing.T) {
	entity := regir.CompiledFuncEntity{
		RegisterCount: 6,
		Instructions: []regir.Instruction{
			regir.MakeCallInternal(regir.NewBoundedRegSpan(0, 1), 7),
			regir.Instruction{Op: regir.OpContRegister2, A: 1, B: 2},
			regir.MakeReturnReg(0),
		},
	}

	out := Disassemble(entity)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 disassembled lines (call folds its continuation), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "call") {
		t.Errorf("line 1 should be the call, folding its continuation: %q", lines[1])
	}
	if !strings.Contains(lines[1], "+r1,r2") {
		t.Errorf("call line should show the folded continuation operands: %q", lines[1])
	}
	if !strings.Contains(lines[2], "   2:") {
		t.Errorf("return should be indexed 2 (after the 2-word call), got: %q", lines[2])
	}
}

func TestDisassembleTrapAndConsumeFuel(t *testing.T) {
	entity := regir.CompiledFuncEntity{
		Instructions: []regir.Instruction{
			regir.MakeConsumeFuel(5),
			regir.MakeTrap(regir.TrapIntegerOverflow),
		},
	}

	out := Disassemble(entity)
	if !strings.Contains(out, "consume_fuel 5") && !strings.Contains(out, "fuel") {
		t.Errorf("expected a fuel-consumption line, got:\n%s", out)
	}
	if !strings.Contains(out, "integer_overflow") {
		t.Errorf("expected the trap code rendered, got:\n%s", out)
	}
}

// TestDisassembleStandaloneContinuation covers the defensive path where a
// continuation word is reached as if it were a primary instruction; the
// disassembler must print something rather than panic.
func TestDisassembleStandaloneContinuation(t *testing.T) {
	entity := regir.CompiledFuncEntity{
		Instructions: []regir.Instruction{
			{Op: regir.OpContRegister, A: 3},
		},
	}
	out := Disassemble(entity)
	if !strings.Contains(out, "0:") {
		t.Errorf("expected one indexed line, got:\n%s", out)
	}
}
