// Package disasm pretty-prints a regir.CompiledFuncEntity for debugging
// and regression tests.
//
// Output is line-oriented text rather than a graph, since the IR here is
// a flat word stream with trailing parameter-continuation words: a
// continuation is never a disassembly line of its own, it is folded into
// the primary instruction's operand list, so a call/return/copy's
// register list reads as part of the one line that introduced it rather
// than as standalone entries.
package disasm

import (
	"fmt"
	"strings"

	"github.com/minz/wasmreg/pkg/regir"
)

// Disassemble renders every instruction of entity as one line per
// primary instruction, in address order, prefixed with its index so
// branch offsets are easy to eyeball against the target line number.
func Disassemble(entity regir.CompiledFuncEntity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func (registers=%d, constants=%d)\n", entity.RegisterCount, len(entity.Constants))
	instrs := entity.Instructions
	i := 0
	for i < len(instrs) {
		start := i
		line, consumed := formatAt(instrs, i)
		fmt.Fprintf(&b, "  %4d: %s\n", start, line)
		i += consumed
	}
	return b.String()
}

// formatAt renders the primary instruction at i plus however many
// trailing continuation words it consumes, returning the combined text
// and the total instruction-word count consumed (always >= 1).
func formatAt(instrs []regir.Instruction, i int) (string, int) {
	in := instrs[i]
	mnemonic := in.Op.Mnemonic()

	if in.Op.IsContinuation() {
		// A continuation reached as if it were a primary: the encoder
		// invariant (continuations always trail a consuming primary) was
		// violated, or this is the tail of a RegisterList run that the
		// disassembler is re-entering directly (e.g. a test constructing
		// a bare Instructions slice). Print it standalone rather than
		// panic — a disassembler's job is to show what's there.
		return mnemonic, 1
	}

	n := continuationCount(instrs, i)
	if n == 0 {
		return formatPrimary(in), 1
	}

	var parts []string
	parts = append(parts, formatPrimary(in))
	for k := 1; k <= n; k++ {
		parts = append(parts, formatContinuation(instrs[i+k]))
	}
	return strings.Join(parts, " "), 1 + n
}

// continuationCount returns how many OpCont* words immediately follow
// the primary instruction at i. It does not need semantic knowledge of
// how many the primary "expects" — continuations are self-identifying
// by opcode range, so the disassembler just consumes the run.
func continuationCount(instrs []regir.Instruction, i int) int {
	n := 0
	for i+1+n < len(instrs) && instrs[i+1+n].Op.IsContinuation() {
		n++
	}
	return n
}

func formatPrimary(in regir.Instruction) string {
	m := in.Op.Mnemonic()
	switch in.Op {
	case regir.OpTrap:
		return fmt.Sprintf("%s %s", m, in.Trap)
	case regir.OpConsumeFuel:
		return fmt.Sprintf("%s %d", m, in.Imm)
	case regir.OpBranch:
		return fmt.Sprintf("%s %+d", m, in.Offset)
	case regir.OpBranchEqz, regir.OpBranchNez:
		return fmt.Sprintf("%s %s, %+d", m, in.A, in.Offset)
	case regir.OpReturn:
		return m
	case regir.OpReturnReg:
		return fmt.Sprintf("%s %s", m, in.A)
	case regir.OpReturnReg2:
		return fmt.Sprintf("%s %s, %s", m, in.A, in.B)
	case regir.OpReturnReg3:
		return fmt.Sprintf("%s %s, %s, %s", m, in.A, in.B, in.C)
	case regir.OpReturnImm32, regir.OpReturnI64Imm32, regir.OpReturnF64Imm32:
		return fmt.Sprintf("%s %d", m, in.Imm)
	case regir.OpReturnSpan:
		return fmt.Sprintf("%s %s..+%d", m, in.A, in.Imm)
	case regir.OpReturnMany:
		return m
	case regir.OpCopy:
		return fmt.Sprintf("%s %s, %s", m, in.A, in.B)
	case regir.OpCopy2:
		return fmt.Sprintf("%s %s, %s <- %s, %s", m, in.A, in.C, in.B, regir.Reg(in.Imm))
	case regir.OpCopyImm32, regir.OpCopyI64Imm32, regir.OpCopyF64Imm32:
		return fmt.Sprintf("%s %s, %d", m, in.A, in.Imm)
	case regir.OpCopySpan, regir.OpCopySpanNonOverlapping:
		return fmt.Sprintf("%s %s..+%d <- %s..", m, in.A, in.Imm, in.B)
	case regir.OpCopyMany, regir.OpCopyManyNonOverlapping:
		return m
	case regir.OpSelect, regir.OpSelectRev:
		return fmt.Sprintf("%s %s, %s, %s, %s", m, in.A, in.B, in.C, regir.Reg(in.Imm))
	case regir.OpSelectImm32, regir.OpSelectI64Imm32, regir.OpSelectF64Imm32:
		return fmt.Sprintf("%s %s, %s, imm=%d, %s", m, in.A, in.B, in.Imm, in.C)
	case regir.OpGlobalGet:
		return fmt.Sprintf("%s %s, idx=%d", m, in.A, in.Imm)
	case regir.OpGlobalSet:
		return fmt.Sprintf("%s idx=%d, %s", m, in.Imm, in.A)
	case regir.OpGlobalSetI32Imm16, regir.OpGlobalSetI64Imm16:
		return fmt.Sprintf("%s idx=%d, imm=%d", m, in.Imm>>16, int16(in.Imm))
	case regir.OpCallInternal, regir.OpCallImported, regir.OpCallIndirect:
		return fmt.Sprintf("%s results=%s..+%d, fn=%d", m, in.A, in.Offset, in.Imm)
	case regir.OpReturnCallInternal, regir.OpReturnCallImported, regir.OpReturnCallIndirect:
		return fmt.Sprintf("%s fn=%d", m, in.Imm)
	case regir.OpRefFunc:
		return fmt.Sprintf("%s %s, fn=%d", m, in.A, in.Imm)
	case regir.OpMemorySize:
		return fmt.Sprintf("%s %s", m, in.A)
	case regir.OpMemoryGrow:
		return fmt.Sprintf("%s %s, %s", m, in.A, in.B)
	case regir.OpMemoryGrowImm:
		return fmt.Sprintf("%s %s, delta=%d", m, in.A, in.Imm)
	case regir.OpMemoryFill, regir.OpMemoryCopy:
		return fmt.Sprintf("%s %s, %s, %s", m, in.A, in.B, in.C)
	case regir.OpMemoryInit:
		return fmt.Sprintf("%s data=%d, %s, %s, %s", m, in.Imm, in.A, in.B, in.C)
	case regir.OpDataDrop, regir.OpElemDrop:
		return fmt.Sprintf("%s idx=%d", m, in.Imm)
	case regir.OpBranchTable0, regir.OpBranchTable1, regir.OpBranchTable2, regir.OpBranchTable3, regir.OpBranchTableMany:
		return fmt.Sprintf("%s index=%s, targets=%d", m, in.A, in.Imm)
	default:
		return formatGeneric(m, in)
	}
}

// formatGeneric covers the numeric register-register/Imm16 families and
// load/store forms: its field meaning is uniform enough (A=dst,
// B=lhs/base, C=rhs, Imm=immediate or offset) that one fallback renders
// every remaining opcode legibly.
func formatGeneric(mnemonic string, in regir.Instruction) string {
	switch {
	case isLoadOpcode(in.Op):
		return fmt.Sprintf("%s %s, base=%s, off=%d", mnemonic, in.A, in.B, in.Imm)
	case isStoreOpcode(in.Op):
		return fmt.Sprintf("%s base=%s, val=%s, off=%d", mnemonic, in.A, in.B, in.Imm)
	case in.C != 0 || in.B != 0:
		return fmt.Sprintf("%s %s, %s, %s", mnemonic, in.A, in.B, in.C)
	case in.Imm != 0:
		return fmt.Sprintf("%s %s, %s, imm=%d", mnemonic, in.A, in.B, in.Imm)
	default:
		return fmt.Sprintf("%s %s, %s", mnemonic, in.A, in.B)
	}
}

func isLoadOpcode(op regir.Opcode) bool {
	return strings.Contains(op.Mnemonic(), ".load")
}

func isStoreOpcode(op regir.Opcode) bool {
	return strings.Contains(op.Mnemonic(), ".store")
}

func formatContinuation(in regir.Instruction) string {
	switch in.Op {
	case regir.OpContRegister:
		return fmt.Sprintf("+%s", in.A)
	case regir.OpContRegister2:
		return fmt.Sprintf("+%s,%s", in.A, in.B)
	case regir.OpContRegister3, regir.OpContRegisterList:
		return fmt.Sprintf("+%s,%s,%s", in.A, in.B, in.C)
	case regir.OpContMemoryIndex, regir.OpContTableIndex, regir.OpContDataSegmentIdx, regir.OpContElementSegmentIdx:
		return fmt.Sprintf("+idx=%d", in.Imm)
	case regir.OpContConst32, regir.OpContI64Const32, regir.OpContF64Const32:
		return fmt.Sprintf("+const=%d", in.Imm)
	case regir.OpContBranchTableTarget:
		return fmt.Sprintf("+target=%+d", in.Offset)
	case regir.OpContCallIndirectParams:
		return fmt.Sprintf("+table=%d,index=%s", in.Imm, in.A)
	case regir.OpContCallIndirectParamsImm16:
		return fmt.Sprintf("+table=%d,index=%d", in.Imm>>16, uint16(in.Imm))
	default:
		return in.Op.Mnemonic()
	}
}
