package translator

import "github.com/minz/wasmreg/pkg/regir"

// EncodeCopies emits the instruction(s) moving values into a contiguous
// result span, choosing among Copy/Copy2/CopySpan[NonOverlapping]/
// CopyMany[NonOverlapping] per  It resolves constant providers
// against pool when a copy encoding needs a register operand.
func (e *Encoder) EncodeCopies(results regir.BoundedRegSpan, values []Provider, pool *regir.ConstPool) error {
	n := len(values)
	if n == 0 {
		return nil
	}
	if n == 1 {
		r, err := values[0].ResolveReg(pool)
		if err != nil {
			return err
		}
		e.PushInstr(regir.MakeCopy(results.Start, r))
		return nil
	}

	if n == 2 {
		r0, err := values[0].ResolveReg(pool)
		if err != nil {
			return err
		}
		r1, err := values[1].ResolveReg(pool)
		if err != nil {
			return err
		}
		e.PushInstr(regir.MakeCopy2(results.Reg(0), results.Reg(1), r0, r1))
		return nil
	}

	if valueSpan, isSpan := asContiguousSpan(values); isSpan {
		nonOverlapping := results.Disjoint(valueSpan)
		e.PushInstr(regir.MakeCopySpan(results, valueSpan, nonOverlapping))
		return nil
	}

	nonOverlapping := true
	for _, v := range values {
		if v.IsConst() {
			continue
		}
		if results.Overlaps(regir.NewBoundedRegSpan(v.Reg(), 1)) {
			nonOverlapping = false
			break
		}
	}
	e.PushInstr(regir.MakeCopyMany(nonOverlapping))
	if err := e.appendRegisterList(values, pool); err != nil {
		return err
	}
	return nil
}

// asContiguousSpan reports whether every value is a register and they
// form a contiguous increasing run, i.e. a genuine RegSpan rather than
// an arbitrary scatter of providers.
func asContiguousSpan(values []Provider) (regir.BoundedRegSpan, bool) {
	if len(values) == 0 {
		return regir.BoundedRegSpan{}, false
	}
	if values[0].IsConst() {
		return regir.BoundedRegSpan{}, false
	}
	start := values[0].Reg()
	for i, v := range values {
		if v.IsConst() {
			return regir.BoundedRegSpan{}, false
		}
		if v.Reg() != start+regir.Reg(i) {
			return regir.BoundedRegSpan{}, false
		}
	}
	return regir.NewBoundedRegSpan(start, len(values)), true
}

// appendRegisterList emits the trailing operand continuations for a
// register-list-shaped instruction: Register/Register2/Register3 for
// 1-3 trailing values, RegisterList triples otherwise.
func (e *Encoder) appendRegisterList(values []Provider, pool *regir.ConstPool) error {
	regs := make([]regir.Reg, len(values))
	for i, v := range values {
		r, err := v.ResolveReg(pool)
		if err != nil {
			return err
		}
		regs[i] = r
	}
	return e.appendRegisterListRegs(regs)
}

func (e *Encoder) appendRegisterListRegs(regs []regir.Reg) error {
	switch len(regs) {
	case 0:
		return nil
	case 1:
		e.AppendInstr(regir.MakeContRegister(regs[0]))
	case 2:
		e.AppendInstr(regir.MakeContRegister2(regs[0], regs[1]))
	case 3:
		e.AppendInstr(regir.MakeContRegister3(regs[0], regs[1], regs[2]))
	default:
		i := 0
		for ; i+3 <= len(regs); i += 3 {
			e.AppendInstr(regir.MakeContRegisterList(regs[i], regs[i+1], regs[i+2]))
		}
		rest := regs[i:]
		return e.appendRegisterListRegs(rest)
	}
	return nil
}

// EncodeReturn picks Return/ReturnReg/ReturnReg2/ReturnReg3/
// ReturnImm32/ReturnI64Imm32/ReturnF64Imm32/ReturnSpan/ReturnMany by
// arity and provider kinds.
func (e *Encoder) EncodeReturn(values []Provider, pool *regir.ConstPool) error {
	switch len(values) {
	case 0:
		e.PushInstr(regir.MakeReturn())
		return nil
	case 1:
		v := values[0]
		if v.IsConst() {
			c := v.Const()
			switch {
			case c.Type.Size() <= 4 && !c.Type.IsFloat():
				e.PushInstr(regir.Instruction{Op: regir.OpReturnImm32, Imm: int64(int32(uint32(c.Bits)))})
			case c.Type.IsFloat() && c.Type.Size() == 8:
				e.PushInstr(regir.Instruction{Op: regir.OpReturnF64Imm32, Imm: int64(c.Bits)})
			case !c.Type.IsFloat() && c.Type.Size() == 8:
				e.PushInstr(regir.Instruction{Op: regir.OpReturnI64Imm32, Imm: int64(c.Bits)})
			default:
				e.PushInstr(regir.Instruction{Op: regir.OpReturnImm32, Imm: int64(int32(uint32(c.Bits)))})
			}
			return nil
		}
		e.PushInstr(regir.MakeReturnReg(v.Reg()))
		return nil
	case 2:
		r0, ok0 := regIfNotConst(values[0])
		r1, ok1 := regIfNotConst(values[1])
		if ok0 && ok1 {
			e.PushInstr(regir.MakeReturnReg2(r0, r1))
			return nil
		}
		e.PushInstr(regir.MakeReturnMany())
		return e.appendRegisterList(values, pool)
	case 3:
		r0, ok0 := regIfNotConst(values[0])
		r1, ok1 := regIfNotConst(values[1])
		r2, ok2 := regIfNotConst(values[2])
		if ok0 && ok1 && ok2 {
			e.PushInstr(regir.MakeReturnReg3(r0, r1, r2))
			return nil
		}
		e.PushInstr(regir.MakeReturnMany())
		return e.appendRegisterList(values, pool)
	default:
		if span, isSpan := asContiguousSpan(values); isSpan {
			e.PushInstr(regir.MakeReturnSpan(span.Start, int(span.Len)))
			return nil
		}
		e.PushInstr(regir.MakeReturnMany())
		return e.appendRegisterList(values, pool)
	}
}

func regIfNotConst(p Provider) (regir.Reg, bool) {
	if p.IsConst() {
		return 0, false
	}
	return p.Reg(), true
}
