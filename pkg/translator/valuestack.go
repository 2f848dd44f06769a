package translator

import (
	"github.com/minz/wasmreg/pkg/regir"
)

// ValueStack is the emulated Wasm operand stack together with the
// register allocator: it tracks which Provider backs each stack slot,
// allocates dynamic/preserved registers above the locals, and maintains
// the function-local constant pool.
type ValueStack struct {
	stack []Provider

	numLocals  int
	nextReg    regir.Reg // high-water mark for the next dynamic/preserved register
	maxReg     regir.Reg

	// refcount tracks how many stack slots (or temporary holds, via
	// IncUsage) currently reference a dynamic or preserved register.
	// Local registers ([0, numLocals)) are not refcounted: they are
	// always considered live.
	refcount map[regir.Reg]int

	pool regir.ConstPool
}

// Init resets the value stack for a new function with numLocals local
// registers already allocated at indices [0, numLocals).
func (vs *ValueStack) Init(numLocals int) {
	vs.stack = vs.stack[:0]
	vs.numLocals = numLocals
	vs.nextReg = regir.Reg(numLocals)
	vs.maxReg = vs.nextReg
	if vs.refcount == nil {
		vs.refcount = make(map[regir.Reg]int)
	} else {
		for k := range vs.refcount {
			delete(vs.refcount, k)
		}
	}
	vs.pool.Reset()
}

// Pool exposes the constant pool (the encoder needs it to fold
// immediates that don't fit the chosen opcode's inline field).
func (vs *ValueStack) Pool() *regir.ConstPool { return &vs.pool }

// Height returns the current operand-stack height.
func (vs *ValueStack) Height() int { return len(vs.stack) }

// MaxRegister returns one past the highest register index ever
// allocated, i.e. the register-frame size the compiled function will need.
func (vs *ValueStack) MaxRegister() regir.Reg { return vs.maxReg }

// TruncateTo drops stack slots down to height h (used when a block/if
// ends and branch results replace the block's operands), releasing any
// dynamic/preserved registers no longer referenced.
func (vs *ValueStack) TruncateTo(h int) {
	for len(vs.stack) > h {
		p := vs.stack[len(vs.stack)-1]
		vs.stack = vs.stack[:len(vs.stack)-1]
		vs.release(p)
	}
}

func (vs *ValueStack) release(p Provider) {
	if p.IsConst() {
		return
	}
	r := p.Reg()
	if int(r) < vs.numLocals {
		return
	}
	if n, ok := vs.refcount[r]; ok {
		if n <= 1 {
			delete(vs.refcount, r)
		} else {
			vs.refcount[r] = n - 1
		}
	}
}

func (vs *ValueStack) retain(p Provider) {
	if p.IsConst() {
		return
	}
	r := p.Reg()
	if int(r) < vs.numLocals {
		return
	}
	vs.refcount[r]++
}

// PushLocal pushes the local register i onto the stack.
func (vs *ValueStack) PushLocal(i int) {
	vs.stack = append(vs.stack, RegProvider(regir.Reg(i)))
}

// PushRegister pushes an already-allocated register (typically a
// dynamic result register the encoder just wrote).
func (vs *ValueStack) PushRegister(r regir.Reg) {
	p := RegProvider(r)
	vs.retain(p)
	vs.stack = append(vs.stack, p)
}

// PushConst pushes a compile-time constant.
func (vs *ValueStack) PushConst(v regir.TypedVal) {
	vs.stack = append(vs.stack, ConstProvider(v))
}

// PushDynamic allocates one fresh dynamic register and pushes it.
func (vs *ValueStack) PushDynamic() (regir.Reg, error) {
	r, err := vs.allocDynamic()
	if err != nil {
		return 0, err
	}
	vs.PushRegister(r)
	return r, nil
}

// PushDynamicN allocates n contiguous fresh dynamic registers and pushes
// them in order, returning the span (used for multi-value block
// results and call results).
func (vs *ValueStack) PushDynamicN(n int) (regir.BoundedRegSpan, error) {
	start := vs.nextReg
	for i := 0; i < n; i++ {
		if _, err := vs.allocDynamic(); err != nil {
			return regir.BoundedRegSpan{}, err
		}
	}
	span := regir.NewBoundedRegSpan(start, n)
	for i := 0; i < n; i++ {
		vs.PushRegister(span.Reg(i))
	}
	return span, nil
}

func (vs *ValueStack) allocDynamic() (regir.Reg, error) {
	if vs.nextReg >= regir.MaxRegisters {
		return 0, regir.ErrTooManyRegisters
	}
	r := vs.nextReg
	vs.nextReg++
	if vs.nextReg > vs.maxReg {
		vs.maxReg = vs.nextReg
	}
	return r, nil
}

// AllocConst interns v in the function-local constant pool and returns
// its negative Reg, without touching the operand stack.
func (vs *ValueStack) AllocConst(v regir.TypedVal) (regir.Reg, error) {
	return vs.pool.Alloc(v)
}

// ReserveSpan allocates n contiguous dynamic registers without pushing
// them onto the operand stack — used for a block/if's branch-parameter
// registers, which are only pushed as real stack values once
// the frame's `end` resolves them.
func (vs *ValueStack) ReserveSpan(n int) (regir.BoundedRegSpan, error) {
	start := vs.nextReg
	for i := 0; i < n; i++ {
		if _, err := vs.allocDynamic(); err != nil {
			return regir.BoundedRegSpan{}, err
		}
	}
	return regir.NewBoundedRegSpan(start, n), nil
}

// Pop pops the top provider.
func (vs *ValueStack) Pop() Provider {
	p := vs.stack[len(vs.stack)-1]
	vs.stack = vs.stack[:len(vs.stack)-1]
	vs.release(p)
	return p
}

// Pop2 pops two providers, returned in push order (first pushed first).
func (vs *ValueStack) Pop2() (a, b Provider) {
	b = vs.Pop()
	a = vs.Pop()
	return
}

// Pop3 pops three providers, returned in push order.
func (vs *ValueStack) Pop3() (a, b, c Provider) {
	c = vs.Pop()
	b = vs.Pop()
	a = vs.Pop()
	return
}

// PopN pops n providers into out (which must have length n), in push order.
func (vs *ValueStack) PopN(out []Provider) {
	n := len(out)
	for i := n - 1; i >= 0; i-- {
		out[i] = vs.Pop()
	}
}

// Peek returns the top provider without popping it.
func (vs *ValueStack) Peek() Provider { return vs.stack[len(vs.stack)-1] }

// PeekN returns the top n providers, in push order, without popping.
func (vs *ValueStack) PeekN(n int) []Provider {
	return vs.stack[len(vs.stack)-n:]
}

// IncUsage bumps p's register's refcount without it occupying a stack
// slot — used when an `if`'s else-provider snapshot shares a register
// with the then-branch's live stack.
func (vs *ValueStack) IncUsage(p Provider) { vs.retain(p) }

// DecUsage balances a prior IncUsage.
func (vs *ValueStack) DecUsage(p Provider) { vs.release(p) }

// RefCount returns how many references r currently has (0 for a local,
// which is always considered live and not tracked here).
func (vs *ValueStack) RefCount(r regir.Reg) int {
	return vs.refcount[r]
}
