// Package translator implements the function builder's state machine:
// the emulated operand stack, the control-frame stack, the label
// registry, the register allocator, the instruction encoder, the fuel
// model, and the operator visitor that drives all of them while emitting
// regir.Instruction words.
package translator

import "github.com/minz/wasmreg/pkg/regir"

// Provider is a tagged union: a value on the emulated operand stack is
// either already in a register or is a compile-time constant that
// hasn't been materialized into one yet.
type Provider struct {
	isConst bool
	reg     regir.Reg
	constVal regir.TypedVal
}

// RegProvider wraps a register as a Provider.
func RegProvider(r regir.Reg) Provider { return Provider{reg: r} }

// ConstProvider wraps a constant as a Provider.
func ConstProvider(v regir.TypedVal) Provider { return Provider{isConst: true, constVal: v} }

// IsConst reports whether the provider is a compile-time constant.
func (p Provider) IsConst() bool { return p.isConst }

// Reg returns the provider's register. Only valid when !IsConst().
func (p Provider) Reg() regir.Reg { return p.reg }

// Const returns the provider's constant value. Only valid when IsConst().
func (p Provider) Const() regir.TypedVal { return p.constVal }

// ResolveReg returns a register for this provider, allocating a constant
// pool entry via alloc if the provider is a constant. Most encoder paths
// eventually need an actual register operand even for constants (e.g.
// the register-register fallback of the encoding-selection contract).
func (p Provider) ResolveReg(pool *regir.ConstPool) (regir.Reg, error) {
	if !p.isConst {
		return p.reg, nil
	}
	return pool.Alloc(p.constVal)
}
