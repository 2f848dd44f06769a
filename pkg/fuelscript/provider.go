// Package fuelscript lets a caller parameterize the fuel model with a
// small user-editable Lua table instead of a hardcoded Go struct, so
// per-instruction costs can be tuned without recompiling the toolchain.
package fuelscript

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Provider implements translator.FuelCosts by reading named fields off
// a Lua table returned from a small script. The table's fields mirror
// the named fuel cost classes (base, instance, load, store, call,
// copy_per_register), each read with Lua's usual "missing key reads nil" leniency
// rather than erroring — a cost script is allowed to only override the
// classes it cares about.
type Provider struct {
	base            uint64
	instance        uint64
	load            uint64
	store           uint64
	call            uint64
	copyPerRegister uint64
}

// Load evaluates script, which must return a Lua table, and builds a
// Provider from its named fields.
func Load(script string) (*Provider, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("fuelscript: evaluating cost script: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("fuelscript: cost script must return a table, got %T", ret)
	}

	p := &Provider{}
	p.base = field(table, "base")
	p.instance = field(table, "instance")
	p.load = field(table, "load")
	p.store = field(table, "store")
	p.call = field(table, "call")
	p.copyPerRegister = field(table, "copy_per_register")
	return p, nil
}

func field(t *lua.LTable, name string) uint64 {
	v := t.RawGetString(name)
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0
	}
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func (p *Provider) Base() uint64            { return p.base }
func (p *Provider) Instance() uint64        { return p.instance }
func (p *Provider) Load() uint64            { return p.load }
func (p *Provider) Store() uint64           { return p.store }
func (p *Provider) Call() uint64            { return p.call }
func (p *Provider) CopyPerRegister() uint64 { return p.copyPerRegister }
