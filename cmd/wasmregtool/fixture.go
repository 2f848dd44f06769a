package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/minz/wasmreg/pkg/translator"
	"github.com/minz/wasmreg/pkg/wasmshape"
)

// fixture is the parsed form of the devtool's line-oriented operator-list
// format. It is intentionally minimal: one function,
// no imports, no globals/tables/memories beyond what the header contract
// requires a dummy value for. This is a development harness, not a Wasm
// text-format parser.
type fixture struct {
	params  []wasmshape.ValType
	results []wasmshape.ValType
	events  []translator.Event
}

// parseFixture reads this line-oriented operator-list format:
//
//	func (param i32 i32) (result i32)
//	local.get 0
//	local.get 1
//	i32.add
//	return
//
// Blank lines and lines starting with "#" are ignored.
func parseFixture(src string) (*fixture, error) {
	sc := bufio.NewScanner(strings.NewReader(src))
	var fx fixture
	sawHeader := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !sawHeader {
			if !strings.HasPrefix(line, "func") {
				return nil, fmt.Errorf("fixture: expected a leading \"func (...)\" header, got %q", line)
			}
			params, results, err := parseHeader(line)
			if err != nil {
				return nil, err
			}
			fx.params, fx.results = params, results
			sawHeader = true
			continue
		}
		ev, err := parseOpLine(line)
		if err != nil {
			return nil, err
		}
		fx.events = append(fx.events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, fmt.Errorf("fixture: empty input, no func header found")
	}
	return &fx, nil
}

// parseHeader parses `func (param i32 i32) (result i32)`. Either
// parenthesized group may be omitted.
func parseHeader(line string) ([]wasmshape.ValType, []wasmshape.ValType, error) {
	var params, results []wasmshape.ValType
	rest := strings.TrimSpace(strings.TrimPrefix(line, "func"))
	for len(rest) > 0 {
		if !strings.HasPrefix(rest, "(") {
			return nil, nil, fmt.Errorf("fixture: malformed header %q", line)
		}
		close := strings.Index(rest, ")")
		if close < 0 {
			return nil, nil, fmt.Errorf("fixture: unterminated group in header %q", line)
		}
		group := rest[1:close]
		rest = strings.TrimSpace(rest[close+1:])
		fields := strings.Fields(group)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "param":
			for _, f := range fields[1:] {
				t, err := parseValType(f)
				if err != nil {
					return nil, nil, err
				}
				params = append(params, t)
			}
		case "result":
			for _, f := range fields[1:] {
				t, err := parseValType(f)
				if err != nil {
					return nil, nil, err
				}
				results = append(results, t)
			}
		default:
			return nil, nil, fmt.Errorf("fixture: unknown header group %q", fields[0])
		}
	}
	return params, results, nil
}

func parseValType(s string) (wasmshape.ValType, error) {
	switch s {
	case "i32":
		return wasmshape.ValTypeI32, nil
	case "i64":
		return wasmshape.ValTypeI64, nil
	case "f32":
		return wasmshape.ValTypeF32, nil
	case "f64":
		return wasmshape.ValTypeF64, nil
	case "funcref":
		return wasmshape.ValTypeFuncRef, nil
	case "externref":
		return wasmshape.ValTypeExternRef, nil
	default:
		return 0, fmt.Errorf("fixture: unknown value type %q", s)
	}
}

// opTable maps a bare mnemonic (one with no immediate) to its WasmOp.
var opTable = map[string]translator.WasmOp{
	"unreachable": translator.OpUnreachable,
	"nop":         translator.OpNop,
	"else":        translator.OpElse,
	"end":         translator.OpEnd,
	"return":      translator.OpReturn,
	"drop":        translator.OpDrop,
	"select":      translator.OpSelect,

	"i32.add": translator.OpI32Add, "i32.sub": translator.OpI32Sub, "i32.mul": translator.OpI32Mul,
	"i32.div_s": translator.OpI32DivS, "i32.div_u": translator.OpI32DivU,
	"i32.rem_s": translator.OpI32RemS, "i32.rem_u": translator.OpI32RemU,
	"i32.and": translator.OpI32And, "i32.or": translator.OpI32Or, "i32.xor": translator.OpI32Xor,
	"i32.shl": translator.OpI32Shl, "i32.shr_s": translator.OpI32ShrS, "i32.shr_u": translator.OpI32ShrU,
	"i32.rotl": translator.OpI32Rotl, "i32.rotr": translator.OpI32Rotr,
	"i32.eq": translator.OpI32Eq, "i32.ne": translator.OpI32Ne,
	"i32.lt_s": translator.OpI32LtS, "i32.lt_u": translator.OpI32LtU,
	"i32.gt_s": translator.OpI32GtS, "i32.gt_u": translator.OpI32GtU,
	"i32.le_s": translator.OpI32LeS, "i32.le_u": translator.OpI32LeU,
	"i32.ge_s": translator.OpI32GeS, "i32.ge_u": translator.OpI32GeU,
	"i32.eqz": translator.OpI32Eqz, "i32.clz": translator.OpI32Clz,
	"i32.ctz": translator.OpI32Ctz, "i32.popcnt": translator.OpI32Popcnt,

	"i64.add": translator.OpI64Add, "i64.sub": translator.OpI64Sub, "i64.mul": translator.OpI64Mul,
	"i64.div_s": translator.OpI64DivS, "i64.div_u": translator.OpI64DivU,
	"i64.rem_s": translator.OpI64RemS, "i64.rem_u": translator.OpI64RemU,
	"i64.eqz": translator.OpI64Eqz,

	"f32.add": translator.OpF32Add, "f32.sub": translator.OpF32Sub,
	"f32.mul": translator.OpF32Mul, "f32.div": translator.OpF32Div,
	"f64.add": translator.OpF64Add, "f64.sub": translator.OpF64Sub,
	"f64.mul": translator.OpF64Mul, "f64.div": translator.OpF64Div,

	"memory.size": translator.OpMemorySize,
}

// opWithIndexTable maps a mnemonic taking one uint32 immediate.
var opWithIndexTable = map[string]translator.WasmOp{
	"local.get": translator.OpLocalGet, "local.set": translator.OpLocalSet, "local.tee": translator.OpLocalTee,
	"global.get": translator.OpGlobalGet, "global.set": translator.OpGlobalSet,
	"call": translator.OpCall, "return_call": translator.OpReturnCall,
	"br": translator.OpBr, "br_if": translator.OpBrIf,
}

func parseOpLine(line string) (translator.Event, error) {
	fields := strings.Fields(line)
	mnemonic := fields[0]
	args := fields[1:]

	switch mnemonic {
	case "block", "loop", "if":
		op := map[string]translator.WasmOp{"block": translator.OpBlock, "loop": translator.OpLoop, "if": translator.OpIf}[mnemonic]
		bt, err := parseInlineBlockType(args)
		if err != nil {
			return translator.Event{}, err
		}
		return translator.Event{Op: op, BlockType: bt}, nil
	case "i32.const":
		v, err := parseInt(args, 32)
		if err != nil {
			return translator.Event{}, err
		}
		return translator.Event{Op: translator.OpI32Const, ConstI32: int32(v)}, nil
	case "i64.const":
		v, err := parseInt(args, 64)
		if err != nil {
			return translator.Event{}, err
		}
		return translator.Event{Op: translator.OpI64Const, ConstI64: v}, nil
	case "f32.const":
		v, err := parseFloat(args)
		if err != nil {
			return translator.Event{}, err
		}
		return translator.Event{Op: translator.OpF32Const, ConstF32: float32(v)}, nil
	case "f64.const":
		v, err := parseFloat(args)
		if err != nil {
			return translator.Event{}, err
		}
		return translator.Event{Op: translator.OpF64Const, ConstF64: v}, nil
	}

	if op, ok := opTable[mnemonic]; ok {
		return translator.Event{Op: op}, nil
	}
	if op, ok := opWithIndexTable[mnemonic]; ok {
		if len(args) != 1 {
			return translator.Event{}, fmt.Errorf("fixture: %q expects exactly one argument, got %v", mnemonic, args)
		}
		idx, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return translator.Event{}, fmt.Errorf("fixture: %q: %w", mnemonic, err)
		}
		ev := translator.Event{Op: op, Index: uint32(idx)}
		if op == translator.OpBr || op == translator.OpBrIf || op == translator.OpCall || op == translator.OpReturnCall {
			ev.Depth = int(idx)
			ev.FuncIdx = wasmshape.FuncIdx(idx)
		}
		return ev, nil
	}

	return translator.Event{}, fmt.Errorf("fixture: unrecognized operator %q", mnemonic)
}

func parseInlineBlockType(args []string) (translator.BlockType, error) {
	// The devtool fixture spells block types inline as
	// "block 0 1" (params results), defaulting to a no-value block.
	if len(args) == 0 {
		return translator.BlockType{}, nil
	}
	if len(args) != 2 {
		return translator.BlockType{}, fmt.Errorf("fixture: block type needs 0 or 2 args (params results), got %v", args)
	}
	p, err := strconv.Atoi(args[0])
	if err != nil {
		return translator.BlockType{}, err
	}
	r, err := strconv.Atoi(args[1])
	if err != nil {
		return translator.BlockType{}, err
	}
	return translator.BlockType{Params: p, Results: r}, nil
}

func parseInt(args []string, bits int) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("fixture: const expects exactly one argument, got %v", args)
	}
	return strconv.ParseInt(args[0], 10, bits)
}

func parseFloat(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("fixture: const expects exactly one argument, got %v", args)
	}
	return strconv.ParseFloat(args[0], 64)
}
