package main

import "github.com/minz/wasmreg/pkg/wasmshape"

// flatHeader is a devtool-only wasmshape.ModuleHeader: it knows about no
// real module (no globals, tables or memories beyond the defaults below),
// it exists only so a single-function fixture can drive a FuncTranslator
// that needs *some* concrete header to satisfy calls, globals and memory
// ops that appear in a fixture body. Every call target is assumed to share
// the fixture's own declared signature — good enough to exercise the call
// encoding paths without a second function in the fixture format.
type flatHeader struct {
	self wasmshape.FuncType
}

func (h flatHeader) FuncTypeOf(fn wasmshape.FuncIdx) wasmshape.FuncType { return h.self }
func (h flatHeader) TypeAt(idx wasmshape.TypeIdx) wasmshape.FuncType    { return h.self }

func (h flatHeader) GlobalTypeAt(idx wasmshape.GlobalIdx) wasmshape.GlobalType {
	return wasmshape.GlobalType{ValType: wasmshape.ValTypeI32, Mutable: true}
}

func (h flatHeader) GlobalInit(idx wasmshape.GlobalIdx) (uint64, bool) {
	return 0, false
}

func (h flatHeader) MemoryTypeAt(idx wasmshape.MemIdx) wasmshape.MemoryType {
	return wasmshape.MemoryType{Min: 1, HasMax: false}
}

func (h flatHeader) TableTypeAt(idx wasmshape.TableIdx) wasmshape.TableType {
	return wasmshape.TableType{Element: wasmshape.ValTypeFuncRef, Min: 0, HasMax: false}
}

func (h flatHeader) DataSegmentCount() uint32    { return 0 }
func (h flatHeader) ElementSegmentCount() uint32 { return 0 }

func (h flatHeader) ResolveFunc(fn wasmshape.FuncIdx) wasmshape.FuncRef {
	return wasmshape.FuncRef{Imported: false, Index: uint32(fn)}
}
