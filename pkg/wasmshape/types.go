// Package wasmshape describes the read-only module header contract the
// translator consumes: function, global, memory and table shapes, by index.
// Parsing the Wasm binary into these shapes is an external collaborator's
// job (the module decoder); this package only defines what the translator
// is handed.
package wasmshape

// ValType is a Wasm value type.
type ValType uint8

const (
	ValTypeI32 ValType = iota
	ValTypeI64
	ValTypeF32
	ValTypeF64
	ValTypeFuncRef
	ValTypeExternRef
	ValTypeV128 // stubbed per spec Non-goals; carried only as a tag
)

// Size returns the value type's width in bytes on the register file.
func (t ValType) Size() int {
	switch t {
	case ValTypeI32, ValTypeF32:
		return 4
	case ValTypeI64, ValTypeF64:
		return 8
	case ValTypeFuncRef, ValTypeExternRef:
		return 8 // opaque handle width
	case ValTypeV128:
		return 16
	default:
		return 0
	}
}

func (t ValType) String() string {
	switch t {
	case ValTypeI32:
		return "i32"
	case ValTypeI64:
		return "i64"
	case ValTypeF32:
		return "f32"
	case ValTypeF64:
		return "f64"
	case ValTypeFuncRef:
		return "funcref"
	case ValTypeExternRef:
		return "externref"
	case ValTypeV128:
		return "v128"
	default:
		return "invalid"
	}
}

// IsFloat reports whether t is f32 or f64.
func (t ValType) IsFloat() bool {
	return t == ValTypeF32 || t == ValTypeF64
}

// Is64 reports whether t occupies a 64-bit register slot.
func (t ValType) Is64() bool {
	return t == ValTypeI64 || t == ValTypeF64
}

// FuncType is a function's parameter and result shape.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// FuncIdx identifies a function by module index.
type FuncIdx uint32

// TypeIdx identifies a FuncType by module index.
type TypeIdx uint32

// GlobalIdx, MemIdx, TableIdx, DataIdx, ElemIdx index their respective sections.
type (
	GlobalIdx uint32
	MemIdx    uint32
	TableIdx  uint32
	DataIdx   uint32
	ElemIdx   uint32
)

// GlobalType describes a global variable's shape.
type GlobalType struct {
	ValType ValType
	Mutable bool
}

// MemoryType describes a linear memory's shape.
type MemoryType struct {
	Min        uint32
	Max        uint32 // valid only if HasMax
	HasMax     bool
	IndexIs64  bool // memory64 proposal; not exercised by this core's feature set
	PageSizeLog2 uint8
}

// TableType describes a table's shape.
type TableType struct {
	Element   ValType // ValTypeFuncRef or ValTypeExternRef
	Min       uint32
	Max       uint32
	HasMax    bool
	IndexIs64 bool
}

// FuncRef is either an internal function (resolved to an engine-opaque
// handle by the runtime, out of scope here) or an imported function.
type FuncRef struct {
	Imported bool
	Index    uint32 // internal compiled-function index, or import table index
}

// ModuleHeader is the read-only view of a module's shape that the
// translator needs. The runtime/module-decoder supplies a concrete
// implementation; the translator only ever reads through this interface.
type ModuleHeader interface {
	FuncTypeOf(fn FuncIdx) FuncType
	TypeAt(idx TypeIdx) FuncType
	GlobalTypeAt(idx GlobalIdx) GlobalType
	// GlobalInit returns the constant initializer for a const-evaluable
	// global, and ok=false for a func-ref or non-constant initializer.
	GlobalInit(idx GlobalIdx) (value uint64, ok bool)
	MemoryTypeAt(idx MemIdx) MemoryType
	TableTypeAt(idx TableIdx) TableType
	DataSegmentCount() uint32
	ElementSegmentCount() uint32
	ResolveFunc(fn FuncIdx) FuncRef
}
