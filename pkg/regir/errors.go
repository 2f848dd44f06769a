package regir

import "errors"

// Resource-exhaustion errors. These are
// the only translation-time errors that can arise from validated input;
// everything else in §7 (UnsupportedOperator, InternalInvariant) panics,
// because it indicates a translator or validator bug rather than a
// resource limit.
var (
	ErrTooManyRegisters      = errors.New("regir: register count exceeds i16 range")
	ErrConstantPoolTooLarge  = errors.New("regir: constant pool exceeds i16 range")
	ErrBranchOffsetOutOfRange = errors.New("regir: branch offset exceeds i32 range")
)

// MaxRegisters is the largest register count a function may use, per the
// "register count fits in a positive i16" invariant.
const MaxRegisters = 1<<15 - 1
