package translator

import (
	"fmt"

	"github.com/minz/wasmreg/pkg/regir"
)

// These re-export the regir resource errors under the translator
// package so callers driving a FuncTranslator don't need to import
// regir just to errors.Is against them.
var (
	ErrTooManyRegisters       = regir.ErrTooManyRegisters
	ErrConstantPoolTooLarge   = regir.ErrConstantPoolTooLarge
	ErrBranchOffsetOutOfRange = regir.ErrBranchOffsetOutOfRange
)

// UnsupportedOperatorError is raised via panic — a programmer/validator
// bug, not a recoverable error — when an operator outside
// EnabledFeatures reaches the visitor.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("translator: unsupported operator %q (feature not enabled)", e.Operator)
}

func panicUnsupported(op string) {
	panic(&UnsupportedOperatorError{Operator: op})
}

// invariant panics with a message identifying the violated internal
// invariant (stack underflow, double-pin, etc.): these cannot arise for
// validated input, so a panic, not an error return, is the correct
// contract.
func invariant(format string, args ...any) {
	panic(fmt.Errorf("translator: internal invariant violated: "+format, args...))
}
