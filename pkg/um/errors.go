package um

import "errors"

// Sentinel errors for every fatal condition the engine can raise
// (spec.md §7). Operators wrap these with fmt.Errorf to attach context;
// callers should compare with errors.Is.
var (
	ErrUnknownInstruction   = errors.New("unknown instruction")
	ErrInvalidRegisterIndex = errors.New("invalid register index")
	ErrProgramOutOfRange    = errors.New("program array index out of range")
	ErrArrayOutOfRange      = errors.New("array index out of range")
	ErrInvalidArrayId       = errors.New("invalid array id")
	ErrDivideByZero         = errors.New("divide by zero")
	ErrCannotAbandonProgram = errors.New("cannot abandon program array")
	ErrInvalidOutput        = errors.New("output value exceeds one byte")
)
