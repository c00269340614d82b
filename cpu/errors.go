package cpu

import "errors"

var (
	// ErrIllegalOperation is raised by touching a MemoryLocation parameter,
	// or by any other operand access the ALU/IPU/MMU consider malformed.
	ErrIllegalOperation = errors.New("cpu: illegal operation")

	// ErrNotImplemented is returned by CALL and RET. The original C core
	// asserts on these; this implementation reports them as a normal error
	// instead of aborting the process.
	ErrNotImplemented = errors.New("cpu: instruction not implemented")
)
