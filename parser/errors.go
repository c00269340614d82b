package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken is returned when the tokenizer or instruction encoder
	// rejects a lexeme: a bad label, an arity violation, or input ending
	// mid-instruction.
	ErrInvalidToken = errors.New("parser: invalid token")

	// ErrUndefinedReference is returned when pass two can't resolve an
	// identifier against either the label map or the caller's register map.
	ErrUndefinedReference = errors.New("parser: undefined reference")

	// ErrInvalidPath is returned when source is read from a file path that
	// doesn't exist.
	ErrInvalidPath = errors.New("parser: invalid path")

	// ErrIllegalParameter names the original API's illegal-parameter code.
	// No function in this package returns it: a nil RegisterMap or a nil
	// buffer is accepted like an empty one.
	ErrIllegalParameter = errors.New("parser: illegal parameter")

	// ErrArrayTooSmall is returned when a caller-supplied output buffer
	// can't hold the result; the required size is always reported back to
	// the caller regardless.
	ErrArrayTooSmall = errors.New("parser: array too small")
)

// InvalidTokenInfo carries the location and text of a token rejected during
// parser construction, mirroring the original's InvalidTokenOutputInfo.
type InvalidTokenInfo struct {
	Line   int
	Column int
	Token  string
}

// InvalidTokenError wraps ErrInvalidToken with location detail.
type InvalidTokenError struct {
	Info InvalidTokenInfo
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("parser: invalid token %q at line %d, column %d", e.Info.Token, e.Info.Line, e.Info.Column)
}

func (e *InvalidTokenError) Unwrap() error { return ErrInvalidToken }

// UndefinedReferenceInfo carries the identifier and referencing instruction
// index for a pass-two resolution failure.
type UndefinedReferenceInfo struct {
	ReferencingInstructionIndex int
	Token                       string
}

// UndefinedReferenceError wraps ErrUndefinedReference with location detail.
type UndefinedReferenceError struct {
	Info UndefinedReferenceInfo
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("parser: undefined reference %q from instruction %d", e.Info.Token, e.Info.ReferencingInstructionIndex)
}

func (e *UndefinedReferenceError) Unwrap() error { return ErrUndefinedReference }
