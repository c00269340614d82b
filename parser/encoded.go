package parser

import (
	"strconv"

	"asm16/cpu"
)

// FeedResult reports what happened to a token fed into an in-progress
// instruction.
type FeedResult int

const (
	// Accepted means the token was consumed and the instruction can still
	// take more operands.
	Accepted FeedResult = iota
	// AcceptedFinished means the token was consumed and the instruction now
	// has every operand it needs (or was explicitly terminated).
	AcceptedFinished
	// Full means the instruction already had its maximum operand count;
	// the token wasn't consumed and must be re-fed as the start of the next
	// instruction or label.
	Full
)

// rawParameterKind distinguishes an operand that still needs label/register
// resolution from one that's already a literal value.
type rawParameterKind int

const (
	rawReference rawParameterKind = iota
	rawConstant
)

type rawParameter struct {
	kind  rawParameterKind
	text  string
	value uint16
}

func makeRawParameter(token string) (rawParameter, error) {
	if len(token) > 0 && token[len(token)-1] == ',' {
		token = token[:len(token)-1]
	}
	if len(token) > 0 && token[0] >= '0' && token[0] <= '9' {
		v, err := parseConstant(token)
		if err != nil {
			return rawParameter{}, err
		}
		return rawParameter{kind: rawConstant, value: v}, nil
	}
	return rawParameter{kind: rawReference, text: token}, nil
}

// parseConstant accepts "0", 0b-binary, 0x-hex, legacy leading-zero octal,
// and plain decimal, matching the original's makeConstantParam. Trailing
// garbage after a fully-consumed numeric prefix (e.g. "10abc") is rejected.
func parseConstant(token string) (uint16, error) {
	var (
		digits string
		base   int
	)
	switch {
	case token == "0":
		return 0, nil
	case len(token) >= 2 && token[0] == '0' && (token[1] == 'b' || token[1] == 'B'):
		digits, base = token[2:], 2
	case len(token) >= 2 && token[0] == '0' && (token[1] == 'x' || token[1] == 'X'):
		digits, base = token[2:], 16
	case token[0] == '0':
		digits, base = token[1:], 8
	default:
		digits, base = token, 10
	}
	v, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		return 0, &InvalidTokenError{Info: InvalidTokenInfo{Token: token}}
	}
	return uint16(v), nil
}

// EncodedInstruction accumulates the raw operands of one instruction as its
// tokens arrive, enforcing the opcode's min/max arity.
type EncodedInstruction struct {
	Type   cpu.InstructionType
	Index  int
	params []rawParameter
}

func newEncodedInstruction(t cpu.InstructionType, index int) *EncodedInstruction {
	return &EncodedInstruction{Type: t, Index: index}
}

// Params returns the operands accumulated so far.
func (e *EncodedInstruction) Params() []rawParameter { return e.params }

// Feed consumes one more token of the instruction. final indicates the
// token was terminated with ';' (the instruction can't accept any more
// tokens after this one even if arity would allow it).
func (e *EncodedInstruction) Feed(token string, final bool) (FeedResult, error) {
	minParams, maxParams := e.Type.MinArgs(), e.Type.MaxArgs()
	if len(e.params) == maxParams {
		return Full, nil
	}

	p, err := makeRawParameter(token)
	if err != nil {
		return 0, err
	}
	e.params = append(e.params, p)

	if len(e.params) == maxParams {
		return AcceptedFinished, nil
	}
	if final {
		if len(e.params) < minParams {
			return 0, &terminatorError{}
		}
		return AcceptedFinished, nil
	}
	return Accepted, nil
}
