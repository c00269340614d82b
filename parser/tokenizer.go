package parser

import "strings"

// tokenizer drives the EncodedInstruction state machine across the token
// stream, recognizing labels as the fallback when a token isn't a known
// opcode, and comments/commas as structural noise.
type tokenizer struct {
	current          *EncodedInstruction
	lineComment      bool
	instructionIndex int
}

// feedOutcome is produced whenever feed finishes an instruction or label.
type feedOutcome struct {
	instruction *EncodedInstruction
	label       *label
}

func (tz *tokenizer) newLine() {
	tz.lineComment = false
}

func (tz *tokenizer) incomplete() bool {
	return tz.current != nil
}

// feed consumes one raw token (still carrying its trailing ';' if any) and
// appends zero, one, or (when a Full result forces the same token to start
// the next instruction) two outcomes to out. The trailing ';' is stripped
// here, once, before the sanitized text reaches opcode lookup, label
// validation or operand parsing.
func (tz *tokenizer) feed(raw string, out []feedOutcome) ([]feedOutcome, error) {
	if tz.lineComment || (tz.current == nil && raw == "//") {
		tz.lineComment = true
		return out, nil
	}
	if raw == "," {
		return out, nil
	}

	final := strings.HasSuffix(raw, ";")
	token := raw
	if final {
		token = strings.TrimSuffix(raw, ";")
	}

	if tz.current == nil {
		if t, ok := lookupOpcode(strings.TrimSuffix(token, ",")); ok {
			enc := newEncodedInstruction(t, tz.instructionIndex)
			tz.instructionIndex++
			if final {
				if len(enc.params) < enc.Type.MinArgs() {
					return out, &terminatorError{}
				}
				return append(out, feedOutcome{instruction: enc}), nil
			}
			tz.current = enc
			return out, nil
		}
		name, err := validateLabel(token)
		if err != nil {
			return out, err
		}
		return append(out, feedOutcome{label: &label{name: name, instructionIndex: tz.instructionIndex}}), nil
	}

	if final && token == "" {
		// A bare ';' token: end the instruction without treating it as an
		// operand.
		enc := tz.current
		tz.current = nil
		if len(enc.params) < enc.Type.MinArgs() {
			return out, &terminatorError{}
		}
		return append(out, feedOutcome{instruction: enc}), nil
	}

	result, err := tz.current.Feed(token, final)
	if err != nil {
		return out, err
	}
	switch result {
	case AcceptedFinished:
		enc := tz.current
		tz.current = nil
		return append(out, feedOutcome{instruction: enc}), nil
	case Full:
		enc := tz.current
		tz.current = nil
		out = append(out, feedOutcome{instruction: enc})
		// The token wasn't consumed by the finished instruction; re-feed
		// the already-sanitized text as the start of the next instruction
		// or label (it no longer carries a ';' to strip twice).
		return tz.feed(token, out)
	default: // Accepted
		return out, nil
	}
}

// terminatorError signals that a ';' ended an instruction before its
// minimum arity was met. It carries no location; the caller (newParser)
// computes the terminator's actual column from the raw token that produced
// this error, matching the original's behavior of reporting the ';'
// position rather than the token's start.
type terminatorError struct{}

func (e *terminatorError) Error() string { return "parser: instruction terminated before minimum arity" }

func (e *terminatorError) Unwrap() error { return ErrInvalidToken }
