package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"asm16/cpu"

	"github.com/sirupsen/logrus"
)

// RegisterMap supplies the caller's named registers for pass-two
// resolution, e.g. {"r0": &cpu0.registers[0], ...}. The Parser's resolution
// cache is keyed on this map's identity and entry count, not on which cells
// it maps, mirroring the original's (count, address) cache on the
// mapped-register array.
type RegisterMap map[string]*uint16

// Parser holds the encoded (not yet resolved) instruction stream produced
// by pass one, plus the label table and constants pool pass two resolves
// against.
type Parser struct {
	encoded []*EncodedInstruction
	labels  map[string]int // first label definition wins
	pool    []uint16       // pool[i] == i; backs both label and constant references

	cachedKey      uintptr
	cachedCount    int
	cachedHasCache bool
	cachedResolved []cpu.Instruction
}

// FromString builds a Parser from in-memory source text.
func FromString(source string) (*Parser, error) {
	return newParser(strings.NewReader(source))
}

// FromFile builds a Parser from a source file on disk.
func FromFile(path string) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	defer f.Close()
	return newParser(f)
}

func newParser(r io.Reader) (*Parser, error) {
	p := &Parser{
		labels: make(map[string]int),
		pool:   make([]uint16, 1<<16),
	}
	for i := range p.pool {
		p.pool[i] = uint16(i)
	}

	scanner := bufio.NewScanner(r)
	tz := &tokenizer{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		tz.newLine()
		for _, tok := range splitLine(line) {
			outcomes, err := tz.feed(tok.text, nil)
			if err != nil {
				return nil, locateError(err, lineNum, tok)
			}
			for _, o := range outcomes {
				p.record(o)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tz.incomplete() {
		return nil, &InvalidTokenError{Info: InvalidTokenInfo{Line: lineNum + 1, Column: 0, Token: "<EOF>"}}
	}

	logrus.WithField("instructions", len(p.encoded)).Debug("parser: source scanned")
	return p, nil
}

func (p *Parser) record(o feedOutcome) {
	if o.instruction != nil {
		p.encoded = append(p.encoded, o.instruction)
	}
	if o.label != nil {
		if _, exists := p.labels[o.label.name]; !exists {
			p.labels[o.label.name] = o.label.instructionIndex
		}
	}
}

// locatedError attaches line/column to an InvalidTokenError surfaced by the
// tokenizer mid-scan.
type locatedError struct {
	line, column int
	token        string
}

func (e *locatedError) Error() string {
	return fmt.Sprintf("parser: invalid token %q at line %d, column %d", e.token, e.line, e.column)
}

func (e *locatedError) Unwrap() error { return ErrInvalidToken }

func (e *locatedError) Info() InvalidTokenInfo {
	return InvalidTokenInfo{Line: e.line, Column: e.column, Token: e.token}
}

// locateError turns whatever error the tokenizer produced for tok into a
// locatedError. A terminatorError reports the column of the ';' itself
// (the original's behavior for arity violations); every other error
// reports the column of the raw token's first character, with the ';'
// stripped from the reported text.
func locateError(err error, line int, tok rawToken) error {
	text := strings.TrimSuffix(tok.text, ";")
	if _, ok := err.(*terminatorError); ok {
		return &locatedError{line: line, column: tok.column + len(tok.text) - 1, token: ";"}
	}
	if ite, ok := err.(*InvalidTokenError); ok && ite.Info.Token != "" {
		text = ite.Info.Token
	}
	return &locatedError{line: line, column: tok.column, token: text}
}

// InvalidTokenDetail extracts structured location info from an error
// returned by FromString/FromFile/Resolve, if it carries any.
func InvalidTokenDetail(err error) (InvalidTokenInfo, bool) {
	if le, ok := err.(*locatedError); ok {
		return le.Info(), true
	}
	if ite, ok := err.(*InvalidTokenError); ok {
		return ite.Info, true
	}
	return InvalidTokenInfo{}, false
}

// UndefinedReferenceDetail extracts structured detail from an error
// returned by Resolve/InstructionCount/FillInstructions, if it carries any.
func UndefinedReferenceDetail(err error) (UndefinedReferenceInfo, bool) {
	if ure, ok := err.(*UndefinedReferenceError); ok {
		return ure.Info, true
	}
	return UndefinedReferenceInfo{}, false
}

func registerMapIdentity(registers RegisterMap) uintptr {
	if registers == nil {
		return 0
	}
	return reflect.ValueOf(registers).Pointer()
}

// Resolve runs (or reuses a cached run of) pass two: every operand is
// resolved against the label table first, then registers, else
// ErrUndefinedReference. The result is cached by registers' identity and
// entry count, like the original's mapped-register cache.
func (p *Parser) Resolve(registers RegisterMap) ([]cpu.Instruction, error) {
	key := registerMapIdentity(registers)
	if p.cachedHasCache && p.cachedKey == key && p.cachedCount == len(registers) {
		return p.cachedResolved, nil
	}

	resolved := make([]cpu.Instruction, 0, len(p.encoded))
	for _, enc := range p.encoded {
		instr := cpu.Instruction{Type: enc.Type}
		params := enc.Params()
		operands := make([]cpu.Parameter, 0, 2)
		for _, raw := range params {
			param, err := p.resolveParameter(raw, registers, enc.Index)
			if err != nil {
				return nil, err
			}
			operands = append(operands, param)
		}
		if len(operands) > 0 {
			instr.P0 = operands[0]
		}
		if len(operands) > 1 {
			instr.P1 = operands[1]
		}
		instr.NumParams = len(operands)
		resolved = append(resolved, instr)
	}

	p.cachedKey = key
	p.cachedCount = len(registers)
	p.cachedHasCache = true
	p.cachedResolved = resolved
	return resolved, nil
}

func (p *Parser) resolveParameter(raw rawParameter, registers RegisterMap, instrIndex int) (cpu.Parameter, error) {
	if raw.kind == rawConstant {
		return p.poolParameter(raw.value), nil
	}
	if idx, ok := p.labels[raw.text]; ok {
		return p.poolParameter(uint16(idx)), nil
	}
	if cell, ok := registers[raw.text]; ok {
		return cpu.NewRegisterParameter(cell), nil
	}
	return cpu.Parameter{}, &UndefinedReferenceError{Info: UndefinedReferenceInfo{
		ReferencingInstructionIndex: instrIndex,
		Token:                       raw.text,
	}}
}

// poolParameter resolves a jump target (or a bare numeric constant, which
// shares the same pool by construction: pool[i] == i) to a register
// parameter backed by the parser's constants pool. This is the
// jump-target-as-register behavior the original source relies on; see
// cpu.NewLabelParameter for the non-pool alternative.
func (p *Parser) poolParameter(index uint16) cpu.Parameter {
	return cpu.NewRegisterParameter(&p.pool[index])
}

// InstructionCount reports how many resolved instructions Resolve would
// produce for the given registers, without allocating the instruction
// slice content into a caller buffer. This mirrors the first half of the
// original's two-call getParserInstructionSet protocol.
func (p *Parser) InstructionCount(registers RegisterMap) (int, error) {
	resolved, err := p.Resolve(registers)
	if err != nil {
		return 0, err
	}
	return len(resolved), nil
}

// FillInstructions copies resolved instructions into buf, returning
// ErrArrayTooSmall if buf is too small. The true required size is always
// reported via the returned int, even when the error is non-nil.
func (p *Parser) FillInstructions(registers RegisterMap, buf []cpu.Instruction) (int, error) {
	resolved, err := p.Resolve(registers)
	if err != nil {
		return 0, err
	}
	required := len(resolved)
	if len(buf) < required {
		return required, ErrArrayTooSmall
	}
	copy(buf, resolved)
	return required, nil
}
