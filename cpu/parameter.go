package cpu

// Parameter is the value an instruction operand resolves to. It is one of
// three kinds:
//
//	Register        readable and writable, backed by a *uint16 cell owned
//	                elsewhere (a data register, or a slot in the parser's
//	                constants pool)
//	Constant        readable only, an immediate value baked in at resolve time
//	MemoryLocation  neither readable nor writable yet; touching one is an
//	                illegal operation
type Parameter struct {
	kind  parameterKind
	reg   *uint16
	value uint16
}

type parameterKind int

const (
	parameterRegister parameterKind = iota
	parameterConstant
	parameterMemoryLocation
)

// NewRegisterParameter wraps a register cell so an instruction can read and
// write through it.
func NewRegisterParameter(cell *uint16) Parameter {
	return Parameter{kind: parameterRegister, reg: cell}
}

// NewConstantParameter wraps an immediate value. It can be read but never
// written.
func NewConstantParameter(value uint16) Parameter {
	return Parameter{kind: parameterConstant, value: value}
}

// NewMemoryLocationParameter marks an operand as pointing at memory. Memory
// addressing isn't implemented yet; any read or write raises
// ErrIllegalOperation.
func NewMemoryLocationParameter(value uint16) Parameter {
	return Parameter{kind: parameterMemoryLocation, value: value}
}

// NewLabelParameter builds a jump-target operand directly from an
// instruction index, without routing it through a shared constants pool.
// It behaves exactly like a Constant for read purposes (readable, not
// writable) but documents its intent as a resolved label rather than a
// literal value. The Parser still defaults to the pool-backed form to stay
// grounded on the original; this is offered for callers building
// instruction streams without a Parser.
func NewLabelParameter(index uint16) Parameter {
	return Parameter{kind: parameterConstant, value: index}
}

// IsRegister reports whether the parameter was built over a register cell.
func (p Parameter) IsRegister() bool { return p.kind == parameterRegister }

// Value reads the parameter's current value.
func (p Parameter) Value() (uint16, error) {
	switch p.kind {
	case parameterRegister:
		return *p.reg, nil
	case parameterConstant:
		return p.value, nil
	default:
		return 0, ErrIllegalOperation
	}
}

// Set writes through the parameter. Only register parameters are writable.
func (p Parameter) Set(v uint16) error {
	if p.kind != parameterRegister {
		return ErrIllegalOperation
	}
	*p.reg = v
	return nil
}

// Register returns the underlying register cell. Callers must check
// IsRegister first; calling this on a non-register parameter is a bug in the
// caller, not a recoverable runtime condition, so it panics like the
// original's assert did.
func (p Parameter) Register() *uint16 {
	if p.kind != parameterRegister {
		panic("cpu: Register called on a non-register parameter")
	}
	return p.reg
}
