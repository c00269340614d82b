package cpu

// Flag is a single bit of the flag register. Flags are cleared before every
// non-IPU instruction and only ever set by the component that owns them:
// the ALU sets DivZero/Equal/Less, and Overflow/Illegal/Seg/Multistate are
// reserved for future fault reporting the ALU must never trip itself.
type Flag uint16

const (
	Overflow   Flag = 0x01
	Zero       Flag = 0x02
	DivZero    Flag = 0x04
	Equal      Flag = 0x08
	Less       Flag = 0x10
	Illegal    Flag = 0x20
	Seg        Flag = 0x40
	Multistate Flag = 0x80
)

// FlagRegister holds the CPU's condition flags.
type FlagRegister struct {
	bits uint16
}

// Set raises f, leaving every other flag untouched.
func (r *FlagRegister) Set(f Flag) { r.bits |= uint16(f) }

// Clear lowers every flag.
func (r *FlagRegister) Clear() { r.bits = 0 }

// IsSet reports whether f is currently raised.
func (r *FlagRegister) IsSet(f Flag) bool { return r.bits&uint16(f) != 0 }

// Bits returns the raw flag bitmask.
func (r *FlagRegister) Bits() uint16 { return r.bits }
