package core

// ZeroFlag is the double-zero marker shared by the keypad and the button.
// It has no timeout: whoever sets it decides when it is cleared.
type ZeroFlag struct {
	set bool
}

// DoubleZero is implemented by input components that carry a ZeroFlag
type DoubleZero interface {
	SetDoubleZeroFlag()
	ClearDoubleZeroFlag()
	IsDoubleZero() bool
}

// SetDoubleZeroFlag marks that a first zero was seen
func (z *ZeroFlag) SetDoubleZeroFlag() {
	z.set = true
}

// ClearDoubleZeroFlag clears the marker
func (z *ZeroFlag) ClearDoubleZeroFlag() {
	z.set = false
}

// IsDoubleZero returns true if a first zero was seen and not yet cleared
func (z *ZeroFlag) IsDoubleZero() bool {
	return z.set
}
