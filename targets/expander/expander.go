// Package expander drives panel lines through a PCF8574 I2C port expander.
//
// The PCF8574 is quasi-bidirectional: every line has a weak pull-up, an
// output can only sink current, and an input is a line latched high that
// something outside is pulling low. A 4x4 keypad wired to one expander
// therefore runs with ActiveLow set.
package expander

import (
	"frontpanel/core"

	"tinygo.org/x/drivers"
)

const (
	NumPins        = 8    // Lines on one PCF8574
	DefaultAddress = 0x20 // A0-A2 tied low
)

// Driver implements core.GPIODriver over a PCF8574.
// Pin numbers 0-7 are the expander's P0-P7.
type Driver struct {
	bus     drivers.I2C
	addr    uint16
	outputs uint8 // Lines configured as outputs
	latch   uint8 // Last level written to each line
}

// New returns a driver for the expander at addr on bus (0 = the default 0x20)
func New(bus drivers.I2C, addr uint8) *Driver {
	if addr == 0 {
		addr = DefaultAddress
	}

	return &Driver{
		bus:   bus,
		addr:  uint16(addr),
		latch: 0xFF,
	}
}

// ConfigureOutput configures a line as an output, initially low
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= NumPins {
		return core.ErrInvalidPin
	}

	d.outputs |= 1 << pin
	return d.write(uint8(pin), false)
}

// ConfigureInput releases a line to its weak pull-up. Pull-down is not
// available on this part.
func (d *Driver) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	if pin >= NumPins {
		return core.ErrInvalidPin
	}
	if pull == core.PullDown {
		return core.ErrPullUnsupported
	}

	d.outputs &^= 1 << pin
	return d.write(uint8(pin), true)
}

// SetPin drives an output line
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= NumPins || d.outputs&(1<<pin) == 0 {
		return core.ErrInvalidPin
	}
	return d.write(uint8(pin), value)
}

// write sends the whole port byte with one line changed. The chip has no
// registers: a one-byte write sets all eight lines.
func (d *Driver) write(pin uint8, value bool) error {
	latch := d.latch
	if value {
		latch |= 1 << pin
	} else {
		latch &^= 1 << pin
	}

	buf := [1]byte{latch}
	if err := d.bus.Tx(d.addr, buf[:], nil); err != nil {
		return err
	}
	d.latch = latch
	return nil
}

// read returns the level of all eight lines
func (d *Driver) read() (uint8, error) {
	var buf [1]byte
	err := d.bus.Tx(d.addr, nil, buf[:])
	return buf[0], err
}

// GetPin returns the latched level of an output or reads an input
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	if pin >= NumPins {
		return false, core.ErrInvalidPin
	}
	if d.outputs&(1<<pin) != 0 {
		return d.latch&(1<<pin) != 0, nil
	}

	port, err := d.read()
	if err != nil {
		return false, err
	}
	return port&(1<<pin) != 0, nil
}

// ReadPin reads a line, reporting low on bus errors
func (d *Driver) ReadPin(pin core.GPIOPin) bool {
	v, err := d.GetPin(pin)
	if err != nil {
		return false
	}
	return v
}

// Latch returns the byte last written to the expander
func (d *Driver) Latch() uint8 {
	return d.latch
}
