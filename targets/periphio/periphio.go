// Package periphio implements core.GPIODriver over periph.io GPIO, for
// running the panel on a Linux single-board computer.
package periphio

import (
	"strconv"

	"frontpanel/core"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pin is the part of gpio.PinIO the driver uses
type Pin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
	Out(l gpio.Level) error
}

// Lookup resolves a panel pin number to a periph pin, nil if unknown
type Lookup func(pin core.GPIOPin) Pin

// ByNumber looks pins up in the periph registry as "GPIO<n>".
// host.Init must have been called first.
func ByNumber(pin core.GPIOPin) Pin {
	p := gpioreg.ByName("GPIO" + strconv.FormatUint(uint64(pin), 10))
	if p == nil {
		return nil
	}
	return p
}

type line struct {
	pin    Pin
	output bool
	level  gpio.Level
}

// Driver implements core.GPIODriver. Lines are resolved on configuration.
type Driver struct {
	lookup Lookup
	lines  map[core.GPIOPin]*line
}

// New creates a driver; a nil lookup selects ByNumber
func New(lookup Lookup) *Driver {
	if lookup == nil {
		lookup = ByNumber
	}
	return &Driver{
		lookup: lookup,
		lines:  make(map[core.GPIOPin]*line),
	}
}

func (d *Driver) resolve(pin core.GPIOPin) (*line, error) {
	if l, ok := d.lines[pin]; ok {
		return l, nil
	}
	p := d.lookup(pin)
	if p == nil {
		return nil, core.ErrInvalidPin
	}
	l := &line{pin: p}
	d.lines[pin] = l
	return l, nil
}

// ConfigureOutput configures a pin as an output, initially low
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	l, err := d.resolve(pin)
	if err != nil {
		return err
	}
	if err := l.pin.Out(gpio.Low); err != nil {
		return err
	}
	l.output = true
	l.level = gpio.Low
	return nil
}

// ConfigureInput configures a pin as an input with the given bias
func (d *Driver) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	l, err := d.resolve(pin)
	if err != nil {
		return err
	}

	var p gpio.Pull
	switch pull {
	case core.PullUp:
		p = gpio.PullUp
	case core.PullDown:
		p = gpio.PullDown
	default:
		p = gpio.Float
	}
	if err := l.pin.In(p, gpio.NoEdge); err != nil {
		return err
	}
	l.output = false
	return nil
}

// SetPin drives a configured output
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	l, ok := d.lines[pin]
	if !ok || !l.output {
		return core.ErrInvalidPin
	}
	if err := l.pin.Out(gpio.Level(value)); err != nil {
		return err
	}
	l.level = gpio.Level(value)
	return nil
}

// GetPin returns the driven level of an output or reads an input
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	l, ok := d.lines[pin]
	if !ok {
		return false, core.ErrInvalidPin
	}
	if l.output {
		return bool(l.level), nil
	}
	return bool(l.pin.Read()), nil
}

// ReadPin reads a pin, reporting low if it is not configured
func (d *Driver) ReadPin(pin core.GPIOPin) bool {
	v, err := d.GetPin(pin)
	if err != nil {
		return false
	}
	return v
}
