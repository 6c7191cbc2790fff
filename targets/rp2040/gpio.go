//go:build rp2040 || rp2350

package main

import (
	"frontpanel/core"
	"machine"
)

const maxGPIO = 29 // GPIO0-GPIO29 are bonded out

// RPGPIODriver implements the GPIODriver interface for RP2040
type RPGPIODriver struct {
	// Track configured pins; a pin must be configured before use
	configuredPins map[core.GPIOPin]machine.Pin
	outputs        map[core.GPIOPin]bool
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
		outputs:        make(map[core.GPIOPin]bool),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin > maxGPIO {
		return core.ErrInvalidPin
	}

	// Pins map directly to GPIO numbers
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d.configuredPins[pin] = machinePin
	d.outputs[pin] = true
	return nil
}

// ConfigureInput configures a pin as an input with the requested bias
func (d *RPGPIODriver) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	if pin > maxGPIO {
		return core.ErrInvalidPin
	}

	mode := machine.PinInput
	switch pull {
	case core.PullUp:
		mode = machine.PinInputPullup
	case core.PullDown:
		mode = machine.PinInputPulldown
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: mode})

	d.configuredPins[pin] = machinePin
	d.outputs[pin] = false
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists || !d.outputs[pin] {
		return core.ErrInvalidPin
	}

	machinePin.Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false, core.ErrInvalidPin
	}

	return machinePin.Get(), nil
}

// ReadPin is GetPin without the error
func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	value, _ := d.GetPin(pin)
	return value
}
