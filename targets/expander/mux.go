package expander

import "frontpanel/core"

// Mux maps a block of NumPins panel pin numbers starting at First onto an
// expander and passes every other pin to Base.
type Mux struct {
	Base     core.GPIODriver
	Expander *Driver
	First    core.GPIOPin
}

func (m *Mux) route(pin core.GPIOPin) (core.GPIODriver, core.GPIOPin) {
	if pin >= m.First && pin < m.First+NumPins {
		return m.Expander, pin - m.First
	}
	return m.Base, pin
}

func (m *Mux) ConfigureOutput(pin core.GPIOPin) error {
	d, p := m.route(pin)
	return d.ConfigureOutput(p)
}

func (m *Mux) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	d, p := m.route(pin)
	return d.ConfigureInput(p, pull)
}

func (m *Mux) SetPin(pin core.GPIOPin, value bool) error {
	d, p := m.route(pin)
	return d.SetPin(p, value)
}

func (m *Mux) GetPin(pin core.GPIOPin) (bool, error) {
	d, p := m.route(pin)
	return d.GetPin(p)
}

func (m *Mux) ReadPin(pin core.GPIOPin) bool {
	d, p := m.route(pin)
	return d.ReadPin(p)
}
