// LED indicator driver
package core

// LED flags
const (
	LF_ON         = 1 << 0 // Current pin state (1=on, 0=off)
	LF_ACTIVE_LOW = 1 << 1 // LED lights when the pin is low
)

// LED is a single indicator on a digital output
type LED struct {
	gpio  GPIODriver
	Pin   GPIOPin
	Flags uint8 // State flags (LF_*)
}

// NewLED configures the pin as an output and sets the initial state
func NewLED(gpio GPIODriver, pin GPIOPin, on bool) (*LED, error) {
	return newLED(gpio, pin, on, 0)
}

// NewLEDActiveLow is NewLED for an LED wired to sink current
func NewLEDActiveLow(gpio GPIODriver, pin GPIOPin, on bool) (*LED, error) {
	return newLED(gpio, pin, on, LF_ACTIVE_LOW)
}

func newLED(gpio GPIODriver, pin GPIOPin, on bool, flags uint8) (*LED, error) {
	led := &LED{
		gpio:  gpioOrDefault(gpio),
		Pin:   pin,
		Flags: flags,
	}

	if err := led.gpio.ConfigureOutput(pin); err != nil {
		return nil, err
	}
	if err := led.write(on); err != nil {
		return nil, err
	}

	return led, nil
}

// write drives the pin and updates the state flag on success
func (l *LED) write(on bool) error {
	level := on != (l.Flags&LF_ACTIVE_LOW != 0)
	if err := l.gpio.SetPin(l.Pin, level); err != nil {
		return err
	}

	if on {
		l.Flags |= LF_ON
	} else {
		l.Flags &^= LF_ON
	}
	return nil
}

// Set turns the LED on
func (l *LED) Set() {
	_ = l.write(true)
}

// Clear turns the LED off
func (l *LED) Clear() {
	_ = l.write(false)
}

// Toggle inverts the LED
func (l *LED) Toggle() {
	_ = l.write(!l.IsOn())
}

// IsOn returns the last state written
func (l *LED) IsOn() bool {
	return l.Flags&LF_ON != 0
}
