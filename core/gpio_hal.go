package core

import "errors"

// GPIOPin identifies a digital line. Physical numbering is a backend concern.
type GPIOPin uint32

// Pull selects the input bias resistor
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

var (
	ErrInvalidPin      = errors.New("invalid gpio pin")
	ErrPullUnsupported = errors.New("pull mode not supported")
)

// GPIODriver is the abstract digital I/O capability the panel consumes.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInput configures a pin as a digital input with the given bias
	ConfigureInput(pin GPIOPin, pull Pull) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin GPIOPin) (bool, error)

	// ReadPin reads the current pin state, reporting low on error
	ReadPin(pin GPIOPin) bool
}

// Default driver used when a component is built without one.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}

func gpioOrDefault(d GPIODriver) GPIODriver {
	if d != nil {
		return d
	}
	return MustGPIO()
}
