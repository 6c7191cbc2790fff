package panel

import "frontpanel/core"

// KeypadConfig describes the matrix wiring
type KeypadConfig struct {
	RowPins    [4]core.GPIOPin // Row outputs, top row last
	ColPins    [4]core.GPIOPin // Column inputs
	ScanUS     uint32          // Row sequence period
	DebounceUS uint32          // Debounce lockout window
	ActiveLow  bool            // Rows drive low, columns pulled up
}

// ButtonConfig describes the waveform select button
type ButtonConfig struct {
	Pin        core.GPIOPin
	DebounceUS uint32
	ActiveHigh bool
}

// DACConfig describes the resistor ladder
type DACConfig struct {
	LSB     core.GPIOPin // First of 8 consecutive pins
	BiasMV  int32
	RangeMV int32
	UsePIO  bool // Drive the ladder from a PIO state machine when available
}

// GeneratorConfig holds the power-on waveform
type GeneratorConfig struct {
	Waveform      string // "sine", "triangle", "sawtooth", "square"
	Mode          string // "table" or "continuous"
	FrequencyHz   uint32
	AmplitudeMV   int32
	OffsetMV      int32
	CalibrationMV int32
	Disabled      bool // Start with the generator off
}

// Config represents the complete front panel configuration
type Config struct {
	Keypad    KeypadConfig
	Button    ButtonConfig
	LEDPin    core.GPIOPin
	DAC       DACConfig
	Generator GeneratorConfig

	StatusUS uint32 // Status line interval
	Debug    bool   // Route core debug output to the console
}

// Param identifies a generator parameter entered from the keypad
type Param uint8

const (
	ParamNone Param = iota
	ParamAmplitude
	ParamOffset
	ParamFrequency
)

// String returns a short parameter name
func (p Param) String() string {
	switch p {
	case ParamAmplitude:
		return "amplitude"
	case ParamOffset:
		return "offset"
	case ParamFrequency:
		return "frequency"
	default:
		return "none"
	}
}

// Parameter limits accepted on commit
const (
	MinAmplitudeMV = 100
	MaxAmplitudeMV = 2500
	MinOffsetMV    = 50
	MaxOffsetMV    = 1250
	MinFrequencyHz = 1
	MaxFrequencyHz = 62500
)

// Limits returns the accepted range for a parameter
func (p Param) Limits() (lo, hi uint32) {
	switch p {
	case ParamAmplitude:
		return MinAmplitudeMV, MaxAmplitudeMV
	case ParamOffset:
		return MinOffsetMV, MaxOffsetMV
	case ParamFrequency:
		return MinFrequencyHz, MaxFrequencyHz
	default:
		return 0, 0
	}
}
