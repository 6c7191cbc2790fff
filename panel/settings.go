package panel

import (
	"errors"
	"strings"

	"frontpanel/core"
	"frontpanel/signal"
)

var (
	ErrUnknownWaveform = errors.New("unknown waveform")
	ErrUnknownMode     = errors.New("unknown generator mode")
)

// ParseWaveform maps a configuration name to a waveform
func ParseWaveform(name string) (signal.Waveform, error) {
	switch strings.ToLower(name) {
	case "sine", "sinusoidal":
		return signal.Sine, nil
	case "triangle", "triangular":
		return signal.Triangle, nil
	case "sawtooth", "saw":
		return signal.Sawtooth, nil
	case "square":
		return signal.Square, nil
	default:
		return 0, ErrUnknownWaveform
	}
}

// ParseMode maps a configuration name to a generator mode
func ParseMode(name string) (signal.Mode, error) {
	switch strings.ToLower(name) {
	case "table":
		return signal.Table, nil
	case "continuous":
		return signal.Continuous, nil
	default:
		return 0, ErrUnknownMode
	}
}

// GeneratorSettings converts the generator section for signal.New
func (c *Config) GeneratorSettings() (signal.Config, error) {
	gen := c.Generator

	wave, err := ParseWaveform(gen.Waveform)
	if err != nil {
		return signal.Config{}, err
	}
	mode, err := ParseMode(gen.Mode)
	if err != nil {
		return signal.Config{}, err
	}

	return signal.Config{
		Waveform:      wave,
		Mode:          mode,
		FrequencyHz:   gen.FrequencyHz,
		AmplitudeMV:   gen.AmplitudeMV,
		OffsetMV:      gen.OffsetMV,
		CalibrationMV: gen.CalibrationMV,
		Enabled:       !gen.Disabled,
	}, nil
}

// KeypadSettings converts the keypad section for core.NewKeypad
func (c *Config) KeypadSettings() core.KeypadConfig {
	return core.KeypadConfig{
		RowPins:    c.Keypad.RowPins,
		ColPins:    c.Keypad.ColPins,
		ScanUS:     c.Keypad.ScanUS,
		DebounceUS: c.Keypad.DebounceUS,
		ActiveLow:  c.Keypad.ActiveLow,
		Enabled:    true,
	}
}

// ButtonSettings converts the button section for core.NewButton
func (c *Config) ButtonSettings() core.ButtonConfig {
	return core.ButtonConfig{
		Pin:        c.Button.Pin,
		DebounceUS: c.Button.DebounceUS,
		ActiveHigh: c.Button.ActiveHigh,
		Enabled:    true,
	}
}

// DACSettings converts the DAC section for core.NewDAC
func (c *Config) DACSettings() core.DACConfig {
	return core.DACConfig{
		LSB:     c.DAC.LSB,
		BiasMV:  c.DAC.BiasMV,
		RangeMV: c.DAC.RangeMV,
		Enabled: true,
	}
}
