package config

import (
	"encoding/json"

	"frontpanel/core"
	"frontpanel/panel"
	"frontpanel/signal"
)

// LoadConfig parses a JSON configuration and returns a panel Config
func LoadConfig(jsonData []byte) (*panel.Config, error) {
	config := DefaultConfig()

	err := json.Unmarshal(jsonData, config)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(config)

	if _, err := config.GeneratorSettings(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults replaces zero values that cannot be meant literally
func applyDefaults(config *panel.Config) {
	if config.Keypad.ScanUS == 0 {
		config.Keypad.ScanUS = core.DefaultScanUS // 2ms
	}
	if config.Keypad.DebounceUS == 0 {
		config.Keypad.DebounceUS = core.DefaultDebounceUS // 100ms
	}
	if config.Button.DebounceUS == 0 {
		config.Button.DebounceUS = core.DefaultButtonDebounceUS
	}
	if config.DAC.RangeMV == 0 {
		config.DAC.RangeMV = core.DACRangeMV
	}

	gen := &config.Generator
	if gen.Waveform == "" {
		gen.Waveform = "sine"
	}
	if gen.Mode == "" {
		gen.Mode = "table"
	}
	if gen.FrequencyHz == 0 {
		gen.FrequencyHz = 10
	}
	// Amplitude, offset and calibration keep an explicit 0; unset fields
	// already hold the DefaultConfig values

	if config.StatusUS == 0 {
		config.StatusUS = core.TimerFreq // 1s
	}
}

// DefaultConfig returns the reference board layout
func DefaultConfig() *panel.Config {
	return &panel.Config{
		Keypad: panel.KeypadConfig{
			RowPins:    core.ConsecutivePins(2), // gpio2-5
			ColPins:    core.ConsecutivePins(6), // gpio6-9
			ScanUS:     core.DefaultScanUS,
			DebounceUS: core.DefaultDebounceUS,
		},
		Button: panel.ButtonConfig{
			Pin:        0,
			DebounceUS: core.DefaultButtonDebounceUS,
		},
		LEDPin: 18,
		DAC: panel.DACConfig{
			LSB:     10, // gpio10-17
			RangeMV: core.DACRangeMV,
			UsePIO:  true,
		},
		Generator: panel.GeneratorConfig{
			Waveform:      "sine",
			Mode:          "table",
			FrequencyHz:   10,
			AmplitudeMV:   1000,
			OffsetMV:      500,
			CalibrationMV: signal.DefaultCalibrationMV,
		},
		StatusUS: core.TimerFreq,
	}
}
