// 8-bit resistor ladder DAC driver
package core

const (
	DACResolution = 255   // 8 bits
	DACRangeMV    = 9400  // Output span in mV
	DACFloorMV    = -5000 // Output at code 0
	DACBits       = 8
)

// ParallelPort writes a whole DAC code in one operation (e.g. a PIO state
// machine). WriteCode returns false if the code could not be queued.
type ParallelPort interface {
	WriteCode(code uint8) bool
}

// DACConfig describes the DAC wiring and calibration
type DACConfig struct {
	LSB     GPIOPin // First of 8 consecutive data pins, bit i on LSB+i
	BiasMV  int32   // Added to every value before quantization
	RangeMV int32   // Output span (0 = DACRangeMV)
	Enabled bool
}

// DAC quantizes millivolt values and drives the ladder
type DAC struct {
	gpio GPIODriver
	port ParallelPort
	cfg  DACConfig

	code    uint8
	dropped uint32 // Codes the parallel port refused
	enabled bool
}

// NewDAC configures the eight data pins as outputs
func NewDAC(gpio GPIODriver, cfg DACConfig) (*DAC, error) {
	d := newDAC(cfg)
	d.gpio = gpioOrDefault(gpio)

	for i := GPIOPin(0); i < DACBits; i++ {
		if err := d.gpio.ConfigureOutput(cfg.LSB + i); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// NewDACPort builds a DAC that writes through a parallel port
func NewDACPort(port ParallelPort, cfg DACConfig) *DAC {
	d := newDAC(cfg)
	d.port = port
	return d
}

func newDAC(cfg DACConfig) *DAC {
	if cfg.RangeMV <= 0 {
		cfg.RangeMV = DACRangeMV
	}
	return &DAC{
		cfg:     cfg,
		enabled: cfg.Enabled,
	}
}

// Quantize maps a millivolt value to a DAC code:
// (mV + bias + 5000) * 255 / range, saturated to [0, 255]
func (d *DAC) Quantize(mV int32) uint8 {
	v := (mV + d.cfg.BiasMV - DACFloorMV) * DACResolution / d.cfg.RangeMV
	return uint8(Saturate(v, 0, DACResolution))
}

// SetValue quantizes mV and outputs the code
func (d *DAC) SetValue(mV int32) {
	if !d.enabled {
		return
	}

	d.code = d.Quantize(mV)

	if d.port != nil {
		if !d.port.WriteCode(d.code) {
			d.dropped++
		}
		return
	}

	for i := GPIOPin(0); i < DACBits; i++ {
		_ = d.gpio.SetPin(d.cfg.LSB+i, (d.code>>i)&0x1 != 0)
	}
}

// Code returns the last code written
func (d *DAC) Code() uint8 {
	return d.code
}

// Dropped returns the number of codes the parallel port refused
func (d *DAC) Dropped() uint32 {
	return d.dropped
}

// Enable turns DAC output on
func (d *DAC) Enable() {
	d.enabled = true
}

// Disable turns DAC output off; SetValue becomes a no-op
func (d *DAC) Disable() {
	d.enabled = false
}
