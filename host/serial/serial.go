// Package serial opens the panel's console UART from a host.
package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// The panel firmware runs its console at 115200 8N1
const (
	DefaultBaud        = 115200
	DefaultReadTimeout = 100 * time.Millisecond
)

var ErrBadBaud = errors.New("baud rate must be positive")

// Config selects the device and line speed
type Config struct {
	Device string // e.g. /dev/ttyACM0 or COM3
	Baud   int

	// A read that sees no byte within ReadTimeout returns io.EOF.
	// Zero blocks until data arrives.
	ReadTimeout time.Duration
}

// DefaultConfig returns the console settings for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Port is an open console link
type Port struct {
	tty    *serial.Port
	device string
}

// Open opens the device described by cfg
func Open(cfg *Config) (*Port, error) {
	if cfg == nil {
		return nil, errors.New("nil serial config")
	}
	if cfg.Baud <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadBaud, cfg.Baud)
	}

	tty, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	return &Port{tty: tty, device: cfg.Device}, nil
}

// Device returns the path the port was opened on
func (p *Port) Device() string { return p.device }

func (p *Port) Read(b []byte) (int, error)  { return p.tty.Read(b) }
func (p *Port) Write(b []byte) (int, error) { return p.tty.Write(b) }
func (p *Port) Close() error                { return p.tty.Close() }

// Flush drops bytes queued before the host attached, such as the
// "Front panel ready" banner
func (p *Port) Flush() error {
	return p.tty.Flush()
}
