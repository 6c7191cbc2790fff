//go:build rp2040 || rp2350

package main

import (
	"frontpanel/core"
	"frontpanel/panel"
	"frontpanel/panel/config"
	"frontpanel/targets/pio"
	"machine"
	"time"
)

var (
	// Debug counters
	consoleErrors uint32
	loopPanics    uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// Initialize clock
	UpdateSystemTime()
	core.TimerInit()

	// Initialize and register GPIO driver
	gpioDriver := NewRPGPIODriver()
	core.SetGPIODriver(gpioDriver)

	console, err := NewConsole()
	if err != nil {
		haltBlink()
	}

	cfg := config.DefaultConfig()

	// DAC on PIO0 state machine 0
	var port core.ParallelPort
	if cfg.DAC.UsePIO {
		dac := pio.NewDAC(0, 0)
		if err := dac.Init(uint8(cfg.DAC.LSB)); err == nil {
			port = dac
		}
	}

	fp, err := panel.NewPanel(cfg)
	if err != nil {
		haltBlink()
	}
	if err := fp.Initialize(gpioDriver, HardwareClock{}, port); err != nil {
		haltBlink()
	}
	if err := fp.Start(); err != nil {
		haltBlink()
	}

	// Main loop
	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
				}
			}()

			// Update system time from hardware
			UpdateSystemTime()

			// Process console input
			console.Drain(func(b byte) {
				if fp.ProcessByte(b) != nil {
					consoleErrors++
				}
			})

			// One pass over keypad, button, generator and status
			fp.Poll()

			// Write pending output
			if out := fp.Output(); len(out) > 0 {
				_, _ = console.Write(out)
			}
		}()
	}
}

// haltBlink flashes the on-board LED forever to signal a setup failure
func haltBlink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
