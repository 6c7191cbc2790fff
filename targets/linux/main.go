//go:build linux

// Command panel-linux runs the front panel on a Linux board, with GPIO from
// periph.io and an optional PCF8574 keypad on I2C. Console commands are read
// from stdin and replies written to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"frontpanel/core"
	"frontpanel/panel"
	"frontpanel/panel/config"
	"frontpanel/targets/expander"
	"frontpanel/targets/periphio"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// expanderFirst is the first panel pin number routed to the expander
const expanderFirst core.GPIOPin = 100

var (
	configPath = flag.String("config", "", "JSON configuration file")
	i2cBus     = flag.String("i2c", "", "I2C bus for a PCF8574 keypad (empty = none)")
	i2cAddr    = flag.Uint("i2c-addr", 0x20, "PCF8574 address")
	idle       = flag.Duration("idle", 50*time.Microsecond, "Sleep between scheduler passes")
	debug      = flag.Bool("debug", false, "Print core debug output to stderr")
)

// monoClock is a microsecond clock from the process start
type monoClock struct {
	start time.Time
}

func (c monoClock) NowUS() uint32 {
	return uint32(time.Since(c.start).Microseconds())
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := host.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize periph: %v\n", err)
		os.Exit(1)
	}

	var gpio core.GPIODriver = periphio.New(nil)

	if *i2cBus != "" {
		bus, err := i2creg.Open(*i2cBus)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to open I2C bus %s: %v\n", *i2cBus, err)
			os.Exit(1)
		}
		defer bus.Close()

		gpio = &expander.Mux{
			Base:     gpio,
			Expander: expander.New(bus, uint8(*i2cAddr)),
			First:    expanderFirst,
		}

		// Rows on P0-P3, columns on P4-P7
		cfg.Keypad.RowPins = core.ConsecutivePins(expanderFirst)
		cfg.Keypad.ColPins = core.ConsecutivePins(expanderFirst + 4)
		cfg.Keypad.ActiveLow = true
	}

	if *debug || cfg.Debug {
		core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		core.SetDebugEnabled(true)
	}

	fp, err := panel.NewPanel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	clock := monoClock{start: time.Now()}
	if err := fp.Initialize(gpio, clock, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize panel: %v\n", err)
		os.Exit(1)
	}
	if err := fp.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	input := make(chan byte, 256)
	go readStdin(input)

	out := bufio.NewWriter(os.Stdout)
	for {
		core.SetTime(clock.NowUS())

	drain:
		for {
			select {
			case b, ok := <-input:
				if !ok {
					return
				}
				_ = fp.ProcessByte(b)
			default:
				break drain
			}
		}

		fp.Poll()

		if data := fp.Output(); len(data) > 0 {
			_, _ = out.Write(data)
			_ = out.Flush()
		}

		time.Sleep(*idle)
	}
}

func loadConfig(path string) (*panel.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := config.LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// readStdin forwards console bytes until stdin closes
func readStdin(input chan<- byte) {
	r := bufio.NewReader(os.Stdin)
	for {
		b, err := r.ReadByte()
		if err != nil {
			close(input)
			return
		}
		input <- b
	}
}
