//go:build rp2040 || rp2350

package main

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

const consoleBaud = 115200

// Console is the panel's serial port on UART1 (GPIO20 TX, GPIO21 RX).
// Reads never block: the UART's interrupt-fed ring is drained with TryRead.
type Console struct {
	uart *uartx.UART
	buf  [32]byte
}

// NewConsole configures the UART
func NewConsole() (*Console, error) {
	c := &Console{uart: uartx.UART1}

	err := c.uart.Configure(uartx.UARTConfig{
		BaudRate: consoleBaud,
		TX:       machine.GPIO20,
		RX:       machine.GPIO21,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Drain hands every byte received so far to handle
func (c *Console) Drain(handle func(byte)) {
	for {
		n := c.uart.TryRead(c.buf[:])
		if n == 0 {
			return
		}
		for _, b := range c.buf[:n] {
			handle(b)
		}
	}
}

// Write sends p on the UART
func (c *Console) Write(p []byte) (int, error) {
	return c.uart.Write(p)
}
