// Package client drives the front panel console from a host over a serial link.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"frontpanel/host/serial"
)

const (
	DefaultTimeout = 2 * time.Second
	maxReplyLines  = 64
)

var ErrTimeout = errors.New("timed out waiting for panel reply")

// CommandError is returned when the panel answers "error: <reason>"
type CommandError struct {
	Command string
	Reason  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("panel rejected %q: %s", e.Command, e.Reason)
}

// Client is a line-oriented connection to one panel
type Client struct {
	port    io.ReadWriteCloser
	reader  *bufio.Reader
	partial string

	// Timeout bounds the wait for the ok/error line of a command
	Timeout time.Duration
}

// Connect opens the serial device and discards anything already buffered
func Connect(cfg *serial.Config) (*Client, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush %s: %w", cfg.Device, err)
	}
	return New(port), nil
}

// New wraps an already open port
func New(port io.ReadWriteCloser) *Client {
	return &Client{
		port:    port,
		reader:  bufio.NewReader(port),
		Timeout: DefaultTimeout,
	}
}

// Close closes the underlying port
func (c *Client) Close() error {
	return c.port.Close()
}

// ReadLine returns the next line from the panel without its terminator.
// A read timeout on the port (io.EOF with no data) is retried until Timeout.
func (c *Client) ReadLine() (string, error) {
	deadline := time.Now().Add(c.Timeout)
	for {
		s, err := c.reader.ReadString('\n')
		c.partial += s
		if err == nil {
			line := strings.TrimRight(c.partial, "\r\n")
			c.partial = ""
			return line, nil
		}
		if err != io.EOF {
			return "", fmt.Errorf("failed to read from panel: %w", err)
		}
		if time.Now().After(deadline) {
			return "", ErrTimeout
		}
		time.Sleep(time.Millisecond)
	}
}

// Command sends one console line and collects the reply lines up to the
// closing "ok". Periodic status lines that arrive meanwhile are included.
func (c *Client) Command(line string) ([]string, error) {
	if _, err := io.WriteString(c.port, line+"\n"); err != nil {
		return nil, fmt.Errorf("failed to send %q: %w", line, err)
	}

	var reply []string
	for i := 0; i < maxReplyLines; i++ {
		l, err := c.ReadLine()
		if err != nil {
			return reply, err
		}

		switch {
		case l == "ok":
			return reply, nil
		case strings.HasPrefix(l, "error: "):
			return reply, &CommandError{Command: line, Reason: strings.TrimPrefix(l, "error: ")}
		case l == "":
			continue
		default:
			reply = append(reply, l)
		}
	}
	return reply, fmt.Errorf("no ok after %d lines", maxReplyLines)
}

func (c *Client) SetAmplitude(mV int) error {
	_, err := c.Command("A" + strconv.Itoa(mV))
	return err
}

func (c *Client) SetOffset(mV int) error {
	_, err := c.Command("B" + strconv.Itoa(mV))
	return err
}

func (c *Client) SetFrequency(hz int) error {
	_, err := c.Command("C" + strconv.Itoa(hz))
	return err
}

// SetWaveform selects 0=sine, 1=triangle, 2=sawtooth, 3=square
func (c *Client) SetWaveform(w int) error {
	_, err := c.Command("W" + strconv.Itoa(w))
	return err
}

// PressKey injects a keypad key as if it were pressed
func (c *Client) PressKey(k int) error {
	_, err := c.Command("K" + strconv.Itoa(k))
	return err
}

// Enable turns the generator output on or off
func (c *Client) Enable(on bool) error {
	cmd := "E0"
	if on {
		cmd = "E1"
	}
	_, err := c.Command(cmd)
	return err
}

// Status returns the most recent status line
func (c *Client) Status() (string, error) {
	reply, err := c.Command("S")
	if err != nil {
		return "", err
	}
	for i := len(reply) - 1; i >= 0; i-- {
		if strings.Contains(reply[i], "-> Amp:") {
			return reply[i], nil
		}
	}
	return "", errors.New("no status line in reply")
}
