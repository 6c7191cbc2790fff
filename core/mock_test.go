package core

import "errors"

// fakeClock is a settable microsecond clock
type fakeClock struct {
	now uint32
}

func (c *fakeClock) NowUS() uint32 { return c.now }

func (c *fakeClock) advance(us uint32) { c.now += us }

// mockGPIO is a map-backed GPIODriver. When a key is held it also models the
// keypad matrix: a column reads asserted while its row line is driven.
type mockGPIO struct {
	out    map[GPIOPin]bool
	in     map[GPIOPin]bool
	pulls  map[GPIOPin]Pull
	isOut  map[GPIOPin]bool
	failOn map[GPIOPin]bool

	// matrix
	rows      [4]GPIOPin
	cols      [4]GPIOPin
	activeLow bool
	held      bool
	heldRow   int
	heldCol   int
}

var errMockWrite = errors.New("mock write failure")

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		out:    make(map[GPIOPin]bool),
		in:     make(map[GPIOPin]bool),
		pulls:  make(map[GPIOPin]Pull),
		isOut:  make(map[GPIOPin]bool),
		failOn: make(map[GPIOPin]bool),
	}
}

func (m *mockGPIO) ConfigureOutput(pin GPIOPin) error {
	m.isOut[pin] = true
	return nil
}

func (m *mockGPIO) ConfigureInput(pin GPIOPin, pull Pull) error {
	m.isOut[pin] = false
	m.pulls[pin] = pull
	return nil
}

func (m *mockGPIO) SetPin(pin GPIOPin, value bool) error {
	if m.failOn[pin] {
		return errMockWrite
	}
	m.out[pin] = value
	return nil
}

func (m *mockGPIO) GetPin(pin GPIOPin) (bool, error) {
	if m.isOut[pin] {
		return m.out[pin], nil
	}
	for i, c := range m.cols {
		if c == pin && m.held && m.heldCol == i {
			rowDriven := m.out[m.rows[m.heldRow]] != m.activeLow
			if rowDriven {
				return !m.activeLow, nil
			}
		}
	}
	if v, ok := m.in[pin]; ok {
		return v, nil
	}
	return m.pulls[pin] == PullUp, nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	v, _ := m.GetPin(pin)
	return v
}

// attachMatrix wires the mock to a keypad layout
func (m *mockGPIO) attachMatrix(cfg KeypadConfig) {
	m.rows = cfg.RowPins
	m.cols = cfg.ColPins
	m.activeLow = cfg.ActiveLow
}

// press holds the key at row bit r, column bit c
func (m *mockGPIO) press(r, c int) {
	m.held = true
	m.heldRow = r
	m.heldCol = c
}

func (m *mockGPIO) release() {
	m.held = false
}
