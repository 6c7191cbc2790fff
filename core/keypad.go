// Matrix keypad scanning and debouncing
// Drives a 4x4 keypad with a one-hot row sequence and samples the columns
package core

import "math/bits"

// Key is a decoded keypad value, 0x0-0xF, or KeyNone
type Key uint8

const (
	KeyNone     Key = 0x1F // No key decoded
	HistorySize     = 10   // Number of keys kept in history

	DefaultScanUS     = 2000   // Row sequence period, 500Hz
	DefaultDebounceUS = 100000 // Debounce lockout window
)

// String returns the keypad legend for the key
func (k Key) String() string {
	if k > 0x0F {
		return "-"
	}
	return string([]byte{hexNibble(uint8(k))})
}

// keyMatrix maps [row bit][column bit] to the key legend.
// Raw codes are active-high: column pattern in the high nibble, row pattern
// in the low nibble. Row bit 3 is the top row, column bit 3 the left column.
var keyMatrix = [4][4]Key{
	// columns 0x1, 0x2, 0x4, 0x8
	{0x0D, 0x0F, 0x00, 0x0E}, // row 0x1
	{0x0C, 0x09, 0x08, 0x07}, // row 0x2
	{0x0B, 0x06, 0x05, 0x04}, // row 0x4
	{0x0A, 0x03, 0x02, 0x01}, // row 0x8
}

// DecodeRaw maps a raw code to its key.
// Only codes with exactly one row bit and one column bit are valid.
func DecodeRaw(raw uint8) (Key, bool) {
	rows := raw & 0x0F
	cols := raw >> 4
	if bits.OnesCount8(rows) != 1 || bits.OnesCount8(cols) != 1 {
		return KeyNone, false
	}
	return keyMatrix[bits.TrailingZeros8(rows)][bits.TrailingZeros8(cols)], true
}

// EncodeKey returns the raw code that decodes to k
func EncodeKey(k Key) (uint8, bool) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if keyMatrix[r][c] == k {
				return uint8(1<<c)<<4 | uint8(1<<r), true
			}
		}
	}
	return 0, false
}

// ConsecutivePins returns four consecutive pins starting at lsb
func ConsecutivePins(lsb GPIOPin) [4]GPIOPin {
	return [4]GPIOPin{lsb, lsb + 1, lsb + 2, lsb + 3}
}

// KeypadConfig holds the wiring and timing of a keypad
type KeypadConfig struct {
	RowPins    [4]GPIOPin // Row outputs, bit i of the row pattern drives RowPins[i]
	ColPins    [4]GPIOPin // Column inputs, ColPins[i] sets bit i of the column pattern
	ScanUS     uint32     // Row sequence period (0 = DefaultScanUS)
	DebounceUS uint32     // Debounce window (0 = DefaultDebounceUS)
	ActiveLow  bool       // Rows driven low and columns pulled up
	Enabled    bool
}

// Keypad is the scanner and debouncer state for one 4x4 matrix
type Keypad struct {
	ZeroFlag

	gpio GPIODriver
	cfg  KeypadConfig

	rowCounter uint8 // 0..3
	rowPattern uint8 // One-hot row pattern
	cols       uint8 // Columns captured on the last sample
	raw        uint8 // Raw code, cols<<4 | rows
	key        Key   // Decoded key

	history [HistorySize]Key // Most recent first

	pending    bool // A captured key has not been consumed
	debouncing bool // Capture is locked until the debounce timer expires
	enabled    bool

	scan     *SoftTimer // Fixed-rate row sequence
	debounce *SoftTimer // One-shot lockout window
}

// NewKeypad configures the row and column lines and returns an idle keypad.
// A nil gpio selects the registered driver, a nil clock the system clock.
func NewKeypad(gpio GPIODriver, clock Clock, cfg KeypadConfig) (*Keypad, error) {
	if cfg.ScanUS == 0 {
		cfg.ScanUS = DefaultScanUS
	}
	if cfg.DebounceUS == 0 {
		cfg.DebounceUS = DefaultDebounceUS
	}

	// Rows and columns must not overlap
	seen := make(map[GPIOPin]bool, 8)
	for _, p := range append(cfg.RowPins[:], cfg.ColPins[:]...) {
		if seen[p] {
			return nil, ErrInvalidPin
		}
		seen[p] = true
	}

	scan, err := NewSoftTimer(clock, cfg.ScanUS, true)
	if err != nil {
		return nil, err
	}
	debounce, err := NewSoftTimer(clock, cfg.DebounceUS, false)
	if err != nil {
		return nil, err
	}

	kp := &Keypad{
		gpio:       gpioOrDefault(gpio),
		cfg:        cfg,
		rowCounter: 3,
		rowPattern: 0x8,
		key:        KeyNone,
		enabled:    cfg.Enabled,
		scan:       scan,
		debounce:   debounce,
	}
	for i := range kp.history {
		kp.history[i] = KeyNone
	}

	pull := PullDown
	if cfg.ActiveLow {
		pull = PullUp
	}
	for i := 0; i < 4; i++ {
		if err := kp.gpio.ConfigureOutput(cfg.RowPins[i]); err != nil {
			return nil, err
		}
		if err := kp.gpio.ConfigureInput(cfg.ColPins[i], pull); err != nil {
			return nil, err
		}
	}
	kp.driveRows()

	return kp, nil
}

// driveRows writes the current one-hot pattern to the row lines
func (kp *Keypad) driveRows() {
	for i := 0; i < 4; i++ {
		level := (kp.rowPattern>>i)&0x1 != 0
		_ = kp.gpio.SetPin(kp.cfg.RowPins[i], level != kp.cfg.ActiveLow)
	}
}

// AdvanceRowSequence asserts the next row line
func (kp *Keypad) AdvanceRowSequence() {
	if !kp.enabled {
		return
	}

	kp.rowCounter = (kp.rowCounter + 1) % 4
	kp.rowPattern = (1 << kp.rowCounter) & 0x0F
	kp.driveRows()
}

// SampleColumns reads the four column lines into the column pattern
func (kp *Keypad) SampleColumns() {
	if !kp.enabled {
		return
	}

	kp.cols = 0
	for i := 0; i < 4; i++ {
		if kp.gpio.ReadPin(kp.cfg.ColPins[i]) != kp.cfg.ActiveLow {
			kp.cols |= 1 << i
		}
	}
}

// Decode combines the sampled columns with the row pattern and looks the
// result up. An unmapped code leaves the decoded key unchanged.
func (kp *Keypad) Decode() (Key, bool) {
	kp.raw = kp.cols<<4 | kp.rowPattern
	key, ok := DecodeRaw(kp.raw)
	if ok {
		kp.key = key
	}
	return kp.key, ok
}

// CaptureIfPressed decodes the last sample and, if a column is asserted and
// no debounce window is open, pushes the key into history and opens one.
// It returns true when a key was captured.
func (kp *Keypad) CaptureIfPressed() bool {
	if !kp.enabled {
		return false
	}

	key, ok := kp.Decode()
	if kp.cols == 0 || kp.debouncing {
		return false
	}
	if !ok {
		RecordEvent(EvtKeyIgnored, kp.scan.Now(), uint32(kp.raw), 0)
		return false
	}

	copy(kp.history[1:], kp.history[:HistorySize-1])
	kp.history[0] = key
	kp.pending = true

	kp.debounce.Restart()
	kp.debouncing = true

	RecordEvent(EvtKeyCapture, kp.scan.Now(), uint32(key), uint32(kp.raw))
	DebugPrintln("[KEYPAD] key " + key.String() + " raw=" + Hex8(kp.raw))
	return true
}

// keyHeld drives every row line and reports whether any column is asserted.
// The scan pattern is restored before returning.
func (kp *Keypad) keyHeld() bool {
	for i := 0; i < 4; i++ {
		_ = kp.gpio.SetPin(kp.cfg.RowPins[i], !kp.cfg.ActiveLow)
	}
	held := false
	for i := 0; i < 4; i++ {
		if kp.gpio.ReadPin(kp.cfg.ColPins[i]) != kp.cfg.ActiveLow {
			held = true
		}
	}
	kp.driveRows()
	return held
}

// CheckDebounce closes the debounce window once its timer has expired and
// no key is held. A held key re-arms the window, so it is captured once per
// physical press. A disabled debounce timer keeps the window open.
func (kp *Keypad) CheckDebounce() bool {
	if !kp.enabled || !kp.debounce.Check() {
		return false
	}
	if kp.keyHeld() {
		kp.debounce.AdvanceFromNow()
		return false
	}

	kp.debounce.Disable()
	kp.debouncing = false
	kp.raw = 0
	kp.key = KeyNone

	RecordEvent(EvtDebounceRelease, kp.scan.Now(), 0, 0)
	return true
}

// Poll runs one cooperative pass: debounce release, then the row sequence,
// column sample and capture when the scan timer fires.
func (kp *Keypad) Poll() {
	if !kp.enabled {
		return
	}

	kp.CheckDebounce()

	if kp.scan.Check() {
		kp.scan.AdvanceByPeriod()
		kp.AdvanceRowSequence()
		kp.SampleColumns()
		kp.CaptureIfPressed()
	}
}

// GetLastKey returns the most recent captured key, or KeyNone
func (kp *Keypad) GetLastKey() Key {
	return kp.history[0]
}

// ConsumeKey returns the most recent captured key and clears the pending flag
func (kp *Keypad) ConsumeKey() Key {
	kp.pending = false
	return kp.history[0]
}

// KeyPending reports whether a captured key has not been consumed
func (kp *Keypad) KeyPending() bool {
	return kp.pending
}

// History returns the captured keys, most recent first
func (kp *Keypad) History() [HistorySize]Key {
	return kp.history
}

// HistoryAt returns the nth most recent key (n wraps modulo HistorySize,
// so -1 is the oldest)
func (kp *Keypad) HistoryAt(n int) Key {
	return kp.history[(n%HistorySize+HistorySize)%HistorySize]
}

// DecodedKey returns the key from the last successful decode
func (kp *Keypad) DecodedKey() Key {
	return kp.key
}

// RawCode returns the raw code from the last decode
func (kp *Keypad) RawCode() uint8 {
	return kp.raw
}

// Columns returns the column pattern from the last sample
func (kp *Keypad) Columns() uint8 {
	return kp.cols
}

// RowPattern returns the currently asserted row pattern
func (kp *Keypad) RowPattern() uint8 {
	return kp.rowPattern
}

// Debouncing reports whether the debounce window is open
func (kp *Keypad) Debouncing() bool {
	return kp.debouncing
}

// ScanTimer exposes the row sequence timer
func (kp *Keypad) ScanTimer() *SoftTimer {
	return kp.scan
}

// DebounceTimer exposes the debounce timer
func (kp *Keypad) DebounceTimer() *SoftTimer {
	return kp.debounce
}

// Enable resumes scanning from the current time
func (kp *Keypad) Enable() {
	kp.enabled = true
	kp.scan.AdvanceFromNow()
}

// Disable stops all keypad processing without clearing state
func (kp *Keypad) Disable() {
	kp.enabled = false
}

// Enabled returns whether the keypad is enabled
func (kp *Keypad) Enabled() bool {
	return kp.enabled
}
