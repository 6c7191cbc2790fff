// Single push button with polled debounce
package core

const DefaultButtonDebounceUS = 50000

// ButtonConfig holds the wiring and timing of a push button
type ButtonConfig struct {
	Pin        GPIOPin
	DebounceUS uint32 // Sample period while debouncing (0 = DefaultButtonDebounceUS)
	ActiveHigh bool   // Pressed reads high with a pull-down; default is pull-up, pressed low
	Enabled    bool
}

// Button captures a press and confirms the release with two consecutive
// released samples taken at the debounce period. The double-zero flag tracks
// the first released sample.
type Button struct {
	ZeroFlag

	gpio GPIODriver
	cfg  ButtonConfig

	pending    bool // A press has not been consumed
	debouncing bool // Waiting for the release to be confirmed
	enabled    bool

	debounce *SoftTimer
}

// NewButton configures the button input and returns an idle button
func NewButton(gpio GPIODriver, clock Clock, cfg ButtonConfig) (*Button, error) {
	if cfg.DebounceUS == 0 {
		cfg.DebounceUS = DefaultButtonDebounceUS
	}

	debounce, err := NewSoftTimer(clock, cfg.DebounceUS, false)
	if err != nil {
		return nil, err
	}

	b := &Button{
		gpio:     gpioOrDefault(gpio),
		cfg:      cfg,
		enabled:  cfg.Enabled,
		debounce: debounce,
	}

	pull := PullUp
	if cfg.ActiveHigh {
		pull = PullDown
	}
	if err := b.gpio.ConfigureInput(cfg.Pin, pull); err != nil {
		return nil, err
	}

	return b, nil
}

// Pressed reads the pin and reports whether the button is held
func (b *Button) Pressed() bool {
	return b.gpio.ReadPin(b.cfg.Pin) == b.cfg.ActiveHigh
}

// Poll runs one cooperative pass of the button state machine
func (b *Button) Poll() {
	if !b.enabled {
		return
	}

	if !b.debouncing {
		if b.Pressed() {
			b.pending = true
			b.debouncing = true
			b.SetDoubleZeroFlag()
			b.debounce.Restart()
			RecordEvent(EvtButtonPress, b.debounce.Now(), uint32(b.cfg.Pin), 0)
		}
		return
	}

	if !b.debounce.Check() {
		return
	}
	b.debounce.AdvanceByPeriod()

	released := !b.Pressed()
	if b.IsDoubleZero() {
		if released {
			b.debounce.Disable()
			b.debouncing = false
			b.ClearDoubleZeroFlag()
			RecordEvent(EvtButtonRelease, b.debounce.Now(), uint32(b.cfg.Pin), 0)
		} else {
			b.ClearDoubleZeroFlag()
		}
	} else if released {
		b.SetDoubleZeroFlag()
	}
}

// ConsumePress returns true once per captured press
func (b *Button) ConsumePress() bool {
	p := b.pending
	b.pending = false
	return p
}

// PressPending reports whether a press has not been consumed
func (b *Button) PressPending() bool {
	return b.pending
}

// Debouncing reports whether the button waits for a confirmed release
func (b *Button) Debouncing() bool {
	return b.debouncing
}

// DebounceTimer exposes the debounce timer
func (b *Button) DebounceTimer() *SoftTimer {
	return b.debounce
}

// Enable turns button processing on
func (b *Button) Enable() {
	b.enabled = true
}

// Disable turns button processing off without clearing state
func (b *Button) Disable() {
	b.enabled = false
}
