package core

import "errors"

// ErrInvalidPeriod is returned for a zero period or one the wrap-safe
// comparison cannot order (above MaxTimerPeriod)
var ErrInvalidPeriod = errors.New("timer period out of range")

// SoftTimer is a polled deadline used by every cooperative component.
//
// Check never mutates state; the owner decides how to move to the next
// deadline. AdvanceByPeriod keeps a fixed rate (row scan, waveform samples),
// AdvanceFromNow restarts the window from the current time (debounce).
type SoftTimer struct {
	clock    Clock
	deadline uint32 // Absolute time of the next expiry (us)
	period   uint32 // Period in us
	enabled  bool
}

func validPeriod(us uint32) bool {
	return us != 0 && us <= MaxTimerPeriod
}

// NewSoftTimer creates a timer whose first deadline is now + periodUS.
// A nil clock selects SystemClock.
func NewSoftTimer(clock Clock, periodUS uint32, enabled bool) (*SoftTimer, error) {
	if !validPeriod(periodUS) {
		return nil, ErrInvalidPeriod
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &SoftTimer{
		clock:    clock,
		deadline: clock.NowUS() + periodUS,
		period:   periodUS,
		enabled:  enabled,
	}, nil
}

// Check reports whether the timer is enabled and its deadline has passed
func (t *SoftTimer) Check() bool {
	return t.enabled && !IsBefore(t.clock.NowUS(), t.deadline)
}

// AdvanceFromNow sets the next deadline to now + period
func (t *SoftTimer) AdvanceFromNow() {
	t.deadline = t.clock.NowUS() + t.period
}

// AdvanceByPeriod moves the deadline forward by exactly one period
func (t *SoftTimer) AdvanceByPeriod() {
	t.deadline += t.period
}

// SetPeriod changes the period used by the next advance.
// An invalid period is rejected and the current one kept.
func (t *SoftTimer) SetPeriod(us uint32) error {
	if !validPeriod(us) {
		return ErrInvalidPeriod
	}
	t.period = us
	return nil
}

// Restart opens a fresh window from now and enables the timer
func (t *SoftTimer) Restart() {
	t.AdvanceFromNow()
	t.enabled = true
}

// Enable gates Check on without touching the deadline
func (t *SoftTimer) Enable() {
	t.enabled = true
}

// Disable gates Check off without touching the deadline
func (t *SoftTimer) Disable() {
	t.enabled = false
}

// Enabled returns whether the timer is enabled
func (t *SoftTimer) Enabled() bool {
	return t.enabled
}

// Period returns the current period in microseconds
func (t *SoftTimer) Period() uint32 {
	return t.period
}

// Now reads the timer's clock
func (t *SoftTimer) Now() uint32 {
	return t.clock.NowUS()
}

// Deadline returns the absolute time of the next expiry
func (t *SoftTimer) Deadline() uint32 {
	return t.deadline
}
