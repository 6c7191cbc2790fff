package core

import "testing"

func newTestButton(t *testing.T) (*Button, *mockGPIO, *fakeClock) {
	t.Helper()

	gpio := newMockGPIO()
	clk := &fakeClock{}
	b, err := NewButton(gpio, clk, ButtonConfig{Pin: 0, Enabled: true})
	if err != nil {
		t.Fatalf("NewButton failed: %v", err)
	}
	return b, gpio, clk
}

func TestButtonConfigure(t *testing.T) {
	b, gpio, _ := newTestButton(t)

	if gpio.isOut[0] || gpio.pulls[0] != PullUp {
		t.Error("Button pin should be a pulled-up input")
	}
	if b.Pressed() {
		t.Error("Idle pulled-up button should read released")
	}
	if b.DebounceTimer().Period() != DefaultButtonDebounceUS {
		t.Errorf("Expected default debounce %d, got %d", DefaultButtonDebounceUS, b.DebounceTimer().Period())
	}
}

func TestButtonShortPress(t *testing.T) {
	b, gpio, clk := newTestButton(t)

	gpio.in[0] = false // pressed
	b.Poll()
	if !b.PressPending() || !b.Debouncing() || !b.IsDoubleZero() {
		t.Fatalf("After press: pending=%v debouncing=%v zero=%v", b.PressPending(), b.Debouncing(), b.IsDoubleZero())
	}

	gpio.in[0] = true // released
	clk.advance(DefaultButtonDebounceUS - 1)
	b.Poll()
	if !b.Debouncing() {
		t.Fatal("Window closed before the debounce period")
	}

	clk.advance(1)
	b.Poll()
	if b.Debouncing() || b.IsDoubleZero() {
		t.Error("Released sample at the first tick should end the window")
	}

	if !b.ConsumePress() {
		t.Error("ConsumePress should report the press")
	}
	if b.ConsumePress() {
		t.Error("ConsumePress should report a press only once")
	}
}

func TestButtonHeldPress(t *testing.T) {
	b, gpio, clk := newTestButton(t)

	gpio.in[0] = false
	b.Poll()
	b.ConsumePress()

	// Still held at the first tick: flag cleared, window stays open
	clk.advance(DefaultButtonDebounceUS)
	b.Poll()
	if !b.Debouncing() || b.IsDoubleZero() {
		t.Fatalf("Held tick: debouncing=%v zero=%v", b.Debouncing(), b.IsDoubleZero())
	}

	// First released sample sets the flag
	gpio.in[0] = true
	clk.advance(DefaultButtonDebounceUS)
	b.Poll()
	if !b.Debouncing() || !b.IsDoubleZero() {
		t.Fatalf("First release: debouncing=%v zero=%v", b.Debouncing(), b.IsDoubleZero())
	}

	// Bounce back to pressed clears it again
	gpio.in[0] = false
	clk.advance(DefaultButtonDebounceUS)
	b.Poll()
	if !b.Debouncing() || b.IsDoubleZero() {
		t.Fatal("Bounce should clear the flag and keep the window open")
	}

	gpio.in[0] = true
	clk.advance(DefaultButtonDebounceUS)
	b.Poll()
	clk.advance(DefaultButtonDebounceUS)
	b.Poll()
	if b.Debouncing() {
		t.Error("Two released samples should end the window")
	}
	if b.PressPending() {
		t.Error("A held press must be reported only once")
	}
}

func TestButtonDisabled(t *testing.T) {
	b, gpio, _ := newTestButton(t)
	b.Disable()

	gpio.in[0] = false
	b.Poll()
	if b.PressPending() {
		t.Error("Disabled button must not capture")
	}

	b.Enable()
	b.Poll()
	if !b.PressPending() {
		t.Error("Enabled button should capture")
	}
}

func TestButtonActiveHigh(t *testing.T) {
	gpio := newMockGPIO()
	b, err := NewButton(gpio, &fakeClock{}, ButtonConfig{Pin: 4, ActiveHigh: true, Enabled: true})
	if err != nil {
		t.Fatalf("NewButton failed: %v", err)
	}
	if gpio.pulls[4] != PullDown {
		t.Error("Active-high button should be pulled down")
	}

	gpio.in[4] = true
	if !b.Pressed() {
		t.Error("High level should read pressed")
	}
}
