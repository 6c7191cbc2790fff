package core

import "testing"

func TestSoftTimerCheck(t *testing.T) {
	clk := &fakeClock{now: 1000}
	tm, err := NewSoftTimer(clk, 500, true)
	if err != nil {
		t.Fatalf("NewSoftTimer failed: %v", err)
	}

	if tm.Deadline() != 1500 {
		t.Errorf("Expected deadline 1500, got %d", tm.Deadline())
	}
	if tm.Check() {
		t.Error("Timer should not fire immediately after construction")
	}

	clk.advance(499)
	if tm.Check() {
		t.Error("Timer fired 1us early")
	}

	clk.advance(1)
	if !tm.Check() {
		t.Error("Timer should fire once the period elapsed")
	}
	// Check is pure: it stays true until an advance
	clk.advance(10000)
	if !tm.Check() || !tm.Check() {
		t.Error("Timer should stay expired until advanced")
	}
	if tm.Deadline() != 1500 {
		t.Errorf("Check mutated the deadline: %d", tm.Deadline())
	}
}

func TestSoftTimerAdvancePolicies(t *testing.T) {
	clk := &fakeClock{}
	tm, _ := NewSoftTimer(clk, 100, true)

	// Late calls do not drift a fixed-rate timer
	initial := tm.Deadline()
	for k := uint32(1); k <= 50; k++ {
		clk.advance(100 + k%7)
		tm.AdvanceByPeriod()
		if tm.Deadline() != initial+k*100 {
			t.Fatalf("After %d advances expected deadline %d, got %d", k, initial+k*100, tm.Deadline())
		}
	}

	clk.now = 123456
	tm.AdvanceFromNow()
	if tm.Deadline() != 123556 {
		t.Errorf("AdvanceFromNow: expected 123556, got %d", tm.Deadline())
	}
}

func TestSoftTimerWraparound(t *testing.T) {
	clk := &fakeClock{now: 0xFFFFFF00}
	tm, _ := NewSoftTimer(clk, 0x200, true)

	if tm.Deadline() != 0x100 {
		t.Fatalf("Expected wrapped deadline 0x100, got 0x%x", tm.Deadline())
	}
	if tm.Check() {
		t.Error("Wrapped deadline must compare as future")
	}

	clk.advance(0x1FF)
	if tm.Check() {
		t.Error("Timer fired before the wrapped deadline")
	}
	clk.advance(1)
	if !tm.Check() {
		t.Error("Timer should fire at the wrapped deadline")
	}
}

func TestSoftTimerEnableDisable(t *testing.T) {
	clk := &fakeClock{}
	tm, _ := NewSoftTimer(clk, 100, false)

	clk.advance(200)
	if tm.Check() {
		t.Error("Disabled timer must not fire")
	}

	tm.Enable()
	if !tm.Check() {
		t.Error("Enable must not reset the deadline")
	}

	tm.Disable()
	if tm.Check() || tm.Enabled() {
		t.Error("Disable should gate Check")
	}
	if tm.Deadline() != 100 {
		t.Errorf("Disable changed the deadline: %d", tm.Deadline())
	}

	tm.Restart()
	if !tm.Enabled() || tm.Deadline() != 300 {
		t.Errorf("Restart: enabled=%v deadline=%d", tm.Enabled(), tm.Deadline())
	}
}

func TestSoftTimerSetPeriod(t *testing.T) {
	clk := &fakeClock{}
	tm, _ := NewSoftTimer(clk, 100, true)

	if err := tm.SetPeriod(250); err != nil {
		t.Fatalf("SetPeriod failed: %v", err)
	}
	if tm.Deadline() != 100 {
		t.Error("SetPeriod must not move the current deadline")
	}
	tm.AdvanceByPeriod()
	if tm.Deadline() != 350 {
		t.Errorf("Expected deadline 350, got %d", tm.Deadline())
	}
}

func TestSoftTimerInvalidPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period uint32
	}{
		{"zero", 0},
		{"above max", MaxTimerPeriod + 1},
		{"all ones", 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSoftTimer(&fakeClock{}, tt.period, true); err != ErrInvalidPeriod {
				t.Errorf("NewSoftTimer(%d): expected ErrInvalidPeriod, got %v", tt.period, err)
			}

			tm, _ := NewSoftTimer(&fakeClock{}, 100, true)
			if err := tm.SetPeriod(tt.period); err != ErrInvalidPeriod {
				t.Errorf("SetPeriod(%d): expected ErrInvalidPeriod, got %v", tt.period, err)
			}
			if tm.Period() != 100 {
				t.Errorf("Rejected SetPeriod changed the period to %d", tm.Period())
			}
		})
	}

	if _, err := NewSoftTimer(&fakeClock{}, MaxTimerPeriod, true); err != nil {
		t.Errorf("MaxTimerPeriod should be accepted: %v", err)
	}
}

func TestSystemClock(t *testing.T) {
	SetTime(5000)
	tm, _ := NewSoftTimer(nil, 1000, true)

	if tm.Check() {
		t.Error("System clock timer fired early")
	}
	AdvanceTime(1000)
	if !tm.Check() {
		t.Error("System clock timer should fire after AdvanceTime")
	}

	TimerInit()
	AdvanceTime(TimerFromMS(3))
	if GetUptime() != 3000 {
		t.Errorf("Expected uptime 3000, got %d", GetUptime())
	}
}

func TestIsBefore(t *testing.T) {
	tests := []struct {
		a, b uint32
		want bool
	}{
		{1, 2, true},
		{2, 1, false},
		{5, 5, false},
		{0xFFFFFFF0, 0x10, true},
		{0x10, 0xFFFFFFF0, false},
	}

	for _, tt := range tests {
		if got := IsBefore(tt.a, tt.b); got != tt.want {
			t.Errorf("IsBefore(0x%x, 0x%x) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
