package core

import (
	"strings"
	"testing"
)

func TestEventRingOrder(t *testing.T) {
	ClearEventRing()

	for i := uint32(0); i < EventRingSize+5; i++ {
		RecordEvent(EvtParamSet, i, i, 0)
	}

	events := EventRing()
	if len(events) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(events))
	}
	if events[0].Clock != 5 || events[EventRingSize-1].Clock != EventRingSize+4 {
		t.Errorf("Ring should keep the newest events oldest first, got %d..%d",
			events[0].Clock, events[EventRingSize-1].Clock)
	}

	ClearEventRing()
	if len(EventRing()) != 0 {
		t.Error("ClearEventRing left events behind")
	}
}

func TestDebugOutput(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	if len(lines) != 0 {
		t.Error("Disabled debug output should be dropped")
	}

	SetDebugEnabled(true)
	defer SetDebugEnabled(false)
	DebugPrintln("shown")
	if len(lines) != 1 || lines[0] != "shown" {
		t.Errorf("Unexpected debug lines: %v", lines)
	}

	ClearEventRing()
	RecordEvent(EvtButtonPress, 42, 7, 0)
	lines = nil
	DumpEventRing()
	if len(lines) != 3 || !strings.Contains(lines[1], "BTN_PRESS clock=42 v1=7") {
		t.Errorf("Unexpected dump: %v", lines)
	}
}

func TestStrutil(t *testing.T) {
	if Itoa(-1250) != "-1250" || Itoa(0) != "0" || Utoa(62500) != "62500" {
		t.Error("Integer formatting mismatch")
	}
	if Hex8(0x4A) != "0x4A" {
		t.Errorf("Hex8(0x4A) = %s", Hex8(0x4A))
	}
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int32
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{0, 0, 255, 0},
		{255, 0, 255, 255},
	}
	for _, tt := range tests {
		if got := Saturate(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Saturate(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}

	if !InRange(uint32(100), 100, 2500) || !InRange(uint32(2500), 100, 2500) || InRange(uint32(99), 100, 2500) {
		t.Error("InRange bounds mismatch")
	}
}
