//go:build rp2040 || rp2350

package main

import (
	"frontpanel/core"
	"runtime/volatile"
	"unsafe"
)

// RP2040/RP2350 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// HardwareClock reads the 1MHz timer directly. It lets soft timers see
// current time even between UpdateSystemTime calls.
type HardwareClock struct{}

// NowUS returns the low 32 bits of the microsecond counter
func (HardwareClock) NowUS() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime updates the core timer with hardware time
// Called once per main loop pass
func UpdateSystemTime() {
	core.SetTime(timerRAWL.Get())
}
