//go:build tinygo

package core

import "sync/atomic"

// The hardware timer may be sampled from an interrupt on some boards
var systemTicksValue uint32

// getSystemTicks returns the current tick counter
func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicksValue)
}

// setSystemTicks stores the tick counter
func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicksValue, ticks)
}
