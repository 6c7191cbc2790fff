//go:build !tinygo

package core

var systemTicks uint32

// getSystemTicks returns the current tick counter (regular Go implementation)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks stores the tick counter (regular Go implementation)
func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}
