package core

// The panel clock runs at 1MHz: one tick is one microsecond
const (
	TimerFreq = 1000000

	// MaxTimerPeriod is the longest period the wrap-safe comparison can order
	MaxTimerPeriod = 1<<31 - 1
)

var bootTime uint32

// Clock is the monotonic microsecond time source consumed by soft timers.
// Implementations wrap at 2^32.
type Clock interface {
	NowUS() uint32
}

// SystemClock reads the global tick counter maintained by the target
type SystemClock struct{}

// NowUS returns the current system time in microseconds
func (SystemClock) NowUS() uint32 {
	return GetTime()
}

// GetTime returns the current system time in microseconds
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(us uint32) {
	setSystemTicks(us)
}

// AdvanceTime moves the system time forward by us microseconds
func AdvanceTime(us uint32) {
	setSystemTicks(getSystemTicks() + us)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return ms * (TimerFreq / 1000)
}

// TimerInit records the boot time for uptime calculation
func TimerInit() {
	bootTime = GetTime()
}

// GetUptime returns microseconds since TimerInit, modulo 2^32
func GetUptime() uint32 {
	return GetTime() - bootTime
}

// IsBefore reports whether time a comes before time b.
// The difference is read as signed so both sides may straddle a wrap.
func IsBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
