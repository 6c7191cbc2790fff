package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// PanelEvent captures a panel event for post-mortem analysis
type PanelEvent struct {
	EventType uint8  // Event type code
	Clock     uint32 // System clock at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtKeyCapture      = 1 // Key pushed into history (v1=key, v2=raw code)
	EvtKeyIgnored      = 2 // Columns asserted but raw code unmapped (v1=raw code)
	EvtDebounceRelease = 3 // Keypad debounce window closed
	EvtButtonPress     = 4 // Button press captured (v1=pin)
	EvtButtonRelease   = 5 // Button release confirmed (v1=pin)
	EvtTableRebuild    = 6 // Sample table recomputed (v1=waveform)
	EvtParamSet        = 7 // Generator parameter committed (v1=param, v2=value)
	EvtParamRejected   = 8 // Entered value outside limits (v1=param, v2=value)
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]PanelEvent
	eventRingHead uint8       // Next write position
	eventsEnabled bool = true // Always capture events
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, stderr, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer.
// Constant time; the oldest entry is overwritten when full.
func RecordEvent(eventType uint8, clock, value1, value2 uint32) {
	if !eventsEnabled {
		return
	}
	idx := eventRingHead
	eventRing[idx] = PanelEvent{
		EventType: eventType,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// EventRing returns the recorded events, oldest first
func EventRing() []PanelEvent {
	out := make([]PanelEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// eventName returns the printable name of an event type
func eventName(t uint8) string {
	switch t {
	case EvtKeyCapture:
		return "KEY_CAPTURE"
	case EvtKeyIgnored:
		return "KEY_IGNORED"
	case EvtDebounceRelease:
		return "DBNC_RELEASE"
	case EvtButtonPress:
		return "BTN_PRESS"
	case EvtButtonRelease:
		return "BTN_RELEASE"
	case EvtTableRebuild:
		return "TABLE_REBUILD"
	case EvtParamSet:
		return "PARAM_SET"
	case EvtParamRejected:
		return "PARAM_REJECT"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing outputs the event ring buffer through the debug writer
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENT] === Event Ring Dump ===")
	for _, evt := range EventRing() {
		debugPrintln("[EVENT] " + eventName(evt.EventType) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENT] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = PanelEvent{}
	}
	eventRingHead = 0
}
