package mural

// PaintEvent is one resolved invocation of a painting algorithm: screen
// position, color, size, and opacity are already final when a brush renderer
// consumes it. Events are ephemeral values; the painter may mirror them into
// a bounded ring for diagnostics, but they carry no ownership semantics.
type PaintEvent struct {
	// Screen is the projected pixel position.
	Screen Vec2
	// Color is the resolved mark color.
	Color Color
	// Size is the resolved mark size in pixels.
	Size float64
	// Opacity is the resolved base opacity in [0, 1].
	Opacity float64
	// Kind names the behavior that produced the event.
	Kind BehaviorKind
	// Time is the frame timestamp in seconds.
	Time float64
	// Velocity is the screen-space velocity in pixels/second.
	// Only meaningful when VelocityValid is true.
	Velocity      Vec2
	VelocityValid bool
	// Pressure scales brush-type marks; zero means full pressure.
	Pressure float64
}

// Paint-event ring bounds. The log grows to eventLogCap and is then trimmed
// back to eventLogTrim, bounding memory over long sessions.
const (
	eventLogCap  = 1000
	eventLogTrim = 500
)

// eventLog is a bounded diagnostic buffer of recent paint events.
type eventLog struct {
	events []PaintEvent
}

// add appends an event, trimming the oldest half when the cap is reached.
func (l *eventLog) add(ev PaintEvent) {
	l.events = append(l.events, ev)
	if len(l.events) >= eventLogCap {
		n := copy(l.events, l.events[len(l.events)-eventLogTrim:])
		l.events = l.events[:n]
	}
}

// recent returns the buffered events, oldest first. The returned slice is
// valid until the next add.
func (l *eventLog) recent() []PaintEvent {
	return l.events
}
