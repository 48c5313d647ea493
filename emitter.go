package mural

// Emitter is a tracked point source whose motion drives painting. It proxies
// a moving scene object: the host updates its world position every frame and
// the registry derives velocity and activity from consecutive samples.
//
// Emitter records are exclusively owned by the Registry; hold the Handle
// returned by Register, not the pointer.
type Emitter struct {
	// Name identifies the emitter in diagnostics.
	Name string
	// Position is the current world-space position.
	Position Vec3
	// Behavior selects and tunes the painting algorithm.
	Behavior Behavior

	// Source selects the color resolution strategy, with its inputs below.
	Source      ColorSource
	BaseColor   Color
	Override    Color
	Temperature float64
	// PaletteIndex positions the emitter within the population for the
	// rainbow strategy.
	PaletteIndex int

	// One-frame finite-difference state. Velocity is undefined until a
	// second update has occurred.
	prevPosition Vec3
	prevTime     float64
	hasPrev      bool

	velocity Vec3
	speed    float64
	active   bool

	// Sample pair used for this frame's velocity, captured before prev
	// state is overwritten so screen velocity can re-project both ends.
	framePrev Vec3
	frameDT   float64
}

// Velocity returns the last derived world-space velocity. ok is false until
// two position samples have been observed.
func (e *Emitter) Velocity() (Vec3, bool) {
	return e.velocity, e.hasPrev
}

// Active reports whether the emitter's velocity magnitude met the activity
// threshold during the most recent update.
func (e *Emitter) Active() bool {
	return e.active
}

// PrevPosition returns the previous position sample and its timestamp.
func (e *Emitter) PrevPosition() (Vec3, float64) {
	return e.prevPosition, e.prevTime
}
