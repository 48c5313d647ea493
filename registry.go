package mural

import "math"

// velocityEpsilon floors the elapsed time in the velocity finite difference
// so a zero or negative dt cannot produce an infinite speed.
const velocityEpsilon = 1e-6

// Handle is an opaque reference to a registered emitter. The zero Handle is
// never valid. Handles survive slice growth and detect reuse through a
// generation counter, so a stale handle is ignored rather than touching
// whatever emitter later occupies the slot.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero (never valid) handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

type slot struct {
	emitter    *Emitter
	generation uint32
	occupied   bool
	// pending marks a slot registered mid-iteration; it joins iteration at
	// the next frame boundary.
	pending bool
}

// Registry owns emitter lifecycle and per-frame velocity/activity
// derivation. Register and Unregister requested while the registry is being
// iterated are queued and applied at frame boundaries, never splicing the
// live collection during iteration.
type Registry struct {
	slots []slot
	free  []uint32

	// Threshold is the minimum velocity magnitude (world units/s) for an
	// emitter to classify as active. An empirically tuned default; retune
	// per target frame rate.
	Threshold float64

	iterating      bool
	pendingRemoves []Handle
	hasPending     bool
}

// NewRegistry creates a registry with the given activity threshold.
func NewRegistry(threshold float64) *Registry {
	return &Registry{Threshold: threshold}
}

// Register adds an emitter and returns its handle. When called during
// iteration the emitter is queued and only joins iteration at the next
// frame boundary.
func (r *Registry) Register(e *Emitter) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		idx = uint32(len(r.slots) - 1)
	}
	s := &r.slots[idx]
	s.emitter = e
	s.generation++
	s.occupied = true
	if r.iterating {
		s.pending = true
		r.hasPending = true
	}
	return Handle{index: idx, generation: s.generation}
}

// Unregister removes the emitter for h. Idempotent: stale or zero handles
// are ignored. During iteration the removal is queued and applied at the
// next frame boundary.
func (r *Registry) Unregister(h Handle) {
	if r.lookup(h) == nil {
		return
	}
	if r.iterating {
		r.pendingRemoves = append(r.pendingRemoves, h)
		r.hasPending = true
		return
	}
	r.release(h)
}

// release frees the slot for h immediately.
func (r *Registry) release(h Handle) {
	s := &r.slots[h.index]
	s.emitter = nil
	s.occupied = false
	s.pending = false
	r.free = append(r.free, h.index)
}

// ApplyPending applies queued registrations and removals. The frame
// controller calls this at each frame boundary; it must not be called
// mid-iteration.
func (r *Registry) ApplyPending() {
	if !r.hasPending {
		return
	}
	for _, h := range r.pendingRemoves {
		if r.lookup(h) != nil {
			r.release(h)
		}
	}
	r.pendingRemoves = r.pendingRemoves[:0]
	for i := range r.slots {
		r.slots[i].pending = false
	}
	r.hasPending = false
}

// Get returns the emitter for h, or nil for a stale or zero handle.
func (r *Registry) Get(h Handle) *Emitter {
	return r.lookup(h)
}

func (r *Registry) lookup(h Handle) *Emitter {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil
	}
	s := &r.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil
	}
	return s.emitter
}

// Len returns the number of registered emitters, including ones still
// pending their first frame.
func (r *Registry) Len() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].occupied {
			n++
		}
	}
	return n
}

// Update records a new position sample for h at time now (seconds) and
// derives velocity and activity. Velocity is a strict one-frame finite
// difference: previousPosition/previousTime advance every call regardless
// of the activity classification, so velocity is never more than one
// sample stale.
func (r *Registry) Update(h Handle, worldPos Vec3, now float64) {
	e := r.lookup(h)
	if e == nil {
		return
	}
	r.updateEmitter(e, worldPos, now)
}

func (r *Registry) updateEmitter(e *Emitter, worldPos Vec3, now float64) {
	if e.hasPrev {
		dt := math.Max(now-e.prevTime, velocityEpsilon)
		e.framePrev = e.prevPosition
		e.frameDT = dt
		e.velocity = worldPos.Sub(e.prevPosition).Scale(1 / dt)
		e.speed = e.velocity.Len()
		e.active = e.speed >= r.Threshold
	} else {
		// First sample: velocity undefined, never active.
		e.velocity = Vec3{}
		e.speed = 0
		e.active = false
	}

	e.Position = worldPos
	e.prevPosition = worldPos
	e.prevTime = now
	e.hasPrev = true
}

// Each calls fn for every live emitter. Emitters registered mid-iteration
// are skipped until the next frame boundary. fn may call Register and
// Unregister freely; mutations are queued.
func (r *Registry) Each(fn func(h Handle, e *Emitter)) {
	r.iterating = true
	for i := range r.slots {
		s := &r.slots[i]
		if !s.occupied || s.pending {
			continue
		}
		fn(Handle{index: uint32(i), generation: s.generation}, s.emitter)
	}
	r.iterating = false
}
