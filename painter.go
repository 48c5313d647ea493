package mural

import (
	"math/rand/v2"
	"time"
)

// Options configures a Painter. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// BlendMode is the symbolic composite operator name ("source-over",
	// "lighter", "multiply", "screen", "destination-out").
	BlendMode string
	// FadeRate is the per-frame decay alpha in [0, 1].
	FadeRate float64
	// ClearInterval is the period of the bounding full clear.
	ClearInterval time.Duration
	// ActivityThreshold is the minimum emitter velocity magnitude
	// (world units/s) required to paint. Empirically tuned; retune per
	// target frame rate.
	ActivityThreshold float64
	// EventLog enables the bounded diagnostic paint-event ring.
	EventLog bool
	// RebuildEvery throttles backdrop geometry rebuilds to every k-th
	// frame. It never affects the paint/decay cadence, which runs every
	// frame. Zero means every frame.
	RebuildEvery int
	// Seed seeds the splatter RNG. Zero picks a fixed default so frames
	// are reproducible unless the host opts into variation.
	Seed uint64
	// Debug logs per-frame stats to stderr.
	Debug bool
}

// DefaultOptions returns the reference tuning.
func DefaultOptions() Options {
	return Options{
		BlendMode:         "source-over",
		FadeRate:          0.02,
		ClearInterval:     10 * time.Second,
		ActivityThreshold: 0.05,
		RebuildEvery:      3,
	}
}

// Painter is the frame controller. It owns the surface state and the
// emitter registry, and drives one frame at a time: refresh the viewport,
// update emitters, project and dispatch paint events for active ones, then
// decay and periodically clear the surface.
//
// Everything runs frame-synchronously on the thread driving the render
// loop; there are no goroutines and no locks.
type Painter struct {
	registry *Registry
	camera   *Camera
	surface  *Surface
	backdrop *Backdrop

	buf   opBuffer
	log   eventLog
	rng   *rand.Rand
	opts  Options
	stats frameStats

	frame    uint64
	lastTime float64
	started  bool
}

// NewPainter creates a painter over the given surface and camera. The
// painter takes ownership of the surface; dispose the painter, not the
// surface, when tearing down.
func NewPainter(surface *Surface, camera *Camera, opts Options) *Painter {
	surface.SetBlendMode(ParseBlendMode(opts.BlendMode))
	surface.FadeRate = opts.FadeRate
	surface.ClearInterval = opts.ClearInterval.Seconds()
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	return &Painter{
		registry: NewRegistry(opts.ActivityThreshold),
		camera:   camera,
		surface:  surface,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		opts:     opts,
	}
}

// Registry exposes the emitter registry for registration and updates.
func (p *Painter) Registry() *Registry {
	return p.registry
}

// Surface exposes the owned surface (nil image after Dispose).
func (p *Painter) Surface() *Surface {
	return p.surface
}

// Camera returns the camera reference used for projection.
func (p *Painter) Camera() *Camera {
	return p.camera
}

// SetCamera swaps the camera reference. Takes effect next frame.
func (p *Painter) SetCamera(c *Camera) {
	p.camera = c
}

// SetBackdrop attaches a decorative backdrop layered beneath the painting.
func (p *Painter) SetBackdrop(b *Backdrop) {
	p.backdrop = b
}

// Register adds an emitter and returns its handle.
func (p *Painter) Register(e *Emitter) Handle {
	return p.registry.Register(e)
}

// Unregister removes an emitter. Immediate at frame boundaries, queued
// mid-frame, idempotent either way.
func (p *Painter) Unregister(h Handle) {
	p.registry.Unregister(h)
}

// Move stages a new world position for the emitter; it is sampled at the
// next Advance.
func (p *Painter) Move(h Handle, pos Vec3) {
	if e := p.registry.Get(h); e != nil {
		e.Position = pos
	}
}

// Events returns the diagnostic paint-event ring, oldest first. Empty
// unless Options.EventLog is set.
func (p *Painter) Events() []PaintEvent {
	return p.log.recent()
}

// Dispose releases the surface. Subsequent Advance calls are no-ops.
func (p *Painter) Dispose() {
	p.surface.Dispose()
}

// Advance runs one frame at time now (seconds) against the current
// viewport: apply queued registry mutations, update every emitter, paint
// the active ones, decay, and clear when the periodic timer elapses.
func (p *Painter) Advance(now float64, vp Viewport) {
	if p.surface.Disposed() {
		return
	}
	p.stats = frameStats{}

	// (1) Refresh surface dimensions from the viewport. A zero-size
	// viewport (mid-layout) keeps the current surface.
	p.surface.Resize(int(vp.Width), int(vp.Height))
	w, h := p.surface.Size()
	vp = Viewport{Width: float64(w), Height: float64(h)}

	var dt float64
	if p.started {
		dt = now - p.lastTime
		if dt < 0 {
			dt = 0
		}
	}

	// Frame boundary: splice queued registrations/removals before touching
	// the live collection.
	p.registry.ApplyPending()

	// (2) Update position/velocity/activity for every emitter,
	// unconditionally, so velocity stays a strict one-frame difference.
	p.registry.Each(func(h Handle, e *Emitter) {
		p.registry.updateEmitter(e, e.Position, now)
		p.stats.updated++
	})

	// (3) Project, resolve, and dispatch for active emitters only.
	p.registry.Each(func(h Handle, e *Emitter) {
		if !e.active {
			p.stats.inactive++
			return
		}
		screen, ok := Project(e.Position, p.camera, vp)
		if !ok {
			// Rejected projection: skip this emitter this frame.
			p.stats.rejected++
			return
		}
		ev := p.makeEvent(e, screen, now, vp)
		before := len(p.buf.ops)
		renderBehavior(e.Behavior, ev, &p.buf, p.rng)
		if len(p.buf.ops) > before {
			p.stats.painted++
			if p.opts.EventLog {
				p.log.add(ev)
			}
		}
	})

	p.surface.Flush(&p.buf)

	// (4) Per-frame decay, every frame regardless of backdrop throttling.
	p.surface.Decay()

	// (5) Periodic full clear bounding long-session accumulation.
	if p.surface.StepClear(dt) {
		p.stats.cleared = true
	}

	if p.backdrop != nil {
		p.backdrop.Advance(dt, p.frame)
	}

	if p.opts.Debug {
		p.debugLog()
	}

	p.frame++
	p.lastTime = now
	p.started = true
}

// makeEvent assembles the resolved paint event for an active emitter.
func (p *Painter) makeEvent(e *Emitter, screen Vec2, now float64, vp Viewport) PaintEvent {
	base := Base{}
	if e.Behavior != nil {
		base = e.Behavior.Common()
	}
	ev := PaintEvent{
		Screen:  screen,
		Color:   ResolveColor(p.colorContext(e)),
		Size:    base.BrushSize,
		Opacity: base.Opacity,
		Time:    now,
	}
	if e.Behavior != nil {
		ev.Kind = e.Behavior.Kind()
	}
	if sv, ok := ScreenVelocity(e.Position, e.framePrev, e.frameDT, p.camera, vp); ok {
		ev.Velocity = sv
		ev.VelocityValid = true
	}
	return ev
}

// colorContext builds the resolver context from emitter state. The rainbow
// total is the registry population at the start of the pass, so hues stay
// stable across one generation.
func (p *Painter) colorContext(e *Emitter) ColorContext {
	return ColorContext{
		Source:      e.Source,
		Base:        e.BaseColor,
		Override:    e.Override,
		Temperature: e.Temperature,
		Index:       e.PaletteIndex,
		Total:       p.registry.Len(),
	}
}
