package mural

import (
	"math"
	"math/rand/v2"
)

// defaultTrailScale converts screen velocity (pixels/second) into per-point
// backward offset, spacing trail points roughly one frame apart at 60 fps.
const defaultTrailScale = 1.0 / 60

// renderBehavior dispatches a paint event to the renderer for its behavior
// variant, appending stroke ops to buf. A disabled or malformed behavior is
// a no-op; the switch is exhaustive over the closed Behavior set.
func renderBehavior(b Behavior, ev PaintEvent, buf *opBuffer, rng *rand.Rand) {
	if b == nil || !b.Common().Enabled || b.Validate() != nil {
		return
	}
	switch v := b.(type) {
	case Trail:
		renderTrail(v, ev, buf)
	case Stamp:
		renderStamp(v, ev, buf)
	case Brush:
		renderBrush(v, ev, buf)
	case Splatter:
		renderSplatter(v, ev, buf, rng)
	case Ripple:
		renderRipple(v, ev, buf)
	case Glow:
		renderGlow(v, ev, buf)
	}
}

// markColor applies the texture opacity adjustment to the event color and
// returns the adjusted color plus the blur radius.
func markColor(base Base, ev PaintEvent, size float64) (Color, float64) {
	mul, blur := textureAdjust(base.Texture, size)
	c := ev.Color
	c.A = clamp01(ev.Opacity * mul)
	return c, blur
}

// trailPoints builds the trailing point positions: point i sits at the
// event position offset backward by -velocity*i*scale.
func trailPoints(t Trail, ev PaintEvent) []Vec2 {
	scale := t.Scale
	if scale <= 0 {
		scale = defaultTrailScale
	}
	vel := Vec2{}
	if ev.VelocityValid {
		vel = ev.Velocity
	}
	pts := make([]Vec2, t.TrailLength)
	for i := range pts {
		pts[i] = ev.Screen.Add(vel.Scale(-float64(i) * scale))
	}
	return pts
}

// renderTrail strokes a polyline of TrailLength points whose width shrinks
// linearly from TrailWidth to 0 and whose opacity decays geometrically:
// opacity[i] = base * fade^i.
func renderTrail(t Trail, ev PaintEvent, buf *opBuffer) {
	c, blur := markColor(t.Base, ev, t.TrailWidth)

	opacities := make([]float64, t.TrailLength)
	o := c.A
	for i := range opacities {
		opacities[i] = o
		o *= t.TrailFade
	}

	buf.push(strokeOp{
		kind:      opPolyline,
		width:     t.TrailWidth,
		blur:      blur,
		color:     c,
		points:    trailPoints(t, ev),
		opacities: opacities,
	})
}

// renderStamp places one filled primitive of StampSize at flat opacity.
func renderStamp(st Stamp, ev PaintEvent, buf *opBuffer) {
	c, blur := markColor(st.Base, ev, st.StampSize)
	buf.push(strokeOp{
		kind:   opFillShape,
		center: ev.Screen,
		radius: st.StampSize,
		blur:   blur,
		color:  c,
		shape:  st.Shape,
	})
}

// renderBrush fills a circle of radius BrushSize * pressure. The event
// pressure wins over the behavior's; zero means full pressure.
func renderBrush(b Brush, ev PaintEvent, buf *opBuffer) {
	pressure := ev.Pressure
	if pressure <= 0 {
		pressure = b.Pressure
	}
	if pressure <= 0 {
		pressure = 1
	}
	c, blur := markColor(b.Base, ev, b.BrushSize)
	buf.push(strokeOp{
		kind:   opFillCircle,
		center: ev.Screen,
		radius: b.BrushSize * pressure,
		blur:   blur,
		color:  c,
	})
}

// renderSplatter scatters SplatterCount droplets at random angle and
// distance within SplatterSpread, each with radius in [0.2, 1.0]*BrushSize.
func renderSplatter(sp Splatter, ev PaintEvent, buf *opBuffer, rng *rand.Rand) {
	c, blur := markColor(sp.Base, ev, sp.BrushSize)
	for i := 0; i < sp.SplatterCount; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * sp.SplatterSpread
		r := (0.2 + 0.8*rng.Float64()) * sp.BrushSize
		buf.push(strokeOp{
			kind: opFillCircle,
			center: Vec2{
				X: ev.Screen.X + math.Cos(angle)*dist,
				Y: ev.Screen.Y + math.Sin(angle)*dist,
			},
			radius: r,
			blur:   blur,
			color:  c,
		})
	}
}

// renderRipple strokes an expanding ring. The radius grows with elapsed
// time at RippleSpeed and wraps modulo BrushSize; opacity fades linearly to
// 0 as the radius approaches BrushSize, so the ring repeatedly expands and
// dissolves.
func renderRipple(r Ripple, ev PaintEvent, buf *opBuffer) {
	radius := math.Mod(ev.Time*r.RippleSpeed, r.BrushSize)
	c, blur := markColor(r.Base, ev, r.BrushSize)
	c.A *= 1 - radius/r.BrushSize
	buf.push(strokeOp{
		kind:   opStrokeCircle,
		center: ev.Screen,
		radius: radius,
		width:  math.Max(1, r.BrushSize*0.1),
		blur:   blur,
		color:  c,
	})
}

// renderGlow fills a feathered radial-gradient disc, opaque at the center
// and transparent at the edge, with radius GlowRadius (default 2*BrushSize).
func renderGlow(g Glow, ev PaintEvent, buf *opBuffer) {
	radius := g.EffectiveRadius()
	c, blur := markColor(g.Base, ev, radius)
	buf.push(strokeOp{
		kind:   opGlowDisc,
		center: ev.Screen,
		radius: radius + blur,
		color:  c,
	})
}
