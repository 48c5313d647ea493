package mural

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrSurfaceUnavailable is returned when no usable drawing surface can be
// created at construction time. It is the only fatal error in the system;
// everything else degrades per emitter, per frame.
var ErrSurfaceUnavailable = errors.New("mural: drawing surface unavailable")

// whitePixel is a 1x1 white image used as the texture for solid fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(ColorWhite.toRGBA())
}

// opKind identifies a stroke op recorded by a brush renderer.
type opKind uint8

const (
	opFillCircle   opKind = iota // filled disc
	opStrokeCircle               // ring outline
	opPolyline                   // tapering multi-point stroke (trail)
	opFillShape                  // filled stamp polygon
	opGlowDisc                   // feathered radial-gradient disc
)

// strokeOp is one rasterization instruction. Brush renderers emit ops into
// a frame buffer; the surface rasterizes them in order at flush time. Ops
// are plain values so tests can assert on geometry without reading pixels.
type strokeOp struct {
	kind   opKind
	center Vec2
	radius float64
	width  float64 // stroke width (ring), head width (polyline)
	blur   float64 // texture blur radius; 0 means crisp
	color  Color   // alpha carries the resolved opacity
	shape  StampShape

	// Polyline-only: trailing points and their per-point opacities.
	points    []Vec2
	opacities []float64
}

// opBuffer accumulates stroke ops for one frame. Reused across frames; the
// backing arrays reach a high-water mark and stop allocating.
type opBuffer struct {
	ops []strokeOp
}

// reset empties the buffer, keeping capacity.
func (b *opBuffer) reset() {
	b.ops = b.ops[:0]
}

func (b *opBuffer) push(op strokeOp) {
	b.ops = append(b.ops, op)
}

// Surface owns the persistent overlay image that accumulates painted marks
// across frames: the active composite operator, the per-frame decay step,
// and the periodic full-clear timer that bounds pathological accumulation
// over long sessions.
type Surface struct {
	img  *ebiten.Image
	w, h int

	blend BlendMode
	// FadeRate is the per-frame decay alpha in [0, 1]. Each Decay pass
	// multiplies existing pixel alpha by (1 - FadeRate).
	FadeRate float64
	// ClearInterval is the period of the full clear in seconds.
	// Zero or negative disables periodic clears.
	ClearInterval float64

	clearTimer float64
	disposed   bool

	// Cached textures, keyed by quantized radius (teacher's circle cache).
	featherCache map[int]*ebiten.Image

	// Scratch vertex/index buffers for path rasterization.
	verts []ebiten.Vertex
	inds  []uint16
}

// NewSurface creates a surface sized to the rendered layout box, falling
// back to the host window dimensions when the layout reports zero size.
// Returns ErrSurfaceUnavailable when neither yields a usable area.
func NewSurface(layoutW, layoutH, windowW, windowH int, blend BlendMode) (*Surface, error) {
	w, h := layoutW, layoutH
	if w <= 0 || h <= 0 {
		w, h = windowW, windowH
	}
	if w <= 0 || h <= 0 {
		return nil, ErrSurfaceUnavailable
	}
	return &Surface{
		img:           ebiten.NewImage(w, h),
		w:             w,
		h:             h,
		blend:         blend,
		FadeRate:      0.02,
		ClearInterval: 10,
	}, nil
}

// Size returns the surface pixel dimensions.
func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// BlendMode returns the active composite operator.
func (s *Surface) BlendMode() BlendMode {
	return s.blend
}

// SetBlendMode changes the composite operator for subsequent strokes.
func (s *Surface) SetBlendMode(b BlendMode) {
	s.blend = b
}

// Image returns the underlying image for final presentation, or nil after
// Dispose.
func (s *Surface) Image() *ebiten.Image {
	if s.disposed {
		return nil
	}
	return s.img
}

// Resize re-derives the pixel dimensions from the current layout box and
// re-applies the composite operator. Resizing to the current size or to a
// zero area is a no-op; painted content does not survive a real resize.
func (s *Surface) Resize(w, h int) {
	if s.disposed || w <= 0 || h <= 0 || (w == s.w && h == s.h) {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(w, h)
	s.w, s.h = w, h
	// Blend state is carried in s.blend and re-applied on every draw, so a
	// recreated image cannot lose the operator.
}

// Dispose releases the surface image. All later calls on the surface are
// no-ops. Idempotent.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.img.Deallocate()
	for _, img := range s.featherCache {
		img.Deallocate()
	}
	s.featherCache = nil
}

// Disposed reports whether Dispose has been called.
func (s *Surface) Disposed() bool {
	return s.disposed
}

// Clear wipes all painted marks immediately.
func (s *Surface) Clear() {
	if s.disposed {
		return
	}
	s.img.Clear()
}

// Decay composites a full-surface rectangle with the destination-out
// operator at alpha = FadeRate, exponentially fading prior strokes toward
// transparent. Call once per frame.
func (s *Surface) Decay() {
	if s.disposed || s.FadeRate <= 0 {
		return
	}
	a := float32(clamp01(s.FadeRate))
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(s.w), float64(s.h))
	op.ColorScale.Scale(a, a, a, a)
	op.Blend = BlendErase.EbitenBlend()
	s.img.DrawImage(whitePixel, &op)
}

// DecayFactor returns the multiplier one Decay pass applies to existing
// pixel alpha: destination-out at alpha f scales the destination by (1-f),
// so repeated passes converge exponentially toward transparent.
func (s *Surface) DecayFactor() float64 {
	return 1 - clamp01(s.FadeRate)
}

// StepClear advances the periodic-clear timer by dt seconds. When the
// interval elapses the surface is fully cleared and the timer resets.
// Reports whether a clear happened this step.
func (s *Surface) StepClear(dt float64) bool {
	if s.disposed || s.ClearInterval <= 0 {
		return false
	}
	s.clearTimer += dt
	if s.clearTimer < s.ClearInterval {
		return false
	}
	s.clearTimer = 0
	s.img.Clear()
	return true
}

// Flush rasterizes the buffered stroke ops onto the surface in order using
// the active composite operator, then resets the buffer.
func (s *Surface) Flush(buf *opBuffer) {
	if s.disposed {
		buf.reset()
		return
	}
	blend := s.blend.EbitenBlend()
	for i := range buf.ops {
		op := &buf.ops[i]
		switch op.kind {
		case opFillCircle:
			s.drawFillCircle(op, blend)
		case opStrokeCircle:
			s.drawStrokeCircle(op, blend)
		case opPolyline:
			s.drawPolyline(op, blend)
		case opFillShape:
			s.drawShape(op, blend)
		case opGlowDisc:
			s.drawGlow(op, blend)
		}
	}
	buf.reset()
}

// fillPath rasterizes a filled path in the given straight-alpha color.
func (s *Surface) fillPath(p *vector.Path, c Color, blend ebiten.Blend) {
	s.verts, s.inds = p.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	s.drawVerts(c, blend)
}

// strokePath rasterizes a stroked path outline.
func (s *Surface) strokePath(p *vector.Path, width float64, c Color, blend ebiten.Blend) {
	sop := &vector.StrokeOptions{Width: float32(width)}
	s.verts, s.inds = p.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], sop)
	s.drawVerts(c, blend)
}

func (s *Surface) drawVerts(c Color, blend ebiten.Blend) {
	r := float32(clamp01(c.R))
	g := float32(clamp01(c.G))
	b := float32(clamp01(c.B))
	a := float32(clamp01(c.A))
	for i := range s.verts {
		s.verts[i].SrcX = 0.5
		s.verts[i].SrcY = 0.5
		s.verts[i].ColorR = r
		s.verts[i].ColorG = g
		s.verts[i].ColorB = b
		s.verts[i].ColorA = a
	}
	top := &ebiten.DrawTrianglesOptions{
		Blend:     blend,
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	}
	s.img.DrawTriangles(s.verts, s.inds, whitePixel, top)
}

func (s *Surface) drawFillCircle(op *strokeOp, blend ebiten.Blend) {
	if op.blur > 0 {
		// Blurred fills composite the feathered texture at the
		// blur-expanded radius instead of a crisp disc.
		s.drawFeathered(op.center, op.radius+op.blur, op.color, blend)
		return
	}
	var p vector.Path
	p.Arc(float32(op.center.X), float32(op.center.Y), float32(op.radius), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	s.fillPath(&p, op.color, blend)
}

func (s *Surface) drawStrokeCircle(op *strokeOp, blend ebiten.Blend) {
	var p vector.Path
	p.Arc(float32(op.center.X), float32(op.center.Y), float32(op.radius), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	if op.blur > 0 {
		// Soft halo pass behind the crisp ring.
		halo := op.color
		halo.A *= 0.3
		s.strokePath(&p, op.width+2*op.blur, halo, blend)
	}
	s.strokePath(&p, op.width, op.color, blend)
}

// drawPolyline strokes a trail segment by segment: the width tapers
// linearly from op.width at the head to 0 at the tail, and each segment
// takes the opacity of its leading point.
func (s *Surface) drawPolyline(op *strokeOp, blend ebiten.Blend) {
	n := len(op.points)
	if n < 2 {
		if n == 1 {
			dot := strokeOp{center: op.points[0], radius: math.Max(op.width/2, 0.5), color: op.color, blur: op.blur}
			s.drawFillCircle(&dot, blend)
		}
		return
	}
	for i := 0; i < n-1; i++ {
		frac := 1 - float64(i)/float64(n-1)
		w := math.Max(op.width*frac, 0.1)
		c := op.color
		if i < len(op.opacities) {
			c.A = op.opacities[i]
		}
		if op.blur > 0 {
			halo := c
			halo.A *= 0.3
			var hp vector.Path
			hp.MoveTo(float32(op.points[i].X), float32(op.points[i].Y))
			hp.LineTo(float32(op.points[i+1].X), float32(op.points[i+1].Y))
			s.strokePath(&hp, w+2*op.blur, halo, blend)
		}
		var p vector.Path
		p.MoveTo(float32(op.points[i].X), float32(op.points[i].Y))
		p.LineTo(float32(op.points[i+1].X), float32(op.points[i+1].Y))
		s.strokePath(&p, w, c, blend)
	}
}

func (s *Surface) drawShape(op *strokeOp, blend ebiten.Blend) {
	if op.shape == ShapeCircle {
		s.drawFillCircle(op, blend)
		return
	}
	pts := shapeVertices(op.shape, op.center, op.radius)
	if len(pts) < 3 {
		return
	}
	if op.blur > 0 {
		// Soft halo behind the crisp shape.
		s.drawFeathered(op.center, op.radius+op.blur, op.color.WithAlpha(op.color.A*0.3), blend)
	}
	var p vector.Path
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()
	s.fillPath(&p, op.color, blend)
}

func (s *Surface) drawGlow(op *strokeOp, blend ebiten.Blend) {
	s.drawFeathered(op.center, op.radius, op.color, blend)
}

// drawFeathered composites a cached feathered circle texture, tinted and
// scaled to the requested radius. The texture is opaque at the center and
// transparent at the edge (radial gradient fill).
func (s *Surface) drawFeathered(center Vec2, radius float64, c Color, blend ebiten.Blend) {
	if radius <= 0 {
		return
	}
	img := s.feathered(radius)
	b := img.Bounds()
	srcR := float64(b.Dx()) / 2

	var op ebiten.DrawImageOptions
	scale := radius / srcR
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(center.X-radius, center.Y-radius)
	a := float32(clamp01(c.A))
	op.ColorScale.Scale(float32(clamp01(c.R))*a, float32(clamp01(c.G))*a, float32(clamp01(c.B))*a, a)
	op.Blend = blend
	s.img.DrawImage(img, &op)
}

// feathered returns a cached feathered circle texture for the given radius,
// generating one on first use. Radius is quantized to the nearest integer
// to avoid separate textures for tiny differences.
func (s *Surface) feathered(radius float64) *ebiten.Image {
	key := int(math.Ceil(radius))
	if key < 1 {
		key = 1
	}
	if s.featherCache == nil {
		s.featherCache = make(map[int]*ebiten.Image)
	}
	if img, ok := s.featherCache[key]; ok {
		return img
	}
	img := generateFeatheredCircle(float64(key))
	s.featherCache[key] = img
	return img
}

// generateFeatheredCircle renders a premultiplied white disc whose alpha
// smoothsteps from 1 at the center to 0 at the edge.
func generateFeatheredCircle(radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)

	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				// smoothstep: 1 at center, 0 at edge
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}

			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a // premultiplied white
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	img.WritePixels(pix)
	return img
}

// shapeVertices returns the polygon outline for a non-circle stamp shape
// centered at c with nominal radius r.
func shapeVertices(shape StampShape, c Vec2, r float64) []Vec2 {
	switch shape {
	case ShapeSquare:
		return []Vec2{
			{c.X - r, c.Y - r}, {c.X + r, c.Y - r},
			{c.X + r, c.Y + r}, {c.X - r, c.Y + r},
		}
	case ShapeTriangle:
		// Equilateral, apex up.
		h := r * math.Sqrt(3) / 2
		return []Vec2{
			{c.X, c.Y - r},
			{c.X + h, c.Y + r/2},
			{c.X - h, c.Y + r/2},
		}
	case ShapeStar:
		// Five-point star alternating outer and inner radii.
		pts := make([]Vec2, 0, 10)
		for i := 0; i < 10; i++ {
			rad := r
			if i%2 == 1 {
				rad = r * 0.45
			}
			ang := -math.Pi/2 + float64(i)*math.Pi/5
			pts = append(pts, Vec2{c.X + rad*math.Cos(ang), c.Y + rad*math.Sin(ang)})
		}
		return pts
	case ShapeCross:
		// Plus sign with arms 2*t wide.
		t := r * 0.35
		return []Vec2{
			{c.X - t, c.Y - r}, {c.X + t, c.Y - r},
			{c.X + t, c.Y - t}, {c.X + r, c.Y - t},
			{c.X + r, c.Y + t}, {c.X + t, c.Y + t},
			{c.X + t, c.Y + r}, {c.X - t, c.Y + r},
			{c.X - t, c.Y + t}, {c.X - r, c.Y + t},
			{c.X - r, c.Y - t}, {c.X - t, c.Y - t},
		}
	case ShapeDiamond:
		return []Vec2{
			{c.X, c.Y - r}, {c.X + r, c.Y},
			{c.X, c.Y + r}, {c.X - r, c.Y},
		}
	default:
		return nil
	}
}
