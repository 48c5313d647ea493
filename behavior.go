package mural

import "errors"

// BehaviorKind identifies which painting algorithm a Behavior selects.
type BehaviorKind uint8

const (
	KindTrail    BehaviorKind = iota // velocity-trailing polyline
	KindStamp                        // single filled shape
	KindBrush                        // pressure-scaled filled circle
	KindSplatter                     // scattered droplets
	KindRipple                       // repeating expanding ring
	KindGlow                         // feathered radial disc
)

// String returns the lowercase name of the kind.
func (k BehaviorKind) String() string {
	switch k {
	case KindTrail:
		return "trail"
	case KindStamp:
		return "stamp"
	case KindBrush:
		return "brush"
	case KindSplatter:
		return "splatter"
	case KindRipple:
		return "ripple"
	case KindGlow:
		return "glow"
	default:
		return "unknown"
	}
}

// TextureStyle modifies a brush before rendering, adjusting opacity and
// adding a blur halo. TextureNone leaves the stroke untouched.
type TextureStyle uint8

const (
	TextureNone       TextureStyle = iota
	TextureSoft                    // blur 0.5 x size
	TextureWatercolor              // opacity x0.7, blur 0.3 x size
	TextureOil                     // opacity x1.2, blur 0.2 x size
	TexturePencil                  // opacity x0.8, fixed 1px blur
	TextureSpray                   // blur 0.1 x size
)

// StampShape selects the filled primitive drawn by the stamp behavior.
type StampShape uint8

const (
	ShapeCircle StampShape = iota
	ShapeSquare
	ShapeTriangle
	ShapeStar
	ShapeCross
	ShapeDiamond
)

// Base holds the fields shared by every behavior variant.
type Base struct {
	// Enabled gates the whole behavior. A disabled behavior renders nothing.
	Enabled bool
	// BrushSize is the nominal mark radius in pixels.
	BrushSize float64
	// Opacity is the base stroke opacity in [0, 1].
	Opacity float64
	// Source selects how the mark color is resolved.
	Source ColorSource
	// Texture optionally modifies blur/opacity before rendering.
	Texture TextureStyle
}

// Behavior is the closed set of painting algorithms. Exactly six types
// implement it: Trail, Stamp, Brush, Splatter, Ripple, and Glow.
// The unexported method keeps the set closed so dispatch can be exhaustive.
type Behavior interface {
	Kind() BehaviorKind
	Common() Base
	// Validate reports whether the variant carries usable parameters.
	// A malformed behavior is treated as a no-op for that emitter/frame.
	Validate() error
	behavior()
}

// ErrMalformedBehavior is returned by Validate when required type-specific
// parameters are missing or out of range.
var ErrMalformedBehavior = errors.New("mural: malformed behavior")

// Trail paints a tapering polyline of points trailing behind the emitter,
// offset backward along its screen velocity.
type Trail struct {
	Base
	// TrailLength is the number of trailing points.
	TrailLength int
	// TrailWidth is the stroke width at the head; it tapers linearly to 0.
	TrailWidth float64
	// TrailFade multiplies opacity per point (must be < 1 for a fade-out).
	TrailFade float64
	// Scale converts screen velocity into per-point backward offset.
	// Zero means the default spacing.
	Scale float64
}

func (t Trail) Kind() BehaviorKind { return KindTrail }
func (t Trail) Common() Base       { return t.Base }
func (Trail) behavior()            {}

func (t Trail) Validate() error {
	if t.TrailLength <= 0 || t.TrailWidth <= 0 || t.TrailFade <= 0 || t.TrailFade >= 1 {
		return ErrMalformedBehavior
	}
	return nil
}

// Stamp paints a single filled primitive at the emitter position.
type Stamp struct {
	Base
	// StampSize is the primitive size in pixels.
	StampSize float64
	// Shape selects the primitive.
	Shape StampShape
}

func (s Stamp) Kind() BehaviorKind { return KindStamp }
func (s Stamp) Common() Base       { return s.Base }
func (Stamp) behavior()            {}

func (s Stamp) Validate() error {
	if s.StampSize <= 0 || s.Shape > ShapeDiamond {
		return ErrMalformedBehavior
	}
	return nil
}

// Brush paints one filled circle whose radius scales with pressure.
type Brush struct {
	Base
	// Pressure scales BrushSize; zero means full pressure.
	Pressure float64
}

func (b Brush) Kind() BehaviorKind { return KindBrush }
func (b Brush) Common() Base       { return b.Base }
func (Brush) behavior()            {}

func (b Brush) Validate() error {
	if b.BrushSize <= 0 || b.Pressure < 0 {
		return ErrMalformedBehavior
	}
	return nil
}

// Splatter scatters filled droplets at random angles around the emitter.
type Splatter struct {
	Base
	// SplatterCount is the number of droplets per paint event.
	SplatterCount int
	// SplatterSpread is the maximum scatter radius in pixels.
	SplatterSpread float64
}

func (s Splatter) Kind() BehaviorKind { return KindSplatter }
func (s Splatter) Common() Base       { return s.Base }
func (Splatter) behavior()            {}

func (s Splatter) Validate() error {
	if s.SplatterCount <= 0 || s.SplatterSpread <= 0 {
		return ErrMalformedBehavior
	}
	return nil
}

// Ripple paints a stroked circle whose radius grows with time, wrapping at
// BrushSize so the ring repeatedly expands outward.
type Ripple struct {
	Base
	// RippleSpeed is the radius growth in pixels per second.
	RippleSpeed float64
}

func (r Ripple) Kind() BehaviorKind { return KindRipple }
func (r Ripple) Common() Base       { return r.Base }
func (Ripple) behavior()            {}

func (r Ripple) Validate() error {
	if r.RippleSpeed <= 0 || r.BrushSize <= 0 {
		return ErrMalformedBehavior
	}
	return nil
}

// Glow paints a feathered radial-gradient disc, opaque at the center and
// transparent at the edge.
type Glow struct {
	Base
	// GlowRadius is the disc radius; zero means 2 x BrushSize.
	GlowRadius float64
}

func (g Glow) Kind() BehaviorKind { return KindGlow }
func (g Glow) Common() Base       { return g.Base }
func (Glow) behavior()            {}

func (g Glow) Validate() error {
	if g.GlowRadius < 0 || (g.GlowRadius == 0 && g.BrushSize <= 0) {
		return ErrMalformedBehavior
	}
	return nil
}

// EffectiveRadius returns GlowRadius, defaulting to 2 x BrushSize.
func (g Glow) EffectiveRadius() float64 {
	if g.GlowRadius > 0 {
		return g.GlowRadius
	}
	return 2 * g.BrushSize
}

// textureAdjust returns the opacity multiplier and blur radius for a
// texture style applied to a mark of the given size.
func textureAdjust(style TextureStyle, size float64) (opacityMul, blur float64) {
	switch style {
	case TextureSoft:
		return 1.0, 0.5 * size
	case TextureWatercolor:
		return 0.7, 0.3 * size
	case TextureOil:
		return 1.2, 0.2 * size
	case TexturePencil:
		return 0.8, 1.0
	case TextureSpray:
		return 1.0, 0.1 * size
	default:
		return 1.0, 0
	}
}
