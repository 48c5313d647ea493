package mural

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewSurfaceFallsBackToWindowDims(t *testing.T) {
	// A 0x0 layout box must fall back to the host window dimensions
	// rather than producing an unusable zero-area surface.
	s, err := NewSurface(0, 0, 800, 600, BlendNormal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := s.Size()
	if w != 800 || h != 600 {
		t.Errorf("surface size = %dx%d, want window fallback 800x600", w, h)
	}
}

func TestNewSurfaceUnavailable(t *testing.T) {
	_, err := NewSurface(0, 0, 0, 0, BlendNormal)
	if !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("err = %v, want ErrSurfaceUnavailable", err)
	}
}

func TestSurfaceResize(t *testing.T) {
	s, err := NewSurface(800, 600, 800, 600, BlendAdd)
	if err != nil {
		t.Fatal(err)
	}
	s.Resize(1024, 768)
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Errorf("size after resize = %dx%d", w, h)
	}
	// The composite operator survives the image recreation.
	if s.BlendMode() != BlendAdd {
		t.Error("blend mode lost across resize")
	}

	// Zero or unchanged dimensions are no-ops.
	s.Resize(0, 50)
	s.Resize(1024, 768)
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Errorf("size after no-op resizes = %dx%d", w, h)
	}
}

func TestSurfaceDisposeIdempotent(t *testing.T) {
	s, err := NewSurface(64, 64, 0, 0, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	s.Dispose()
	if !s.Disposed() {
		t.Fatal("Disposed() = false after Dispose")
	}
	if s.Image() != nil {
		t.Error("Image() should be nil after Dispose")
	}
	// Every later call is a no-op, not a panic.
	s.Dispose()
	s.Clear()
	s.Decay()
	s.Resize(128, 128)
	if s.StepClear(100) {
		t.Error("StepClear fired on a disposed surface")
	}
	var buf opBuffer
	buf.push(strokeOp{kind: opFillCircle, center: Vec2{10, 10}, radius: 5, color: ColorWhite})
	s.Flush(&buf)
	if len(buf.ops) != 0 {
		t.Error("Flush on a disposed surface should still drain the buffer")
	}
}

func TestDecayFactor(t *testing.T) {
	s, err := NewSurface(800, 600, 0, 0, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	s.FadeRate = 0.02
	if got := s.DecayFactor(); got != 0.98 {
		t.Errorf("DecayFactor = %v, want 0.98", got)
	}

	// Repeated passes strictly reduce alpha, converging toward 0.
	alpha := 1.0
	for i := 0; i < 100; i++ {
		next := alpha * s.DecayFactor()
		if next >= alpha {
			t.Fatalf("decay pass %d did not reduce alpha (%v -> %v)", i, alpha, next)
		}
		alpha = next
	}
	if alpha > 0.14 { // 0.98^100 ~ 0.133
		t.Errorf("alpha after 100 passes = %v, expected near 0.13", alpha)
	}
}

func TestStepClearFiresOnInterval(t *testing.T) {
	s, err := NewSurface(64, 64, 0, 0, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	s.ClearInterval = 10

	for i := 0; i < 9; i++ {
		if s.StepClear(1.0) {
			t.Fatalf("clear fired early at t=%d", i+1)
		}
	}
	if !s.StepClear(1.0) {
		t.Fatal("clear did not fire at the 10s interval")
	}
	// Timer reset: the next step must not fire again.
	if s.StepClear(1.0) {
		t.Error("clear fired immediately after reset")
	}
}

func TestStepClearDisabled(t *testing.T) {
	s, err := NewSurface(64, 64, 0, 0, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	s.ClearInterval = 0
	if s.StepClear(1e9) {
		t.Error("clear fired with the interval disabled")
	}
}

func TestParseBlendMode(t *testing.T) {
	cases := []struct {
		name string
		want BlendMode
	}{
		{"source-over", BlendNormal},
		{"", BlendNormal},
		{"lighter", BlendAdd},
		{"multiply", BlendMultiply},
		{"screen", BlendScreen},
		{"destination-out", BlendErase},
		{"no-such-mode", BlendNormal},
	}
	for _, tc := range cases {
		if got := ParseBlendMode(tc.name); got != tc.want {
			t.Errorf("ParseBlendMode(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBlendEraseIsDestinationOut(t *testing.T) {
	if BlendErase.EbitenBlend() != ebiten.BlendDestinationOut {
		t.Error("decay depends on BlendErase mapping to destination-out")
	}
}

func TestFlushDrawsOps(t *testing.T) {
	s, err := NewSurface(128, 128, 0, 0, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	var buf opBuffer
	buf.push(strokeOp{kind: opFillCircle, center: Vec2{64, 64}, radius: 10, color: Color{1, 0, 0, 1}})
	buf.push(strokeOp{kind: opStrokeCircle, center: Vec2{64, 64}, radius: 20, width: 2, color: Color{0, 1, 0, 0.5}})
	buf.push(strokeOp{kind: opGlowDisc, center: Vec2{30, 30}, radius: 12, color: Color{0, 0, 1, 0.4}})
	buf.push(strokeOp{kind: opFillShape, center: Vec2{90, 90}, radius: 8, shape: ShapeCross, color: ColorWhite})
	buf.push(strokeOp{
		kind:      opPolyline,
		width:     3,
		color:     ColorWhite,
		points:    []Vec2{{10, 10}, {20, 15}, {30, 25}},
		opacities: []float64{0.5, 0.45, 0.4},
	})
	s.Flush(&buf)
	if len(buf.ops) != 0 {
		t.Error("Flush must reset the op buffer")
	}
	// Rasterizing twice reuses cached textures and scratch buffers.
	buf.push(strokeOp{kind: opGlowDisc, center: Vec2{40, 40}, radius: 12, color: Color{0, 0, 1, 0.4}})
	s.Flush(&buf)
}

func TestShapeVertices(t *testing.T) {
	cases := []struct {
		shape StampShape
		count int
	}{
		{ShapeSquare, 4},
		{ShapeTriangle, 3},
		{ShapeStar, 10},
		{ShapeCross, 12},
		{ShapeDiamond, 4},
	}
	c := Vec2{50, 50}
	for _, tc := range cases {
		pts := shapeVertices(tc.shape, c, 10)
		if len(pts) != tc.count {
			t.Errorf("shape %d has %d vertices, want %d", tc.shape, len(pts), tc.count)
		}
		for _, p := range pts {
			if p.Sub(c).Len() > 10+1e-9+10*0.45 {
				t.Errorf("shape %d vertex %+v strays beyond its radius", tc.shape, p)
			}
		}
	}
}

func TestFeatheredCircleCache(t *testing.T) {
	s, err := NewSurface(64, 64, 0, 0, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	a := s.feathered(10)
	b := s.feathered(10.2) // quantizes to the same key
	if a != b {
		t.Error("near-identical radii should share a cached texture")
	}
	c := s.feathered(20)
	if a == c {
		t.Error("distinct radii must not share a texture")
	}
}
