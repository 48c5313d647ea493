package mural

import (
	"math"
	"testing"
)

func colorsClose(a, b Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}

func TestTemperatureEndpoints(t *testing.T) {
	cold := ResolveColor(ColorContext{Source: SourceTemperature, Temperature: -20})
	if !colorsClose(cold, Color{0, 0, 1, 1}, 1e-9) {
		t.Errorf("cold end = %+v, want pure blue", cold)
	}

	hot := ResolveColor(ColorContext{Source: SourceTemperature, Temperature: 40})
	if !colorsClose(hot, Color{1, 0, 0, 1}, 1e-9) {
		t.Errorf("hot end = %+v, want pure red", hot)
	}
}

func TestTemperatureMidpoints(t *testing.T) {
	// Boundary between the halves is pure cyan.
	mid := ResolveColor(ColorContext{Source: SourceTemperature, Temperature: 10})
	if !colorsClose(mid, Color{0, 1, 1, 1}, 1e-9) {
		t.Errorf("t=10 = %+v, want cyan", mid)
	}
	// Warm half midpoint is pure yellow.
	warm := ResolveColor(ColorContext{Source: SourceTemperature, Temperature: 25})
	if !colorsClose(warm, Color{1, 1, 0, 1}, 1e-9) {
		t.Errorf("t=25 = %+v, want yellow", warm)
	}
}

func TestTemperatureClamps(t *testing.T) {
	below := ResolveColor(ColorContext{Source: SourceTemperature, Temperature: -100})
	at := ResolveColor(ColorContext{Source: SourceTemperature, Temperature: -20})
	if below != at {
		t.Errorf("t=-100 should clamp to the cold end: %+v vs %+v", below, at)
	}
}

func TestRainbowWraparound(t *testing.T) {
	first := ResolveColor(ColorContext{Source: SourceRainbow, Index: 0, Total: 4})
	wrapped := ResolveColor(ColorContext{Source: SourceRainbow, Index: 4, Total: 4})
	if !colorsClose(first, wrapped, 1e-9) {
		t.Errorf("rainbow(0,4) = %+v, rainbow(4,4) = %+v; 360 degrees must equal 0", first, wrapped)
	}
}

func TestRainbowDistinctHues(t *testing.T) {
	a := ResolveColor(ColorContext{Source: SourceRainbow, Index: 0, Total: 4})
	b := ResolveColor(ColorContext{Source: SourceRainbow, Index: 1, Total: 4})
	if colorsClose(a, b, 1e-6) {
		t.Error("adjacent rainbow indices should differ")
	}
}

func TestRainbowZeroTotal(t *testing.T) {
	c := ResolveColor(ColorContext{Source: SourceRainbow, Index: 3, Total: 0})
	if c != DefaultColor {
		t.Errorf("total=0 should degrade to the default color, got %+v", c)
	}
}

func TestResolveDeterministic(t *testing.T) {
	ctx := ColorContext{Source: SourceTemperature, Temperature: 17.3}
	if ResolveColor(ctx) != ResolveColor(ctx) {
		t.Error("identical inputs must yield identical colors")
	}
}

func TestResolveObjectAndCustom(t *testing.T) {
	base := Color{0.2, 0.4, 0.6, 1}
	over := Color{0.9, 0.1, 0.3, 1}
	ctx := ColorContext{Source: SourceObject, Base: base, Override: over}
	if got := ResolveColor(ctx); got != base {
		t.Errorf("object source = %+v, want base %+v", got, base)
	}
	ctx.Source = SourceCustom
	if got := ResolveColor(ctx); got != over {
		t.Errorf("custom source = %+v, want override %+v", got, over)
	}
}

func TestParseHexColor(t *testing.T) {
	c := ParseHexColor("#ff0000")
	if !colorsClose(c, Color{1, 0, 0, 1}, 1e-9) {
		t.Errorf("#ff0000 = %+v", c)
	}
	// Unparsable strings degrade to the default visible color.
	if got := ParseHexColor("not-a-color"); got != DefaultColor {
		t.Errorf("bad hex = %+v, want DefaultColor", got)
	}
}
