package mural

import (
	"log"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorSource selects the strategy used to resolve a mark's color.
type ColorSource uint8

const (
	// SourceObject uses the emitter's base color.
	SourceObject ColorSource = iota
	// SourceTemperature maps a scalar in [-20, 40] through a cold-to-hot gradient.
	SourceTemperature
	// SourceRainbow spreads hues evenly across the emitter population.
	SourceRainbow
	// SourceCustom uses a caller-supplied override color.
	SourceCustom
)

// Temperature gradient stops. The cold half runs blue to cyan over
// [-20, 10); the warm half runs cyan to yellow to red over [10, 40],
// blended in RGB.
var (
	tempBlue   = colorful.Color{R: 0, G: 0, B: 1}
	tempCyan   = colorful.Color{R: 0, G: 1, B: 1}
	tempYellow = colorful.Color{R: 1, G: 1, B: 0}
	tempRed    = colorful.Color{R: 1, G: 0, B: 0}
)

const (
	tempMin = -20.0
	tempMid = 10.0
	tempMax = 40.0
)

// rainbow saturation/lightness are fixed so hue alone varies with index.
const (
	rainbowSaturation = 0.8
	rainbowLightness  = 0.6
)

// ColorContext carries the per-emitter inputs the resolver may need.
// Resolution is deterministic: identical contexts yield identical colors.
type ColorContext struct {
	Source ColorSource
	// Base is the emitter's own color, used by SourceObject.
	Base Color
	// Override is the caller-supplied color for SourceCustom.
	Override Color
	// Temperature is the scalar for SourceTemperature, clamped to [-20, 40].
	Temperature float64
	// Index and Total position the emitter within the population for
	// SourceRainbow. Total must stay constant across one generation pass
	// so hues remain stable.
	Index, Total int
}

// ResolveColor maps a color source + context to a concrete color.
// Unknown sources degrade to DefaultColor rather than aborting the frame.
func ResolveColor(ctx ColorContext) Color {
	switch ctx.Source {
	case SourceObject:
		return ctx.Base
	case SourceTemperature:
		return temperatureColor(ctx.Temperature)
	case SourceRainbow:
		return rainbowColor(ctx.Index, ctx.Total)
	case SourceCustom:
		return ctx.Override
	default:
		return DefaultColor
	}
}

// temperatureColor maps t in [-20, 40] through the two gradient segments.
// t <= -20 yields pure blue; t >= 40 yields pure red.
func temperatureColor(t float64) Color {
	t = math.Max(tempMin, math.Min(t, tempMax))

	var c colorful.Color
	switch {
	case t < tempMid:
		// Cold half: blue -> cyan.
		frac := (t - tempMin) / (tempMid - tempMin)
		c = tempBlue.BlendRgb(tempCyan, frac)
	case t < (tempMid+tempMax)/2:
		// Warm half, lower segment: cyan -> yellow.
		frac := (t - tempMid) / ((tempMax - tempMid) / 2)
		c = tempCyan.BlendRgb(tempYellow, frac)
	default:
		// Warm half, upper segment: yellow -> red.
		frac := (t - (tempMid+tempMax)/2) / ((tempMax - tempMid) / 2)
		c = tempYellow.BlendRgb(tempRed, frac)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// rainbowColor computes hue = (index/total) * 360 at fixed saturation and
// lightness. The hue is taken mod 360 so index == total wraps back to the
// index == 0 color.
func rainbowColor(index, total int) Color {
	if total <= 0 {
		return DefaultColor
	}
	hue := math.Mod(float64(index)/float64(total)*360.0, 360.0)
	if hue < 0 {
		hue += 360
	}
	c := colorful.Hsl(hue, rainbowSaturation, rainbowLightness)
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// ParseHexColor parses a "#rrggbb" or "#rgb" string. A failed parse
// degrades to DefaultColor with a logged warning so one broken emitter
// never stops painting for the rest.
func ParseHexColor(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		log.Printf("mural: unparsable color %q, using default", s)
		return DefaultColor
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}
