package mural

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// StatsOverlay is a small corner widget showing FPS and paint activity.
// It refreshes its text roughly twice a second.
type StatsOverlay struct {
	img   *ebiten.Image
	accum float64
}

// NewStatsOverlay creates the overlay widget.
func NewStatsOverlay() *StatsOverlay {
	// 120x32 is enough for "FPS: 60.0\npainted: 100".
	return &StatsOverlay{img: ebiten.NewImage(120, 32)}
}

// Update refreshes the overlay text from the painter's latest counters.
func (o *StatsOverlay) Update(dt float64, p *Painter) {
	o.accum += dt
	if o.accum < 0.5 {
		return
	}
	o.accum = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	_, _, _, painted := p.Stats()
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\npainted: %d", ebiten.ActualFPS(), painted))
}

// Draw blits the overlay at the top-left corner.
func (o *StatsOverlay) Draw(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(4, 4)
	screen.DrawImage(o.img, &op)
}
