package mural

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// backdropBlob is one drifting soft disc. Its position eases toward a
// random target and retargets on arrival.
type backdropBlob struct {
	x, y   float64
	radius float64
	color  Color

	tweenX *gween.Tween
	tweenY *gween.Tween
}

// Backdrop is a decorative layer drawn beneath the painting surface:
// slowly drifting feathered discs that give the composition depth. Its
// geometry rebuild is throttled to every RebuildEvery-th frame purely for
// performance; the throttle never affects the compositor's own paint/decay
// cadence, which runs every frame.
type Backdrop struct {
	w, h float64
	// RebuildEvery gates how often the cached draw list is regenerated.
	// Zero or one rebuilds every frame.
	RebuildEvery int

	blobs []backdropBlob
	rng   *rand.Rand

	// Cached draw list, regenerated on rebuild frames only.
	drawX, drawY, drawR []float64
	drawC               []Color

	cache map[int]*ebiten.Image
}

// NewBackdrop creates a backdrop of n drifting discs over a w x h area.
func NewBackdrop(w, h float64, n, rebuildEvery int, seed uint64) *Backdrop {
	if seed == 0 {
		seed = 1
	}
	b := &Backdrop{
		w:            w,
		h:            h,
		RebuildEvery: rebuildEvery,
		rng:          rand.New(rand.NewPCG(seed, seed<<1|1)),
		cache:        make(map[int]*ebiten.Image),
	}
	for i := 0; i < n; i++ {
		blob := backdropBlob{
			x:      b.rng.Float64() * w,
			y:      b.rng.Float64() * h,
			radius: 40 + b.rng.Float64()*120,
			color: Color{
				R: 0.1 + b.rng.Float64()*0.2,
				G: 0.1 + b.rng.Float64()*0.2,
				B: 0.2 + b.rng.Float64()*0.3,
				A: 0.12,
			},
		}
		b.retarget(&blob)
		b.blobs = append(b.blobs, blob)
	}
	b.rebuild()
	return b
}

// retarget starts a new eased drift toward a random point.
func (b *Backdrop) retarget(blob *backdropBlob) {
	dur := float32(6 + b.rng.Float64()*10)
	blob.tweenX = gween.New(float32(blob.x), float32(b.rng.Float64()*b.w), dur, ease.InOutQuad)
	blob.tweenY = gween.New(float32(blob.y), float32(b.rng.Float64()*b.h), dur, ease.InOutQuad)
}

// Advance updates the drift tweens every frame and regenerates the cached
// draw list on rebuild frames.
func (b *Backdrop) Advance(dt float64, frame uint64) {
	for i := range b.blobs {
		blob := &b.blobs[i]
		x, doneX := blob.tweenX.Update(float32(dt))
		y, doneY := blob.tweenY.Update(float32(dt))
		blob.x = float64(x)
		blob.y = float64(y)
		if doneX && doneY {
			b.retarget(blob)
		}
	}
	k := uint64(b.RebuildEvery)
	if k <= 1 || frame%k == 0 {
		b.rebuild()
	}
}

// rebuild regenerates the cached draw list from current blob state.
func (b *Backdrop) rebuild() {
	b.drawX = b.drawX[:0]
	b.drawY = b.drawY[:0]
	b.drawR = b.drawR[:0]
	b.drawC = b.drawC[:0]
	for i := range b.blobs {
		blob := &b.blobs[i]
		b.drawX = append(b.drawX, blob.x)
		b.drawY = append(b.drawY, blob.y)
		b.drawR = append(b.drawR, blob.radius)
		b.drawC = append(b.drawC, blob.color)
	}
}

// Draw composites the cached discs onto dst with additive blending.
func (b *Backdrop) Draw(dst *ebiten.Image) {
	for i := range b.drawX {
		r := b.drawR[i]
		img := b.feathered(r)
		bounds := img.Bounds()
		srcR := float64(bounds.Dx()) / 2

		var op ebiten.DrawImageOptions
		op.GeoM.Scale(r/srcR, r/srcR)
		op.GeoM.Translate(b.drawX[i]-r, b.drawY[i]-r)
		c := b.drawC[i]
		a := float32(c.A)
		op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
		op.Blend = BlendAdd.EbitenBlend()
		dst.DrawImage(img, &op)
	}
}

// feathered returns a cached feathered disc texture for radius r.
func (b *Backdrop) feathered(r float64) *ebiten.Image {
	key := int(r)
	if key < 1 {
		key = 1
	}
	if img, ok := b.cache[key]; ok {
		return img
	}
	img := generateFeatheredCircle(float64(key))
	b.cache[key] = img
	return img
}
