// Package mural renders continuously moving tracked emitters into
// persistent 2D painted marks on an overlay surface, producing a "living
// painting" effect on top of a host render loop.
//
// The pipeline is frame-synchronous: a Painter drives an emitter Registry
// (velocity and activity derivation), projects active emitters through a
// perspective Camera, resolves colors, dispatches one of six brush
// behaviors (trail, stamp, brush, splatter, ripple, glow), and lets the
// Surface decay prior marks each frame with a destination-out pass.
//
// A minimal host looks like:
//
//	surface, err := mural.NewSurface(w, h, winW, winH, mural.BlendNormal)
//	painter := mural.NewPainter(surface, mural.NewCamera(), mural.DefaultOptions())
//	h := painter.Register(&mural.Emitter{Behavior: mural.Trail{...}})
//	// each frame:
//	painter.Move(h, pos)
//	painter.Advance(now, viewport)
//	screen.DrawImage(painter.Surface().Image(), nil)
package mural
