// Package glyphgrid renders animated character grids with [Ebitengine].
//
// A project is a fixed-size grid canvas plus a list of frames; each frame
// assigns characters, colors, and densities to cells. Glyphgrid packs the
// canvas charset into a single glyph atlas texture, encodes each frame as a
// flat instance buffer of five float32 values per cell (glyph index, red,
// green, blue, density), and draws the whole grid with one shader draw
// call. Cell positions are never stored: a cell's coordinates derive from
// its record index, so the buffer stays dense and resize-free.
//
// # Quick start
//
// Build a renderer from a project and drive it from an [ebiten.Game]:
//
//	r := glyphgrid.NewRenderer(project, glyphgrid.Options{
//		FramesPerSecond: 12,
//	})
//	defer r.Destroy()
//	r.Play()
//
//	type Game struct{ r glyphgrid.Renderer }
//
//	func (g *Game) Update() error {
//		g.r.Update(1.0 / float64(ebiten.TPS()))
//		g.r.Render()
//		return nil
//	}
//	func (g *Game) Draw(s *ebiten.Image)       { g.r.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// [NewRenderer] probes shader support at construction: platforms that can
// compile the grid program get [GridRenderer] (one instanced draw call per
// frame); others get [CellRenderer], an immediate-mode fallback with the
// same behavior. Both satisfy [Renderer], so callers never branch.
//
// # Playback
//
// Playback is cooperative and single-threaded. [Renderer.Update] advances
// an accumulator clock; when a frame period elapses the frame index moves,
// optionally crossfading between frames (via [gween]) when
// [Options.TransitionDuration] is set. Play, Pause, Stop, Next, Prev, and
// GoTo never spawn goroutines.
//
// # Input
//
// [Renderer.EventToGrid] maps mouse and touch positions to cell
// coordinates, accounting for the difference between the grid's backing
// resolution and the size it was last presented at.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package glyphgrid
