package glyphgrid

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// CellRenderer is the immediate-mode fallback for platforms where the grid
// shader fails to compile. It consumes the exact same instance buffer as
// GridRenderer but draws each cell with a plain atlas blit, trading the
// single-draw-call guarantee for portability. Output is visually equivalent
// minus the shader-only grid lines and highlight tint, which it reproduces
// with fill rectangles.
type CellRenderer struct {
	core *rendererCore
}

// NewCellRenderer builds the fallback variant. Unlike NewGridRenderer it
// cannot fail for capability reasons; an unbuildable atlas leaves the
// renderer drawing nothing rather than crashing the host.
func NewCellRenderer(p Project, opts Options) *CellRenderer {
	core, err := newRendererCore(p, opts)
	if err != nil {
		debugf("fallback atlas build failed: %v", err)
		core = &rendererCore{
			project:    p,
			opts:       opts.withDefaults(),
			fonts:      newFontRegistry(),
			highlightX: -1,
			highlightY: -1,
		}
	}
	return &CellRenderer{core: core}
}

// Render walks the instance buffer and blits one atlas region per non-blank
// cell, tinting by the cell's foreground color scaled by density.
func (r *CellRenderer) Render() {
	c := r.core
	if c.destroyed || c.target == nil || c.atlas == nil {
		return
	}

	buf := c.encodeCurrent()

	canvas := c.project.Canvas
	bg := canvas.backgroundColor()
	c.target.Fill(colorRGBA(bg))

	cellW := float64(c.atlas.CellW)
	cellH := float64(c.atlas.CellH)

	for i := 0; i*floatsPerCell < len(buf); i++ {
		rec := buf[i*floatsPerCell : i*floatsPerCell+floatsPerCell]
		glyph := int(rec[0])
		density := rec[4]
		if glyph == 0 || density <= 0 {
			continue
		}

		x := i % canvas.Width
		y := i / canvas.Width

		src := c.atlas.Image.SubImage(c.atlas.glyphRect(glyph)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x)*cellW, float64(y)*cellH)
		op.ColorScale.Scale(rec[1]*density, rec[2]*density, rec[3]*density, density)
		c.target.DrawImage(src, op)
	}

	r.drawGridLines()
	r.drawHighlight()
}

// drawGridLines reproduces the shader's 1px cell border with fill rects.
func (r *CellRenderer) drawGridLines() {
	c := r.core
	if !c.opts.ShowGridLines {
		return
	}
	line := colorRGBA(parseColorOr(c.opts.GridLineColor, Color{0.2, 0.2, 0.2}))
	tb := c.target.Bounds()

	for x := 0; x <= c.project.Canvas.Width; x++ {
		px := x * c.atlas.CellW
		if px >= tb.Dx() {
			px = tb.Dx() - 1
		}
		col := c.target.SubImage(rectClamped(px, 0, 1, tb.Dy(), tb.Dx(), tb.Dy())).(*ebiten.Image)
		col.Fill(line)
	}
	for y := 0; y <= c.project.Canvas.Height; y++ {
		py := y * c.atlas.CellH
		if py >= tb.Dy() {
			py = tb.Dy() - 1
		}
		row := c.target.SubImage(rectClamped(0, py, tb.Dx(), 1, tb.Dx(), tb.Dy())).(*ebiten.Image)
		row.Fill(line)
	}
}

// drawHighlight overlays a translucent white wash on the highlighted cell.
func (r *CellRenderer) drawHighlight() {
	c := r.core
	if c.highlightX < 0 || c.highlightY < 0 {
		return
	}
	if c.highlightX >= c.project.Canvas.Width || c.highlightY >= c.project.Canvas.Height {
		return
	}
	px := c.highlightX * c.atlas.CellW
	py := c.highlightY * c.atlas.CellH
	tb := c.target.Bounds()
	cell := c.target.SubImage(rectClamped(px, py, c.atlas.CellW, c.atlas.CellH, tb.Dx(), tb.Dy())).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(c.atlas.CellW), float64(c.atlas.CellH))
	op.GeoM.Translate(float64(px), float64(py))
	op.ColorScale.Scale(0.2, 0.2, 0.2, 0.2)
	cell.DrawImage(whitePixel(), op)
}

// Draw presents the target surface onto screen.
func (r *CellRenderer) Draw(screen *ebiten.Image) {
	r.core.present(screen)
}

// Update advances playback and any active crossfade by dt seconds.
func (r *CellRenderer) Update(dt float64) { r.core.tick(dt) }

func (r *CellRenderer) Play()       { r.core.play() }
func (r *CellRenderer) Pause()      { r.core.pause() }
func (r *CellRenderer) Stop()       { r.core.stop() }
func (r *CellRenderer) TogglePlay() { r.core.togglePlay() }
func (r *CellRenderer) Next()       { r.core.step(1) }
func (r *CellRenderer) Prev()       { r.core.step(-1) }
func (r *CellRenderer) GoTo(i int)  { r.core.goTo(i) }

func (r *CellRenderer) SetProject(p Project) { r.core.setProject(p) }
func (r *CellRenderer) SetOptions(o Options) { r.core.setOptions(o) }

func (r *CellRenderer) RegisterFontFace(family string, ttfData []byte) error {
	return r.core.registerFontFace(family, ttfData)
}

func (r *CellRenderer) SetHighlight(x, y int) { r.core.setHighlight(x, y) }
func (r *CellRenderer) ClearHighlight()       { r.core.clearHighlight() }

func (r *CellRenderer) EventToGrid(ev PointerEvent) (CellPos, bool) {
	return r.core.eventToGrid(ev)
}

func (r *CellRenderer) CurrentFrame() int       { return r.core.frame }
func (r *CellRenderer) FrameCount() int         { return len(r.core.project.Frames) }
func (r *CellRenderer) IsPlaying() bool         { return r.core.playing }
func (r *CellRenderer) CellSize() (int, int)    { return r.core.cellSize() }
func (r *CellRenderer) SurfaceSize() (int, int) { return r.core.surfaceSize() }
func (r *CellRenderer) Target() *ebiten.Image   { return r.core.target }

// Destroy releases all resources. Idempotent.
func (r *CellRenderer) Destroy() {
	r.core.destroy()
}

var _ Renderer = (*CellRenderer)(nil)

// rectClamped builds a sub-rectangle clipped to the surface bounds.
func rectClamped(x, y, w, h, maxW, maxH int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, maxW, maxH))
}

// whitePixel returns a shared 1x1 white image used as a tint source.
var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(colorRGBA(ColorWhite))
	}
	return whitePixelImage
}
