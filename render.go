package glyphgrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
)

// Renderer is the control surface shared by both rendering variants: the
// instanced shader pipeline (GridRenderer) and the immediate-mode fallback
// (CellRenderer). NewRenderer probes for shader support and returns
// whichever variant the platform can drive, so callers program against
// this interface only.
type Renderer interface {
	// Render re-encodes the current frame into the instance buffer and
	// redraws the owned target surface.
	Render()

	// Draw presents the target surface onto screen, scaled to fill it.
	// It also observes the screen size for pointer-to-cell mapping.
	Draw(screen *ebiten.Image)

	// Update advances the playback clock and any active crossfade by dt
	// seconds. Call it once per host tick.
	Update(dt float64)

	// Playback controls. Play is idempotent; Stop resets to frame 0;
	// Next/Prev wrap; GoTo ignores out-of-range indices.
	Play()
	Pause()
	Stop()
	TogglePlay()
	Next()
	Prev()
	GoTo(index int)

	// SetProject hot-swaps the active project, rebuilding the atlas only
	// when charset, font family, or default character changed.
	SetProject(p Project)

	// SetOptions applies a full option set; a font-size change triggers
	// the same single atlas rebuild transition as a charset change.
	SetOptions(o Options)

	// RegisterFontFace adds a TTF/OTF face addressable from
	// Canvas.FontFamily. The face is owned by this renderer instance.
	RegisterFontFace(family string, ttfData []byte) error

	// SetHighlight tints one cell (editor hover); ClearHighlight removes it.
	SetHighlight(x, y int)
	ClearHighlight()

	// EventToGrid maps a pointer or touch event to a grid cell.
	EventToGrid(ev PointerEvent) (CellPos, bool)

	// Read-only state.
	CurrentFrame() int
	FrameCount() int
	IsPlaying() bool
	CellSize() (w, h int)
	SurfaceSize() (w, h int)
	Target() *ebiten.Image

	// Destroy cancels playback and releases every GPU resource this
	// renderer created. Idempotent.
	Destroy()
}

// NewRenderer builds a renderer for the project, preferring the instanced
// shader pipeline and falling back to immediate-mode drawing when the
// shader cannot be compiled. It never panics and never returns nil: a
// partially capable platform still gets a working renderer.
func NewRenderer(p Project, opts Options) Renderer {
	if !opts.ForceFallback {
		r, err := NewGridRenderer(p, opts)
		if err == nil {
			return r
		}
		debugf("shader pipeline unavailable (%v), using immediate-mode fallback", err)
	}
	return NewCellRenderer(p, opts)
}

// rendererCore is the explicit state record behind both variants: project,
// atlas, instance buffers, playback clock, and the active option set. All
// mutation goes through its methods so the rebuild and teardown rules live
// in exactly one place.
type rendererCore struct {
	project Project
	opts    Options
	fonts   *fontRegistry

	atlas *Atlas
	key   atlasKey

	// target is the owned drawing surface, sized to
	// (grid width × cell width, grid height × cell height) pixels.
	target *ebiten.Image

	// Instance buffers: current frame, transition snapshot, blend scratch.
	curBuf  []float32
	prevBuf []float32
	mixBuf  []float32

	// Playback state machine.
	frame   int
	playing bool
	acc     float64

	// Active crossfade, nil when idle.
	fade  *gween.Tween
	fadeT float64

	// Highlighted cell, (-1, -1) when none.
	highlightX, highlightY int

	// Last observed presentation size, for event mapping.
	displayW, displayH int

	destroyed bool
}

func newRendererCore(p Project, opts Options) (*rendererCore, error) {
	c := &rendererCore{
		project:    p,
		opts:       opts.withDefaults(),
		fonts:      newFontRegistry(),
		highlightX: -1,
		highlightY: -1,
	}
	if err := c.rebuildAtlas(); err != nil {
		return nil, err
	}
	return c, nil
}

// rebuildAtlas is the single invalidate-and-rebuild transition: it rebuilds the
// glyph atlas from the current canvas and options, re-fits the target
// surface to the new cell pixel size, and records the key that decides
// whether future changes need another rebuild.
func (c *rendererCore) rebuildAtlas() error {
	canvas := c.project.Canvas
	face := c.fonts.Face(canvas.FontFamily, c.opts.FontSize)

	atlas, err := BuildAtlas(canvas.Charset, AtlasConfig{
		FontSize:    c.opts.FontSize,
		DefaultChar: canvas.DefaultChar,
		Face:        face,
	})
	if err != nil {
		return err
	}

	if c.atlas != nil {
		c.atlas.release()
	}
	c.atlas = atlas
	c.key = canvas.atlasKey(c.opts.FontSize)

	c.fitTarget()
	return nil
}

// fitTarget resizes the owned surface to grid size × cell pixel size.
func (c *rendererCore) fitTarget() {
	w := c.project.Canvas.Width * c.atlas.CellW
	h := c.project.Canvas.Height * c.atlas.CellH
	if w <= 0 || h <= 0 {
		// Degenerate canvas; keep no surface and let Render no-op.
		if c.target != nil {
			c.target.Deallocate()
			c.target = nil
		}
		return
	}

	if c.target != nil {
		b := c.target.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		c.target.Deallocate()
	}
	c.target = ebiten.NewImage(w, h)
}

// encodeCurrent produces the instance buffer to draw this frame: the
// current frame's encoding, blended against the transition snapshot while
// a crossfade is active.
func (c *rendererCore) encodeCurrent() []float32 {
	c.curBuf = EncodeFrame(c.curBuf, c.project.FrameAt(c.frame), c.project.Canvas, c.atlas)
	if c.fade == nil {
		return c.curBuf
	}
	c.mixBuf = blendInstanceBuffers(c.mixBuf, c.prevBuf, c.curBuf, c.fadeT)
	return c.mixBuf
}

// setProject hot-swaps the project, rebuilding the atlas only when the
// atlas-relevant canvas properties changed. The frame index resets when it
// no longer exists in the new project.
func (c *rendererCore) setProject(p Project) {
	if c.destroyed {
		return
	}
	c.project = p
	if c.frame >= len(p.Frames) {
		c.setFrame(0, false)
	}
	c.fade = nil

	if p.Canvas.atlasKey(c.opts.FontSize) != c.key {
		if err := c.rebuildAtlas(); err != nil {
			debugf("atlas rebuild failed on project swap: %v", err)
		}
	}
}

// setOptions replaces the option set, funneling font-size changes through
// the one rebuild transition.
func (c *rendererCore) setOptions(o Options) {
	if c.destroyed {
		return
	}
	o = o.withDefaults()
	needRebuild := o.FontSize != c.opts.FontSize
	c.opts = o

	if needRebuild {
		if err := c.rebuildAtlas(); err != nil {
			debugf("atlas rebuild failed on option change: %v", err)
		}
	}
}

func (c *rendererCore) registerFontFace(family string, ttfData []byte) error {
	if c.destroyed {
		return nil
	}
	if err := c.fonts.Register(family, ttfData); err != nil {
		return err
	}
	// A registered family may resolve a previously-unknown canvas font.
	if c.project.Canvas.FontFamily == family {
		if err := c.rebuildAtlas(); err != nil {
			return err
		}
	}
	return nil
}

func (c *rendererCore) setHighlight(x, y int) {
	if c.destroyed {
		return
	}
	c.highlightX = x
	c.highlightY = y
}

func (c *rendererCore) clearHighlight() {
	c.highlightX = -1
	c.highlightY = -1
}

func (c *rendererCore) cellSize() (int, int) {
	if c.atlas == nil {
		return 0, 0
	}
	return c.atlas.CellW, c.atlas.CellH
}

// surfaceSize reports the owned target's backing dimensions in pixels.
func (c *rendererCore) surfaceSize() (int, int) {
	if c.target == nil {
		return 0, 0
	}
	b := c.target.Bounds()
	return b.Dx(), b.Dy()
}

// destroy releases everything the core owns. Safe to call more than once;
// the destroyed flag also gates every public operation afterwards.
func (c *rendererCore) destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.playing = false
	c.fade = nil
	if c.atlas != nil {
		c.atlas.release()
	}
	if c.target != nil {
		c.target.Deallocate()
		c.target = nil
	}
	c.fonts.release()
	c.curBuf = nil
	c.prevBuf = nil
	c.mixBuf = nil
}

// present scales the owned target onto screen and records the displayed
// size, which EventToGrid uses as the backing-to-display ratio. Observing
// the size here keeps resizes independent of atlas rebuilds.
func (c *rendererCore) present(screen *ebiten.Image) {
	if c.destroyed || c.target == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	c.displayW = b.Dx()
	c.displayH = b.Dy()

	tb := c.target.Bounds()
	if tb.Dx() == 0 || tb.Dy() == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(
		float64(c.displayW)/float64(tb.Dx()),
		float64(c.displayH)/float64(tb.Dy()),
	)
	screen.DrawImage(c.target, &op)
}

// GridRenderer draws the whole grid with one instanced draw call per
// render: the encoder's flat buffer is expanded to a vertex stream and
// submitted through the Kage grid program against the atlas texture. The
// draw-call count stays O(1) regardless of grid size.
type GridRenderer struct {
	core   *rendererCore
	shader *ebiten.Shader

	// Scratch vertex stream, reused across frames.
	verts []ebiten.Vertex
	inds  []uint32

	// Persistent uniform storage to avoid per-frame escapes.
	uniforms  map[string]any
	gridSize  []float32
	cellSize  []float32
	bg        []float32
	lineColor []float32
	highlight []float32
}

// NewGridRenderer builds the shader-pipeline variant. It returns an error
// (and no renderer) when the grid program fails to compile or the atlas
// cannot be built, so NewRenderer can fall back instead of crashing the
// host.
func NewGridRenderer(p Project, opts Options) (*GridRenderer, error) {
	shader, err := compileGridShader()
	if err != nil {
		return nil, err
	}
	core, err := newRendererCore(p, opts)
	if err != nil {
		return nil, err
	}

	r := &GridRenderer{
		core:      core,
		shader:    shader,
		gridSize:  make([]float32, 2),
		cellSize:  make([]float32, 2),
		bg:        make([]float32, 4),
		lineColor: make([]float32, 4),
		highlight: make([]float32, 2),
	}
	r.uniforms = map[string]any{
		"GridSize":      r.gridSize,
		"CellSize":      r.cellSize,
		"Background":    r.bg,
		"GridLines":     float32(0),
		"GridLineColor": r.lineColor,
		"Highlight":     r.highlight,
	}
	return r, nil
}

// Render re-encodes the current frame, rebuilds the vertex stream, and
// issues exactly one instanced draw call covering every grid cell.
func (r *GridRenderer) Render() {
	c := r.core
	if c.destroyed || c.target == nil {
		return
	}

	buf := c.encodeCurrent()

	canvas := c.project.Canvas
	r.verts, r.inds = buildCellQuads(
		r.verts[:0], r.inds[:0],
		buf,
		canvas.Width, canvas.Height,
		float64(c.atlas.CellW), float64(c.atlas.CellH),
		c.atlas,
	)

	bg := canvas.backgroundColor()
	c.target.Fill(colorRGBA(bg))

	r.bindUniforms(bg)

	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = c.atlas.Image
	op.Uniforms = r.uniforms
	c.target.DrawTrianglesShader32(r.verts, r.inds, r.shader, op)
}

// bindUniforms refreshes the persistent uniform slices for this render.
func (r *GridRenderer) bindUniforms(bg Color) {
	c := r.core
	canvas := c.project.Canvas

	r.gridSize[0] = float32(canvas.Width)
	r.gridSize[1] = float32(canvas.Height)
	r.cellSize[0] = float32(c.atlas.CellW)
	r.cellSize[1] = float32(c.atlas.CellH)
	r.bg[0] = float32(bg.R)
	r.bg[1] = float32(bg.G)
	r.bg[2] = float32(bg.B)
	r.bg[3] = 1

	if c.opts.ShowGridLines {
		r.uniforms["GridLines"] = float32(1)
	} else {
		r.uniforms["GridLines"] = float32(0)
	}
	line := parseColorOr(c.opts.GridLineColor, Color{0.2, 0.2, 0.2})
	r.lineColor[0] = float32(line.R)
	r.lineColor[1] = float32(line.G)
	r.lineColor[2] = float32(line.B)
	r.lineColor[3] = 1

	r.highlight[0] = float32(c.highlightX)
	r.highlight[1] = float32(c.highlightY)
}

// Draw presents the target surface onto screen.
func (r *GridRenderer) Draw(screen *ebiten.Image) {
	r.core.present(screen)
}

// Update advances playback and any active crossfade by dt seconds.
func (r *GridRenderer) Update(dt float64) { r.core.tick(dt) }

func (r *GridRenderer) Play()       { r.core.play() }
func (r *GridRenderer) Pause()      { r.core.pause() }
func (r *GridRenderer) Stop()       { r.core.stop() }
func (r *GridRenderer) TogglePlay() { r.core.togglePlay() }
func (r *GridRenderer) Next()       { r.core.step(1) }
func (r *GridRenderer) Prev()       { r.core.step(-1) }
func (r *GridRenderer) GoTo(i int)  { r.core.goTo(i) }

func (r *GridRenderer) SetProject(p Project) { r.core.setProject(p) }
func (r *GridRenderer) SetOptions(o Options) { r.core.setOptions(o) }

func (r *GridRenderer) RegisterFontFace(family string, ttfData []byte) error {
	return r.core.registerFontFace(family, ttfData)
}

func (r *GridRenderer) SetHighlight(x, y int) { r.core.setHighlight(x, y) }
func (r *GridRenderer) ClearHighlight()       { r.core.clearHighlight() }

func (r *GridRenderer) EventToGrid(ev PointerEvent) (CellPos, bool) {
	return r.core.eventToGrid(ev)
}

func (r *GridRenderer) CurrentFrame() int       { return r.core.frame }
func (r *GridRenderer) FrameCount() int         { return len(r.core.project.Frames) }
func (r *GridRenderer) IsPlaying() bool         { return r.core.playing }
func (r *GridRenderer) CellSize() (int, int)    { return r.core.cellSize() }
func (r *GridRenderer) SurfaceSize() (int, int) { return r.core.surfaceSize() }
func (r *GridRenderer) Target() *ebiten.Image   { return r.core.target }

// Destroy cancels playback and releases the atlas texture, target surface,
// and vertex scratch exactly once. Safe to call repeatedly.
func (r *GridRenderer) Destroy() {
	if r.core.destroyed {
		return
	}
	r.core.destroy()
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
	}
	r.verts = nil
	r.inds = nil
}

var _ Renderer = (*GridRenderer)(nil)
