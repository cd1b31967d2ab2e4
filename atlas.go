package glyphgrid

import (
	"errors"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ErrAtlasOverflow is returned when a charset cannot fit inside the maximum
// supported texture size.
var ErrAtlasOverflow = errors.New("glyphgrid: glyph atlas exceeds maximum texture size")

const (
	// cellHeightFactor sizes the glyph cell height relative to the font
	// size, approximating a terminal line box.
	cellHeightFactor = 1.2

	// maxAtlasDim caps the power-of-two atlas dimensions. 8192 is a safe
	// lower bound across GPUs.
	maxAtlasDim = 8192
)

// UVRect is a glyph's normalized region within the atlas texture.
type UVRect struct {
	U0, V0 float64 // top-left
	U1, V1 float64 // bottom-right
}

// Atlas is a packed glyph texture plus the lookup tables to address it.
// It is a derived artifact: rebuilt whenever charset, font family, or font
// size change, and owned by exactly one renderer.
//
// Invariants: index 0 is always a literal blank glyph, the configured
// default character is always present, and every charset character appears
// exactly once.
type Atlas struct {
	// Image is the packed glyph texture. Nil for a plan-only atlas
	// (tests exercise layout without a GPU image).
	Image *ebiten.Image

	// Glyphs lists every packed rune in index order; Glyphs[0] is blank.
	Glyphs []rune

	// Index maps each packed rune to its slot in Glyphs.
	Index map[rune]int

	// DefaultIndex is the slot of the canvas default character.
	DefaultIndex int

	// Grid layout: Cols×Rows glyph cells of CellW×CellH pixels inside a
	// W×H (power-of-two) texture.
	Cols, Rows   int
	CellW, CellH int
	W, H         int

	uvByIndex []UVRect
}

// AtlasConfig carries the font parameters for BuildAtlas.
type AtlasConfig struct {
	// FontSize in pixels. Zero falls back to DefaultFontSize.
	FontSize float64

	// DefaultChar is guaranteed a slot even when absent from the charset.
	// Zero means space.
	DefaultChar rune

	// Face renders and measures the glyphs. Nil falls back to the built-in
	// monospace face at FontSize.
	Face *text.GoTextFace
}

// DefaultFontSize is used when a configuration leaves FontSize unset.
const DefaultFontSize = 16.0

// BuildAtlas rasterizes every charset glyph (plus blank and the default
// character) into a single packed texture and returns the atlas with its
// index and UV lookup tables.
func BuildAtlas(charset string, cfg AtlasConfig) (*Atlas, error) {
	fontSize := cfg.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	face := cfg.Face
	if face == nil {
		face = &text.GoTextFace{Source: ensureBuiltinMono(), Size: fontSize}
	}

	defaultChar := cfg.DefaultChar
	if defaultChar == 0 {
		defaultChar = ' '
	}

	glyphs := glyphOrder(charset, defaultChar)
	cellW, cellH := measureCell(face, glyphs, fontSize)

	atlas, err := planAtlas(glyphs, defaultChar, cellW, cellH)
	if err != nil {
		return nil, err
	}

	atlas.paint(face)
	return atlas, nil
}

// glyphOrder deduplicates the charset into the packing order: blank first,
// then charset characters in their given order, then the default character
// if the charset missed it.
func glyphOrder(charset string, defaultChar rune) []rune {
	glyphs := make([]rune, 0, len(charset)+2)
	seen := make(map[rune]bool, len(charset)+2)

	glyphs = append(glyphs, ' ')
	seen[' '] = true

	for _, r := range charset {
		if seen[r] {
			continue
		}
		seen[r] = true
		glyphs = append(glyphs, r)
	}
	if !seen[defaultChar] {
		glyphs = append(glyphs, defaultChar)
	}
	return glyphs
}

// measureCell derives the monospace glyph cell from the face metrics: the
// widest glyph advance becomes the cell width, and the cell height is a
// fixed multiple of the font size.
func measureCell(face *text.GoTextFace, glyphs []rune, fontSize float64) (int, int) {
	var maxAdvance float64
	for _, r := range glyphs {
		if adv := text.Advance(string(r), face); adv > maxAdvance {
			maxAdvance = adv
		}
	}
	cellW := int(math.Ceil(maxAdvance))
	if cellW <= 0 {
		cellW = int(math.Ceil(fontSize * 0.6))
	}
	cellH := int(math.Ceil(fontSize * cellHeightFactor))
	if cellH <= 0 {
		cellH = 1
	}
	return cellW, cellH
}

// planAtlas computes the packed layout without touching the GPU: a
// near-square grid rounded up to power-of-two pixel dimensions, plus the
// index and UV tables. Deterministic in the glyph list and cell size alone.
func planAtlas(glyphs []rune, defaultChar rune, cellW, cellH int) (*Atlas, error) {
	n := len(glyphs)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols

	w := nextPowerOfTwo(cols * cellW)
	h := nextPowerOfTwo(rows * cellH)
	if w > maxAtlasDim || h > maxAtlasDim {
		return nil, ErrAtlasOverflow
	}

	a := &Atlas{
		Glyphs:    glyphs,
		Index:     make(map[rune]int, n),
		Cols:      cols,
		Rows:      rows,
		CellW:     cellW,
		CellH:     cellH,
		W:         w,
		H:         h,
		uvByIndex: make([]UVRect, n),
	}

	for i, r := range glyphs {
		a.Index[r] = i
		px := (i % cols) * cellW
		py := (i / cols) * cellH
		a.uvByIndex[i] = UVRect{
			U0: float64(px) / float64(w),
			V0: float64(py) / float64(h),
			U1: float64(px+cellW) / float64(w),
			V1: float64(py+cellH) / float64(h),
		}
	}
	a.DefaultIndex = a.Index[defaultChar]
	return a, nil
}

// paint rasterizes each glyph white-on-transparent, centered in its cell,
// then re-clears the blank glyph's region so no anti-aliasing residue
// bleeds into slot 0.
func (a *Atlas) paint(face *text.GoTextFace) {
	a.Image = ebiten.NewImage(a.W, a.H)

	m := face.Metrics()
	lineH := m.HAscent + m.HDescent

	for i, r := range a.Glyphs {
		if r == ' ' {
			continue
		}
		px := float64((i % a.Cols) * a.CellW)
		py := float64((i / a.Cols) * a.CellH)

		adv := text.Advance(string(r), face)
		op := &text.DrawOptions{}
		op.GeoM.Translate(
			px+(float64(a.CellW)-adv)/2,
			py+(float64(a.CellH)-lineH)/2,
		)
		text.Draw(a.Image, string(r), face, op)
	}

	a.clearCell(0)
}

// clearCell wipes one glyph cell region back to transparent.
func (a *Atlas) clearCell(i int) {
	if a.Image == nil || i < 0 || i >= len(a.Glyphs) {
		return
	}
	px := (i % a.Cols) * a.CellW
	py := (i / a.Cols) * a.CellH
	region := a.Image.SubImage(image.Rect(px, py, px+a.CellW, py+a.CellH)).(*ebiten.Image)
	region.Clear()
}

// glyphRect returns the pixel rectangle of glyph index i within the atlas
// texture. Out-of-range indices map to the blank glyph.
func (a *Atlas) glyphRect(i int) image.Rectangle {
	if i < 0 || i >= len(a.Glyphs) {
		i = 0
	}
	px := (i % a.Cols) * a.CellW
	py := (i / a.Cols) * a.CellH
	return image.Rect(px, py, px+a.CellW, py+a.CellH)
}

// IndexOf resolves a rune to its atlas slot, substituting the default index
// for unknown characters so a bad cell can never break a draw call.
func (a *Atlas) IndexOf(r rune) int {
	if i, ok := a.Index[r]; ok {
		return i
	}
	return a.DefaultIndex
}

// UV returns the normalized atlas region for a rune.
func (a *Atlas) UV(r rune) (UVRect, bool) {
	i, ok := a.Index[r]
	if !ok {
		return UVRect{}, false
	}
	return a.uvByIndex[i], true
}

// UVAt returns the normalized atlas region for a glyph index. Out-of-range
// indices map to the blank glyph.
func (a *Atlas) UVAt(i int) UVRect {
	if i < 0 || i >= len(a.uvByIndex) {
		return a.uvByIndex[0]
	}
	return a.uvByIndex[i]
}

// GlyphCount returns the number of packed glyphs.
func (a *Atlas) GlyphCount() int {
	return len(a.Glyphs)
}

// release frees the GPU texture. Safe to call more than once.
func (a *Atlas) release() {
	if a.Image != nil {
		a.Image.Deallocate()
		a.Image = nil
	}
}
