package glyphgrid

// Cell is one sparse grid entry: a coordinate, a single glyph, and optional
// presentation hints. Missing optional fields are defaulted at encode time,
// never rejected.
type Cell struct {
	X, Y int

	// Char is the glyph to draw. The zero rune falls back to the canvas
	// default character.
	Char rune

	// Color is an optional "#rgb" / "#rrggbb" foreground. Empty means the
	// canvas default; malformed means the sentinel color.
	Color string

	// Density is an optional visual weight in [0, 1]. Only honored when
	// HasDensity is set; otherwise the character-weight heuristic applies.
	Density    float64
	HasDensity bool

	// Semantic is an optional tag carried through untouched. The renderer
	// attaches no meaning to it.
	Semantic string
}

// Frame is one complete snapshot of sparse cells in an animation sequence.
// Positions without a cell resolve to canvas defaults.
type Frame struct {
	Cells []Cell
}

// Canvas describes the grid a project renders into. It is immutable for the
// lifetime of one render pass; charset or font changes invalidate the atlas.
type Canvas struct {
	Width, Height int

	// Charset is the ordered set of usable characters. Duplicates collapse
	// to a single atlas slot.
	Charset string

	// DefaultChar fills positions without an explicit cell. Zero means space.
	DefaultChar rune

	// DefaultColor is the foreground for default-filled positions.
	DefaultColor string

	// Background is the clear color behind all glyphs.
	Background string

	// FontFamily names a face registered on the renderer. Unknown or empty
	// families use the built-in monospace face.
	FontFamily string
}

// Project is the caller-owned document: one canvas plus an ordered frame
// list. The format layer validates it before it reaches this package.
type Project struct {
	Canvas Canvas
	Frames []Frame
}

// defaultChar returns the canvas default character, substituting space for
// the zero rune.
func (c Canvas) defaultChar() rune {
	if c.DefaultChar == 0 {
		return ' '
	}
	return c.DefaultChar
}

// defaultColor returns the parsed canvas default foreground. Empty falls
// back to white; malformed falls back to the sentinel.
func (c Canvas) defaultColor() Color {
	return parseColorOr(c.DefaultColor, ColorWhite)
}

// backgroundColor returns the parsed canvas background. Empty means black;
// malformed means the sentinel.
func (c Canvas) backgroundColor() Color {
	return parseColorOr(c.Background, Color{})
}

// FrameAt returns the frame at index i, or an empty frame when the project
// has no frames or i is out of range.
func (p *Project) FrameAt(i int) Frame {
	if i < 0 || i >= len(p.Frames) {
		return Frame{}
	}
	return p.Frames[i]
}

// atlasKey captures the canvas properties whose change forces an atlas
// rebuild. Everything else can change without touching GPU textures.
type atlasKey struct {
	charset     string
	defaultChar rune
	fontFamily  string
	fontSize    float64
}

func (c Canvas) atlasKey(fontSize float64) atlasKey {
	return atlasKey{
		charset:     c.Charset,
		defaultChar: c.defaultChar(),
		fontFamily:  c.FontFamily,
		fontSize:    fontSize,
	}
}
