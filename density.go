package glyphgrid

// charWeights maps common glyphs to a visual weight in [0, 1], roughly the
// fraction of the cell a terminal font inks for that character. Cells
// without an explicit density fall back to this table.
var charWeights = map[rune]float64{
	' ':  0.0,
	'.':  0.1,
	',':  0.12,
	'\'': 0.1,
	'`':  0.1,
	':':  0.15,
	';':  0.18,
	'-':  0.2,
	'_':  0.2,
	'~':  0.25,
	'"':  0.2,
	'^':  0.22,
	'+':  0.35,
	'*':  0.4,
	'=':  0.35,
	'/':  0.3,
	'\\': 0.3,
	'|':  0.3,
	'(':  0.28,
	')':  0.28,
	'[':  0.32,
	']':  0.32,
	'{':  0.34,
	'}':  0.34,
	'<':  0.3,
	'>':  0.3,
	'?':  0.38,
	'!':  0.3,
	'o':  0.45,
	'x':  0.45,
	'%':  0.55,
	'&':  0.6,
	'$':  0.6,
	'0':  0.6,
	'8':  0.65,
	'B':  0.65,
	'W':  0.75,
	'M':  0.75,
	'#':  0.8,
	'@':  1.0,
	'█':  1.0,
	'▓':  0.75,
	'▒':  0.5,
	'░':  0.25,
}

// CharDensity returns the visual weight for a character: the weight table
// when listed, otherwise a code-point-range heuristic.
func CharDensity(r rune) float64 {
	if w, ok := charWeights[r]; ok {
		return w
	}
	switch {
	case r >= '0' && r <= '9':
		return 0.55
	case r >= 'A' && r <= 'Z':
		return 0.6
	case r >= 'a' && r <= 'z':
		return 0.5
	case r < 0x80:
		// Remaining ASCII punctuation.
		return 0.35
	case r >= 0x2580 && r <= 0x259F:
		// Block elements not in the table.
		return 0.7
	default:
		return 0.5
	}
}

// cellDensity resolves a cell's effective density: explicit value when set
// (clamped), heuristic weight otherwise.
func cellDensity(c Cell, char rune) float64 {
	if c.HasDensity {
		return clamp01(c.Density)
	}
	return CharDensity(char)
}
