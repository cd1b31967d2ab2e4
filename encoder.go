package glyphgrid

// floatsPerCell is the per-instance record layout shared with batch.go and
// the shader's input contract: glyph index, foreground R, G, B, density.
const floatsPerCell = 5

// EncodeFrame flattens a sparse frame into a dense instance buffer of
// exactly width×height×5 float32 values, one record per grid cell in
// row-major order: the record for (x, y) starts at (y×width+x)×5.
//
// Two passes keep the cost predictable: the default record is stamped over
// every slot in O(width×height), then each sparse cell overwrites its own
// slot in O(cell count). EncodeFrame never mutates its inputs, is fully
// deterministic, and silently skips cells whose coordinates fall outside
// the grid (editing operations legitimately produce those in passing).
//
// dst is reused when it has the right capacity; pass nil to allocate.
func EncodeFrame(dst []float32, frame Frame, canvas Canvas, atlas *Atlas) []float32 {
	w, h := canvas.Width, canvas.Height
	n := w * h * floatsPerCell
	if n <= 0 {
		return dst[:0]
	}
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	// Pass 1: canvas defaults everywhere.
	defChar := canvas.defaultChar()
	defIndex := float32(atlas.IndexOf(defChar))
	defColor := canvas.defaultColor()
	defDensity := float32(CharDensity(defChar))

	r := float32(defColor.R)
	g := float32(defColor.G)
	b := float32(defColor.B)
	for i := 0; i < n; i += floatsPerCell {
		dst[i] = defIndex
		dst[i+1] = r
		dst[i+2] = g
		dst[i+3] = b
		dst[i+4] = defDensity
	}

	// Pass 2: sparse overwrites.
	for _, cell := range frame.Cells {
		if cell.X < 0 || cell.X >= w || cell.Y < 0 || cell.Y >= h {
			continue
		}
		char := cell.Char
		if char == 0 {
			char = defChar
		}

		color := defColor
		if cell.Color != "" {
			parsed, ok := ParseHexColor(cell.Color)
			if ok {
				color = parsed
			} else {
				color = sentinelColor
			}
		}

		off := (cell.Y*w + cell.X) * floatsPerCell
		dst[off] = float32(atlas.IndexOf(char))
		dst[off+1] = float32(color.R)
		dst[off+2] = float32(color.G)
		dst[off+3] = float32(color.B)
		dst[off+4] = float32(cellDensity(cell, char))
	}

	return dst
}

// blendInstanceBuffers interpolates the color and density channels of two
// equally-sized instance buffers into dst by t in [0, 1]. The glyph index
// channel snaps from prev to cur at the halfway point; interpolating an
// index would sample unrelated glyphs. Used by the playback crossfade.
func blendInstanceBuffers(dst, prev, cur []float32, t float64) []float32 {
	if len(prev) != len(cur) {
		// Grid size changed mid-transition; no meaningful blend exists.
		return append(dst[:0], cur...)
	}
	if cap(dst) < len(cur) {
		dst = make([]float32, len(cur))
	}
	dst = dst[:len(cur)]

	ft := float32(clamp01(t))
	for i := 0; i < len(cur); i += floatsPerCell {
		if ft < 0.5 {
			dst[i] = prev[i]
		} else {
			dst[i] = cur[i]
		}
		for j := 1; j < floatsPerCell; j++ {
			dst[i+j] = prev[i+j] + (cur[i+j]-prev[i+j])*ft
		}
	}
	return dst
}
