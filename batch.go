package glyphgrid

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// buildCellQuads expands a dense instance buffer into the vertex stream for
// one DrawTrianglesShader32 call: 4 vertices and 6 indices per grid cell.
//
// The cell's position is derived purely from its record index (column is
// i mod width, row is i div width), so the instance records stay at 5
// floats and never carry coordinates. Atlas UVs are resolved here from the glyph
// index, the foreground color rides in the vertex color, and density in
// Custom0 (the shader reads it as custom.x).
//
// verts and inds are appended to; pass them re-sliced to zero length to
// reuse the scratch buffers across frames.
func buildCellQuads(verts []ebiten.Vertex, inds []uint32, buf []float32, width, height int, cellW, cellH float64, atlas *Atlas) ([]ebiten.Vertex, []uint32) {
	n := width * height
	if len(buf) < n*floatsPerCell {
		n = len(buf) / floatsPerCell
	}

	aw := float64(atlas.W)
	ah := float64(atlas.H)

	for i := 0; i < n; i++ {
		rec := buf[i*floatsPerCell:]

		x := float64(i%width) * cellW
		y := float64(i/width) * cellH

		uv := atlas.UVAt(int(rec[0]))
		sx0 := float32(uv.U0 * aw)
		sy0 := float32(uv.V0 * ah)
		sx1 := float32(uv.U1 * aw)
		sy1 := float32(uv.V1 * ah)

		cr := rec[1]
		cg := rec[2]
		cb := rec[3]
		density := rec[4]

		base := uint32(len(verts))

		// 4 corners: TL, TR, BL, BR.
		dx := [4]float32{float32(x), float32(x + cellW), float32(x), float32(x + cellW)}
		dy := [4]float32{float32(y), float32(y), float32(y + cellH), float32(y + cellH)}
		sx := [4]float32{sx0, sx1, sx0, sx1}
		sy := [4]float32{sy0, sy0, sy1, sy1}

		for j := 0; j < 4; j++ {
			verts = append(verts, ebiten.Vertex{
				DstX:    dx[j],
				DstY:    dy[j],
				SrcX:    sx[j],
				SrcY:    sy[j],
				ColorR:  cr,
				ColorG:  cg,
				ColorB:  cb,
				ColorA:  1,
				Custom0: density,
			})
		}

		// Two triangles: TL-TR-BL, TR-BR-BL.
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	return verts, inds
}
