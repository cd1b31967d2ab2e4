package glyphgrid

import "testing"

func TestBuildCellQuads_CountsPerCell(t *testing.T) {
	canvas := testCanvas(3, 2)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	buf := EncodeFrame(nil, Frame{}, canvas, atlas)

	verts, inds := buildCellQuads(nil, nil, buf, 3, 2, 10, 20, atlas)
	if len(verts) != 3*2*4 {
		t.Errorf("verts = %d, want %d", len(verts), 3*2*4)
	}
	if len(inds) != 3*2*6 {
		t.Errorf("inds = %d, want %d", len(inds), 3*2*6)
	}
}

func TestBuildCellQuads_PositionDerivedFromIndex(t *testing.T) {
	canvas := testCanvas(3, 2)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	buf := EncodeFrame(nil, Frame{}, canvas, atlas)

	verts, _ := buildCellQuads(nil, nil, buf, 3, 2, 10, 20, atlas)

	// Record 4 is cell (1, 1): top-left corner at (10, 20).
	tl := verts[4*4]
	if tl.DstX != 10 || tl.DstY != 20 {
		t.Errorf("cell (1,1) top-left = (%v, %v), want (10, 20)", tl.DstX, tl.DstY)
	}
	br := verts[4*4+3]
	if br.DstX != 20 || br.DstY != 40 {
		t.Errorf("cell (1,1) bottom-right = (%v, %v), want (20, 40)", br.DstX, br.DstY)
	}
}

func TestBuildCellQuads_CarriesColorAndDensity(t *testing.T) {
	canvas := testCanvas(1, 1)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	frame := Frame{Cells: []Cell{{X: 0, Y: 0, Char: '@', Color: "#ff0000", Density: 0.5, HasDensity: true}}}
	buf := EncodeFrame(nil, frame, canvas, atlas)

	verts, _ := buildCellQuads(nil, nil, buf, 1, 1, 10, 20, atlas)
	for i, v := range verts {
		if v.ColorR != 1 || v.ColorG != 0 || v.ColorB != 0 || v.ColorA != 1 {
			t.Errorf("vertex %d color = (%v, %v, %v, %v)", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
		if v.Custom0 != 0.5 {
			t.Errorf("vertex %d Custom0 = %v, want 0.5", i, v.Custom0)
		}
	}
}

func TestBuildCellQuads_SourceRectMatchesAtlasUV(t *testing.T) {
	canvas := testCanvas(1, 1)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	frame := Frame{Cells: []Cell{{X: 0, Y: 0, Char: '#'}}}
	buf := EncodeFrame(nil, frame, canvas, atlas)

	verts, _ := buildCellQuads(nil, nil, buf, 1, 1, 10, 20, atlas)

	uv := atlas.UVAt(atlas.IndexOf('#'))
	tl := verts[0]
	if tl.SrcX != float32(uv.U0*float64(atlas.W)) || tl.SrcY != float32(uv.V0*float64(atlas.H)) {
		t.Errorf("top-left src = (%v, %v), want atlas region origin", tl.SrcX, tl.SrcY)
	}
	br := verts[3]
	if br.SrcX != float32(uv.U1*float64(atlas.W)) || br.SrcY != float32(uv.V1*float64(atlas.H)) {
		t.Errorf("bottom-right src = (%v, %v), want atlas region corner", br.SrcX, br.SrcY)
	}
}

func TestBuildCellQuads_IndicesReferenceOwnQuad(t *testing.T) {
	canvas := testCanvas(2, 2)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	buf := EncodeFrame(nil, Frame{}, canvas, atlas)

	verts, inds := buildCellQuads(nil, nil, buf, 2, 2, 10, 20, atlas)
	for cell := 0; cell < 4; cell++ {
		lo := uint32(cell * 4)
		hi := lo + 3
		for _, ix := range inds[cell*6 : cell*6+6] {
			if ix < lo || ix > hi {
				t.Errorf("cell %d index %d outside vertex range [%d, %d]", cell, ix, lo, hi)
			}
		}
	}
	if int(inds[len(inds)-1]) >= len(verts) {
		t.Error("index past end of vertex slice")
	}
}

func TestBuildCellQuads_ScratchReuse(t *testing.T) {
	canvas := testCanvas(2, 2)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	buf := EncodeFrame(nil, Frame{}, canvas, atlas)

	verts, inds := buildCellQuads(nil, nil, buf, 2, 2, 10, 20, atlas)
	v2, i2 := buildCellQuads(verts[:0], inds[:0], buf, 2, 2, 10, 20, atlas)
	if &verts[0] != &v2[0] || &inds[0] != &i2[0] {
		t.Error("expected scratch buffers to be reused")
	}
}

func TestBuildCellQuads_TruncatedBuffer(t *testing.T) {
	canvas := testCanvas(2, 2)
	atlas := planOnlyAtlas(t, canvas.Charset, ' ')
	buf := EncodeFrame(nil, Frame{}, canvas, atlas)

	// Only one full record available: exactly one quad comes out.
	verts, inds := buildCellQuads(nil, nil, buf[:floatsPerCell+2], 2, 2, 10, 20, atlas)
	if len(verts) != 4 || len(inds) != 6 {
		t.Errorf("verts, inds = %d, %d, want 4, 6", len(verts), len(inds))
	}
}
