package glyphgrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// The grid cell program and its input contract.
//
// Per-instance data travels in the vertex stream built by batch.go from the
// 5-float instance records (see floatsPerCell): the atlas UV of the cell's
// glyph arrives pre-resolved in the source coordinates, the foreground
// color in the vertex color, and the density in custom.x. Cell positions
// are never stored per instance; the CPU expansion derives (x, y) from the
// record's index alone (i mod width, i div width), which halves the
// per-cell bandwidth.
//
// Uniforms:
//
//	GridSize      vec2  grid dimensions in cells (columns, rows)
//	CellSize      vec2  cell size in target pixels
//	Background    vec4  clear/background color (opaque)
//	GridLines     float 1 to draw thin cell borders, 0 to skip
//	GridLineColor vec4  border color, alpha is its blend weight
//	Highlight     vec2  hovered cell to tint, (-1, -1) for none
const gridShaderSrc = `//kage:unit pixels
package main

var GridSize vec2
var CellSize vec2
var Background vec4
var GridLines float
var GridLineColor vec4
var Highlight vec2

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	// Glyph coverage from the atlas, weighted by the cell's density.
	coverage := imageSrc0At(src).a * custom.x
	out := mix(Background.rgb, color.rgb, clamp(coverage, 0, 1))

	pos := dst.xy - imageDstOrigin()
	cell := floor(pos / CellSize)
	local := pos - cell*CellSize

	if GridLines >= 0.5 {
		line := local.x < 1 || local.y < 1
		// Interior boundaries double as the next cell's leading edge, so
		// only the grid's outer right/bottom border needs closing.
		if cell.x == GridSize.x-1 && local.x >= CellSize.x-1 {
			line = true
		}
		if cell.y == GridSize.y-1 && local.y >= CellSize.y-1 {
			line = true
		}
		if line {
			out = mix(out, GridLineColor.rgb, GridLineColor.a)
		}
	}

	if cell.x == Highlight.x && cell.y == Highlight.y {
		out = mix(out, vec3(1), 0.2)
	}

	return vec4(out, 1)
}
`

// compileGridShader compiles the Kage grid program. A failure here is the
// capability probe that sends construction down the fallback path; it is
// reported, never thrown.
func compileGridShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader([]byte(gridShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("glyphgrid: failed to compile grid shader: %w", err)
	}
	return s, nil
}
