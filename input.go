package glyphgrid

import "github.com/hajimehoshi/ebiten/v2"

// PointerEvent is any pointing input that can be mapped to a grid cell:
// mouse events report their position directly, touch events resolve to the
// first active touch. Positions are in display pixels relative to the area
// the renderer last presented into.
type PointerEvent interface {
	// PointerPosition returns the event position in display pixels and
	// whether the event carries a position at all (a touch event with no
	// active touches does not).
	PointerPosition() (x, y float64, ok bool)
}

// MouseEvent is a pointer event at an explicit display position, for
// example from ebiten.CursorPosition.
type MouseEvent struct {
	X, Y float64
}

func (e MouseEvent) PointerPosition() (float64, float64, bool) {
	return e.X, e.Y, true
}

// TouchEvent is a pointer event backed by a list of touch positions; the
// first touch wins, matching single-finger editing.
type TouchEvent struct {
	Touches []CursorPoint
}

// CursorPoint is one touch position in display pixels.
type CursorPoint struct {
	X, Y float64
}

func (e TouchEvent) PointerPosition() (float64, float64, bool) {
	if len(e.Touches) == 0 {
		return 0, 0, false
	}
	return e.Touches[0].X, e.Touches[0].Y, true
}

// CursorEvent reads the mouse cursor position live from ebiten.
func CursorEvent() MouseEvent {
	x, y := ebiten.CursorPosition()
	return MouseEvent{X: float64(x), Y: float64(y)}
}

// TouchesEvent reads the active touches live from ebiten.
func TouchesEvent() TouchEvent {
	ids := ebiten.AppendTouchIDs(nil)
	ev := TouchEvent{}
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		ev.Touches = append(ev.Touches, CursorPoint{X: float64(x), Y: float64(y)})
	}
	return ev
}

// eventToGrid maps a pointer event to a cell coordinate. The display
// position is first scaled back to the target surface's backing pixels
// (the surface may be presented at a different size than it was rendered
// at), then divided by the cell pixel size. Events outside the grid return
// ok=false.
func (c *rendererCore) eventToGrid(ev PointerEvent) (CellPos, bool) {
	if c.destroyed || c.atlas == nil || c.target == nil || ev == nil {
		return CellPos{}, false
	}
	px, py, ok := ev.PointerPosition()
	if !ok {
		return CellPos{}, false
	}

	tb := c.target.Bounds()
	backingW, backingH := tb.Dx(), tb.Dy()
	if backingW == 0 || backingH == 0 {
		return CellPos{}, false
	}

	// Until the first Draw, assume display size equals backing size.
	dw, dh := c.displayW, c.displayH
	if dw == 0 || dh == 0 {
		dw, dh = backingW, backingH
	}

	bx := px * float64(backingW) / float64(dw)
	by := py * float64(backingH) / float64(dh)

	cx := int(bx) / c.atlas.CellW
	cy := int(by) / c.atlas.CellH
	if bx < 0 || by < 0 || cx >= c.project.Canvas.Width || cy >= c.project.Canvas.Height {
		return CellPos{}, false
	}
	return CellPos{X: cx, Y: cy}, true
}
