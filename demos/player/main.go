// player renders a procedurally generated animation: a wave of block
// characters sweeping across a 40x16 grid. Space toggles playback, the
// arrow keys scrub, G toggles grid lines, and clicking a cell prints its
// coordinates and highlights it.
package main

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/glyphgrid/glyphgrid"
)

const (
	gridW      = 40
	gridH      = 16
	frameCount = 24
)

func buildProject() glyphgrid.Project {
	canvas := glyphgrid.Canvas{
		Width:        gridW,
		Height:       gridH,
		Charset:      " .:-=+*#%@█",
		DefaultChar:  ' ',
		DefaultColor: "#808080",
		Background:   "#101014",
	}

	ramp := []rune(canvas.Charset)
	frames := make([]glyphgrid.Frame, frameCount)
	for f := range frames {
		phase := float64(f) / frameCount * 2 * math.Pi
		var cells []glyphgrid.Cell
		for y := 0; y < gridH; y++ {
			for x := 0; x < gridW; x++ {
				v := 0.5 + 0.5*math.Sin(phase+float64(x)*0.35+float64(y)*0.2)
				idx := int(v * float64(len(ramp)-1))
				if idx == 0 {
					continue
				}
				cells = append(cells, glyphgrid.Cell{
					X:    x,
					Y:    y,
					Char: ramp[idx],
					Color: fmt.Sprintf("#%02x%02x%02x",
						int(40+v*200), int(80+v*120), int(255-v*100)),
					Density:    v,
					HasDensity: true,
				})
			}
		}
		frames[f] = glyphgrid.Frame{Cells: cells}
	}

	return glyphgrid.Project{Canvas: canvas, Frames: frames}
}

type game struct {
	r         glyphgrid.Renderer
	gridLines bool
	opts      glyphgrid.Options
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.r.TogglePlay()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.r.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.r.Prev()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.gridLines = !g.gridLines
		g.opts.ShowGridLines = g.gridLines
		g.r.SetOptions(g.opts)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if pos, ok := g.r.EventToGrid(glyphgrid.CursorEvent()); ok {
			fmt.Printf("cell (%d, %d)\n", pos.X, pos.Y)
			g.r.SetHighlight(pos.X, pos.Y)
		} else {
			g.r.ClearHighlight()
		}
	}

	g.r.Update(1.0 / float64(ebiten.TPS()))
	g.r.Render()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.r.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"frame %d/%d  [space] play/pause  [arrows] scrub  [G] grid  FPS %.0f",
		g.r.CurrentFrame()+1, g.r.FrameCount(), ebiten.ActualFPS()))
}

func (g *game) Layout(w, h int) (int, int) { return w, h }

func main() {
	opts := glyphgrid.Options{
		FontSize:           18,
		FramesPerSecond:    12,
		TransitionDuration: 0.06,
		TransitionEase:     ease.OutQuad,
	}

	r := glyphgrid.NewRenderer(buildProject(), opts)
	defer r.Destroy()
	r.Play()

	ebiten.SetWindowSize(960, 480)
	ebiten.SetWindowTitle("glyphgrid player")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{r: r, opts: opts}); err != nil {
		log.Fatal(err)
	}
}
