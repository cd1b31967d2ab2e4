package glyphgrid

import (
	"bytes"
	"fmt"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// fontRegistry maps canvas font-family names to parsed face sources. Each
// renderer owns its own registry so teardown releases everything the
// instance registered (no process-scoped cache).
type fontRegistry struct {
	sources map[string]*text.GoTextFaceSource
}

func newFontRegistry() *fontRegistry {
	return &fontRegistry{sources: make(map[string]*text.GoTextFaceSource)}
}

// builtinMono is the fallback monospace source, parsed lazily from the
// embedded Go Mono font (no sync.Once; glyphgrid is single-threaded).
var builtinMono *text.GoTextFaceSource

func ensureBuiltinMono() *text.GoTextFaceSource {
	if builtinMono == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
		if err != nil {
			// The embedded font is a compile-time constant; failing to
			// parse it is a build defect, not a runtime condition.
			panic("glyphgrid: failed to parse built-in Go Mono font: " + err.Error())
		}
		builtinMono = src
	}
	return builtinMono
}

// Register parses raw TTF/OTF data and stores it under the given family
// name, making it addressable from Canvas.FontFamily.
func (fr *fontRegistry) Register(family string, ttfData []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("glyphgrid: failed to parse font %q: %w", family, err)
	}
	fr.sources[family] = src
	return nil
}

// Face resolves a family name to a sized face. Unknown or empty families
// use the built-in monospace face.
func (fr *fontRegistry) Face(family string, size float64) *text.GoTextFace {
	src, ok := fr.sources[family]
	if !ok {
		if family != "" {
			debugf("font family %q not registered, using built-in mono", family)
		}
		src = ensureBuiltinMono()
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// release drops all registered sources. Safe to call more than once.
func (fr *fontRegistry) release() {
	fr.sources = make(map[string]*text.GoTextFaceSource)
}
