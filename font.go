package carousel

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is a TrueType face used for the stage's title and counter labels.
// Without one the stage falls back to Ebitengine's debug font.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("carousel: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// debugGlyphW is the advance of ebitenutil's debug font.
const debugGlyphW = 6

// drawLabel draws s with its top edge at y. When centered, x is the
// horizontal midpoint rather than the left edge.
func (s *Stage) drawLabel(screen *ebiten.Image, label string, x, y float64, centered bool) {
	f := s.cfg.Font
	if f == nil {
		if centered {
			x -= float64(len(label) * debugGlyphW / 2)
		}
		ebitenutil.DebugPrintAt(screen, label, int(x), int(y))
		return
	}
	if centered {
		w, _ := f.MeasureString(label)
		x -= w / 2
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	c := s.cfg.LabelColor
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.LineSpacing = f.lh
	text.Draw(screen, label, f.face, op)
}
