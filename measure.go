package caption

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FaceMeasurer measures resolved text with Ebitengine's text/v2 faces.
// It is a WidthMeasurer for setups that shape with TrueType fonts instead
// of a pre-rasterized GlyphFont; pair it with a GlyphLayouter that uses the
// same faces. The big flag selects BigFace when one is attached.
type FaceMeasurer struct {
	face    *text.GoTextFace
	bigFace *text.GoTextFace
	lh      float64
}

// NewFaceMeasurer loads a TrueType font from raw TTF/OTF data at the given
// size. bigData may be nil to reuse the regular face for big mode.
func NewFaceMeasurer(ttfData []byte, size float64, bigData []byte, bigSize float64) (*FaceMeasurer, error) {
	face, lh, err := loadFace(ttfData, size)
	if err != nil {
		return nil, err
	}
	m := &FaceMeasurer{face: face, lh: lh}
	if bigData != nil {
		m.bigFace, _, err = loadFace(bigData, bigSize)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func loadFace(ttfData []byte, size float64) (*text.GoTextFace, float64, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, 0, fmt.Errorf("caption: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	met := face.Metrics()
	return face, met.HAscent + met.HDescent + met.HLineGap, nil
}

// StringWidth implements WidthMeasurer.
func (m *FaceMeasurer) StringWidth(s string, big bool) float64 {
	face := m.face
	if big && m.bigFace != nil {
		face = m.bigFace
	}
	w, _ := text.Measure(s, face, m.lh)
	return w
}

// LineHeight returns the regular face's line height.
func (m *FaceMeasurer) LineHeight() float64 { return m.lh }

// Face returns the underlying regular GoTextFace.
func (m *FaceMeasurer) Face() *text.GoTextFace { return m.face }
