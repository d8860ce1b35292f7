package caption

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// AtlasPage is one glyph atlas texture. Pages may stream in asynchronously:
// a page created without an image reports Preloaded false, and elements
// referencing it are skipped at draw time until SetImage lands. Decode off
// the frame goroutine if you like, but call SetImage on it.
type AtlasPage struct {
	img      *ebiten.Image
	maskPage *AtlasPage

	// ColorGlyphs marks a full-color page (emoji and the like) whose glyphs
	// cannot be tinted.
	ColorGlyphs bool
	// MaxFlatness is the flattest this page's glyphs may render. Defaults
	// to 1 (fully flat allowed).
	MaxFlatness float64
}

// NewAtlasPage creates a page. A nil image means the page is still
// streaming.
func NewAtlasPage(img *ebiten.Image) *AtlasPage {
	return &AtlasPage{img: img, MaxFlatness: 1}
}

// Preloaded reports whether the page image has arrived.
func (p *AtlasPage) Preloaded() bool { return p.img != nil }

// SetImage installs the streamed page image.
func (p *AtlasPage) SetImage(img *ebiten.Image) { p.img = img }

// Image returns the page image, nil while streaming.
func (p *AtlasPage) Image() *ebiten.Image { return p.img }

// SetMask installs an optional shadow-mask texture for this page.
func (p *AtlasPage) SetMask(img *ebiten.Image) {
	p.maskPage = &AtlasPage{img: img, MaxFlatness: 1}
}

// maskTexture returns the page's shadow mask as a Texture, or nil.
func (p *AtlasPage) maskTexture() Texture {
	if p.maskPage == nil {
		return nil
	}
	return p.maskPage
}

// Mask returns the page's shadow-mask image, nil when unset.
func (p *AtlasPage) Mask() *ebiten.Image {
	if p.maskPage == nil {
		return nil
	}
	return p.maskPage.img
}

// glyph describes one pre-rasterized glyph within an atlas page.
type glyph struct {
	id       rune
	x, y     uint16
	width    uint16
	height   uint16
	xOffset  int16
	yOffset  int16
	xAdvance int16
	page     uint16
}

const asciiGlyphCount = 128

// GlyphFont shapes text from pre-rasterized glyph atlases in BMFont format.
// It implements both GlyphLayouter and WidthMeasurer. A separate
// large-format glyph set may be attached as Big; when present it serves
// big-mode layout and measurement.
type GlyphFont struct {
	lineHeight float64
	base       float64
	pages      []*AtlasPage

	asciiGlyphs [asciiGlyphCount]glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool  // which ASCII entries are populated
	extGlyphs   map[rune]*glyph        // extended Unicode

	kernings map[[2]rune]int16

	// Big is the optional large-format variant used when the big flag is
	// set. Without one, the regular glyph set serves both modes.
	Big *GlyphFont
}

// LoadGlyphFont parses BMFont .fnt text-format data and binds the given
// atlas pages (indexed by the per-char page field).
func LoadGlyphFont(fntData []byte, pages []*AtlasPage) (*GlyphFont, error) {
	f := &GlyphFont{pages: pages}

	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	var charCount int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "common":
			if v, ok := fields["lineHeight"]; ok {
				f.lineHeight, _ = strconv.ParseFloat(v, 64)
			}
			if v, ok := fields["base"]; ok {
				f.base, _ = strconv.ParseFloat(v, 64)
			}

		case "char":
			v, ok := fields["id"]
			if !ok {
				// A char record without an id would masquerade as rune 0.
				continue
			}
			charCount++
			g := glyph{}
			id, _ := strconv.Atoi(v)
			g.id = rune(id)
			g.x = fieldUint16(fields, "x")
			g.y = fieldUint16(fields, "y")
			g.width = fieldUint16(fields, "width")
			g.height = fieldUint16(fields, "height")
			g.xOffset = fieldInt16(fields, "xoffset")
			g.yOffset = fieldInt16(fields, "yoffset")
			g.xAdvance = fieldInt16(fields, "xadvance")
			g.page = fieldUint16(fields, "page")

			if g.id >= 0 && g.id < asciiGlyphCount {
				f.asciiGlyphs[g.id] = g
				f.asciiSet[g.id] = true
			} else {
				if f.extGlyphs == nil {
					f.extGlyphs = make(map[rune]*glyph)
				}
				g := g // copy for heap allocation
				f.extGlyphs[g.id] = &g
			}

		case "kerning":
			first := rune(fieldUint16(fields, "first"))
			second := rune(fieldUint16(fields, "second"))
			amount := fieldInt16(fields, "amount")
			if f.kernings == nil {
				f.kernings = make(map[[2]rune]int16)
			}
			f.kernings[[2]rune{first, second}] = amount
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("caption: error reading .fnt data: %w", err)
	}
	if f.lineHeight == 0 {
		return nil, fmt.Errorf("caption: .fnt data missing common lineHeight")
	}
	if charCount == 0 {
		return nil, fmt.Errorf("caption: .fnt data has no char definitions")
	}

	return f, nil
}

func fieldUint16(fields map[string]string, key string) uint16 {
	v, _ := strconv.Atoi(fields[key])
	return uint16(v)
}

func fieldInt16(fields map[string]string, key string) int16 {
	v, _ := strconv.Atoi(fields[key])
	return int16(v)
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Fields(s) {
		eq := strings.IndexByte(part, '=')
		if eq == -1 {
			continue
		}
		key := part[:eq]
		val := part[eq+1:]
		// Strip quotes from values like face="Arial"
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = val[1 : len(val)-1]
		}
		fields[key] = val
	}
	return fields
}

func (f *GlyphFont) glyph(r rune) *glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	if g, ok := f.extGlyphs[r]; ok {
		return g
	}
	return nil
}

func (f *GlyphFont) kern(first, second rune) int16 {
	if f.kernings == nil {
		return 0
	}
	return f.kernings[[2]rune{first, second}]
}

// LineHeight returns the vertical distance between baselines.
func (f *GlyphFont) LineHeight() float64 { return f.lineHeight }

// StringWidth implements WidthMeasurer: the widest line of s in layout
// units. The big flag selects the large-format glyph set when attached.
func (f *GlyphFont) StringWidth(s string, big bool) float64 {
	t := f
	if big && f.Big != nil {
		t = f.Big
	}
	var maxW, cursorX float64
	var prevRune rune
	var hasPrev bool
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == '\n' {
			if cursorX > maxW {
				maxW = cursorX
			}
			cursorX = 0
			hasPrev = false
			continue
		}
		g := t.glyph(r)
		if g == nil {
			hasPrev = false
			continue
		}
		if hasPrev {
			cursorX += float64(t.kern(prevRune, r))
		}
		cursorX += float64(g.xAdvance)
		prevRune = r
		hasPrev = true
	}
	if cursorX > maxW {
		maxW = cursorX
	}
	return maxW
}

// --- Mesh building ---

// VertexMesh is the concrete Mesh produced by GlyphFont: glyph quads in
// mesh-local space (y up, origin at the aligned anchor, matching the pass
// coordinate system) with UVs in page texels. EbitenSink consumes it via
// DrawTriangles after mapping to screen space.
type VertexMesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// glyphMesh groups per-page vertex meshes into elements.
type glyphMesh struct {
	elements []GlyphElement
}

func (m *glyphMesh) Elements() []GlyphElement { return m.elements }

func (m *glyphMesh) Release() { m.elements = nil }

// placedGlyph is one laid-out glyph prior to mesh grouping.
type placedGlyph struct {
	x, y float64
	g    *glyph
}

// Layout implements GlyphLayouter. Lines split on newline only; overlay
// captions do not word-wrap. Alignment offsets apply per line (horizontal)
// and to the whole block (vertical). scaleHint scales every coordinate,
// including advances.
func (f *GlyphFont) Layout(s string, h HAlign, v VAlign, big bool, scaleHint float64) GlyphMesh {
	t := f
	if big && f.Big != nil {
		t = f.Big
	}
	if scaleHint == 0 {
		scaleHint = 1
	}

	type line struct {
		glyphs []placedGlyph
		width  float64
	}
	var lines []line
	var cur line
	var cursorX float64
	var prevRune rune
	var hasPrev bool

	flush := func() {
		cur.width = cursorX
		lines = append(lines, cur)
		cur = line{}
		cursorX = 0
		hasPrev = false
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == '\n' {
			flush()
			continue
		}
		g := t.glyph(r)
		if g == nil {
			hasPrev = false
			continue
		}
		if hasPrev {
			cursorX += float64(t.kern(prevRune, r))
		}
		cur.glyphs = append(cur.glyphs, placedGlyph{x: cursorX + float64(g.xOffset), y: float64(g.yOffset), g: g})
		cursorX += float64(g.xAdvance)
		prevRune = r
		hasPrev = true
	}
	// Always flush the final line so a trailing newline contributes an empty
	// line to the block height, matching newline-split semantics.
	flush()

	totalH := float64(len(lines)) * t.lineHeight

	var yStart float64
	switch v {
	case VAlignTop:
		yStart = 0
	case VAlignCenter:
		yStart = -totalH / 2
	case VAlignBottom:
		yStart = -totalH
	case VAlignNone:
		// Baseline of the first line sits at y = 0.
		yStart = -t.base
	}

	// Group glyph quads by page so each element binds one texture.
	perPage := make(map[uint16]*VertexMesh)
	var pageOrder []uint16

	for li, ln := range lines {
		var xOff float64
		switch h {
		case HAlignLeft:
			xOff = 0
		case HAlignCenter:
			xOff = -ln.width / 2
		case HAlignRight:
			xOff = -ln.width
		}
		yOff := yStart + float64(li)*t.lineHeight
		for _, pg := range ln.glyphs {
			if pg.g.width == 0 || pg.g.height == 0 {
				continue
			}
			vm := perPage[pg.g.page]
			if vm == nil {
				vm = &VertexMesh{}
				perPage[pg.g.page] = vm
				pageOrder = append(pageOrder, pg.g.page)
			}
			appendGlyphQuad(vm, pg, xOff, yOff, scaleHint)
		}
	}

	m := &glyphMesh{}
	for _, page := range pageOrder {
		p := f.pageFor(t, page)
		m.elements = append(m.elements, GlyphElement{
			Texture:     p,
			Mask:        p.maskTexture(),
			Mesh:        perPage[page],
			UScale:      pageUScale(p),
			VScale:      pageVScale(p),
			MaxFlatness: p.MaxFlatness,
			CanColor:    !p.ColorGlyphs,
		})
	}
	return m
}

// pageFor resolves a page index against the glyph set that produced it,
// falling back to a placeholder streaming page when out of range.
func (f *GlyphFont) pageFor(t *GlyphFont, idx uint16) *AtlasPage {
	if int(idx) < len(t.pages) && t.pages[idx] != nil {
		return t.pages[idx]
	}
	logOnce(fmt.Sprintf("glyph page %d out of range (%d pages)", idx, len(t.pages)))
	return NewAtlasPage(nil)
}

// Shadow UV scales express page texel density relative to a 256px reference,
// so the composer's fixed UV offsets shift shadows by a consistent visual
// amount regardless of page size.
const pageUVReference = 256.0

func pageUScale(p *AtlasPage) float64 {
	if p.img == nil {
		return 1
	}
	return float64(p.img.Bounds().Dx()) / pageUVReference
}

func pageVScale(p *AtlasPage) float64 {
	if p.img == nil {
		return 1
	}
	return float64(p.img.Bounds().Dy()) / pageUVReference
}

// appendGlyphQuad appends one glyph's two triangles to the page mesh.
// Layout math runs in y-down font space; quads are emitted negated into the
// y-up mesh space.
func appendGlyphQuad(vm *VertexMesh, pg placedGlyph, xOff, yOff, scale float64) {
	g := pg.g
	x0 := (pg.x + xOff) * scale
	x1 := x0 + float64(g.width)*scale
	yTop := -(pg.y + yOff) * scale
	yBot := yTop - float64(g.height)*scale
	sx0 := float32(g.x)
	sy0 := float32(g.y)
	sx1 := sx0 + float32(g.width)
	sy1 := sy0 + float32(g.height)

	base := uint16(len(vm.Vertices))
	vm.Vertices = append(vm.Vertices,
		ebiten.Vertex{DstX: float32(x0), DstY: float32(yTop), SrcX: sx0, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: float32(x1), DstY: float32(yTop), SrcX: sx1, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: float32(x1), DstY: float32(yBot), SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: float32(x0), DstY: float32(yBot), SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	)
	vm.Indices = append(vm.Indices, base, base+1, base+2, base, base+2, base+3)
}
