package render

import (
	"log/slog"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/menucraft/menucraft/internal/document"
)

type faceKey struct {
	family string
	style  document.FontStyle
	size   int
}

// FontBank parses the bundled typefaces once and caches faces per
// family/style/size. Face lookups that cannot be satisfied fall back to a
// fixed bitmap face so text always renders.
type FontBank struct {
	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
	mono       *opentype.Font

	mu    sync.Mutex
	cache map[faceKey]font.Face
}

func NewFontBank() *FontBank {
	b := &FontBank{cache: make(map[faceKey]font.Face)}
	b.regular = parseFont(goregular.TTF, "regular")
	b.bold = parseFont(gobold.TTF, "bold")
	b.italic = parseFont(goitalic.TTF, "italic")
	b.boldItalic = parseFont(gobolditalic.TTF, "bold-italic")
	b.mono = parseFont(gomono.TTF, "mono")
	return b
}

func parseFont(ttf []byte, name string) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		slog.Error("parse bundled font", "font", name, "error", err)
		return nil
	}
	return f
}

// Face returns a cached face for the family/style at sizePx pixels.
func (b *FontBank) Face(family string, style document.FontStyle, sizePx float64) font.Face {
	size := int(math.Round(sizePx))
	if size < 1 {
		size = 1
	}
	key := faceKey{family: family, style: style, size: size}

	b.mu.Lock()
	defer b.mu.Unlock()
	if face, ok := b.cache[key]; ok {
		return face
	}

	src := b.pick(family, style)
	if src == nil {
		b.cache[key] = basicfont.Face7x13
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		slog.Error("create font face", "family", family, "size", size, "error", err)
		face = basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}

func (b *FontBank) pick(family string, style document.FontStyle) *opentype.Font {
	if family == "mono" && b.mono != nil {
		return b.mono
	}
	switch style {
	case document.FontStyleBold:
		if b.bold != nil {
			return b.bold
		}
	case document.FontStyleItalic:
		if b.italic != nil {
			return b.italic
		}
	}
	return b.regular
}

// Measure returns the advance width of s in pixels, including any
// letter spacing between glyphs.
func Measure(face font.Face, s string, letterSpacing float64) float64 {
	w := float64(font.MeasureString(face, s)) / 64
	if letterSpacing != 0 {
		n := 0
		for range s {
			n++
		}
		if n > 1 {
			w += letterSpacing * float64(n-1)
		}
	}
	return w
}

// Ascent returns the face's ascent in pixels.
func Ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent) / 64
}
