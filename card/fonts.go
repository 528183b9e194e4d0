package card

import (
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

// Fonts holds the single font used for every line on a card.
// The underlying source is parsed once and shared; faces are created per render.
type Fonts struct {
	source *text.FontSource
}

// LoadFonts parses the TrueType/OpenType font at path.
func LoadFonts(path string) (*Fonts, error) {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return &Fonts{source: src}, nil
}

// DefaultFonts returns the embedded Go Bold font.
func DefaultFonts() (*Fonts, error) {
	src, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, &FontLoadError{Path: "gobold", Err: err}
	}
	return &Fonts{source: src}, nil
}

// MustDefaultFonts is like DefaultFonts but panics on error.
func MustDefaultFonts() *Fonts {
	f, err := DefaultFonts()
	if err != nil {
		panic(err)
	}
	return f
}

// Face returns a face of the given size in points.
func (f *Fonts) Face(size float64) text.Face {
	return f.source.Face(size)
}

// Name returns the font's family name.
func (f *Fonts) Name() string {
	return f.source.Name()
}

func (f *Fonts) Close() error {
	return f.source.Close()
}
