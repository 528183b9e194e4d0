// Package card renders welcome and goodbye cards.
//
// A card is a fixed 800x500 template: the user's avatar cropped to a circle,
// three lines of centred text, and an optional decorative emoji sprite.
// Every coordinate and size is a constant; nothing is measured or wrapped.
package card

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Canvas and layout constants.
const (
	Width  = 800
	Height = 500

	AvatarSize = 200
	AvatarY    = 40

	SpriteSize = 40

	// TextMargin is the minimum horizontal space left on each side of a line of text.
	TextMargin = 20
)

const (
	titleY, titleSize     = 270, 70
	nameY, nameSize       = 340, 42
	subtextY, subtextSize = 400, 26
)

// decorations are the sprite positions, relative to the top of the canvas and its horizontal centre.
var decorations = []image.Point{
	{X: 140, Y: 335},
	{X: 250, Y: 390},
}

var red = color.RGBA{R: 255, A: 255}

// Defaults used by New for zero-valued Options fields.
const (
	DefaultOutputDir     = "output"
	DefaultAvatarTimeout = 15 * time.Second
	DefaultDecoration    = "\u2694\ufe0f" // crossed swords
	DefaultWelcomeText   = "BEM VINDO {name} AO INFERNO, LUGAR ONDE VOCÊ MENOS QUERIA ESTAR!"
	DefaultGoodbyeText   = "{name} SAIU, VAI TOMAR TRAVA"
)

// ImageSource fetches and decodes a remote image.
type ImageSource interface {
	Image(ctx context.Context, url string, timeout time.Duration) (image.Image, error)
}

// SpriteSource looks up decorative sprites. A false return means no sprite is available.
type SpriteSource interface {
	Sprite(ctx context.Context, s string) (*image.RGBA, bool)
}

// Request describes a single card.
type Request struct {
	Kind Kind
	// UserID names the output file, so it must be stable and unique per user.
	UserID      string
	DisplayName string
	AvatarURL   string
}

// Options configure a Renderer.
type Options struct {
	OutputDir string
	Fonts     *Fonts

	Avatars       ImageSource
	AvatarTimeout time.Duration

	// Sprites is optional. Without it, cards have no decoration.
	Sprites    SpriteSource
	Decoration string

	// Subtext templates. "{name}" is replaced with the uppercased display name.
	WelcomeText string
	GoodbyeText string
}

// Renderer renders cards. It holds no per-render state and is safe for concurrent use.
type Renderer struct {
	opts  Options
	files files
}

// New returns a Renderer. Avatars must be set.
func New(opts Options) *Renderer {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.Fonts == nil {
		opts.Fonts = MustDefaultFonts()
	}
	if opts.AvatarTimeout <= 0 {
		opts.AvatarTimeout = DefaultAvatarTimeout
	}
	if opts.Decoration == "" {
		opts.Decoration = DefaultDecoration
	}
	if opts.WelcomeText == "" {
		opts.WelcomeText = DefaultWelcomeText
	}
	if opts.GoodbyeText == "" {
		opts.GoodbyeText = DefaultGoodbyeText
	}

	return &Renderer{opts: opts}
}

// Path returns where the card for kind and userID is written.
func (r *Renderer) Path(kind Kind, userID string) string {
	return filepath.Join(r.opts.OutputDir, fmt.Sprintf("%v_%v.png", kind, userID))
}

// Render composes the card described by req and writes it to disk.
//
// If the avatar can't be fetched or decoded, the returned error wraps a *fetch.Error
// and nothing is written. A missing decoration sprite is not an error.
func (r *Renderer) Render(ctx context.Context, req Request) (*Artifact, error) {
	if !validID(req.UserID) {
		return nil, errors.Wrapf(ErrInvalidUserID, "%q", req.UserID)
	}

	img, err := r.Compose(ctx, req)
	if err != nil {
		return nil, err
	}

	path := r.Path(req.Kind, req.UserID)
	tmp, err := encodeTemp(path, img)
	if err != nil {
		return nil, err
	}
	if err := r.files.commit(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, err
	}

	return &Artifact{
		Path:    path,
		Kind:    req.Kind,
		UserID:  req.UserID,
		release: func() error { return r.files.release(path) },
	}, nil
}

// Compose builds the card in memory.
func (r *Renderer) Compose(ctx context.Context, req Request) (image.Image, error) {
	src, err := r.opts.Avatars.Image(ctx, req.AvatarURL, r.opts.AvatarTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "fetching avatar")
	}
	avatar, err := Circle(Fit(src, AvatarSize))
	if err != nil {
		return nil, errors.Wrap(err, "masking avatar")
	}

	dc := gg.NewContext(Width, Height)
	defer dc.Close()

	dc.DrawImage(gg.ImageBufFromImage(avatar), float64(Width-AvatarSize)/2, AvatarY)

	for _, l := range r.Lines(req) {
		dc.SetFont(r.opts.Fonts.Face(l.Size))
		dc.SetColor(l.Colour)
		dc.DrawStringAnchored(l.Text, Width/2, l.Y, 0.5, 0.5)
	}

	if r.opts.Sprites != nil {
		if sprite, ok := r.opts.Sprites.Sprite(ctx, r.opts.Decoration); ok {
			buf := gg.ImageBufFromImage(sprite)
			for _, pt := range decorations {
				dc.DrawImageEx(buf, gg.DrawImageOptions{
					X:             float64(Width/2 + pt.X),
					Y:             float64(pt.Y),
					DstWidth:      SpriteSize,
					DstHeight:     SpriteSize,
					Interpolation: gg.InterpBilinear,
					Opacity:       1.0,
					BlendMode:     gg.BlendNormal,
				})
			}
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, errors.Wrap(err, "flushing card")
	}
	return dc.Image(), nil
}

// Line is one line of text on a card.
type Line struct {
	Text   string
	Y      float64
	Size   float64
	Colour color.Color
}

// Lines returns the title, name and subtext lines for req.
// A line too wide for the canvas gets a smaller size, so it fits within TextMargin of each edge.
func (r *Renderer) Lines(req Request) []Line {
	name := DisplayName(req.DisplayName)

	tmpl := r.opts.WelcomeText
	if req.Kind == Goodbye {
		tmpl = r.opts.GoodbyeText
	}

	lines := []Line{
		{Text: req.Kind.Title(), Y: titleY, Size: titleSize, Colour: color.White},
		{Text: name, Y: nameY, Size: nameSize, Colour: red},
		{Text: strings.ReplaceAll(tmpl, "{name}", name), Y: subtextY, Size: subtextSize, Colour: color.White},
	}
	for i := range lines {
		lines[i].Size = r.fitSize(lines[i].Text, lines[i].Size)
	}
	return lines
}

// TextWidth returns the rendered width of s at the given size.
func (r *Renderer) TextWidth(s string, size float64) float64 {
	w, _ := text.Measure(s, r.opts.Fonts.Face(size))
	return w
}

// fitSize returns the largest size up to size at which s fits between the text margins.
func (r *Renderer) fitSize(s string, size float64) float64 {
	const maxWidth = Width - 2*TextMargin

	w := r.TextWidth(s, size)
	if w <= maxWidth {
		return size
	}

	// advance scales linearly with size; step down from there for rounding in the font's hinting
	size = math.Floor(size*maxWidth/w*2) / 2
	for size > 1 && r.TextWidth(s, size) > maxWidth {
		size -= 0.5
	}
	return size
}

// DisplayName normalises a name for display. Empty names become "USER".
func DisplayName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "USER"
	}
	return s
}

func validID(id string) bool {
	if id == "" {
		return false
	}

	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
