// Package emoji fetches small emoji sprites from a Twemoji-compatible CDN.
//
// Lookups never fail loudly: a missing sprite is reported as absent and the
// caller is expected to carry on without it.
package emoji

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"

	"github.com/starshine-sys/welcomer/common/log"
	"github.com/starshine-sys/welcomer/fetch"
)

// DefaultURLFormat is the sprite CDN used when none is configured.
// The single %s verb is replaced with the sprite's identifier.
const DefaultURLFormat = "https://cdn.jsdelivr.net/gh/jdecked/twemoji@latest/assets/72x72/%s.png"

// DefaultTimeout bounds a single sprite lookup.
const DefaultTimeout = 10 * time.Second

const (
	zwj  = '\u200d'
	vs16 = '\ufe0f'
)

// Fetcher retrieves emoji sprites.
type Fetcher struct {
	Client    *fetch.Client
	URLFormat string
	Timeout   time.Duration
}

// New returns a Fetcher using the given client and URL format.
// An empty format falls back to DefaultURLFormat.
func New(c *fetch.Client, urlFormat string, timeout time.Duration) *Fetcher {
	if urlFormat == "" {
		urlFormat = DefaultURLFormat
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Fetcher{
		Client:    c,
		URLFormat: urlFormat,
		Timeout:   timeout,
	}
}

// Codepoints returns every code point in s as lower-case hex, joined with hyphens.
func Codepoints(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}

// Identifier returns the sprite file name for s.
// Like Twemoji, variation selector 16 is dropped unless the sequence contains a zero width joiner.
func Identifier(s string) string {
	if strings.ContainsRune(s, zwj) {
		return Codepoints(s)
	}
	return Codepoints(strings.ReplaceAll(s, string(vs16), ""))
}

// URL returns the CDN URL for s.
func (f *Fetcher) URL(s string) string {
	return fmt.Sprintf(f.URLFormat, Identifier(s))
}

// Sprite returns the sprite for s converted to RGBA.
// ok is false if the sprite could not be retrieved for any reason.
func (f *Fetcher) Sprite(ctx context.Context, s string) (img *image.RGBA, ok bool) {
	if s == "" {
		return nil, false
	}

	src, err := f.Client.Image(ctx, f.URL(s), f.Timeout)
	if err != nil {
		log.Debugf("no sprite for %q: %v", s, err)
		return nil, false
	}

	b := src.Bounds()
	img = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img, true
}
