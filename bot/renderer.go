package bot

import (
	"time"

	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/common/log"
	"github.com/starshine-sys/welcomer/emoji"
	"github.com/starshine-sys/welcomer/fetch"
)

// NewRenderer creates a card renderer from the card configuration.
// If the configured font can't be loaded, the embedded fallback font is used instead.
// The returned fonts should be closed once the renderer is no longer used.
func NewRenderer(conf CardConfig) (*card.Renderer, *card.Fonts) {
	fonts, err := card.LoadFonts(conf.Font)
	if err != nil {
		log.Warnf("loading font %q, falling back to the default font: %v", conf.Font, err)
		fonts = card.MustDefaultFonts()
	}
	log.Debugf("using font %v", fonts.Name())

	client := fetch.New()

	return card.New(card.Options{
		OutputDir:     conf.OutputDir,
		Fonts:         fonts,
		Avatars:       client,
		AvatarTimeout: time.Duration(conf.AvatarTimeout),
		Sprites:       emoji.New(client, conf.EmojiURL, time.Duration(conf.EmojiTimeout)),
		Decoration:    conf.Emoji,
		WelcomeText:   conf.WelcomeText,
		GoodbyeText:   conf.GoodbyeText,
	}), fonts
}
