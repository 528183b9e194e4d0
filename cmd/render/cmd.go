package render

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/starshine-sys/welcomer/bot"
	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/common/log"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "render",
	Usage:  "Render a card to the output directory without connecting to Discord",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "kind",
			Usage: "Card kind (welcome or goodbye)",
			Value: "welcome",
		},
		&cli.StringFlag{
			Name:     "id",
			Usage:    "User ID, used in the file name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "Display name shown on the card",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "avatar",
			Usage:    "Avatar URL",
			Required: true,
		},
	},
}

func run(c *cli.Context) error {
	kind, err := card.ParseKind(c.String("kind"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	log.SetDebug(conf.Bot.Debug)

	renderer, fonts := bot.NewRenderer(conf.Card)
	defer fonts.Close()

	art, err := renderer.Render(c.Context, card.Request{
		Kind:        kind,
		UserID:      c.String("id"),
		DisplayName: c.String("name"),
		AvatarURL:   c.String("avatar"),
	})
	if err != nil {
		return errors.Wrap(err, "rendering card")
	}

	fmt.Println(art.Path)
	return nil
}
