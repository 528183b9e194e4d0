package meta

import (
	"github.com/starshine-sys/welcomer/bot"
	"github.com/starshine-sys/welcomer/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding meta commands")

	bot := &Bot{Bot: root}

	bot.Router.AddFunc("ping", bot.ping)
}
