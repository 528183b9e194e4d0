// Package cards adds the commands that render a test welcome card on demand.
package cards

import (
	"github.com/starshine-sys/welcomer/bot"
	"github.com/starshine-sys/welcomer/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding card commands")

	bot := &Bot{Bot: root}

	bot.AddPrefixCommand("testar", bot.testPrefix)
	bot.Router.AddFunc("testar", bot.testSlash)
}
