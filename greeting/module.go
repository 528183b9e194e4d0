// Package greeting posts welcome and goodbye cards when members join or leave a guild.
package greeting

import (
	"github.com/starshine-sys/welcomer/bot"
	"github.com/starshine-sys/welcomer/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding greeting handlers")

	bot := &Bot{Bot: root}

	bot.AddHandler(
		// shard ready logging
		bot.ready,
		// welcome cards
		bot.memberAdd,
		// goodbye cards
		bot.memberRemove,
	)
}
