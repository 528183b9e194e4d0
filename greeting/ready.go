package greeting

import (
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/welcomer/common/log"
)

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	log.Infof("Logged in as %v, in %d guild(s)", ev.User.Tag(), len(ev.Guilds))

	if ev.Shard != nil {
		log.Debugf("Shard %d/%d is ready!", ev.Shard.ShardID(), ev.Shard.NumShards())
	}
}
