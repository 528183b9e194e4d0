package greeting

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/common/log"
)

const guildAvatarURL = "https://cdn.discordapp.com/guilds/%v/users/%v/avatars/%v.png"

func (bot *Bot) memberAdd(ev *gateway.GuildMemberAddEvent) {
	bot.greet(ev.GuildID, ev.User, MemberRequest(card.Welcome, ev.GuildID, ev.Member))
}

// the member has already left, so only their user profile is available
func (bot *Bot) memberRemove(ev *gateway.GuildMemberRemoveEvent) {
	bot.greet(ev.GuildID, ev.User, RequestFor(card.Goodbye, ev.User))
}

// greet renders the card described by req for u and posts it in the kind's channel.
func (bot *Bot) greet(guildID discord.GuildID, u discord.User, req card.Request) {
	kind := req.Kind

	chID := bot.Config.ChannelFor(kind)
	if !chID.IsValid() {
		log.Debugf("no %v channel set, ignoring %v in %v", kind, u.ID, guildID)
		return
	}

	ch, err := bot.State.Channel(chID)
	if err != nil {
		log.Warnf("%v channel %v could not be found: %v", kind, chID, err)
		return
	}

	if !sameGuild(ch, guildID) {
		log.Debugf("%v channel %v is not in %v, ignoring %v", kind, chID, guildID, u.ID)
		return
	}

	ctx, cancel := bot.RenderContext(context.Background())
	defer cancel()

	art, err := bot.Cards.Render(ctx, req)
	if err != nil {
		bot.CaptureError(err, &u, map[string]any{
			"guild":   guildID.String(),
			"channel": chID.String(),
			"kind":    kind.String(),
		})
		return
	}

	err = bot.SendCard(ch.ID, 0, art)
	if err != nil {
		bot.CaptureError(err, &u, map[string]any{
			"guild":   guildID.String(),
			"channel": chID.String(),
			"kind":    kind.String(),
		})
		return
	}

	log.Infof("Sent %v card for %v (%v) in %v", kind, u.Tag(), u.ID, guildID)
}

// sameGuild reports whether ch is a channel in the given guild.
func sameGuild(ch *discord.Channel, guildID discord.GuildID) bool {
	return ch != nil && guildID.IsValid() && ch.GuildID == guildID
}

// MemberRequest builds the render request for a guild member.
// The member's guild nickname and avatar take precedence over their user profile.
func MemberRequest(kind card.Kind, guildID discord.GuildID, m discord.Member) card.Request {
	req := RequestFor(kind, m.User)
	if m.Nick != "" {
		req.DisplayName = m.Nick
	}
	if m.Avatar != "" && guildID.IsValid() {
		req.AvatarURL = fmt.Sprintf(guildAvatarURL, guildID, m.User.ID, m.Avatar)
	}
	return req
}

// RequestFor builds the render request for a user.
func RequestFor(kind card.Kind, u discord.User) card.Request {
	name := u.DisplayName
	if name == "" {
		name = u.Username
	}

	return card.Request{
		Kind:        kind,
		UserID:      u.ID.String(),
		DisplayName: name,
		AvatarURL:   u.AvatarURLWithType(discord.PNGImage),
	}
}
