package cards

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/common/log"
	"github.com/starshine-sys/welcomer/greeting"
)

// testPrefix renders a welcome card for the message author and replies with it.
func (bot *Bot) testPrefix(ev *gateway.MessageCreateEvent, _ []string) error {
	ctx, cancel := bot.RenderContext(context.Background())
	defer cancel()

	u := ev.Author
	data := errorData(ev.ChannelID)

	art, content := bot.render(ctx, welcomeRequest(ev.GuildID, ev.Member, u), &u, data)
	if art != nil {
		err := bot.SendCard(ev.ChannelID, ev.ID, art)
		if err == nil {
			return nil
		}
		content = bot.ErrorMessage(err, &u, data)
	}

	return errors.Wrap(bot.Reply(ev.ChannelID, ev.ID, content), "sending error message")
}

// testSlash defers the interaction, renders a welcome card for the invoking user and follows up with it.
func (bot *Bot) testSlash(ctx context.Context, cmd cmdroute.CommandData) *api.InteractionResponseData {
	ev := cmd.Event
	u := ev.Sender()
	if u == nil {
		return &api.InteractionResponseData{
			Content: option.NewNullableString("Erro: usuário desconhecido"),
			Flags:   discord.EphemeralMessage,
		}
	}

	err := bot.State.RespondInteraction(ev.ID, ev.Token, api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
	})
	if err != nil {
		log.Errorf("deferring interaction %v: %v", ev.ID, err)
		return nil
	}

	ctx, cancel := bot.RenderContext(ctx)
	defer cancel()

	data := errorData(ev.ChannelID)

	art, content := bot.render(ctx, welcomeRequest(ev.GuildID, ev.Member, *u), u, data)
	if art != nil {
		err := bot.FollowUpCard(ev, art)
		if err == nil {
			return nil
		}
		content = bot.ErrorMessage(err, u, data)
	}

	if err := bot.FollowUpText(ev, content); err != nil {
		log.Errorf("sending error follow-up for %v: %v", ev.ID, err)
	}
	return nil
}

// render renders the card for req.
// If that fails, art is nil and content is the error message to send in its place.
func (bot *Bot) render(ctx context.Context, req card.Request, u *discord.User, data map[string]any) (art *card.Artifact, content string) {
	art, err := bot.Cards.Render(ctx, req)
	if err != nil {
		return nil, bot.ErrorMessage(err, u, data)
	}
	return art, ""
}

// welcomeRequest prefers the member's guild profile when the command was run in a guild.
func welcomeRequest(guildID discord.GuildID, m *discord.Member, u discord.User) card.Request {
	if m == nil || !guildID.IsValid() {
		return greeting.RequestFor(card.Welcome, u)
	}

	member := *m
	member.User = u
	return greeting.MemberRequest(card.Welcome, guildID, member)
}

func errorData(channelID discord.ChannelID) map[string]any {
	return map[string]any{
		"channel": channelID.String(),
		"command": "testar",
	}
}
