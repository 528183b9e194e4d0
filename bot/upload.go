package bot

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/common/log"
)

// NoMentions stops uploads from pinging anyone, including the replied-to user.
var NoMentions = &api.AllowedMentions{
	Parse: []api.AllowedMentionType{},
}

// withArtifact opens art, passes it to fn as an upload, then releases it.
// The release happens whether or not fn succeeds.
func withArtifact(art *card.Artifact, fn func(sendpart.File) error) error {
	defer func() {
		if err := art.Release(); err != nil {
			log.Errorf("releasing card %v: %v", art.Path, err)
		}
	}()

	f, err := art.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	return fn(sendpart.File{Name: art.Name(), Reader: f})
}

// SendCard uploads art to channelID, optionally as a reply, and releases it.
func (bot *Bot) SendCard(channelID discord.ChannelID, replyTo discord.MessageID, art *card.Artifact) error {
	return withArtifact(art, func(file sendpart.File) error {
		data := api.SendMessageData{
			Files:           []sendpart.File{file},
			AllowedMentions: NoMentions,
		}
		if replyTo.IsValid() {
			data.Reference = &discord.MessageReference{MessageID: replyTo}
		}

		_, err := bot.State.SendMessageComplex(channelID, data)
		return errors.Wrapf(err, "uploading %v to %v", file.Name, channelID)
	})
}

// FollowUpCard sends art as a follow-up to a deferred interaction and releases it.
func (bot *Bot) FollowUpCard(ev *discord.InteractionEvent, art *card.Artifact) error {
	return withArtifact(art, func(file sendpart.File) error {
		_, err := bot.State.FollowUpInteraction(ev.AppID, ev.Token, api.InteractionResponseData{
			Files:           []sendpart.File{file},
			AllowedMentions: NoMentions,
		})
		return errors.Wrapf(err, "following up interaction %v", ev.ID)
	})
}

// Reply sends a plain text reply to replyTo without pinging anyone.
func (bot *Bot) Reply(channelID discord.ChannelID, replyTo discord.MessageID, content string) error {
	_, err := bot.State.SendMessageComplex(channelID, api.SendMessageData{
		Content:         content,
		Reference:       &discord.MessageReference{MessageID: replyTo},
		AllowedMentions: NoMentions,
	})
	return errors.Wrapf(err, "replying in %v", channelID)
}

// FollowUpText sends content as a follow-up to a deferred interaction.
func (bot *Bot) FollowUpText(ev *discord.InteractionEvent, content string) error {
	_, err := bot.State.FollowUpInteraction(ev.AppID, ev.Token, api.InteractionResponseData{
		Content:         option.NewNullableString(content),
		AllowedMentions: NoMentions,
	})
	return errors.Wrapf(err, "following up interaction %v", ev.ID)
}
