package bot

import (
	"context"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/common"
	"github.com/starshine-sys/welcomer/common/log"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMembers |
	gateway.IntentGuildMessages |
	gateway.IntentMessageContent

// RenderTimeout bounds a whole card render, including the avatar and emoji downloads.
const RenderTimeout = time.Minute

type Bot struct {
	State  *state.State
	Router *cmdroute.Router
	Config Config

	// Cards renders welcome and goodbye cards. It is shared by all handlers.
	Cards *card.Renderer

	Start time.Time

	prefixMu       sync.RWMutex
	prefixes       []string
	prefixCommands map[string]PrefixCommand

	syncOnce sync.Once
}

// New creates a new Bot.
func New(c Config, cards *card.Renderer) (*Bot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// set up debug logging
	wsLog := log.Named("ws")
	ws.WSDebug = wsLog.Debug
	ws.WSError = func(err error) {
		wsLog.Error(err)
	}

	s := state.New("Bot " + c.Auth.Discord)
	s.AddIntents(Intents)

	bot := &Bot{
		State:          s,
		Router:         cmdroute.NewRouter(),
		Config:         c,
		Cards:          cards,
		Start:          time.Now().UTC(),
		prefixes:       append([]string(nil), c.Bot.Prefixes...),
		prefixCommands: make(map[string]PrefixCommand),
	}

	s.AddInteractionHandler(bot.Router)
	s.AddHandler(bot.ready)
	s.AddHandler(bot.messageCreate)

	return bot, nil
}

// RenderContext returns a context for a card render, bounded by RenderTimeout.
func (bot *Bot) RenderContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, RenderTimeout)
}

func (bot *Bot) Open(ctx context.Context) error {
	log.Debug("opening gateway connection")

	return bot.State.Open(ctx)
}

func (bot *Bot) Close() error {
	return bot.State.Close()
}

// AddHandler adds handlers to the state.
func (bot *Bot) AddHandler(i ...any) {
	for _, hn := range i {
		bot.State.AddHandler(hn)
	}
}

// ready adds mention prefixes and syncs slash commands on the first connection.
func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	bot.syncOnce.Do(func() {
		bot.prefixMu.Lock()
		bot.prefixes = append(bot.prefixes, "<@"+ev.User.ID.String()+">", "<@!"+ev.User.ID.String()+">")
		bot.prefixMu.Unlock()

		if bot.Config.Bot.NoSyncCommands {
			log.Infof("Note: not syncing slash commands. Set no_sync_commands to false to sync commands")
			return
		}

		if err := bot.SyncCommands(discord.AppID(ev.User.ID)); err != nil {
			log.Errorf("Error syncing slash commands: %v", err)
		}
	})
}

// SyncCommands overwrites the application's slash commands,
// either in the configured commands guild or globally.
func (bot *Bot) SyncCommands(appID discord.AppID) error {
	guildID := bot.Config.Bot.CommandsGuildID

	if guildID.IsValid() {
		cmds, err := bot.State.BulkOverwriteGuildCommands(appID, guildID, common.Commands)
		if err != nil {
			return errors.Wrapf(err, "overwriting commands in %v", guildID)
		}
		log.Infof("Synced %d slash commands in %v", len(cmds), guildID)
		return nil
	}

	cmds, err := bot.State.BulkOverwriteCommands(appID, common.Commands)
	if err != nil {
		return errors.Wrap(err, "overwriting global commands")
	}
	log.Infof("Synced %d global slash commands", len(cmds))
	return nil
}
