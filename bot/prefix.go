package bot

import (
	"strings"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/welcomer/common/log"
)

// PrefixCommand handles a prefixed text command. args does not include the command name.
type PrefixCommand func(ev *gateway.MessageCreateEvent, args []string) error

// AddPrefixCommand registers a text command. Names are matched case-insensitively.
func (bot *Bot) AddPrefixCommand(name string, cmd PrefixCommand) {
	bot.prefixMu.Lock()
	bot.prefixCommands[strings.ToLower(name)] = cmd
	bot.prefixMu.Unlock()
}

func (bot *Bot) messageCreate(ev *gateway.MessageCreateEvent) {
	if ev.Author.Bot {
		return
	}

	bot.prefixMu.RLock()
	name, args, ok := ParseCommand(bot.prefixes, ev.Content)
	cmd, exists := bot.prefixCommands[name]
	bot.prefixMu.RUnlock()

	if !ok || !exists {
		return
	}

	log.Debugf("running command %v for %v in %v", name, ev.Author.ID, ev.ChannelID)

	if err := cmd(ev, args); err != nil {
		log.Errorf("running command %v for %v: %v", name, ev.Author.ID, err)
	}
}

// ParseCommand splits a message into a lower-cased command name and its arguments.
// ok is false if content doesn't start with any of the prefixes or has no command name.
func ParseCommand(prefixes []string, content string) (name string, args []string, ok bool) {
	content = strings.TrimSpace(content)

	for _, prefix := range prefixes {
		if prefix == "" || !strings.HasPrefix(content, prefix) {
			continue
		}

		fields := strings.Fields(strings.TrimPrefix(content, prefix))
		if len(fields) == 0 {
			return "", nil, false
		}
		return strings.ToLower(fields[0]), fields[1:], true
	}
	return "", nil, false
}
