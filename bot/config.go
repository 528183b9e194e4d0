package bot

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/welcomer/card"
	"github.com/starshine-sys/welcomer/emoji"
)

// ErrNoToken is returned by Config.Validate if no Discord token is set.
const ErrNoToken = errors.Sentinel("no Discord token set, configure DISCORD_TOKEN or auth.discord and run again")

type Config struct {
	Auth AuthConfig `toml:"auth"`
	Bot  BotConfig  `toml:"bot"`
	Card CardConfig `toml:"card"`
}

type AuthConfig struct {
	Discord string `toml:"discord"`
	Sentry  string `toml:"sentry"`
}

type BotConfig struct {
	Prefixes []string `toml:"prefixes"`

	// CommandsGuildID syncs slash commands to a single guild instead of globally.
	CommandsGuildID discord.GuildID `toml:"commands_guild_id"`
	NoSyncCommands  bool            `toml:"no_sync_commands"`

	WelcomeChannel discord.ChannelID `toml:"welcome_channel"`
	GoodbyeChannel discord.ChannelID `toml:"goodbye_channel"`

	Debug bool `toml:"debug"`
}

type CardConfig struct {
	Font      string `toml:"font"`
	OutputDir string `toml:"output_dir"`

	Emoji         string   `toml:"emoji"`
	EmojiURL      string   `toml:"emoji_url"`
	EmojiTimeout  Duration `toml:"emoji_timeout"`
	AvatarTimeout Duration `toml:"avatar_timeout"`

	WelcomeText string `toml:"welcome_text"`
	GoodbyeText string `toml:"goodbye_text"`
}

// Duration is a time.Duration read from a string such as "15s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "parse duration")
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// DefaultConfig returns the configuration used for any keys not set in the config file.
func DefaultConfig() Config {
	return Config{
		Bot: BotConfig{
			Prefixes:       []string{"!"},
			WelcomeChannel: 834195950284177468,
			GoodbyeChannel: 834196171495964682,
		},
		Card: CardConfig{
			Font:          "fonts/Anton-Regular.ttf",
			OutputDir:     card.DefaultOutputDir,
			Emoji:         card.DefaultDecoration,
			EmojiURL:      emoji.DefaultURLFormat,
			EmojiTimeout:  Duration(emoji.DefaultTimeout),
			AvatarTimeout: Duration(card.DefaultAvatarTimeout),
			WelcomeText:   card.DefaultWelcomeText,
			GoodbyeText:   card.DefaultGoodbyeText,
		},
	}
}

// ReadConfig reads the config file at path on top of DefaultConfig, then applies environment overrides.
// A missing file is not an error.
func ReadConfig(path string) (c Config, err error) {
	c = DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, errors.Wrap(err, "read config file")
	}

	if err == nil {
		err = toml.Unmarshal(b, &c)
		if err != nil {
			return c, errors.Wrap(err, "unmarshal config")
		}
	}

	err = c.applyEnv(os.Getenv)
	return c, err
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("DISCORD_TOKEN")); v != "" {
		c.Auth.Discord = v
	}

	if v := strings.TrimSpace(getenv("SENTRY_DSN")); v != "" {
		c.Auth.Sentry = v
	}

	if v := strings.TrimSpace(getenv("GUILD_ID")); v != "" {
		sf, err := discord.ParseSnowflake(v)
		if err != nil {
			return errors.Wrap(err, "parse GUILD_ID")
		}
		c.Bot.CommandsGuildID = discord.GuildID(sf)
	}

	if v := getenv("DEBUG_LOGGING"); v != "" {
		c.Bot.Debug, _ = strconv.ParseBool(v)
	}
	return nil
}

// Validate checks that the bot can be started with this configuration.
func (c Config) Validate() error {
	if c.Auth.Discord == "" {
		return ErrNoToken
	}
	return nil
}

// ChannelFor returns the channel cards of the given kind are posted in.
func (c Config) ChannelFor(kind card.Kind) discord.ChannelID {
	if kind == card.Goodbye {
		return c.Bot.GoodbyeChannel
	}
	return c.Bot.WelcomeChannel
}
