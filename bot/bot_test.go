package bot

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
	"github.com/starshine-sys/welcomer/card"
)

func TestParseCommand(t *testing.T) {
	prefixes := []string{"!", "<@1234>"}

	tests := []struct {
		content string
		name    string
		args    []string
		ok      bool
	}{
		{"!testar", "testar", []string{}, true},
		{"!TESTAR agora", "testar", []string{"agora"}, true},
		{"! testar", "testar", []string{}, true},
		{"<@1234> testar", "testar", []string{}, true},
		{"testar", "", nil, false},
		{"!", "", nil, false},
		{"?testar", "", nil, false},
		{"", "", nil, false},
	}

	for _, tt := range tests {
		name, args, ok := ParseCommand(prefixes, tt.content)
		if name != tt.name || ok != tt.ok {
			t.Errorf("ParseCommand(%q) = %q, %v; want %q, %v", tt.content, name, ok, tt.name, tt.ok)
		}
		if ok && len(args) != len(tt.args) {
			t.Errorf("ParseCommand(%q) args = %q, want %q", tt.content, args, tt.args)
		}
	}
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[auth]
discord = "file-token"

[bot]
prefixes = ["!", "?"]
welcome_channel = 111
goodbye_channel = 222

[card]
output_dir = "cards"
avatar_timeout = "3s"
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("GUILD_ID", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("DEBUG_LOGGING", "")

	c, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	if c.Auth.Discord != "file-token" {
		t.Errorf("token = %q", c.Auth.Discord)
	}
	if !reflect.DeepEqual(c.Bot.Prefixes, []string{"!", "?"}) {
		t.Errorf("prefixes = %q", c.Bot.Prefixes)
	}
	if c.ChannelFor(card.Welcome) != 111 || c.ChannelFor(card.Goodbye) != 222 {
		t.Errorf("channels = %v, %v", c.ChannelFor(card.Welcome), c.ChannelFor(card.Goodbye))
	}
	if c.Card.OutputDir != "cards" {
		t.Errorf("output dir = %q", c.Card.OutputDir)
	}
	if time.Duration(c.Card.AvatarTimeout) != 3*time.Second {
		t.Errorf("avatar timeout = %v", time.Duration(c.Card.AvatarTimeout))
	}
	// unset keys keep their defaults
	if c.Card.Font != DefaultConfig().Card.Font {
		t.Errorf("font = %q", c.Card.Font)
	}
	if time.Duration(c.Card.EmojiTimeout) != 10*time.Second {
		t.Errorf("emoji timeout = %v", time.Duration(c.Card.EmojiTimeout))
	}
}

func TestReadConfigEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", " env-token ")
	t.Setenv("GUILD_ID", "999")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("DEBUG_LOGGING", "true")

	c, err := ReadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	if c.Auth.Discord != "env-token" {
		t.Errorf("token = %q", c.Auth.Discord)
	}
	if c.Bot.CommandsGuildID != discord.GuildID(999) {
		t.Errorf("guild = %v", c.Bot.CommandsGuildID)
	}
	if !c.Bot.Debug {
		t.Error("debug not enabled")
	}
	if c.ChannelFor(card.Welcome) != 834195950284177468 {
		t.Errorf("welcome channel = %v", c.ChannelFor(card.Welcome))
	}
}

func TestReadConfigInvalid(t *testing.T) {
	t.Setenv("GUILD_ID", "not a snowflake")
	if _, err := ReadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for invalid GUILD_ID")
	}

	t.Setenv("GUILD_ID", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[card]\nemoji_timeout = \"soon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadConfig(path); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Validate() = %v, want ErrNoToken", err)
	}

	c := DefaultConfig()
	c.Auth.Discord = "token"
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestWithArtifactReleases(t *testing.T) {
	for _, fail := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "welcome_1.png")
		if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
		art := &card.Artifact{Path: path, Kind: card.Welcome, UserID: "1"}

		uploadErr := errors.New("upload failed")
		err := withArtifact(art, func(f sendpart.File) error {
			if f.Name != "welcome_1.png" {
				t.Errorf("file name = %q", f.Name)
			}
			if fail {
				return uploadErr
			}
			return nil
		})

		if fail && !errors.Is(err, uploadErr) {
			t.Errorf("error = %v, want upload error", err)
		}
		if !fail && err != nil {
			t.Errorf("error = %v", err)
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("card not released (fail = %v)", fail)
		}
	}
}

func TestReadyMentionPrefixes(t *testing.T) {
	b := &Bot{
		Config:         Config{Bot: BotConfig{NoSyncCommands: true}},
		prefixes:       []string{"!"},
		prefixCommands: make(map[string]PrefixCommand),
	}

	ev := &gateway.ReadyEvent{User: discord.User{ID: 42, Username: "welcomer"}}
	b.ready(ev)
	// reconnects don't add the prefixes again
	b.ready(ev)

	want := []string{"!", "<@42>", "<@!42>"}
	if !reflect.DeepEqual(b.prefixes, want) {
		t.Errorf("prefixes = %q, want %q", b.prefixes, want)
	}

	for _, content := range []string{"<@42> testar", "<@!42> testar"} {
		if name, _, ok := ParseCommand(b.prefixes, content); !ok || name != "testar" {
			t.Errorf("ParseCommand(%q) = %q, %v", content, name, ok)
		}
	}
}
