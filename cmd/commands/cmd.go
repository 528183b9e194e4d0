package commands

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/welcomer/bot"
	"github.com/starshine-sys/welcomer/common"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "commands",
	Usage:  "Synchronize slash commands",
	Action: run,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "global",
			Usage: "Synchronize slash commands globally (mutually exclusive with --guild)",
		},
		&cli.Uint64Flag{
			Name:  "guild",
			Usage: "Synchronize slash commands to a specific guild",
		},
	},
}

func run(c *cli.Context) error {
	global := c.Bool("global")
	guild := c.Uint64("guild")
	if global && guild != 0 {
		return cli.Exit("`global` and `guild` are mutually exclusive", 1)
	}

	if !global && guild == 0 {
		return cli.Exit("Neither `global` nor `guild` were set", 1)
	}

	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	client := api.NewClient("Bot " + conf.Auth.Discord)

	// a bot's application ID is the same as its user ID
	me, err := client.Me()
	if err != nil {
		fmt.Println("Error getting bot user:", err)
		return err
	}
	appID := discord.AppID(me.ID)

	if global {
		_, err = client.BulkOverwriteCommands(appID, common.Commands)
		if err != nil {
			fmt.Println("Error overwriting commands:", err)
			return err
		}

		fmt.Println("Wrote global commands!")
		return nil
	}

	_, err = client.BulkOverwriteGuildCommands(appID, discord.GuildID(guild), common.Commands)
	if err != nil {
		fmt.Println("Error overwriting commands:", err)
		return err
	}

	fmt.Printf("Wrote guild commands in %v!\n", guild)
	return nil
}
