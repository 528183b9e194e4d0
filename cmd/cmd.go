package cmd

import (
	"os"

	"github.com/starshine-sys/welcomer/cmd/bot"
	"github.com/starshine-sys/welcomer/cmd/commands"
	"github.com/starshine-sys/welcomer/cmd/render"
	"github.com/starshine-sys/welcomer/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "Welcomer",
	Usage:   "Discord welcome and goodbye card bot",
	Version: common.Version(),

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   "config.toml",
			EnvVars: []string{"CONFIG_FILE"},
		},
	},

	Commands: []*cli.Command{
		bot.Command,
		commands.Command,
		render.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
