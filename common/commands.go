package common

import (
	"github.com/diamondburned/arikawa/v3/api"
)

// Commands are the application commands synced on startup and by the commands subcommand.
var Commands = []api.CreateCommandData{
	{
		Name:        "ping",
		Description: "Mostra a latência do bot",
	},
	{
		Name:        "testar",
		Description: "Gera imagem de boas-vindas (teste)",
	},
}
