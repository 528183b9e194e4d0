package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/starshine-sys/welcomer/cmd"
	"github.com/starshine-sys/welcomer/common/log"
)

func main() {
	defer log.Sync()

	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}
