package bot

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/starshine-sys/welcomer/bot"
	"github.com/starshine-sys/welcomer/commands/cards"
	"github.com/starshine-sys/welcomer/commands/meta"
	"github.com/starshine-sys/welcomer/common"
	"github.com/starshine-sys/welcomer/common/log"
	"github.com/starshine-sys/welcomer/greeting"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	log.SetDebug(conf.Bot.Debug)

	// set up sentry
	if conf.Auth.Sentry != "" {
		log.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			log.Fatalf("setting up sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)

		log.Debug("set up sentry")
	} else {
		log.Debugf("sentry DSN was not provided, not setting it up")
	}

	renderer, fonts := bot.NewRenderer(conf.Card)
	defer fonts.Close()

	b, err := bot.New(conf, renderer)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}

	// set up modules (events, commands)
	greeting.Setup(b) // welcome/goodbye cards + ready logging

	cards.Setup(b) // testar commands
	meta.Setup(b)  // ping

	// actually run bot!
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	defer func() {
		err = b.Close()
		if err != nil {
			log.Errorf("closing gateway connection: %v", err)
		}
	}()

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()
	log.Info("Interrupt signal received. Shutting down...")
	return nil
}
