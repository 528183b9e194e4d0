package bot

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/starshine-sys/welcomer/common/log"
)

// CaptureError logs err and reports it to Sentry, if enabled.
// It returns an ID that identifies this occurrence in the logs (and Sentry).
func (bot *Bot) CaptureError(err error, user *discord.User, data map[string]any) string {
	if bot.Config.Auth.Sentry == "" {
		id := uuid.New().String()
		log.Errorf("error %v: %v", id, err)
		return id
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if user != nil && user.ID.IsValid() {
			scope.SetUser(sentry.User{ID: user.ID.String(), Username: user.Username})
		}
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data:      data,
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		uid := uuid.New().String()
		id = (*sentry.EventID)(&uid)
	}

	log.Errorf("error %v: %v", string(*id), err)
	return string(*id)
}

// ErrorMessage captures err and returns the text shown to the user in place of a card.
func (bot *Bot) ErrorMessage(err error, user *discord.User, data map[string]any) string {
	id := bot.CaptureError(err, user, data)
	return fmt.Sprintf("Erro: %v\nCódigo: ``%v``", err, id)
}
