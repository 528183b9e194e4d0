package meta

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/starshine-sys/welcomer/common"
	"github.com/starshine-sys/welcomer/common/log"
)

func (bot *Bot) ping(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	// this will return 0ms until the first heartbeat is acknowledged
	gw := bot.State.Gateway()
	heartbeat := Latency(gw.SentBeat(), gw.EchoBeat())

	fields := []discord.EmbedField{
		{
			Name:   "Memory usage",
			Value:  fmt.Sprintf("%v / %v", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys)),
			Inline: true,
		},
		{
			Name:   "Garbage collected",
			Value:  humanize.Bytes(stats.TotalAlloc),
			Inline: true,
		},
		{
			Name:   "Goroutines",
			Value:  fmt.Sprint(runtime.NumGoroutine()),
			Inline: true,
		},
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Errorf("getting system memory: %v", err)
	} else {
		fields = append(fields, discord.EmbedField{
			Name:   "System memory",
			Value:  fmt.Sprintf("%v / %v (%.1f%%)", humanize.Bytes(vm.Used), humanize.Bytes(vm.Total), vm.UsedPercent),
			Inline: true,
		})
	}

	fields = append(fields, discord.EmbedField{
		Name: "Uptime",
		Value: fmt.Sprintf(
			"%v\n(Since <t:%v:D> <t:%v:T>)",
			Uptime(time.Since(bot.Start)),
			bot.Start.Unix(), bot.Start.Unix(),
		),
		Inline: true,
	})

	return &api.InteractionResponseData{
		Content: option.NewNullableString(fmt.Sprintf("🏓 %d ms", heartbeat.Milliseconds())),
		Embeds: &[]discord.Embed{{
			Color:     common.ColourPurple,
			Fields:    fields,
			Footer:    &discord.EmbedFooter{Text: fmt.Sprintf("Version %v (%v on %v/%v)", common.Version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)},
			Timestamp: discord.NowTimestamp(),
		}},
		Flags: discord.EphemeralMessage,
	}
}

// Latency returns the time between the last heartbeat being sent and acknowledged.
// It is zero if either hasn't happened yet.
func Latency(sent, echo time.Time) time.Duration {
	if sent.IsZero() || echo.IsZero() || echo.Before(sent) {
		return 0
	}
	return echo.Sub(sent).Round(time.Millisecond)
}

// Uptime formats d as a rough duration, such as "3 days" or "1 hour".
func Uptime(d time.Duration) string {
	now := time.Now()
	s := strings.TrimSpace(humanize.RelTime(now.Add(-d), now, "", ""))
	if s == "now" {
		return "just now"
	}
	return s
}
