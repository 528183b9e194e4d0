package meta

import (
	"testing"
	"time"
)

func TestLatency(t *testing.T) {
	sent := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		sent, echo time.Time
		want       time.Duration
	}{
		{"acknowledged", sent, sent.Add(42 * time.Millisecond), 42 * time.Millisecond},
		{"rounded", sent, sent.Add(42*time.Millisecond + 600*time.Microsecond), 43 * time.Millisecond},
		{"no heartbeat", time.Time{}, time.Time{}, 0},
		{"not acknowledged", sent, time.Time{}, 0},
		{"stale echo", sent, sent.Add(-time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Latency(tt.sent, tt.echo); got != tt.want {
				t.Errorf("Latency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "just now"},
		{3 * time.Hour, "3 hours"},
		{50 * time.Hour, "2 days"},
	}

	for _, tt := range tests {
		if got := Uptime(tt.d); got != tt.want {
			t.Errorf("Uptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
