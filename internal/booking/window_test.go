package booking

import (
	"testing"
	"time"
)

func TestWindowStateAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	date := now.Add(10 * 24 * time.Hour)
	opens := now.Add(2 * 24 * time.Hour)
	opened := now.Add(-2 * 24 * time.Hour)
	cutoffPassed := now.Add(-time.Hour)
	cutoffAhead := now.Add(48 * time.Hour)

	tests := []struct {
		name    string
		date    time.Time
		opensAt *time.Time
		cutoff  *time.Time
		active  bool
		want    WindowState
	}{
		{"inactive event", date, nil, nil, false, WindowInactive},
		{"event in the past", now.Add(-24 * time.Hour), nil, nil, true, WindowPast},
		{"not yet open", date, &opens, nil, true, WindowNotYetOpen},
		{"open with no bounds", date, nil, nil, true, WindowOpen},
		{"open within bounds", date, &opened, &cutoffAhead, true, WindowOpen},
		{"past cutoff", date, &opened, &cutoffPassed, true, WindowCutoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindowStateAt(tt.date, tt.opensAt, tt.cutoff, tt.active, now)
			if got != tt.want {
				t.Errorf("WindowStateAt() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOptionExpiry(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	if got := OptionExpiry(now, 3); !got.Equal(now.AddDate(0, 0, 3)) {
		t.Errorf("OptionExpiry(3) = %v", got)
	}
	if got := OptionExpiry(now, 0); !got.Equal(now.AddDate(0, 0, DefaultOptionHoldDays)) {
		t.Errorf("OptionExpiry(0) = %v, want default hold", got)
	}
}
