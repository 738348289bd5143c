package models

import "testing"

func TestIntervalRoundTrip(t *testing.T) {
	for _, minutes := range SupportedIntervals() {
		label := IntervalLabel(minutes)
		if label == "" {
			t.Errorf("no label for %dm", minutes)
			continue
		}
		if got := IntervalMinutes(label); got != minutes {
			t.Errorf("%s: expected %d minutes, got %d", label, minutes, got)
		}
	}
	if IntervalLabel(7) != "" {
		t.Error("7m is not a supported interval")
	}
	if IntervalMinutes("2H") != 0 {
		t.Error("2H is not a supported label")
	}
}

func TestNextPrevInterval(t *testing.T) {
	tests := []struct {
		minutes int
		next    int
		prev    int
	}{
		{1, 5, 0},
		{60, 240, 30},
		{1440, 10080, 240},
		{21600, 21600, 10080}, // верхняя граница
	}
	for _, tt := range tests {
		if got := NextInterval(tt.minutes); got != tt.next {
			t.Errorf("NextInterval(%d) = %d, want %d", tt.minutes, got, tt.next)
		}
		if got := PrevInterval(tt.minutes); got != tt.prev {
			t.Errorf("PrevInterval(%d) = %d, want %d", tt.minutes, got, tt.prev)
		}
	}
}

func TestSnapshotGetHas(t *testing.T) {
	snap := IndicatorSnapshot{"rsi": 55.0}
	if !snap.Has("rsi") || snap.Get("rsi") != 55.0 {
		t.Error("existing key must be readable")
	}
	if snap.Has("adx") || snap.Get("adx") != 0.0 {
		t.Error("missing key must read as zero")
	}
	var empty IndicatorSnapshot
	if empty.Get("rsi") != 0.0 {
		t.Error("nil snapshot must read as zero")
	}
}
