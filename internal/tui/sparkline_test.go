package tui

import (
	"slices"
	"testing"
	"time"
)

func TestLoadHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		push      []float64
		setLimit  int // 0 keeps the limit
		want      []float64
		wantLimit int
	}{
		{"partial", 3, []float64{1, 2}, 0, []float64{1, 2}, 3},
		{"overflow keeps newest", 3, []float64{1, 2, 3, 4}, 0, []float64{2, 3, 4}, 3},
		{"zero limit", 0, []float64{42}, 0, []float64{42}, 1},
		{"grow", 3, []float64{1, 2, 3}, 5, []float64{1, 2, 3}, 5},
		{"shrink keeps newest", 5, []float64{1, 2, 3, 4, 5}, 3, []float64{3, 4, 5}, 3},
		{"same limit", 3, []float64{1, 2}, 3, []float64{1, 2}, 3},
		{"empty", 4, nil, 0, nil, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewLoadHistory(tt.limit)
			for _, v := range tt.push {
				h.Push(v)
			}
			if tt.setLimit > 0 {
				h.SetLimit(tt.setLimit)
			}
			if got := h.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
			if h.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", h.Limit(), tt.wantLimit)
			}
			var last float64
			if len(tt.want) > 0 {
				last = tt.want[len(tt.want)-1]
			}
			if h.Last() != last {
				t.Errorf("Last() = %v, want %v", h.Last(), last)
			}
		})
	}
}

func TestLoadHistoryValuesIsACopy(t *testing.T) {
	t.Parallel()
	h := NewLoadHistory(2)
	h.Push(10)
	v := h.Values()
	v[0] = 99
	if h.Last() != 10 {
		t.Errorf("Last() = %v after editing Values(), want 10", h.Last())
	}
	h.Reset()
	if h.Len() != 0 || h.Values() != nil {
		t.Errorf("after Reset: Len() = %d, Values() = %v", h.Len(), h.Values())
	}
}

func TestPercentSparkline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pcts []float64
		want string
	}{
		{"empty", nil, ""},
		{"idle", []float64{0, 0, 0}, "▁▁▁"},
		{"saturated", []float64{100, 100}, "██"},
		{"half", []float64{50}, "▄"},
		{"clamped", []float64{-10, 150}, "▁█"},
		{"ramp", []float64{0, 14.3, 28.6, 42.9, 57.1, 71.4, 85.7, 100}, "▁▂▃▄▄▅▆█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PercentSparkline(tt.pcts); got != tt.want {
				t.Errorf("PercentSparkline(%v) = %q, want %q", tt.pcts, got, tt.want)
			}
		})
	}
}

func TestDurationSparkline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ds   []time.Duration
		want string
	}{
		{"empty", nil, ""},
		{"decades", []time.Duration{time.Nanosecond, time.Microsecond, time.Millisecond}, "▁▄█"},
		{"equal timings", []time.Duration{7 * time.Millisecond, 7 * time.Millisecond}, "██"},
		{"zero stays at the bottom", []time.Duration{10, 0, 1000}, "▁▁█"},
		{"order preserved", []time.Duration{time.Second, time.Millisecond}, "█▁"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DurationSparkline(tt.ds); got != tt.want {
				t.Errorf("DurationSparkline(%v) = %q, want %q", tt.ds, got, tt.want)
			}
		})
	}
}
