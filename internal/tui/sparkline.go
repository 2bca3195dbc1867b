package tui

import (
	"math"
	"time"
)

// sparkBlocks are the eight sparkline levels, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// LoadHistory keeps the most recent load samples, in percent, for the CPU
// and memory sparklines. Older samples fall off once Limit is reached.
type LoadHistory struct {
	samples []float64
	limit   int
}

// NewLoadHistory returns an empty history holding at most limit samples.
func NewLoadHistory(limit int) *LoadHistory {
	return &LoadHistory{limit: max(limit, 1)}
}

// Push records a sample, dropping the oldest one when full.
func (h *LoadHistory) Push(pct float64) {
	h.samples = append(h.samples, pct)
	h.trim()
}

// Len returns the number of samples held.
func (h *LoadHistory) Len() int { return len(h.samples) }

// Limit returns the maximum number of samples held.
func (h *LoadHistory) Limit() int { return h.limit }

// Last returns the newest sample, or 0 when empty.
func (h *LoadHistory) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Values returns a copy of the samples, oldest first.
func (h *LoadHistory) Values() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	return append([]float64(nil), h.samples...)
}

// SetLimit changes the capacity, keeping the newest samples that fit.
func (h *LoadHistory) SetLimit(limit int) {
	h.limit = max(limit, 1)
	h.trim()
}

// Reset drops every sample.
func (h *LoadHistory) Reset() { h.samples = h.samples[:0] }

func (h *LoadHistory) trim() {
	if over := len(h.samples) - h.limit; over > 0 {
		h.samples = append(h.samples[:0], h.samples[over:]...)
	}
}

// PercentSparkline draws load samples on a fixed 0..100 scale. Samples
// outside the scale are clamped.
func PercentSparkline(pcts []float64) string {
	levels := make([]float64, len(pcts))
	for i, p := range pcts {
		levels[i] = p / 100
	}
	return sparkline(levels)
}

// DurationSparkline draws bench timings on a logarithmic scale between the
// fastest and the slowest, since timings across the size ladder span
// several orders of magnitude. Non-positive durations sit at the bottom;
// when every timing is equal they all sit at the top.
func DurationSparkline(ds []time.Duration) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range ds {
		if d > 0 {
			l := math.Log(float64(d))
			lo, hi = math.Min(lo, l), math.Max(hi, l)
		}
	}
	levels := make([]float64, len(ds))
	for i, d := range ds {
		switch {
		case d <= 0:
			levels[i] = 0
		case hi == lo:
			levels[i] = 1
		default:
			levels[i] = (math.Log(float64(d)) - lo) / (hi - lo)
		}
	}
	return sparkline(levels)
}

// sparkline maps levels in 0..1 onto block characters.
func sparkline(levels []float64) string {
	if len(levels) == 0 {
		return ""
	}
	top := len(sparkBlocks) - 1
	out := make([]rune, len(levels))
	for i, l := range levels {
		idx := int(math.Max(0, math.Min(1, l)) * float64(top))
		out[i] = sparkBlocks[min(idx, top)]
	}
	return string(out)
}
