package analysis

import (
	"math"

	"fpl-transfer-lab/internal/domain"
)

// DefaultThreshold is the net transfer rate assumed to trigger a price
// change: roughly 100k net transfers. Crude, and flagged for refinement
// alongside the two-snapshot window.
const DefaultThreshold = 100000

// Config holds the classification thresholds in net transfers per hour.
type Config struct {
	RiseThreshold float64 // at or above: predicted riser (positive)
	FallThreshold float64 // at or below: predicted faller (negative)
}

// DefaultConfig returns symmetric thresholds at ±DefaultThreshold.
func DefaultConfig() Config {
	return Config{
		RiseThreshold: DefaultThreshold,
		FallThreshold: -DefaultThreshold,
	}
}

// Classify buckets an hourly net transfer rate.
func Classify(rate float64, cfg Config) domain.Label {
	switch {
	case rate >= cfg.RiseThreshold:
		return domain.LabelRiser
	case rate <= cfg.FallThreshold:
		return domain.LabelFaller
	default:
		return domain.LabelNeutral
	}
}

// progress expresses the rate as a signed fraction of the threshold it
// is heading toward: +0.25 means a quarter of the way to a rise at the
// current rate.
func (c Config) progress(rate float64) float64 {
	if rate >= 0 {
		return rate / c.RiseThreshold
	}
	return rate / math.Abs(c.FallThreshold)
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
