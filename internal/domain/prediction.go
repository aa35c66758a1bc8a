package domain

import "time"

// Label classifies a player's predicted price movement.
type Label string

const (
	LabelRiser   Label = "riser"
	LabelFaller  Label = "faller"
	LabelNeutral Label = "neutral"
)

// Prediction is one derived row estimating near-term price movement
// direction from a player's two most recent snapshots.
type Prediction struct {
	PlayerID     int64
	Name         string
	Price        float64 // £m at the later snapshot
	NetDelta     int64   // change in (in - out) between the two snapshots
	HoursElapsed float64
	RatePerHour  float64 // NetDelta projected to a one-hour window
	Progress     float64 // signed fraction of the price-change threshold, 2 dp
	Label        Label
	AnalyzedAt   time.Time // UTC, second precision
}
