package domain

import (
	"strings"
	"time"
)

// Snapshot captures one player's transfer state at a point in time.
// Corresponds to one line of the transfers CSV log and the
// player_snapshots table in the optional database mirrors.
type Snapshot struct {
	PlayerID     int64     // stable FPL element id
	FirstName    string
	SecondName   string
	Price        float64   // £m (the API reports tenths of £m)
	TransfersIn  int64     // cumulative for the current gameweek
	TransfersOut int64     // cumulative for the current gameweek
	SelectedBy   float64   // ownership percent
	CapturedAt   time.Time // UTC, second precision, set by the collector
}

// Name returns the player's display name.
func (s *Snapshot) Name() string {
	return strings.TrimSpace(s.FirstName + " " + s.SecondName)
}

// Net returns transfers in minus transfers out.
func (s *Snapshot) Net() int64 {
	return s.TransfersIn - s.TransfersOut
}
