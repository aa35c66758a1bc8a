package domain

import "time"

// SummaryRow is one line of the compact movers summary, rebuilt from
// scratch each analyzer run. Values carry full precision here; the CSV
// store applies the display rounding.
type SummaryRow struct {
	Name        string
	Price       float64
	RatePerHour float64
	Progress    float64
	GeneratedAt time.Time
}
