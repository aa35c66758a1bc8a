// Package reporting turns a run's predictions into the human-facing
// outputs: the terminal top-movers tables and the summary file.
package reporting

import (
	"math"
	"sort"

	"fpl-transfer-lab/internal/domain"
)

// TopRisers returns the n predictions with the highest positive progress,
// in descending order. Ties break on player id for deterministic output.
func TopRisers(preds []*domain.Prediction, n int) []*domain.Prediction {
	var movers []*domain.Prediction
	for _, p := range preds {
		if p.Progress > 0 {
			movers = append(movers, p)
		}
	}
	sort.Slice(movers, func(i, j int) bool {
		if movers[i].Progress != movers[j].Progress {
			return movers[i].Progress > movers[j].Progress
		}
		return movers[i].PlayerID < movers[j].PlayerID
	})
	return truncate(movers, n)
}

// TopFallers returns the n predictions with the most negative progress,
// most negative first.
func TopFallers(preds []*domain.Prediction, n int) []*domain.Prediction {
	var movers []*domain.Prediction
	for _, p := range preds {
		if p.Progress < 0 {
			movers = append(movers, p)
		}
	}
	sort.Slice(movers, func(i, j int) bool {
		if movers[i].Progress != movers[j].Progress {
			return movers[i].Progress < movers[j].Progress
		}
		return movers[i].PlayerID < movers[j].PlayerID
	})
	return truncate(movers, n)
}

// BuildSummary selects the size biggest movers by absolute progress and
// maps them to summary rows. The summary file is replaced each run, so
// the rows carry the run's analysis timestamp.
func BuildSummary(preds []*domain.Prediction, size int) []*domain.SummaryRow {
	movers := make([]*domain.Prediction, len(preds))
	copy(movers, preds)
	sort.Slice(movers, func(i, j int) bool {
		ai, aj := math.Abs(movers[i].Progress), math.Abs(movers[j].Progress)
		if ai != aj {
			return ai > aj
		}
		return movers[i].PlayerID < movers[j].PlayerID
	})
	movers = truncate(movers, size)

	rows := make([]*domain.SummaryRow, 0, len(movers))
	for _, p := range movers {
		rows = append(rows, &domain.SummaryRow{
			Name:        p.Name,
			Price:       p.Price,
			RatePerHour: p.RatePerHour,
			Progress:    p.Progress,
			GeneratedAt: p.AnalyzedAt,
		})
	}
	return rows
}

func truncate(preds []*domain.Prediction, n int) []*domain.Prediction {
	if n >= 0 && len(preds) > n {
		return preds[:n]
	}
	return preds
}
