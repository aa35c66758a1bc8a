// Package analysis derives price-change predictions from the snapshot
// log. The model is deliberately naive: each player's two most recent
// snapshots are compared, nothing more. Rolling windows and dynamic
// thresholds are future work.
package analysis

import (
	"context"
	"fmt"
	"time"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/observability"
	"fpl-transfer-lab/internal/storage"
)

// Skip reasons reported via metrics.
const (
	skipInsufficientHistory = "insufficient_history"
	skipZeroElapsed         = "zero_elapsed"
)

// Analyzer runs one analysis pass per invocation.
type Analyzer struct {
	snapshots storage.SnapshotStore
	cfg       Config
	now       func() time.Time
	metrics   *observability.Metrics
}

// NewAnalyzer creates an analyzer reading from the given snapshot store.
func NewAnalyzer(snapshots storage.SnapshotStore, cfg Config) *Analyzer {
	return &Analyzer{
		snapshots: snapshots,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// WithMetrics attaches Prometheus metrics.
func (a *Analyzer) WithMetrics(m *observability.Metrics) *Analyzer {
	a.metrics = m
	return a
}

// Run reads the whole snapshot log and produces exactly one prediction
// per player with at least two snapshots, sorted by player id. Players
// with a single snapshot or two snapshots at the same instant are
// skipped silently. Identical input yields identical output.
func (a *Analyzer) Run(ctx context.Context) ([]*domain.Prediction, error) {
	start := a.now()

	rows, err := a.snapshots.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot log: %w", err)
	}

	analyzedAt := a.now().UTC().Truncate(time.Second)
	var preds []*domain.Prediction
	for _, p := range latestPairs(rows) {
		pred, reason := computePrediction(p, a.cfg, analyzedAt)
		if pred == nil {
			if a.metrics != nil {
				a.metrics.PlayersSkipped.WithLabelValues(reason).Inc()
			}
			continue
		}
		preds = append(preds, pred)
	}

	if a.metrics != nil {
		a.metrics.AnalysisDuration.Observe(a.now().Sub(start).Seconds())
	}
	return preds, nil
}

// computePrediction compares a player's two most recent snapshots.
// Returns a nil prediction and the skip reason when the player does not
// qualify.
func computePrediction(p pair, cfg Config, analyzedAt time.Time) (*domain.Prediction, string) {
	if p.prev == nil {
		return nil, skipInsufficientHistory
	}

	elapsed := p.curr.CapturedAt.Sub(p.prev.CapturedAt)
	if elapsed <= 0 {
		// Two snapshots at the same instant: the hourly rate is
		// undefined, never a division error.
		return nil, skipZeroElapsed
	}

	netDelta := p.curr.Net() - p.prev.Net()
	hours := elapsed.Seconds() / 3600
	rate := float64(netDelta) / hours

	return &domain.Prediction{
		PlayerID:     p.curr.PlayerID,
		Name:         p.curr.Name(),
		Price:        p.curr.Price,
		NetDelta:     netDelta,
		HoursElapsed: hours,
		RatePerHour:  rate,
		Progress:     round2(cfg.progress(rate)),
		Label:        Classify(rate, cfg),
		AnalyzedAt:   analyzedAt,
	}, ""
}
