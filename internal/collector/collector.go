// Package collector implements the snapshot collection run: fetch the
// full player list, stamp every row with one capture time, append to the
// log. One invocation, one linear pass.
package collector

import (
	"context"
	"fmt"
	"time"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/observability"
	"fpl-transfer-lab/internal/storage"
)

// Fetcher provides the current full player list. Implemented by
// fpl.Client and by test stubs.
type Fetcher interface {
	Bootstrap(ctx context.Context) ([]*domain.Snapshot, error)
}

// Collector runs one collection pass per invocation.
type Collector struct {
	fetcher Fetcher
	stores  []storage.SnapshotStore // primary first, then mirrors
	now     func() time.Time
	metrics *observability.Metrics
}

// NewCollector creates a collector writing to primary and any mirrors.
func NewCollector(fetcher Fetcher, primary storage.SnapshotStore, mirrors ...storage.SnapshotStore) *Collector {
	stores := append([]storage.SnapshotStore{primary}, mirrors...)
	return &Collector{
		fetcher: fetcher,
		stores:  stores,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (c *Collector) WithClock(now func() time.Time) *Collector {
	c.now = now
	return c
}

// WithMetrics attaches Prometheus metrics.
func (c *Collector) WithMetrics(m *observability.Metrics) *Collector {
	c.metrics = m
	return c
}

// Run executes one collection pass and returns the number of rows
// appended. A fetch failure aborts before anything is written, so a
// failed run never grows the log.
func (c *Collector) Run(ctx context.Context) (int, error) {
	start := c.now()
	rows, err := c.fetcher.Bootstrap(ctx)
	if c.metrics != nil {
		c.metrics.FetchLatency.Observe(c.now().Sub(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.FetchErrors.Inc()
		}
		return 0, fmt.Errorf("fetch players: %w", err)
	}
	if c.metrics != nil {
		c.metrics.PlayersFetched.Add(float64(len(rows)))
	}

	// One capture time for the whole run; the CSV layout has second
	// precision.
	capturedAt := c.now().UTC().Truncate(time.Second)
	for _, r := range rows {
		r.CapturedAt = capturedAt
	}

	for _, store := range c.stores {
		if err := store.InsertBulk(ctx, rows); err != nil {
			return 0, fmt.Errorf("append snapshots: %w", err)
		}
	}

	if c.metrics != nil {
		c.metrics.SnapshotsAppended.Add(float64(len(rows)))
		c.metrics.LastSuccessfulTrack.SetToCurrentTime()
	}
	return len(rows), nil
}
