package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// summaryHeader matches the columns of the movers summary file.
var summaryHeader = []string{
	"name", "now_cost", "net_delta_per_hr", "progress", "timestamp",
}

// SummaryStore implements storage.SummaryStore over a CSV file that is
// rewritten from scratch each run. Unlike the logs, the summary is not
// append-only.
type SummaryStore struct {
	path string
}

// NewSummaryStore creates a summary store backed by the file at path.
func NewSummaryStore(path string) *SummaryStore {
	return &SummaryStore{path: path}
}

// Compile-time interface check.
var _ storage.SummaryStore = (*SummaryStore)(nil)

// Replace overwrites the summary file with the given rows. Display
// rounding is applied here: price to 1 dp, hourly rate to whole
// transfers, progress to 2 dp.
func (s *SummaryStore) Replace(_ context.Context, rows []*domain.SummaryRow) error {
	for _, r := range rows {
		if r == nil || r.GeneratedAt.IsZero() {
			return storage.ErrInvalidInput
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(summaryHeader); err != nil {
		return fmt.Errorf("write header to %s: %w", s.path, err)
	}
	for _, r := range rows {
		rec := []string{
			r.Name,
			strconv.FormatFloat(r.Price, 'f', 1, 64),
			strconv.FormatFloat(r.RatePerHour, 'f', 0, 64),
			strconv.FormatFloat(r.Progress, 'f', 2, 64),
			r.GeneratedAt.UTC().Format(TimeLayout),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row to %s: %w", s.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return nil
}
