package csvfile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// predictionHeader matches the columns of the predictions log.
var predictionHeader = []string{
	"timestamp", "id", "name", "now_cost", "net_delta",
	"hours_elapsed", "net_delta_per_hr", "progress", "label",
}

// PredictionStore implements storage.PredictionStore over an append-only
// CSV file.
type PredictionStore struct {
	path string
}

// NewPredictionStore creates a prediction store backed by the file at path.
func NewPredictionStore(path string) *PredictionStore {
	return &PredictionStore{path: path}
}

// Compile-time interface check.
var _ storage.PredictionStore = (*PredictionStore)(nil)

// InsertBulk appends one analyzer run's rows, creating the file with a
// header if it does not exist.
func (s *PredictionStore) InsertBulk(_ context.Context, rows []*domain.Prediction) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.AnalyzedAt.IsZero() {
			return storage.ErrInvalidInput
		}
		records = append(records, []string{
			r.AnalyzedAt.UTC().Format(TimeLayout),
			strconv.FormatInt(r.PlayerID, 10),
			r.Name,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			strconv.FormatInt(r.NetDelta, 10),
			strconv.FormatFloat(r.HoursElapsed, 'f', -1, 64),
			strconv.FormatFloat(r.RatePerHour, 'f', -1, 64),
			strconv.FormatFloat(r.Progress, 'f', 2, 64),
			string(r.Label),
		})
	}
	return appendRecords(s.path, predictionHeader, records)
}

// GetAll retrieves every prediction in log order.
func (s *PredictionStore) GetAll(_ context.Context) ([]*domain.Prediction, error) {
	records, err := readRecords(s.path, len(predictionHeader))
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.Prediction, 0, len(records))
	for i, rec := range records {
		row, err := parsePrediction(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.path, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parsePrediction(rec []string) (*domain.Prediction, error) {
	analyzedAt, err := time.Parse(TimeLayout, rec[0])
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	id, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	price, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return nil, fmt.Errorf("now_cost: %w", err)
	}
	netDelta, err := strconv.ParseInt(rec[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("net_delta: %w", err)
	}
	hours, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return nil, fmt.Errorf("hours_elapsed: %w", err)
	}
	rate, err := strconv.ParseFloat(rec[6], 64)
	if err != nil {
		return nil, fmt.Errorf("net_delta_per_hr: %w", err)
	}
	progress, err := strconv.ParseFloat(rec[7], 64)
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}

	return &domain.Prediction{
		PlayerID:     id,
		Name:         rec[2],
		Price:        price,
		NetDelta:     netDelta,
		HoursElapsed: hours,
		RatePerHour:  rate,
		Progress:     progress,
		Label:        domain.Label(rec[8]),
		AnalyzedAt:   analyzedAt.UTC(),
	}, nil
}
