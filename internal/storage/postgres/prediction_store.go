package postgres

import (
	"context"
	"fmt"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// PredictionStore implements storage.PredictionStore using PostgreSQL.
type PredictionStore struct {
	pool *Pool
}

// NewPredictionStore creates a new PredictionStore.
func NewPredictionStore(pool *Pool) *PredictionStore {
	return &PredictionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PredictionStore = (*PredictionStore)(nil)

// InsertBulk appends one analyzer run's rows atomically. Returns
// ErrDuplicateKey if any (player_id, analyzed_at) pair already exists.
func (s *PredictionStore) InsertBulk(ctx context.Context, rows []*domain.Prediction) error {
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.AnalyzedAt.IsZero() {
			return storage.ErrInvalidInput
		}
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO predictions (
			player_id, name, price, net_delta, hours_elapsed,
			rate_per_hour, progress, label, analyzed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, r := range rows {
		_, err := tx.Exec(ctx, query,
			r.PlayerID,
			r.Name,
			r.Price,
			r.NetDelta,
			r.HoursElapsed,
			r.RatePerHour,
			r.Progress,
			string(r.Label),
			r.AnalyzedAt.UTC(),
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert prediction: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit predictions: %w", err)
	}
	return nil
}

// GetAll retrieves every prediction in log order.
func (s *PredictionStore) GetAll(ctx context.Context) ([]*domain.Prediction, error) {
	query := `
		SELECT player_id, name, price, net_delta, hours_elapsed,
		       rate_per_hour, progress, label, analyzed_at
		FROM predictions
		ORDER BY seq ASC
	`

	pgRows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get predictions: %w", err)
	}
	defer pgRows.Close()

	var rows []*domain.Prediction
	for pgRows.Next() {
		var (
			r     domain.Prediction
			label string
		)
		err := pgRows.Scan(
			&r.PlayerID,
			&r.Name,
			&r.Price,
			&r.NetDelta,
			&r.HoursElapsed,
			&r.RatePerHour,
			&r.Progress,
			&label,
			&r.AnalyzedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		r.Label = domain.Label(label)
		r.AnalyzedAt = r.AnalyzedAt.UTC()
		rows = append(rows, &r)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return rows, nil
}
