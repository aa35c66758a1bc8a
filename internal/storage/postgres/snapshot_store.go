package postgres

import (
	"context"
	"fmt"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL.
// It mirrors the CSV snapshot log; the seq column preserves log order and
// the (player_id, captured_at) key rejects duplicate captures the flat
// file cannot detect.
type SnapshotStore struct {
	pool *Pool
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// InsertBulk appends one collector run's rows atomically. Returns
// ErrDuplicateKey if any (player_id, captured_at) pair already exists.
func (s *SnapshotStore) InsertBulk(ctx context.Context, rows []*domain.Snapshot) error {
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.CapturedAt.IsZero() {
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
		INSERT INTO player_snapshots (
			player_id, first_name, second_name, price,
			transfers_in, transfers_out, selected_by, captured_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, r := range rows {
		_, err := tx.Exec(ctx, query,
			r.PlayerID,
			r.FirstName,
			r.SecondName,
			r.Price,
			r.TransfersIn,
			r.TransfersOut,
			r.SelectedBy,
			r.CapturedAt.UTC(),
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshots: %w", err)
	}
	return nil
}

// GetAll retrieves every snapshot in log order.
func (s *SnapshotStore) GetAll(ctx context.Context) ([]*domain.Snapshot, error) {
	query := `
		SELECT player_id, first_name, second_name, price,
		       transfers_in, transfers_out, selected_by, captured_at
		FROM player_snapshots
		ORDER BY seq ASC
	`

	pgRows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get snapshots: %w", err)
	}
	defer pgRows.Close()

	var rows []*domain.Snapshot
	for pgRows.Next() {
		var r domain.Snapshot
		err := pgRows.Scan(
			&r.PlayerID,
			&r.FirstName,
			&r.SecondName,
			&r.Price,
			&r.TransfersIn,
			&r.TransfersOut,
			&r.SelectedBy,
			&r.CapturedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		r.CapturedAt = r.CapturedAt.UTC()
		rows = append(rows, &r)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return rows, nil
}
