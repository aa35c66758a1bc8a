package clickhouse

import (
	"context"
	"fmt"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using ClickHouse.
// It serves as the snapshot history mirror; the MergeTree ordering on
// (captured_at, player_id) matches how the analyzer consumes the log.
type SnapshotStore struct {
	conn *Conn
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(conn *Conn) *SnapshotStore {
	return &SnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// InsertBulk appends one collector run's rows as a single batch.
func (s *SnapshotStore) InsertBulk(ctx context.Context, rows []*domain.Snapshot) error {
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.CapturedAt.IsZero() {
			return storage.ErrInvalidInput
		}
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO player_snapshots (
			player_id, first_name, second_name, price,
			transfers_in, transfers_out, selected_by, captured_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
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
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetAll retrieves every snapshot ordered by capture time, then player id.
func (s *SnapshotStore) GetAll(ctx context.Context) ([]*domain.Snapshot, error) {
	query := `
		SELECT player_id, first_name, second_name, price,
		       transfers_in, transfers_out, selected_by, captured_at
		FROM player_snapshots
		ORDER BY captured_at ASC, player_id ASC
	`

	chRows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get snapshots: %w", err)
	}
	defer chRows.Close()

	var rows []*domain.Snapshot
	for chRows.Next() {
		var r domain.Snapshot
		err := chRows.Scan(
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
	if err := chRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return rows, nil
}
