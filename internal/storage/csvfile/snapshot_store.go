package csvfile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

// snapshotHeader matches the columns of the transfers log.
var snapshotHeader = []string{
	"timestamp", "id", "first_name", "second_name", "now_cost",
	"transfers_in_event", "transfers_out_event", "selected_by_percent",
}

// SnapshotStore implements storage.SnapshotStore over an append-only CSV
// file. The file is created with a header on first write.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a snapshot store backed by the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// InsertBulk appends one collector run's rows, creating the file with a
// header if it does not exist. Rows are validated before anything is
// written so a bad row never leaves a partial run in the log.
func (s *SnapshotStore) InsertBulk(_ context.Context, rows []*domain.Snapshot) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.PlayerID <= 0 || r.CapturedAt.IsZero() {
			return storage.ErrInvalidInput
		}
		records = append(records, []string{
			r.CapturedAt.UTC().Format(TimeLayout),
			strconv.FormatInt(r.PlayerID, 10),
			r.FirstName,
			r.SecondName,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			strconv.FormatInt(r.TransfersIn, 10),
			strconv.FormatInt(r.TransfersOut, 10),
			strconv.FormatFloat(r.SelectedBy, 'f', -1, 64),
		})
	}
	return appendRecords(s.path, snapshotHeader, records)
}

// GetAll retrieves every snapshot in log order.
func (s *SnapshotStore) GetAll(_ context.Context) ([]*domain.Snapshot, error) {
	records, err := readRecords(s.path, len(snapshotHeader))
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.Snapshot, 0, len(records))
	for i, rec := range records {
		row, err := parseSnapshot(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.path, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseSnapshot(rec []string) (*domain.Snapshot, error) {
	capturedAt, err := time.Parse(TimeLayout, rec[0])
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	id, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	price, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return nil, fmt.Errorf("now_cost: %w", err)
	}
	in, err := strconv.ParseInt(rec[5], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("transfers_in_event: %w", err)
	}
	out, err := strconv.ParseInt(rec[6], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("transfers_out_event: %w", err)
	}
	selected, err := strconv.ParseFloat(rec[7], 64)
	if err != nil {
		return nil, fmt.Errorf("selected_by_percent: %w", err)
	}

	return &domain.Snapshot{
		PlayerID:     id,
		FirstName:    rec[2],
		SecondName:   rec[3],
		Price:        price,
		TransfersIn:  in,
		TransfersOut: out,
		SelectedBy:   selected,
		CapturedAt:   capturedAt.UTC(),
	}, nil
}
