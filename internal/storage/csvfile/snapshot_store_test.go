package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

var captureTime = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func testSnapshot(id int64, at time.Time) *domain.Snapshot {
	return &domain.Snapshot{
		PlayerID:     id,
		FirstName:    "First",
		SecondName:   "Last",
		Price:        7.5,
		TransfersIn:  120000,
		TransfersOut: 5000,
		SelectedBy:   84.3,
		CapturedAt:   at,
	}
}

func TestSnapshotStore_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.csv")
	store := NewSnapshotStore(path)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.Snapshot{testSnapshot(1, captureTime)})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	wantHeader := "timestamp,id,first_name,second_name,now_cost,transfers_in_event,transfers_out_event,selected_by_percent"
	if lines[0] != wantHeader {
		t.Errorf("header mismatch:\n got %s\nwant %s", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[1], "2025-08-01 12:00:00,1,") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestSnapshotStore_AppendDoesNotRepeatHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.csv")
	store := NewSnapshotStore(path)
	ctx := context.Background()

	for run := 0; run < 3; run++ {
		at := captureTime.Add(time.Duration(run) * time.Hour)
		rows := []*domain.Snapshot{testSnapshot(1, at), testSnapshot(2, at)}
		if err := store.InsertBulk(ctx, rows); err != nil {
			t.Fatalf("run %d InsertBulk failed: %v", run, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header + 6 rows, got %d lines", len(lines))
	}
	for i, line := range lines[1:] {
		if strings.HasPrefix(line, "timestamp,") {
			t.Errorf("data line %d looks like a header: %s", i, line)
		}
	}
}

func TestSnapshotStore_RoundTripPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.csv")
	store := NewSnapshotStore(path)
	ctx := context.Background()

	want := []*domain.Snapshot{
		testSnapshot(2, captureTime),
		testSnapshot(1, captureTime),
		testSnapshot(2, captureTime.Add(time.Hour)),
	}
	// Names with commas must survive CSV quoting
	want[1].SecondName = "O'Brien, Jr."

	if err := store.InsertBulk(ctx, want); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if *got[i] != *want[i] {
			t.Errorf("row %d mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestSnapshotStore_GetAllMissingFile(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "missing.csv"))

	if _, err := store.GetAll(context.Background()); err == nil {
		t.Fatal("expected error for missing log, got nil")
	}
}

func TestSnapshotStore_InvalidRowWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.csv")
	store := NewSnapshotStore(path)
	ctx := context.Background()

	rows := []*domain.Snapshot{
		testSnapshot(1, captureTime),
		{PlayerID: 0, CapturedAt: captureTime}, // invalid id
	}
	err := store.InsertBulk(ctx, rows)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("file should not exist after rejected run")
	}
}
