package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"fpl-transfer-lab/internal/domain"
	"fpl-transfer-lab/internal/storage"
)

func testSnapshot(id int64) *domain.Snapshot {
	return &domain.Snapshot{
		PlayerID:     id,
		FirstName:    "First",
		SecondName:   "Last",
		Price:        7.5,
		TransfersIn:  100,
		TransfersOut: 50,
		SelectedBy:   12.5,
		CapturedAt:   time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotStore_InsertAndGet(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	rows := []*domain.Snapshot{testSnapshot(2), testSnapshot(1)}
	if err := store.InsertBulk(ctx, rows); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	// Insertion order preserved
	if got[0].PlayerID != 2 || got[1].PlayerID != 1 {
		t.Errorf("order mismatch: got %d, %d", got[0].PlayerID, got[1].PlayerID)
	}
}

func TestSnapshotStore_InvalidInput(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	bad := testSnapshot(1)
	bad.CapturedAt = time.Time{}
	err := store.InsertBulk(ctx, []*domain.Snapshot{testSnapshot(2), bad})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, _ := store.GetAll(ctx)
	if len(got) != 0 {
		t.Errorf("expected empty store after rejected batch, got %d rows", len(got))
	}
}

func TestSnapshotStore_CopiesPreventMutation(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	original := testSnapshot(1)
	if err := store.InsertBulk(ctx, []*domain.Snapshot{original}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	// Mutating the caller's row must not reach the store
	original.TransfersIn = 999999

	got, _ := store.GetAll(ctx)
	if got[0].TransfersIn != 100 {
		t.Errorf("store row mutated externally: TransfersIn = %d", got[0].TransfersIn)
	}

	// Mutating a returned row must not reach the store either
	got[0].TransfersOut = 777
	again, _ := store.GetAll(ctx)
	if again[0].TransfersOut != 50 {
		t.Errorf("store row mutated via returned copy: TransfersOut = %d", again[0].TransfersOut)
	}
}
