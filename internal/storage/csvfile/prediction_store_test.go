package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fpl-transfer-lab/internal/domain"
)

var analysisTime = time.Date(2025, 8, 1, 13, 5, 0, 0, time.UTC)

func testPrediction(id int64) *domain.Prediction {
	return &domain.Prediction{
		PlayerID:     id,
		Name:         "First Last",
		Price:        7.5,
		NetDelta:     45000,
		HoursElapsed: 1.5,
		RatePerHour:  30000,
		Progress:     0.3,
		Label:        domain.LabelNeutral,
		AnalyzedAt:   analysisTime,
	}
}

func TestPredictionStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	store := NewPredictionStore(path)
	ctx := context.Background()

	want := []*domain.Prediction{testPrediction(1), testPrediction(2)}
	if err := store.InsertBulk(ctx, want); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	for i := range want {
		if *got[i] != *want[i] {
			t.Errorf("row %d mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestPredictionStore_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	store := NewPredictionStore(path)
	ctx := context.Background()

	// The analyzer always appends; two identical runs mean two identical
	// row sets in the log.
	if err := store.InsertBulk(ctx, []*domain.Prediction{testPrediction(1)}); err != nil {
		t.Fatalf("first InsertBulk failed: %v", err)
	}
	if err := store.InsertBulk(ctx, []*domain.Prediction{testPrediction(1)}); err != nil {
		t.Fatalf("second InsertBulk failed: %v", err)
	}

	got, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if *got[0] != *got[1] {
		t.Errorf("identical runs should append identical rows")
	}
}

func TestPredictionStore_FormatsProgressTwoDecimals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	store := NewPredictionStore(path)
	ctx := context.Background()

	p := testPrediction(1)
	p.Progress = -1.5
	p.Label = domain.LabelFaller
	if err := store.InsertBulk(ctx, []*domain.Prediction{p}); err != nil {
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
	if !strings.Contains(lines[1], ",-1.50,faller") {
		t.Errorf("expected progress -1.50 and faller label, got: %s", lines[1])
	}
}
