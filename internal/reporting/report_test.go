package reporting

import (
	"strings"
	"testing"
	"time"

	"fpl-transfer-lab/internal/domain"
)

var runTime = time.Date(2025, 8, 1, 13, 0, 0, 0, time.UTC)

func pred(id int64, name string, progress float64) *domain.Prediction {
	label := domain.LabelNeutral
	rate := progress * 100000
	return &domain.Prediction{
		PlayerID:    id,
		Name:        name,
		Price:       7.5,
		RatePerHour: rate,
		Progress:    progress,
		Label:       label,
		AnalyzedAt:  runTime,
	}
}

func TestTopRisers(t *testing.T) {
	preds := []*domain.Prediction{
		pred(1, "Small Riser", 0.1),
		pred(2, "Faller", -0.5),
		pred(3, "Big Riser", 0.9),
		pred(4, "Flat", 0),
		pred(5, "Mid Riser", 0.4),
	}

	got := TopRisers(preds, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 risers, got %d", len(got))
	}
	if got[0].Name != "Big Riser" || got[1].Name != "Mid Riser" {
		t.Errorf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestTopRisers_ExcludesFlatAndFalling(t *testing.T) {
	preds := []*domain.Prediction{
		pred(1, "Flat", 0),
		pred(2, "Faller", -0.3),
	}
	if got := TopRisers(preds, 10); len(got) != 0 {
		t.Errorf("expected no risers, got %d", len(got))
	}
}

func TestTopFallers(t *testing.T) {
	preds := []*domain.Prediction{
		pred(1, "Riser", 0.5),
		pred(2, "Small Faller", -0.1),
		pred(3, "Big Faller", -0.8),
	}

	got := TopFallers(preds, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 fallers, got %d", len(got))
	}
	if got[0].Name != "Big Faller" || got[1].Name != "Small Faller" {
		t.Errorf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestTopMovers_TieBreaksOnPlayerID(t *testing.T) {
	preds := []*domain.Prediction{
		pred(7, "Second", 0.5),
		pred(3, "First", 0.5),
	}
	got := TopRisers(preds, 2)
	if got[0].PlayerID != 3 || got[1].PlayerID != 7 {
		t.Errorf("tie should break on player id: got %d, %d", got[0].PlayerID, got[1].PlayerID)
	}
}

func TestBuildSummary(t *testing.T) {
	preds := []*domain.Prediction{
		pred(1, "Small Riser", 0.2),
		pred(2, "Big Faller", -0.9),
		pred(3, "Mid Riser", 0.5),
		pred(4, "Flat", 0),
	}

	rows := BuildSummary(preds, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(rows))
	}

	// Ranked by absolute progress
	wantNames := []string{"Big Faller", "Mid Riser", "Small Riser"}
	for i, want := range wantNames {
		if rows[i].Name != want {
			t.Errorf("row %d: got %s, want %s", i, rows[i].Name, want)
		}
	}
	if !rows[0].GeneratedAt.Equal(runTime) {
		t.Errorf("summary rows should carry the analysis timestamp")
	}
}

func TestBuildSummary_SizeLargerThanInput(t *testing.T) {
	rows := BuildSummary([]*domain.Prediction{pred(1, "Only", 0.1)}, 20)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestRenderTable(t *testing.T) {
	var sb strings.Builder
	preds := []*domain.Prediction{pred(1, "Erling Haaland", 1.25)}
	preds[0].Label = domain.LabelRiser

	if err := RenderTable(&sb, "Top Rising Candidates", preds); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "=== Top Rising Candidates ===") {
		t.Errorf("missing title: %s", out)
	}
	if !strings.Contains(out, "Erling Haaland") || !strings.Contains(out, "riser") {
		t.Errorf("missing row data: %s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	var sb strings.Builder
	if err := RenderTable(&sb, "Top Rising Candidates", nil); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	if !strings.Contains(sb.String(), "(none)") {
		t.Errorf("expected (none) placeholder: %s", sb.String())
	}
}
