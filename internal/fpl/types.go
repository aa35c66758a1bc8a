package fpl

import (
	"fmt"
	"strconv"

	"fpl-transfer-lab/internal/domain"
)

// bootstrapResponse is the subset of the bootstrap-static payload this
// client consumes. The full response carries teams, events and rules we
// have no use for.
type bootstrapResponse struct {
	Elements []element `json:"elements"`
}

// element is one player record as the API reports it. now_cost is in
// tenths of £m and selected_by_percent arrives as a string.
type element struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	NowCost           int64  `json:"now_cost"`
	TransfersInEvent  int64  `json:"transfers_in_event"`
	TransfersOutEvent int64  `json:"transfers_out_event"`
	SelectedByPercent string `json:"selected_by_percent"`
}

// toSnapshot converts an API element to a domain snapshot.
func (e element) toSnapshot() (*domain.Snapshot, error) {
	if e.ID <= 0 {
		return nil, fmt.Errorf("invalid player id %d", e.ID)
	}

	selected, err := strconv.ParseFloat(e.SelectedByPercent, 64)
	if err != nil {
		return nil, fmt.Errorf("parse selected_by_percent %q: %w", e.SelectedByPercent, err)
	}

	return &domain.Snapshot{
		PlayerID:     e.ID,
		FirstName:    e.FirstName,
		SecondName:   e.SecondName,
		Price:        float64(e.NowCost) / 10, // tenths of £m to £m
		TransfersIn:  e.TransfersInEvent,
		TransfersOut: e.TransfersOutEvent,
		SelectedBy:   selected,
	}, nil
}
