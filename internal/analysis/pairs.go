package analysis

import (
	"sort"

	"fpl-transfer-lab/internal/domain"
)

// pair holds a player's two most recent snapshots. prev is nil when only
// one snapshot exists.
type pair struct {
	prev *domain.Snapshot
	curr *domain.Snapshot
}

// latestPairs groups the log by player and selects each player's two
// rows with the latest capture timestamps. Equal timestamps keep log
// order, so the selection is deterministic for a given file. The result
// is sorted by player id.
func latestPairs(rows []*domain.Snapshot) []pair {
	byPlayer := make(map[int64][]*domain.Snapshot)
	for _, r := range rows {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}

	ids := make([]int64, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pairs := make([]pair, 0, len(ids))
	for _, id := range ids {
		history := byPlayer[id]
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].CapturedAt.Before(history[j].CapturedAt)
		})

		p := pair{curr: history[len(history)-1]}
		if len(history) >= 2 {
			p.prev = history[len(history)-2]
		}
		pairs = append(pairs, p)
	}
	return pairs
}
