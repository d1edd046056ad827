package league

import (
	"errors"
)

var (
	// ErrInsufficientTeams is returned when fixture generation is
	// requested with fewer than 2 distinct teams.
	ErrInsufficientTeams = errors.New("at least 2 distinct teams are required to generate fixtures")
)

// FixtureDraft is a generated pairing before persistence. The caller
// stores drafts as scheduled fixtures.
type FixtureDraft struct {
	Round      int `json:"round"`
	HomeTeamID int `json:"home_team_id"`
	AwayTeamID int `json:"away_team_id"`
}

// byeSlot marks the synthetic participant inserted for odd team counts.
// Real team IDs are positive database serials.
const byeSlot = -1

// GenerateFixtures builds a single round-robin schedule with the circle
// method: one team stays fixed while the rest rotate each round. Every
// unordered pair of distinct teams meets exactly once. Round numbers are
// 1-based and contiguous: n-1 rounds for even n, n rounds for odd n
// (the bye pairing is dropped).
//
// The result is deterministic for a fixed input order, so regenerating
// from the same roster yields the identical schedule.
func GenerateFixtures(teamIDs []int) ([]FixtureDraft, error) {
	ids := dedupeTeamIDs(teamIDs)
	if len(ids) < 2 {
		return nil, ErrInsufficientTeams
	}

	if len(ids)%2 != 0 {
		ids = append(ids, byeSlot)
	}
	n := len(ids)
	rounds := n - 1

	drafts := make([]FixtureDraft, 0, n*(n-1)/2)
	for round := 1; round <= rounds; round++ {
		for i := 0; i < n/2; i++ {
			home, away := ids[i], ids[n-1-i]
			if home == byeSlot || away == byeSlot {
				continue
			}
			// Alternate the fixed seat so the first team does not
			// play every match at home.
			if i == 0 && round%2 == 0 {
				home, away = away, home
			}
			drafts = append(drafts, FixtureDraft{
				Round:      round,
				HomeTeamID: home,
				AwayTeamID: away,
			})
		}
		// Rotate all but the first element one position clockwise.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}

	return drafts, nil
}

func dedupeTeamIDs(teamIDs []int) []int {
	seen := make(map[int]struct{}, len(teamIDs))
	ids := make([]int, 0, len(teamIDs))
	for _, id := range teamIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
