package league

import "math"

// KnockoutDraw is the opening round of a single-elimination stage plus
// the teams that advance on a bye. Later rounds cannot be drafted up
// front because their participants are unknown until results come in;
// organizers schedule them as knockout-stage fixtures once winners are
// decided.
type KnockoutDraw struct {
	Fixtures []FixtureDraft `json:"fixtures"`
	Byes     []int          `json:"byes"`
	Rounds   int            `json:"rounds"`
}

// GenerateKnockout seeds teams into a bracket sized to the next power
// of two. Pairing follows standard seeding: seed i meets seed
// (bracketSize-1-i), so top seeds absorb the byes. Deterministic for a
// fixed input order.
func GenerateKnockout(teamIDs []int) (*KnockoutDraw, error) {
	ids := dedupeTeamIDs(teamIDs)
	n := len(ids)
	if n < 2 {
		return nil, ErrInsufficientTeams
	}

	rounds := int(math.Ceil(math.Log2(float64(n))))
	bracketSize := 1 << uint(rounds)

	draw := &KnockoutDraw{
		Fixtures: make([]FixtureDraft, 0, n/2),
		Rounds:   rounds,
	}
	for i := 0; i < bracketSize/2; i++ {
		opponent := bracketSize - 1 - i
		if opponent >= n {
			// No opponent in this slot: the seed advances.
			draw.Byes = append(draw.Byes, ids[i])
			continue
		}
		draw.Fixtures = append(draw.Fixtures, FixtureDraft{
			Round:      1,
			HomeTeamID: ids[i],
			AwayTeamID: ids[opponent],
		})
	}
	return draw, nil
}
