package league

import (
	"sort"
	"strings"

	"github.com/Amantay09/league-system/models"
)

type playerKey struct {
	name   string
	teamID int
}

// ComputePlayerStats aggregates goal and card events from counted
// fixtures into per-player totals. Players are keyed by trimmed,
// case-folded name plus team ID; the first-seen spelling of the name is
// kept for display. No fuzzy matching against rosters is attempted.
//
// Output order is first appearance, which keeps the result
// deterministic; callers sort for presentation (see TopScorers,
// MostCarded).
func ComputePlayerStats(fixtures []models.Fixture, opts StandingsOptions) ([]models.PlayerStatLine, []SkippedFixture) {
	counted := opts.countedSet()

	index := make(map[playerKey]*models.PlayerStatLine)
	order := make([]playerKey, 0)

	var skipped []SkippedFixture
	for _, f := range fixtures {
		if _, ok := counted[f.Status]; !ok {
			continue
		}
		if reason := validateCountedFixture(f); reason != "" {
			skipped = append(skipped, SkippedFixture{FixtureID: f.ID, Reason: reason})
			continue
		}

		events := f.Events
		if events == nil {
			parsed, err := f.ParseEvents()
			if err != nil {
				skipped = append(skipped, SkippedFixture{FixtureID: f.ID, Reason: "malformed events payload"})
				continue
			}
			events = parsed
		}

		for _, ev := range events {
			name := strings.TrimSpace(ev.PlayerName)
			if name == "" {
				continue
			}
			key := playerKey{name: strings.ToLower(name), teamID: ev.TeamID}
			line, ok := index[key]
			if !ok {
				line = &models.PlayerStatLine{PlayerName: name, TeamID: ev.TeamID}
				index[key] = line
				order = append(order, key)
			}
			switch ev.Type {
			case models.EventGoal:
				line.Goals++
			case models.EventCard:
				if ev.CardType == nil {
					continue
				}
				switch *ev.CardType {
				case models.CardYellow:
					line.YellowCards++
				case models.CardRed:
					line.RedCards++
				}
			}
		}
	}

	lines := make([]models.PlayerStatLine, 0, len(order))
	for _, key := range order {
		lines = append(lines, *index[key])
	}
	return lines, skipped
}

// TopScorers returns the n players with the most goals, ties kept in
// input order.
func TopScorers(lines []models.PlayerStatLine, n int) []models.PlayerStatLine {
	sorted := make([]models.PlayerStatLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Goals > sorted[j].Goals
	})
	return truncateLines(sorted, n)
}

// MostCarded ranks by disciplinary weight: a red card counts double.
func MostCarded(lines []models.PlayerStatLine, n int) []models.PlayerStatLine {
	weight := func(l models.PlayerStatLine) int {
		return l.YellowCards + 2*l.RedCards
	}
	sorted := make([]models.PlayerStatLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return weight(sorted[i]) > weight(sorted[j])
	})
	return truncateLines(sorted, n)
}

func truncateLines(lines []models.PlayerStatLine, n int) []models.PlayerStatLine {
	if n < 0 || n >= len(lines) {
		return lines
	}
	return lines[:n]
}
