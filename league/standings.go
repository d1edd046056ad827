package league

import (
	"sort"

	"github.com/Amantay09/league-system/models"
)

// StandingsOptions controls which fixtures count toward aggregated
// views. The zero value counts finished fixtures plus the legacy
// "completed" status found in imported data.
type StandingsOptions struct {
	// CountedStatuses lists the statuses that feed standings and
	// player stats. Empty means finished + legacy completed.
	CountedStatuses []models.FixtureStatus

	// AllTeams, when set, guarantees a (possibly all-zero) row for
	// every listed team in the given order. Teams absent from it are
	// still included if they appear in counted fixtures.
	AllTeams []int
}

func (o StandingsOptions) countedSet() map[models.FixtureStatus]struct{} {
	statuses := o.CountedStatuses
	if len(statuses) == 0 {
		statuses = []models.FixtureStatus{models.FixtureStatusFinished, models.FixtureStatusLegacyCompleted}
	}
	set := make(map[models.FixtureStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// SkippedFixture reports a counted fixture that was excluded from an
// aggregation because it violates an invariant. One malformed record
// never aborts the whole computation.
type SkippedFixture struct {
	FixtureID int    `json:"fixture_id"`
	Reason    string `json:"reason"`
}

// ComputeStandings aggregates finished fixtures into a ranked table:
// 3 points for a win, 1 for a draw, 0 for a loss. Rows are ordered by
// points, then goal difference, then goals for; remaining ties keep
// input order (no further tie-break is defined).
//
// Teams that never appear in a counted fixture are omitted unless
// opts.AllTeams names them.
func ComputeStandings(fixtures []models.Fixture, opts StandingsOptions) ([]models.StandingsRow, []SkippedFixture) {
	counted := opts.countedSet()

	index := make(map[int]*models.StandingsRow)
	order := make([]int, 0, len(opts.AllTeams))
	row := func(teamID int) *models.StandingsRow {
		if r, ok := index[teamID]; ok {
			return r
		}
		r := &models.StandingsRow{TeamID: teamID}
		index[teamID] = r
		order = append(order, teamID)
		return r
	}
	for _, teamID := range opts.AllTeams {
		row(teamID)
	}

	var skipped []SkippedFixture
	for _, f := range fixtures {
		if _, ok := counted[f.Status]; !ok {
			continue
		}
		if reason := validateCountedFixture(f); reason != "" {
			skipped = append(skipped, SkippedFixture{FixtureID: f.ID, Reason: reason})
			continue
		}

		home, away := row(f.HomeTeamID), row(f.AwayTeamID)
		hs, as := *f.HomeScore, *f.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs

		switch {
		case hs > as:
			home.Wins++
			home.Points += 3
			away.Losses++
		case hs < as:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	rows := make([]models.StandingsRow, 0, len(order))
	for _, teamID := range order {
		r := index[teamID]
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		rows = append(rows, *r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})

	return rows, skipped
}

func validateCountedFixture(f models.Fixture) string {
	if f.HomeTeamID == f.AwayTeamID {
		return "home and away team are the same"
	}
	if f.HomeScore == nil || f.AwayScore == nil {
		return "counted fixture is missing a score"
	}
	if *f.HomeScore < 0 || *f.AwayScore < 0 {
		return "negative score"
	}
	return ""
}
