package league

import (
	"testing"

	"github.com/Amantay09/league-system/models"
)

func finishedFixture(id, home, away, homeScore, awayScore int) models.Fixture {
	return models.Fixture{
		ID:           id,
		TournamentID: 1,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Status:       models.FixtureStatusFinished,
		HomeScore:    &homeScore,
		AwayScore:    &awayScore,
	}
}

func TestComputeStandingsThreeTeamScenario(t *testing.T) {
	t.Parallel()

	const teamA, teamB, teamC = 1, 2, 3
	fixtures := []models.Fixture{
		finishedFixture(1, teamA, teamB, 2, 1),
		finishedFixture(2, teamA, teamC, 0, 0),
		finishedFixture(3, teamB, teamC, 1, 1),
	}

	rows, skipped := ComputeStandings(fixtures, StandingsOptions{})
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped fixtures: %v", skipped)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].TeamID != teamA || rows[0].Points != 4 || rows[0].GoalDifference != 1 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	// C drew both matches (2 pts), B lost one and drew one (1 pt).
	if rows[1].TeamID != teamC || rows[1].Points != 2 {
		t.Fatalf("unexpected second place: %+v", rows[1])
	}
	if rows[2].TeamID != teamB || rows[2].Points != 1 {
		t.Fatalf("unexpected third place: %+v", rows[2])
	}

	for _, row := range rows {
		if row.Played != 2 {
			t.Errorf("team %d played %d matches, want 2", row.TeamID, row.Played)
		}
	}
}

func TestComputeStandingsConservation(t *testing.T) {
	t.Parallel()

	fixtures := []models.Fixture{
		finishedFixture(1, 1, 2, 3, 0),
		finishedFixture(2, 3, 4, 1, 1),
		finishedFixture(3, 1, 3, 2, 2),
		finishedFixture(4, 2, 4, 0, 4),
		finishedFixture(5, 1, 4, 1, 0),
	}
	decisive, drawn := 3, 2

	rows, skipped := ComputeStandings(fixtures, StandingsOptions{})
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped fixtures: %v", skipped)
	}

	var wins, losses, points, goalsFor, goalsAgainst int
	for _, row := range rows {
		wins += row.Wins
		losses += row.Losses
		points += row.Points
		goalsFor += row.GoalsFor
		goalsAgainst += row.GoalsAgainst
	}
	if wins != losses {
		t.Errorf("sum of wins (%d) != sum of losses (%d)", wins, losses)
	}
	if want := 3*decisive + 2*drawn; points != want {
		t.Errorf("total points = %d, want %d", points, want)
	}
	if goalsFor != goalsAgainst {
		t.Errorf("goals for (%d) != goals against (%d)", goalsFor, goalsAgainst)
	}
}

func TestComputeStandingsOrderingInvariant(t *testing.T) {
	t.Parallel()

	fixtures := []models.Fixture{
		finishedFixture(1, 1, 2, 2, 0),
		finishedFixture(2, 3, 4, 5, 1),
		finishedFixture(3, 5, 6, 1, 0),
		finishedFixture(4, 1, 3, 1, 1),
		finishedFixture(5, 2, 5, 0, 0),
		finishedFixture(6, 4, 6, 2, 3),
	}

	rows, _ := ComputeStandings(fixtures, StandingsOptions{})
	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1], rows[i]
		switch {
		case a.Points > b.Points:
		case a.Points == b.Points && a.GoalDifference > b.GoalDifference:
		case a.Points == b.Points && a.GoalDifference == b.GoalDifference && a.GoalsFor >= b.GoalsFor:
		default:
			t.Fatalf("rows %d and %d out of order: %+v before %+v", i-1, i, a, b)
		}
	}
}

func TestComputeStandingsExcludesUnfinishedFixtures(t *testing.T) {
	t.Parallel()

	scheduled := models.Fixture{
		ID:         10,
		HomeTeamID: 1,
		AwayTeamID: 2,
		Status:     models.FixtureStatusScheduled,
	}
	live := finishedFixture(11, 1, 2, 1, 0)
	live.Status = models.FixtureStatusLive

	rows, skipped := ComputeStandings([]models.Fixture{scheduled, live}, StandingsOptions{})
	if len(rows) != 0 {
		t.Fatalf("expected no rows for unfinished fixtures, got %v", rows)
	}
	if len(skipped) != 0 {
		t.Fatalf("unfinished fixtures must be ignored, not reported: %v", skipped)
	}
}

func TestComputeStandingsCountsLegacyCompletedStatus(t *testing.T) {
	t.Parallel()

	legacy := finishedFixture(1, 1, 2, 2, 1)
	legacy.Status = models.FixtureStatusLegacyCompleted

	rows, _ := ComputeStandings([]models.Fixture{legacy}, StandingsOptions{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows from legacy completed fixture, got %d", len(rows))
	}
	if rows[0].Points != 3 {
		t.Fatalf("expected 3 points for the winner, got %d", rows[0].Points)
	}
}

func TestComputeStandingsSkipsMalformedFixtures(t *testing.T) {
	t.Parallel()

	selfPlay := finishedFixture(1, 4, 4, 1, 0)
	missingScore := models.Fixture{
		ID:         2,
		HomeTeamID: 1,
		AwayTeamID: 2,
		Status:     models.FixtureStatusFinished,
	}
	valid := finishedFixture(3, 1, 2, 1, 0)

	rows, skipped := ComputeStandings([]models.Fixture{selfPlay, missingScore, valid}, StandingsOptions{})
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped fixtures, got %v", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("valid fixture must still be counted, got rows %v", rows)
	}
	if rows[0].TeamID != 1 || rows[0].Points != 3 {
		t.Fatalf("unexpected winner row: %+v", rows[0])
	}
}

func TestComputeStandingsAllTeamsZeroPadding(t *testing.T) {
	t.Parallel()

	fixtures := []models.Fixture{finishedFixture(1, 1, 2, 1, 0)}
	rows, _ := ComputeStandings(fixtures, StandingsOptions{AllTeams: []int{1, 2, 3}})

	if len(rows) != 3 {
		t.Fatalf("expected a row for every registered team, got %d", len(rows))
	}
	last := rows[2]
	if last.TeamID != 3 || last.Played != 0 || last.Points != 0 {
		t.Fatalf("expected all-zero row for team 3, got %+v", last)
	}
}
