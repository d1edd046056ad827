package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amantay09/league-system/models"
)

func newStandingsEnv(t *testing.T) (StandingsService, *stubFixtureRepo, *stubRegistrationRepo) {
	t.Helper()

	tournamentRepo := &stubTournamentRepo{tournaments: map[int]*models.Tournament{
		1: testTournament(1, 10, models.TournamentStatusActive, models.FormatRoundRobin, 8),
	}}
	fixtureRepo := &stubFixtureRepo{}
	regRepo := &stubRegistrationRepo{}

	svc := NewStandingsService(tournamentRepo, fixtureRepo, regRepo)
	return svc, fixtureRepo, regRepo
}

func approveWithTeam(t *testing.T, regRepo *stubRegistrationRepo, teamID int, name string) {
	t.Helper()
	reg := &models.Registration{
		TournamentID: 1,
		TeamID:       teamID,
		Status:       models.RegistrationStatusApproved,
		Team:         &models.Team{ID: teamID, Name: name},
	}
	require.NoError(t, regRepo.Create(context.Background(), reg))
}

func addFinished(t *testing.T, fixtureRepo *stubFixtureRepo, home, away, hs, as int) {
	t.Helper()
	fixture := &models.Fixture{
		TournamentID: 1,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Round:        1,
		Stage:        models.StageGroup,
		Status:       models.FixtureStatusFinished,
		HomeScore:    intPtr(hs),
		AwayScore:    intPtr(as),
	}
	require.NoError(t, fixtureRepo.Create(context.Background(), nil, fixture))
}

func TestGetStandingsRanksAndAttachesTeams(t *testing.T) {
	t.Parallel()
	svc, fixtureRepo, regRepo := newStandingsEnv(t)

	approveWithTeam(t, regRepo, 100, "Falcons")
	approveWithTeam(t, regRepo, 101, "Harriers")
	approveWithTeam(t, regRepo, 102, "Rovers")

	addFinished(t, fixtureRepo, 100, 101, 3, 0)
	addFinished(t, fixtureRepo, 101, 102, 1, 1)

	table, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, 100, table.Rows[0].TeamID)
	assert.Equal(t, 3, table.Rows[0].Points)
	require.NotNil(t, table.Rows[0].Team)
	assert.Equal(t, "Falcons", table.Rows[0].Team.Name)
	assert.Empty(t, table.Skipped)
}

func TestGetStandingsIncludesTeamsWithoutResults(t *testing.T) {
	t.Parallel()
	svc, fixtureRepo, regRepo := newStandingsEnv(t)

	approveWithTeam(t, regRepo, 100, "Falcons")
	approveWithTeam(t, regRepo, 101, "Harriers")
	approveWithTeam(t, regRepo, 102, "Rovers")

	addFinished(t, fixtureRepo, 100, 101, 2, 0)

	table, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	last := table.Rows[len(table.Rows)-1]
	assert.Equal(t, 102, last.TeamID)
	assert.Zero(t, last.Played)
	assert.Zero(t, last.Points)
}

func TestGetStandingsReportsSkippedFixtures(t *testing.T) {
	t.Parallel()
	svc, fixtureRepo, regRepo := newStandingsEnv(t)

	approveWithTeam(t, regRepo, 100, "Falcons")
	approveWithTeam(t, regRepo, 101, "Harriers")

	// Finished but missing a score: counted, then excluded with a reason.
	broken := &models.Fixture{
		TournamentID: 1,
		HomeTeamID:   100,
		AwayTeamID:   101,
		Round:        1,
		Stage:        models.StageGroup,
		Status:       models.FixtureStatusFinished,
	}
	require.NoError(t, fixtureRepo.Create(context.Background(), nil, broken))

	table, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, table.Skipped, 1)
	assert.Equal(t, broken.ID, table.Skipped[0].FixtureID)

	for _, row := range table.Rows {
		assert.Zero(t, row.Played)
	}
}

func TestGetStandingsUnknownTournament(t *testing.T) {
	t.Parallel()
	svc, _, _ := newStandingsEnv(t)

	_, err := svc.GetStandings(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetPlayerStatsAggregatesEvents(t *testing.T) {
	t.Parallel()
	svc, fixtureRepo, regRepo := newStandingsEnv(t)

	approveWithTeam(t, regRepo, 100, "Falcons")
	approveWithTeam(t, regRepo, 101, "Harriers")

	fixture := &models.Fixture{
		TournamentID: 1,
		HomeTeamID:   100,
		AwayTeamID:   101,
		Round:        1,
		Stage:        models.StageGroup,
		Status:       models.FixtureStatusFinished,
		HomeScore:    intPtr(2),
		AwayScore:    intPtr(0),
	}
	yellow := models.CardYellow
	require.NoError(t, fixture.SetEvents([]models.MatchEvent{
		{Type: models.EventGoal, PlayerName: "Aiza Bekova", TeamID: 100},
		{Type: models.EventGoal, PlayerName: "Aiza Bekova", TeamID: 100},
		{Type: models.EventCard, PlayerName: "Dana Serik", TeamID: 101, CardType: &yellow},
	}))
	require.NoError(t, fixtureRepo.Create(context.Background(), nil, fixture))

	report, err := svc.GetPlayerStats(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, report.Lines, 2)

	assert.Equal(t, "Aiza Bekova", report.Lines[0].PlayerName)
	assert.Equal(t, 2, report.Lines[0].Goals)
	assert.Equal(t, 1, report.Lines[1].YellowCards)

	require.NotEmpty(t, report.TopScorers)
	assert.Equal(t, "Aiza Bekova", report.TopScorers[0].PlayerName)
}
