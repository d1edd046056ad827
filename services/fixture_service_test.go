package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amantay09/league-system/league"
	"github.com/Amantay09/league-system/models"
)

type fixtureServiceEnv struct {
	svc         FixtureService
	fixtureRepo *stubFixtureRepo
	regRepo     *stubRegistrationRepo
	mailer      *recordingMailer
}

func newFixtureServiceEnv(t *testing.T, format models.TournamentFormat, status models.TournamentStatus) *fixtureServiceEnv {
	t.Helper()

	tournamentRepo := &stubTournamentRepo{tournaments: map[int]*models.Tournament{
		1: testTournament(1, 10, status, format, 8),
	}}
	teamRepo := &stubTeamRepo{teams: map[int]*models.Team{
		100: {ID: 100, Name: "Falcons", AdminID: 20},
		101: {ID: 101, Name: "Harriers", AdminID: 21},
		102: {ID: 102, Name: "Rovers", AdminID: 22},
		103: {ID: 103, Name: "Wanderers", AdminID: 23},
	}}
	userRepo := &stubUserRepo{users: map[int]*models.User{
		10: {ID: 10, Email: "org@example.com", Role: models.RoleOrganizer},
		20: {ID: 20, Email: "falcons@example.com", Role: models.RoleTeamAdmin},
		30: {ID: 30, Email: "ref@example.com", Role: models.RoleReferee},
	}}
	fixtureRepo := &stubFixtureRepo{}
	regRepo := &stubRegistrationRepo{}
	mailer := &recordingMailer{}

	svc := NewFixtureService(nil, fixtureRepo, tournamentRepo, regRepo, teamRepo, userRepo, nil, mailer, discardLogger())
	return &fixtureServiceEnv{svc: svc, fixtureRepo: fixtureRepo, regRepo: regRepo, mailer: mailer}
}

func (e *fixtureServiceEnv) approveTeams(t *testing.T, teamIDs ...int) {
	t.Helper()
	for _, teamID := range teamIDs {
		reg := &models.Registration{
			TournamentID: 1,
			TeamID:       teamID,
			Status:       models.RegistrationStatusApproved,
		}
		require.NoError(t, e.regRepo.Create(context.Background(), reg))
	}
}

func TestGenerateRequiresActiveTournament(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusRegistration)
	env.approveTeams(t, 100, 101)

	_, err := env.svc.GenerateForTournament(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrFixtureGenerationNotOpen)
}

func TestGenerateRequiresOrganizer(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	env.approveTeams(t, 100, 101)

	_, err := env.svc.GenerateForTournament(context.Background(), 1, 20)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestGenerateRequiresTwoApprovedTeams(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	env.approveTeams(t, 100)

	_, err := env.svc.GenerateForTournament(context.Background(), 1, 10)
	assert.ErrorIs(t, err, league.ErrInsufficientTeams)
}

func TestGenerateRefusesSecondRun(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	env.approveTeams(t, 100, 101)

	seeded := &models.Fixture{
		TournamentID: 1,
		HomeTeamID:   100,
		AwayTeamID:   101,
		Round:        1,
		Stage:        models.StageGroup,
		Status:       models.FixtureStatusScheduled,
	}
	require.NoError(t, env.fixtureRepo.Create(context.Background(), nil, seeded))

	_, err := env.svc.GenerateForTournament(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrFixturesAlreadyGenerated)

	fixtures, err := env.fixtureRepo.ListByTournament(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	assert.Len(t, fixtures, 1)
}

func TestManualFixtureOnlyInKnockoutFormat(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	env.approveTeams(t, 100, 101)

	_, err := env.svc.Create(context.Background(), 1, 10, CreateFixtureInput{
		HomeTeamID: 100, AwayTeamID: 101, Round: 2,
	})
	assert.ErrorIs(t, err, ErrFixtureStageImmutable)
}

func TestManualFixtureCreatesKnockoutStage(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatKnockout, models.TournamentStatusActive)
	env.approveTeams(t, 100, 101, 102, 103)

	fixture, err := env.svc.Create(context.Background(), 1, 10, CreateFixtureInput{
		HomeTeamID: 100, AwayTeamID: 101, Round: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StageKnockout, fixture.Stage)
	assert.Equal(t, models.FixtureStatusScheduled, fixture.Status)
	assert.Equal(t, 2, fixture.Round)
}

func TestManualFixtureRejectsSameTeams(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatKnockout, models.TournamentStatusActive)
	env.approveTeams(t, 100, 101)

	_, err := env.svc.Create(context.Background(), 1, 10, CreateFixtureInput{
		HomeTeamID: 100, AwayTeamID: 100, Round: 2,
	})
	assert.ErrorIs(t, err, ErrFixtureSameTeams)
}

func TestManualFixtureRequiresApprovedTeams(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatKnockout, models.TournamentStatusActive)
	env.approveTeams(t, 100, 101)

	_, err := env.svc.Create(context.Background(), 1, 10, CreateFixtureInput{
		HomeTeamID: 100, AwayTeamID: 102, Round: 2,
	})
	assert.ErrorIs(t, err, ErrFixtureEventTeamInvalid)
}

func seedScheduledFixture(t *testing.T, env *fixtureServiceEnv) *models.Fixture {
	t.Helper()
	fixture := &models.Fixture{
		TournamentID: 1,
		HomeTeamID:   100,
		AwayTeamID:   101,
		Round:        1,
		Stage:        models.StageGroup,
		Status:       models.FixtureStatusScheduled,
	}
	require.NoError(t, env.fixtureRepo.Create(context.Background(), nil, fixture))
	return fixture
}

func TestUpdateScoreFinishesFixture(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status: models.FixtureStatusLive,
	})
	require.NoError(t, err)

	updated, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status:    models.FixtureStatusFinished,
		HomeScore: intPtr(2),
		AwayScore: intPtr(1),
		Events: []models.MatchEvent{
			{Type: models.EventGoal, PlayerName: "Aiza Bekova", TeamID: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.FixtureStatusFinished, updated.Status)
	assert.Equal(t, 2, *updated.HomeScore)
	assert.Len(t, updated.Events, 1)
}

func TestUpdateScoreRejectsInvalidTransition(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status:    models.FixtureStatusFinished,
		HomeScore: intPtr(1),
		AwayScore: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrFixtureInvalidStatusTransition)
}

func TestUpdateScoreFinishRequiresBothScores(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status: models.FixtureStatusLive,
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status:    models.FixtureStatusFinished,
		HomeScore: intPtr(3),
	})
	assert.ErrorIs(t, err, ErrFixtureScoreRequired)
}

func TestUpdateScoreRejectsNegativeScore(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status:    models.FixtureStatusLive,
		HomeScore: intPtr(-1),
		AwayScore: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrFixtureInvalidScore)
}

func TestUpdateScoreRejectsForeignEventTeam(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status: models.FixtureStatusLive,
		Events: []models.MatchEvent{
			{Type: models.EventGoal, PlayerName: "Nobody", TeamID: 999},
		},
	})
	assert.ErrorIs(t, err, ErrFixtureEventTeamInvalid)
}

func TestRefereeMayRecordResults(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 30, UpdateScoreInput{
		Status: models.FixtureStatusLive,
	})
	assert.NoError(t, err)
}

func TestTeamAdminMayNotRecordResults(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 20, UpdateScoreInput{
		Status: models.FixtureStatusLive,
	})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestUpdateScheduleRejectsTerminalFixture(t *testing.T) {
	t.Parallel()
	env := newFixtureServiceEnv(t, models.FormatRoundRobin, models.TournamentStatusActive)
	fixture := seedScheduledFixture(t, env)

	_, err := env.svc.UpdateScore(context.Background(), fixture.ID, 10, UpdateScoreInput{
		Status: models.FixtureStatusCancelled,
	})
	require.NoError(t, err)

	venue := "Main Stadium"
	_, err = env.svc.UpdateSchedule(context.Background(), fixture.ID, 10, UpdateScheduleInput{Venue: &venue})
	assert.ErrorIs(t, err, ErrFixtureInvalidStatusTransition)
}
