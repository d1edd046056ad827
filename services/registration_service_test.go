package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRegistrationFixture(t *testing.T, tournamentStatus models.TournamentStatus, maxTeams int) (RegistrationService, *stubRegistrationRepo, *recordingMailer) {
	t.Helper()

	tournamentRepo := &stubTournamentRepo{tournaments: map[int]*models.Tournament{
		1: testTournament(1, 10, tournamentStatus, models.FormatRoundRobin, maxTeams),
	}}
	teamRepo := &stubTeamRepo{teams: map[int]*models.Team{
		100: {ID: 100, Name: "Falcons", AdminID: 20},
		101: {ID: 101, Name: "Harriers", AdminID: 21},
	}}
	userRepo := &stubUserRepo{users: map[int]*models.User{
		20: {ID: 20, Email: "falcons@example.com", Role: models.RoleTeamAdmin},
		21: {ID: 21, Email: "harriers@example.com", Role: models.RoleTeamAdmin},
	}}
	registrationRepo := &stubRegistrationRepo{}
	mailer := &recordingMailer{}

	svc := NewRegistrationService(registrationRepo, tournamentRepo, teamRepo, userRepo, mailer, discardLogger())
	return svc, registrationRepo, mailer
}

func TestRegisterCreatesPendingRegistration(t *testing.T) {
	t.Parallel()
	svc, _, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 8)

	reg, err := svc.Register(context.Background(), 1, 100, 20)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusPending, reg.Status)
	assert.Equal(t, 100, reg.TeamID)
	assert.Equal(t, 1, reg.TournamentID)
}

func TestRegisterRequiresOpenRegistration(t *testing.T) {
	t.Parallel()
	svc, _, _ := newRegistrationFixture(t, models.TournamentStatusActive, 8)

	_, err := svc.Register(context.Background(), 1, 100, 20)
	assert.ErrorIs(t, err, ErrRegistrationNotOpen)
}

func TestRegisterRequiresTeamAdmin(t *testing.T) {
	t.Parallel()
	svc, _, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 8)

	_, err := svc.Register(context.Background(), 1, 100, 21)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 8)

	_, err := svc.Register(context.Background(), 1, 100, 20)
	require.NoError(t, err)

	repo.createErr = repositories.ErrRegistrationConflict
	_, err = svc.Register(context.Background(), 1, 100, 20)
	assert.ErrorIs(t, err, ErrRegistrationConflict)
}

func TestRegisterRejectsFullTournament(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 1)

	reg, err := svc.Register(context.Background(), 1, 101, 21)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), reg.ID, models.RegistrationStatusApproved))

	_, err = svc.Register(context.Background(), 1, 100, 20)
	assert.ErrorIs(t, err, ErrTournamentFull)
}

func TestApproveSendsDecisionEmail(t *testing.T) {
	t.Parallel()
	svc, _, mailer := newRegistrationFixture(t, models.TournamentStatusRegistration, 8)

	reg, err := svc.Register(context.Background(), 1, 100, 20)
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), reg.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusApproved, approved.Status)
	assert.Equal(t, []string{"falcons@example.com:approved"}, mailer.decisions)
}

func TestApproveOnlyByOrganizer(t *testing.T) {
	t.Parallel()
	svc, _, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 8)

	reg, err := svc.Register(context.Background(), 1, 100, 20)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), reg.ID, 20)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestDecisionIsFinal(t *testing.T) {
	t.Parallel()
	svc, _, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 8)

	reg, err := svc.Register(context.Background(), 1, 100, 20)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), reg.ID, 10)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), reg.ID, 10)
	assert.ErrorIs(t, err, ErrRegistrationAlreadyClosed)
}

func TestApproveRespectsCapacity(t *testing.T) {
	t.Parallel()
	svc, _, _ := newRegistrationFixture(t, models.TournamentStatusRegistration, 1)

	first, err := svc.Register(context.Background(), 1, 100, 20)
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), 1, 101, 21)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), first.ID, 10)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), second.ID, 10)
	assert.ErrorIs(t, err, ErrTournamentFull)
}
