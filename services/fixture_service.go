package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Amantay09/league-system/league"
	"github.com/Amantay09/league-system/live"
	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
)

type CreateFixtureInput struct {
	HomeTeamID int        `json:"home_team_id"`
	AwayTeamID int        `json:"away_team_id"`
	Round      int        `json:"round"`
	KickoffAt  *time.Time `json:"kickoff_at,omitempty"`
	Venue      *string    `json:"venue,omitempty"`
}

type UpdateScoreInput struct {
	Status    models.FixtureStatus `json:"status"`
	HomeScore *int                 `json:"home_score,omitempty"`
	AwayScore *int                 `json:"away_score,omitempty"`
	Events    []models.MatchEvent  `json:"events,omitempty"`
}

type UpdateScheduleInput struct {
	KickoffAt *time.Time `json:"kickoff_at,omitempty"`
	Venue     *string    `json:"venue,omitempty"`
}

type FixtureService interface {
	GenerateForTournament(ctx context.Context, tournamentID, currentUserID int) ([]*models.Fixture, error)
	Create(ctx context.Context, tournamentID, currentUserID int, input CreateFixtureInput) (*models.Fixture, error)
	GetByID(ctx context.Context, id int) (*models.Fixture, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int, status *models.FixtureStatus) ([]*models.Fixture, error)
	UpdateScore(ctx context.Context, fixtureID, currentUserID int, input UpdateScoreInput) (*models.Fixture, error)
	UpdateSchedule(ctx context.Context, fixtureID, currentUserID int, input UpdateScheduleInput) (*models.Fixture, error)
}

type fixtureService struct {
	db               *sql.DB
	fixtureRepo      repositories.FixtureRepository
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	teamRepo         repositories.TeamRepository
	userRepo         repositories.UserRepository
	hub              *live.Hub
	mailer           EmailSender
	logger           *slog.Logger
}

func NewFixtureService(
	db *sql.DB,
	fixtureRepo repositories.FixtureRepository,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	hub *live.Hub,
	mailer EmailSender,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		db:               db,
		fixtureRepo:      fixtureRepo,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		userRepo:         userRepo,
		hub:              hub,
		mailer:           mailer,
		logger:           logger,
	}
}

// GenerateForTournament drafts the full schedule from the approved
// registrations and persists it in a single transaction. The count
// pre-check plus the unique pairing constraint make generation
// effectively once-only even under concurrent calls.
func (s *fixtureService) GenerateForTournament(ctx context.Context, tournamentID, currentUserID int) ([]*models.Fixture, error) {
	tournament, err := s.requireOrganizer(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusActive {
		return nil, ErrFixtureGenerationNotOpen
	}

	teamIDs, err := s.approvedTeamIDs(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var drafts []league.FixtureDraft
	stage := models.StageGroup
	switch tournament.Format {
	case models.FormatKnockout:
		stage = models.StageKnockout
		draw, genErr := league.GenerateKnockout(teamIDs)
		if genErr != nil {
			return nil, genErr
		}
		drafts = draw.Fixtures
	default:
		drafts, err = league.GenerateFixtures(teamIDs)
		if err != nil {
			return nil, err
		}
	}

	fixtures := make([]*models.Fixture, 0, len(drafts))
	for _, draft := range drafts {
		fixtures = append(fixtures, &models.Fixture{
			TournamentID: tournamentID,
			HomeTeamID:   draft.HomeTeamID,
			AwayTeamID:   draft.AwayTeamID,
			Round:        draft.Round,
			Stage:        stage,
			Status:       models.FixtureStatusScheduled,
		})
	}

	existing, err := s.fixtureRepo.CountByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count existing fixtures: %w", err)
	}
	if existing > 0 {
		return nil, ErrFixturesAlreadyGenerated
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	if txErr = s.fixtureRepo.CreateBatch(ctx, tx, fixtures); txErr != nil {
		if errors.Is(txErr, repositories.ErrFixtureAlreadyExists) {
			return nil, ErrFixturesAlreadyGenerated
		}
		return nil, fmt.Errorf("failed to persist fixtures: %w", txErr)
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit fixture generation: %w", txErr)
	}

	s.logger.Info("fixtures generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("format", string(tournament.Format)),
		slog.Int("fixtures", len(fixtures)),
		slog.Int("teams", len(teamIDs)))

	s.broadcast(tournamentID, "FIXTURES_GENERATED", fixtures)
	s.notifyFixturesPublished(ctx, tournament, len(fixtures))
	return fixtures, nil
}

// Create adds a single fixture by hand. Only the knockout stage is
// open to manual additions; the group schedule comes from generation
// alone.
func (s *fixtureService) Create(ctx context.Context, tournamentID, currentUserID int, input CreateFixtureInput) (*models.Fixture, error) {
	tournament, err := s.requireOrganizer(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}
	if tournament.Format != models.FormatKnockout {
		return nil, ErrFixtureStageImmutable
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrFixtureSameTeams
	}
	if input.Round < 1 {
		return nil, fmt.Errorf("%w: round must be positive", ErrValidationFailed)
	}

	teamIDs, err := s.approvedTeamIDs(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	approved := make(map[int]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		approved[id] = struct{}{}
	}
	if _, ok := approved[input.HomeTeamID]; !ok {
		return nil, ErrFixtureEventTeamInvalid
	}
	if _, ok := approved[input.AwayTeamID]; !ok {
		return nil, ErrFixtureEventTeamInvalid
	}

	fixture := &models.Fixture{
		TournamentID: tournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		Round:        input.Round,
		Stage:        models.StageKnockout,
		Status:       models.FixtureStatusScheduled,
		KickoffAt:    input.KickoffAt,
		Venue:        input.Venue,
	}
	if err := s.fixtureRepo.Create(ctx, nil, fixture); err != nil {
		switch {
		case errors.Is(err, repositories.ErrFixtureAlreadyExists):
			return nil, ErrFixturesAlreadyGenerated
		case errors.Is(err, repositories.ErrFixtureTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create fixture: %w", err)
	}

	s.broadcast(tournamentID, "FIXTURE_CREATED", fixture)
	return fixture, nil
}

func (s *fixtureService) GetByID(ctx context.Context, id int) (*models.Fixture, error) {
	fixture, err := s.getFixture(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachEvents(fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

func (s *fixtureService) ListByTournament(ctx context.Context, tournamentID int, round *int, status *models.FixtureStatus) ([]*models.Fixture, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID, round, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures for tournament %d: %w", tournamentID, err)
	}
	for _, f := range fixtures {
		if err := s.attachEvents(f); err != nil {
			return nil, err
		}
	}
	return fixtures, nil
}

func (s *fixtureService) UpdateScore(ctx context.Context, fixtureID, currentUserID int, input UpdateScoreInput) (*models.Fixture, error) {
	fixture, err := s.getFixture(ctx, fixtureID)
	if err != nil {
		return nil, err
	}
	tournament, err := s.requireOrganizerOrReferee(ctx, fixture.TournamentID, currentUserID)
	if err != nil {
		return nil, err
	}

	if !isValidFixtureStatusTransition(fixture.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrFixtureInvalidStatusTransition, fixture.Status, input.Status)
	}

	if input.Status == models.FixtureStatusFinished {
		if input.HomeScore == nil || input.AwayScore == nil {
			return nil, ErrFixtureScoreRequired
		}
	}
	if input.HomeScore != nil && *input.HomeScore < 0 {
		return nil, ErrFixtureInvalidScore
	}
	if input.AwayScore != nil && *input.AwayScore < 0 {
		return nil, ErrFixtureInvalidScore
	}
	for _, event := range input.Events {
		if event.TeamID != fixture.HomeTeamID && event.TeamID != fixture.AwayTeamID {
			return nil, fmt.Errorf("%w: team %d is not playing fixture %d",
				ErrFixtureEventTeamInvalid, event.TeamID, fixtureID)
		}
	}

	fixture.Status = input.Status
	if input.HomeScore != nil {
		fixture.HomeScore = input.HomeScore
	}
	if input.AwayScore != nil {
		fixture.AwayScore = input.AwayScore
	}
	if input.Events != nil {
		if err := fixture.SetEvents(input.Events); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
	}

	if err := s.fixtureRepo.UpdateScoreStatusEvents(ctx, fixture); err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return nil, ErrFixtureNotFound
		}
		return nil, fmt.Errorf("failed to update fixture %d: %w", fixtureID, err)
	}

	s.logger.Info("fixture updated",
		slog.Int("fixture_id", fixtureID),
		slog.Int("tournament_id", tournament.ID),
		slog.String("status", string(fixture.Status)))

	s.broadcast(fixture.TournamentID, "FIXTURE_UPDATED", fixture)
	return fixture, nil
}

func (s *fixtureService) UpdateSchedule(ctx context.Context, fixtureID, currentUserID int, input UpdateScheduleInput) (*models.Fixture, error) {
	fixture, err := s.getFixture(ctx, fixtureID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOrganizer(ctx, fixture.TournamentID, currentUserID); err != nil {
		return nil, err
	}
	if fixture.Status == models.FixtureStatusFinished || fixture.Status == models.FixtureStatusCancelled {
		return nil, fmt.Errorf("%w: fixture is %s", ErrFixtureInvalidStatusTransition, fixture.Status)
	}

	if input.KickoffAt != nil {
		fixture.KickoffAt = input.KickoffAt
	}
	if input.Venue != nil {
		fixture.Venue = input.Venue
	}

	if err := s.fixtureRepo.UpdateSchedule(ctx, fixtureID, fixture); err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return nil, ErrFixtureNotFound
		}
		return nil, fmt.Errorf("failed to reschedule fixture %d: %w", fixtureID, err)
	}

	s.broadcast(fixture.TournamentID, "FIXTURE_RESCHEDULED", fixture)
	return fixture, nil
}

func (s *fixtureService) approvedTeamIDs(ctx context.Context, tournamentID int) ([]int, error) {
	approved := models.RegistrationStatusApproved
	registrations, err := s.registrationRepo.ListByTournament(ctx, tournamentID, &approved, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved registrations: %w", err)
	}
	teamIDs := make([]int, 0, len(registrations))
	for _, reg := range registrations {
		teamIDs = append(teamIDs, reg.TeamID)
	}
	return teamIDs, nil
}

func (s *fixtureService) attachEvents(fixture *models.Fixture) error {
	events, err := fixture.ParseEvents()
	if err != nil {
		// Malformed stored payload: log and serve the fixture without
		// events rather than failing the whole read.
		s.logger.Warn("fixture has malformed events payload",
			slog.Int("fixture_id", fixture.ID), slog.Any("error", err))
		return nil
	}
	fixture.Events = events
	return nil
}

func (s *fixtureService) broadcast(tournamentID int, messageType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := "tournament:" + strconv.Itoa(tournamentID)
	s.hub.BroadcastToRoom(room, live.Message{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}

func (s *fixtureService) notifyFixturesPublished(ctx context.Context, tournament *models.Tournament, fixtureCount int) {
	if s.mailer == nil {
		return
	}
	approved := models.RegistrationStatusApproved
	registrations, err := s.registrationRepo.ListByTournament(ctx, tournament.ID, &approved, true)
	if err != nil {
		s.logger.Warn("could not load registrations for schedule email",
			slog.Int("tournament_id", tournament.ID), slog.Any("error", err))
		return
	}
	for _, reg := range registrations {
		if reg.Team == nil {
			continue
		}
		admin, err := s.userRepo.GetByID(ctx, reg.Team.AdminID)
		if err != nil {
			s.logger.Warn("could not load team admin for schedule email",
				slog.Int("user_id", reg.Team.AdminID), slog.Any("error", err))
			continue
		}
		if err := s.mailer.SendFixturesPublished(ctx, admin.Email, tournament.Name, fixtureCount); err != nil {
			s.logger.Warn("failed to send schedule email",
				slog.String("to", admin.Email), slog.Any("error", err))
		}
	}
}

func (s *fixtureService) getFixture(ctx context.Context, id int) (*models.Fixture, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return nil, ErrFixtureNotFound
		}
		return nil, fmt.Errorf("failed to get fixture %d: %w", id, err)
	}
	return fixture, nil
}

func (s *fixtureService) getTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *fixtureService) requireOrganizer(ctx context.Context, tournamentID, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}

// requireOrganizerOrReferee lets referees record results without owning
// the tournament.
func (s *fixtureService) requireOrganizerOrReferee(ctx context.Context, tournamentID, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID == currentUserID {
		return tournament, nil
	}
	user, err := s.userRepo.GetByID(ctx, currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrForbiddenOperation
		}
		return nil, fmt.Errorf("failed to get user %d: %w", currentUserID, err)
	}
	if user.Role != models.RoleReferee {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}
