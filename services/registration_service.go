package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
)

type RegistrationService interface {
	Register(ctx context.Context, tournamentID, teamID, currentUserID int) (*models.Registration, error)
	Approve(ctx context.Context, registrationID, currentUserID int) (*models.Registration, error)
	Reject(ctx context.Context, registrationID, currentUserID int) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus) ([]*models.Registration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	userRepo         repositories.UserRepository
	mailer           EmailSender
	logger           *slog.Logger
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	mailer EmailSender,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		logger:           logger,
	}
}

func (s *registrationService) Register(ctx context.Context, tournamentID, teamID, currentUserID int) (*models.Registration, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	if team.AdminID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	approved := models.RegistrationStatusApproved
	approvedCount, err := s.registrationRepo.CountByTournament(ctx, tournamentID, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved registrations: %w", err)
	}
	if approvedCount >= tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	registration := &models.Registration{
		TournamentID: tournamentID,
		TeamID:       teamID,
		Status:       models.RegistrationStatusPending,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrRegistrationTournamentGone):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	registration.Team = team
	return registration, nil
}

func (s *registrationService) Approve(ctx context.Context, registrationID, currentUserID int) (*models.Registration, error) {
	return s.decide(ctx, registrationID, currentUserID, models.RegistrationStatusApproved)
}

func (s *registrationService) Reject(ctx context.Context, registrationID, currentUserID int) (*models.Registration, error) {
	return s.decide(ctx, registrationID, currentUserID, models.RegistrationStatusRejected)
}

func (s *registrationService) decide(ctx context.Context, registrationID, currentUserID int, decision models.RegistrationStatus) (*models.Registration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration %d: %w", registrationID, err)
	}
	if registration.Status != models.RegistrationStatusPending {
		return nil, ErrRegistrationAlreadyClosed
	}

	tournament, err := s.getTournament(ctx, registration.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	if decision == models.RegistrationStatusApproved {
		approved := models.RegistrationStatusApproved
		approvedCount, err := s.registrationRepo.CountByTournament(ctx, tournament.ID, &approved)
		if err != nil {
			return nil, fmt.Errorf("failed to count approved registrations: %w", err)
		}
		if approvedCount >= tournament.MaxTeams {
			return nil, ErrTournamentFull
		}
	}

	if err := s.registrationRepo.UpdateStatus(ctx, registrationID, decision); err != nil {
		return nil, fmt.Errorf("failed to update registration %d: %w", registrationID, err)
	}
	registration.Status = decision

	s.notifyDecision(ctx, registration, tournament)
	return registration, nil
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus) ([]*models.Registration, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepo.ListByTournament(ctx, tournamentID, status, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %d: %w", tournamentID, err)
	}
	return registrations, nil
}

// notifyDecision emails the team admin about the outcome. Delivery
// failures are logged, never surfaced to the caller.
func (s *registrationService) notifyDecision(ctx context.Context, registration *models.Registration, tournament *models.Tournament) {
	if s.mailer == nil {
		return
	}

	team, err := s.teamRepo.GetByID(ctx, registration.TeamID)
	if err != nil {
		s.logger.Warn("could not load team for registration email",
			slog.Int("team_id", registration.TeamID), slog.Any("error", err))
		return
	}
	admin, err := s.userRepo.GetByID(ctx, team.AdminID)
	if err != nil {
		s.logger.Warn("could not load team admin for registration email",
			slog.Int("user_id", team.AdminID), slog.Any("error", err))
		return
	}

	if err := s.mailer.SendRegistrationDecision(ctx, admin.Email, team.Name, tournament.Name, registration.Status); err != nil {
		s.logger.Warn("failed to send registration decision email",
			slog.String("to", admin.Email),
			slog.Int("registration_id", registration.ID),
			slog.Any("error", err))
	}
}

func (s *registrationService) getTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}
