package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
	"github.com/Amantay09/league-system/storage"
)

type CreateTournamentInput struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	Format      models.TournamentFormat `json:"format"`
	RegDate     time.Time               `json:"reg_date"`
	StartDate   time.Time               `json:"start_date"`
	EndDate     time.Time               `json:"end_date"`
	Location    *string                 `json:"location,omitempty"`
	MaxTeams    int                     `json:"max_teams"`
}

type UpdateTournamentInput struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	RegDate     *time.Time `json:"reg_date,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	MaxTeams    *int       `json:"max_teams,omitempty"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus, limit, offset int) ([]*models.Tournament, error)
	Update(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error)
	Delete(ctx context.Context, id, currentUserID int) error
	UploadLogo(ctx context.Context, id, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error)
	AutoUpdateStatusesByDates(ctx context.Context) error
}

type tournamentService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	fixtureRepo      repositories.FixtureRepository
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	fixtureRepo repositories.FixtureRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		fixtureRepo:      fixtureRepo,
		uploader:         uploader,
		logger:           logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.Format != models.FormatRoundRobin && input.Format != models.FormatKnockout {
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidFormat, input.Format)
	}
	if input.MaxTeams < 2 {
		return nil, ErrTournamentInvalidCapacity
	}
	if err := validateTournamentDates(input.RegDate, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        name,
		Description: input.Description,
		OrganizerID: organizerID,
		Format:      input.Format,
		Status:      models.TournamentStatusSoon,
		RegDate:     input.RegDate,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Location:    input.Location,
		MaxTeams:    input.MaxTeams,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus, limit, offset int) ([]*models.Tournament, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	tournaments, err := s.tournamentRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for _, t := range tournaments {
		populateTournamentLogoURL(t, s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.requireOrganizer(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.RegDate != nil {
		tournament.RegDate = *input.RegDate
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if input.Location != nil {
		tournament.Location = input.Location
	}
	if input.MaxTeams != nil {
		if *input.MaxTeams < 2 {
			return nil, ErrTournamentInvalidCapacity
		}
		tournament.MaxTeams = *input.MaxTeams
	}
	if err := validateTournamentDates(tournament.RegDate, tournament.StartDate, tournament.EndDate); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error) {
	tournament, err := s.requireOrganizer(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !isValidTournamentStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update tournament %d status: %w", id, err)
	}
	tournament.Status = status
	return tournament, nil
}

// Delete removes the tournament together with its fixtures and
// registrations in one transaction.
func (s *tournamentService) Delete(ctx context.Context, id, currentUserID int) error {
	if _, err := s.requireOrganizer(ctx, id, currentUserID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	if txErr = s.fixtureRepo.DeleteByTournamentID(ctx, tx, id); txErr != nil {
		return fmt.Errorf("failed to delete fixtures for tournament %d: %w", id, txErr)
	}
	if txErr = s.registrationRepo.DeleteByTournamentID(ctx, tx, id); txErr != nil {
		return fmt.Errorf("failed to delete registrations for tournament %d: %w", id, txErr)
	}
	if txErr = s.tournamentRepo.Delete(ctx, tx, id); txErr != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, txErr)
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit tournament delete: %w", txErr)
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.requireOrganizer(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("tournaments/%d/logo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to store tournament logo key: %w", err)
	}
	tournament.LogoKey = &key
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

// AutoUpdateStatusesByDates advances tournaments past their date
// boundaries: soon -> registration, registration -> active,
// active -> completed. Called by the scheduler.
func (s *tournamentService) AutoUpdateStatusesByDates(ctx context.Context) error {
	due, err := s.tournamentRepo.ListDueForStatusChange(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list tournaments due for status change: %w", err)
	}

	for _, tournament := range due {
		var next models.TournamentStatus
		switch tournament.Status {
		case models.TournamentStatusSoon:
			next = models.TournamentStatusRegistration
		case models.TournamentStatusRegistration:
			next = models.TournamentStatusActive
		case models.TournamentStatusActive:
			next = models.TournamentStatusCompleted
		default:
			continue
		}

		if err := s.tournamentRepo.UpdateStatus(ctx, tournament.ID, next); err != nil {
			s.logger.Error("failed to auto-advance tournament status",
				slog.Int("tournament_id", tournament.ID),
				slog.String("from", string(tournament.Status)),
				slog.String("to", string(next)),
				slog.Any("error", err))
			continue
		}
		s.logger.Info("tournament status advanced",
			slog.Int("tournament_id", tournament.ID),
			slog.String("from", string(tournament.Status)),
			slog.String("to", string(next)))
	}
	return nil
}

func (s *tournamentService) getTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) requireOrganizer(ctx context.Context, id, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}
