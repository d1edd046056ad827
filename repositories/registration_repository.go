package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amantay09/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrRegistrationNotFound       = errors.New("registration not found")
	ErrRegistrationConflict       = errors.New("team is already registered for this tournament")
	ErrRegistrationTeamInvalid    = errors.New("registration team conflict or invalid")
	ErrRegistrationTournamentGone = errors.New("registration tournament conflict or invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id int) (*models.Registration, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	ListByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus, withTeams bool) ([]*models.Registration, error)
	CountByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus) (int, error)
	DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	query := `
		INSERT INTO registrations (tournament_id, team_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		registration.TournamentID,
		registration.TeamID,
		registration.Status,
	).Scan(&registration.ID, &registration.CreatedAt)

	return r.handleRegistrationError(err)
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	query := `
		SELECT id, tournament_id, team_id, status, created_at
		FROM registrations
		WHERE id = $1`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID,
		&reg.TournamentID,
		&reg.TeamID,
		&reg.Status,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int, statusFilter *models.RegistrationStatus, withTeams bool) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.tournament_id, r.team_id, r.status, r.created_at,
		       t.id, t.name, t.admin_id, t.logo_key, t.created_at
		FROM registrations r
		JOIN teams t ON t.id = r.team_id
		WHERE r.tournament_id = $1`
	args := []interface{}{tournamentID}

	if statusFilter != nil {
		query += ` AND r.status = $2`
		args = append(args, *statusFilter)
	}
	query += ` ORDER BY r.created_at ASC, r.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		var team models.Team
		if scanErr := rows.Scan(
			&reg.ID,
			&reg.TournamentID,
			&reg.TeamID,
			&reg.Status,
			&reg.CreatedAt,
			&team.ID,
			&team.Name,
			&team.AdminID,
			&team.LogoKey,
			&team.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		if withTeams {
			reg.Team = &team
		}
		registrations = append(registrations, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) CountByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1`
	args := []interface{}{tournamentID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRegistrationRepository) DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	_, err := executor.ExecContext(ctx,
		`DELETE FROM registrations WHERE tournament_id = $1`, tournamentID)
	return err
}

func (r *postgresRegistrationRepository) handleRegistrationError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "registrations_tournament_id_team_id_key" {
				return ErrRegistrationConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "registrations_team_id_fkey":
				return ErrRegistrationTeamInvalid
			case "registrations_tournament_id_fkey":
				return ErrRegistrationTournamentGone
			}
		}
	}
	return err
}
