package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Amantay09/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrFixtureNotFound          = errors.New("fixture not found")
	ErrFixtureAlreadyExists     = errors.New("fixture pairing already exists for this tournament")
	ErrFixtureTeamInvalid       = errors.New("fixture team conflict or invalid")
	ErrFixtureTournamentInvalid = errors.New("fixture tournament conflict or invalid")
)

type FixtureRepository interface {
	Create(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error
	CreateBatch(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error
	GetByID(ctx context.Context, id int) (*models.Fixture, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int, status *models.FixtureStatus) ([]*models.Fixture, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	UpdateScoreStatusEvents(ctx context.Context, fixture *models.Fixture) error
	UpdateSchedule(ctx context.Context, id int, fixture *models.Fixture) error
	DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
	Count(ctx context.Context, status *models.FixtureStatus) (int, error)
}

type postgresFixtureRepository struct {
	db *sql.DB
}

func NewPostgresFixtureRepository(db *sql.DB) FixtureRepository {
	return &postgresFixtureRepository{db: db}
}

func (r *postgresFixtureRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const fixtureColumns = `id, tournament_id, home_team_id, away_team_id, round, stage, status, home_score, away_score, kickoff_at, venue, events, created_at`

func (r *postgresFixtureRepository) scanFixture(rowScanner interface{ Scan(...interface{}) error }) (*models.Fixture, error) {
	f := &models.Fixture{}
	err := rowScanner.Scan(
		&f.ID,
		&f.TournamentID,
		&f.HomeTeamID,
		&f.AwayTeamID,
		&f.Round,
		&f.Stage,
		&f.Status,
		&f.HomeScore,
		&f.AwayScore,
		&f.KickoffAt,
		&f.Venue,
		&f.EventsJSON,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *postgresFixtureRepository) Create(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO fixtures
			(tournament_id, home_team_id, away_team_id, round, stage, status, home_score, away_score, kickoff_at, venue, events)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		fixture.TournamentID,
		fixture.HomeTeamID,
		fixture.AwayTeamID,
		fixture.Round,
		fixture.Stage,
		fixture.Status,
		fixture.HomeScore,
		fixture.AwayScore,
		fixture.KickoffAt,
		fixture.Venue,
		fixture.EventsJSON,
	).Scan(&fixture.ID, &fixture.CreatedAt)

	return r.handleFixtureError(err)
}

// CreateBatch inserts generated fixtures one by one on the given
// executor; callers wrap it in a transaction so a partial schedule is
// never left behind.
func (r *postgresFixtureRepository) CreateBatch(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error {
	for _, fixture := range fixtures {
		if err := r.Create(ctx, exec, fixture); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresFixtureRepository) GetByID(ctx context.Context, id int) (*models.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = $1`
	return r.scanFixture(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresFixtureRepository) ListByTournament(ctx context.Context, tournamentID int, roundFilter *int, statusFilter *models.FixtureStatus) ([]*models.Fixture, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + fixtureColumns + ` FROM fixtures WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if roundFilter != nil {
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(placeholderIndex))
		args = append(args, *roundFilter)
		placeholderIndex++
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(placeholderIndex))
		args = append(args, *statusFilter)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY stage ASC, round ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]*models.Fixture, 0)
	for rows.Next() {
		f, scanErr := r.scanFixture(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		fixtures = append(fixtures, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (r *postgresFixtureRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fixtures WHERE tournament_id = $1`, tournamentID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresFixtureRepository) UpdateScoreStatusEvents(ctx context.Context, fixture *models.Fixture) error {
	query := `
		UPDATE fixtures
		SET status = $1, home_score = $2, away_score = $3, events = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		fixture.Status,
		fixture.HomeScore,
		fixture.AwayScore,
		fixture.EventsJSON,
		fixture.ID,
	)
	if err != nil {
		return r.handleFixtureError(err)
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) UpdateSchedule(ctx context.Context, id int, fixture *models.Fixture) error {
	query := `UPDATE fixtures SET kickoff_at = $1, venue = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, fixture.KickoffAt, fixture.Venue, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`DELETE FROM fixtures WHERE tournament_id = $1`, tournamentID)
	return err
}

func (r *postgresFixtureRepository) Count(ctx context.Context, status *models.FixtureStatus) (int, error) {
	query := `SELECT COUNT(*) FROM fixtures`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresFixtureRepository) handleFixtureError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "fixtures_tournament_stage_pairing_key" {
				return ErrFixtureAlreadyExists
			}
		case "23503":
			switch pqErr.Constraint {
			case "fixtures_home_team_id_fkey", "fixtures_away_team_id_fkey":
				return ErrFixtureTeamInvalid
			case "fixtures_tournament_id_fkey":
				return ErrFixtureTournamentInvalid
			}
		}
	}
	return err
}
