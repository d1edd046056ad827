package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Amantay09/league-system/league"
	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
)

// StandingsTable is the computed league table plus the fixtures that
// had to be excluded from it.
type StandingsTable struct {
	TournamentID int                     `json:"tournament_id"`
	Rows         []models.StandingsRow   `json:"rows"`
	Skipped      []league.SkippedFixture `json:"skipped,omitempty"`
}

// PlayerStatsReport aggregates goal and card totals across a
// tournament's counted fixtures.
type PlayerStatsReport struct {
	TournamentID int                     `json:"tournament_id"`
	Lines        []models.PlayerStatLine `json:"lines"`
	TopScorers   []models.PlayerStatLine `json:"top_scorers"`
	MostCarded   []models.PlayerStatLine `json:"most_carded"`
	Skipped      []league.SkippedFixture `json:"skipped,omitempty"`
}

const statsLeaderboardSize = 10

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID int) (*StandingsTable, error)
	GetPlayerStats(ctx context.Context, tournamentID int) (*PlayerStatsReport, error)
}

type standingsService struct {
	tournamentRepo   repositories.TournamentRepository
	fixtureRepo      repositories.FixtureRepository
	registrationRepo repositories.RegistrationRepository
}

// NewStandingsService wires the derived-view computations. Team rows
// come through the registration join, so no team repository is needed.
func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	fixtureRepo repositories.FixtureRepository,
	registrationRepo repositories.RegistrationRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo:   tournamentRepo,
		fixtureRepo:      fixtureRepo,
		registrationRepo: registrationRepo,
	}
}

// GetStandings recomputes the table from stored fixtures on every call.
// Fixtures and approved registrations load concurrently.
func (s *standingsService) GetStandings(ctx context.Context, tournamentID int) (*StandingsTable, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	var (
		fixtures      []*models.Fixture
		registrations []*models.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fixtures, err = s.fixtureRepo.ListByTournament(gctx, tournamentID, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list fixtures: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		approved := models.RegistrationStatusApproved
		var err error
		registrations, err = s.registrationRepo.ListByTournament(gctx, tournamentID, &approved, true)
		if err != nil {
			return fmt.Errorf("failed to list registrations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allTeams := make([]int, 0, len(registrations))
	teamsByID := make(map[int]*models.Team, len(registrations))
	for _, reg := range registrations {
		allTeams = append(allTeams, reg.TeamID)
		if reg.Team != nil {
			teamsByID[reg.TeamID] = reg.Team
		}
	}

	rows, skipped := league.ComputeStandings(derefFixtures(fixtures), league.StandingsOptions{
		AllTeams: allTeams,
	})
	for i := range rows {
		rows[i].Team = teamsByID[rows[i].TeamID]
	}

	return &StandingsTable{
		TournamentID: tournamentID,
		Rows:         rows,
		Skipped:      skipped,
	}, nil
}

func (s *standingsService) GetPlayerStats(ctx context.Context, tournamentID int) (*PlayerStatsReport, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	lines, skipped := league.ComputePlayerStats(derefFixtures(fixtures), league.StandingsOptions{})
	return &PlayerStatsReport{
		TournamentID: tournamentID,
		Lines:        lines,
		TopScorers:   league.TopScorers(lines, statsLeaderboardSize),
		MostCarded:   league.MostCarded(lines, statsLeaderboardSize),
		Skipped:      skipped,
	}, nil
}

func derefFixtures(fixtures []*models.Fixture) []models.Fixture {
	out := make([]models.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, *f)
	}
	return out
}

func (s *standingsService) getTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}
