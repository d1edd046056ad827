package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	userRepo       repositories.UserRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	fixtureRepo    repositories.FixtureRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	fixtureRepo repositories.FixtureRepository,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		fixtureRepo:    fixtureRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.userRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		stats.UsersTotal = count
		return nil
	})
	g.Go(func() error {
		count, err := s.teamRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count teams: %w", err)
		}
		stats.TeamsTotal = count
		return nil
	})
	g.Go(func() error {
		count, err := s.tournamentRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to count tournaments: %w", err)
		}
		stats.TournamentsTotal = count
		return nil
	})
	g.Go(func() error {
		active := models.TournamentStatusActive
		count, err := s.tournamentRepo.Count(gctx, &active)
		if err != nil {
			return fmt.Errorf("failed to count active tournaments: %w", err)
		}
		stats.ActiveTournaments = count
		return nil
	})
	g.Go(func() error {
		count, err := s.fixtureRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to count fixtures: %w", err)
		}
		stats.FixturesTotal = count
		return nil
	})
	g.Go(func() error {
		finished := models.FixtureStatusFinished
		count, err := s.fixtureRepo.Count(gctx, &finished)
		if err != nil {
			return fmt.Errorf("failed to count finished fixtures: %w", err)
		}
		stats.FixturesFinished = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
