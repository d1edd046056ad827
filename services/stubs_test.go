package services

import (
	"context"
	"time"

	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/repositories"
)

// In-memory repository stubs. Each embeds the interface so tests only
// fill in the methods a scenario touches; calling anything else panics,
// which is exactly what we want.

type stubTournamentRepo struct {
	repositories.TournamentRepository
	tournaments map[int]*models.Tournament
	updatedIDs  []int
}

func (s *stubTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *stubTournamentRepo) UpdateStatus(_ context.Context, id int, status models.TournamentStatus) error {
	t, ok := s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	s.updatedIDs = append(s.updatedIDs, id)
	return nil
}

type stubTeamRepo struct {
	repositories.TeamRepository
	teams map[int]*models.Team
}

func (s *stubTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

type stubUserRepo struct {
	repositories.UserRepository
	users map[int]*models.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

type stubRegistrationRepo struct {
	repositories.RegistrationRepository
	registrations map[int]*models.Registration
	nextID        int
	createErr     error
}

func (s *stubRegistrationRepo) Create(_ context.Context, registration *models.Registration) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.registrations == nil {
		s.registrations = make(map[int]*models.Registration)
	}
	s.nextID++
	registration.ID = s.nextID
	registration.CreatedAt = time.Now()
	copied := *registration
	s.registrations[registration.ID] = &copied
	return nil
}

func (s *stubRegistrationRepo) GetByID(_ context.Context, id int) (*models.Registration, error) {
	r, ok := s.registrations[id]
	if !ok {
		return nil, repositories.ErrRegistrationNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *stubRegistrationRepo) UpdateStatus(_ context.Context, id int, status models.RegistrationStatus) error {
	r, ok := s.registrations[id]
	if !ok {
		return repositories.ErrRegistrationNotFound
	}
	r.Status = status
	return nil
}

func (s *stubRegistrationRepo) ListByTournament(_ context.Context, tournamentID int, status *models.RegistrationStatus, withTeams bool) ([]*models.Registration, error) {
	out := make([]*models.Registration, 0)
	for id := 1; id <= s.nextID; id++ {
		r, ok := s.registrations[id]
		if !ok || r.TournamentID != tournamentID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		copied := *r
		if !withTeams {
			copied.Team = nil
		}
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubRegistrationRepo) CountByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus) (int, error) {
	regs, err := s.ListByTournament(ctx, tournamentID, status, false)
	if err != nil {
		return 0, err
	}
	return len(regs), nil
}

type stubFixtureRepo struct {
	repositories.FixtureRepository
	fixtures map[int]*models.Fixture
	nextID   int
}

func (s *stubFixtureRepo) Create(_ context.Context, _ repositories.SQLExecutor, fixture *models.Fixture) error {
	if s.fixtures == nil {
		s.fixtures = make(map[int]*models.Fixture)
	}
	s.nextID++
	fixture.ID = s.nextID
	fixture.CreatedAt = time.Now()
	copied := *fixture
	s.fixtures[fixture.ID] = &copied
	return nil
}

func (s *stubFixtureRepo) GetByID(_ context.Context, id int) (*models.Fixture, error) {
	f, ok := s.fixtures[id]
	if !ok {
		return nil, repositories.ErrFixtureNotFound
	}
	copied := *f
	return &copied, nil
}

func (s *stubFixtureRepo) ListByTournament(_ context.Context, tournamentID int, round *int, status *models.FixtureStatus) ([]*models.Fixture, error) {
	out := make([]*models.Fixture, 0)
	for id := 1; id <= s.nextID; id++ {
		f, ok := s.fixtures[id]
		if !ok || f.TournamentID != tournamentID {
			continue
		}
		if round != nil && f.Round != *round {
			continue
		}
		if status != nil && f.Status != *status {
			continue
		}
		copied := *f
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubFixtureRepo) CountByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) (int, error) {
	count := 0
	for _, f := range s.fixtures {
		if f.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (s *stubFixtureRepo) UpdateScoreStatusEvents(_ context.Context, fixture *models.Fixture) error {
	stored, ok := s.fixtures[fixture.ID]
	if !ok {
		return repositories.ErrFixtureNotFound
	}
	stored.Status = fixture.Status
	stored.HomeScore = fixture.HomeScore
	stored.AwayScore = fixture.AwayScore
	stored.EventsJSON = fixture.EventsJSON
	return nil
}

func (s *stubFixtureRepo) UpdateSchedule(_ context.Context, id int, fixture *models.Fixture) error {
	stored, ok := s.fixtures[id]
	if !ok {
		return repositories.ErrFixtureNotFound
	}
	stored.KickoffAt = fixture.KickoffAt
	stored.Venue = fixture.Venue
	return nil
}

// recordingMailer captures notifications instead of talking SMTP.
type recordingMailer struct {
	decisions []string
	schedules []string
}

func (m *recordingMailer) SendRegistrationDecision(_ context.Context, to, _, _ string, decision models.RegistrationStatus) error {
	m.decisions = append(m.decisions, to+":"+string(decision))
	return nil
}

func (m *recordingMailer) SendFixturesPublished(_ context.Context, to, _ string, _ int) error {
	m.schedules = append(m.schedules, to)
	return nil
}

func intPtr(v int) *int { return &v }

func testTournament(id, organizerID int, status models.TournamentStatus, format models.TournamentFormat, maxTeams int) *models.Tournament {
	return &models.Tournament{
		ID:          id,
		Name:        "Test Cup",
		OrganizerID: organizerID,
		Format:      format,
		Status:      status,
		RegDate:     time.Now().Add(-48 * time.Hour),
		StartDate:   time.Now().Add(-24 * time.Hour),
		EndDate:     time.Now().Add(24 * time.Hour),
		MaxTeams:    maxTeams,
	}
}
