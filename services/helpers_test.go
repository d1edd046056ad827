package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Amantay09/league-system/models"
)

func TestFixtureStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    models.FixtureStatus
		to      models.FixtureStatus
		allowed bool
	}{
		{"scheduled to live", models.FixtureStatusScheduled, models.FixtureStatusLive, true},
		{"scheduled to postponed", models.FixtureStatusScheduled, models.FixtureStatusPostponed, true},
		{"scheduled to cancelled", models.FixtureStatusScheduled, models.FixtureStatusCancelled, true},
		{"scheduled straight to finished", models.FixtureStatusScheduled, models.FixtureStatusFinished, false},
		{"live to finished", models.FixtureStatusLive, models.FixtureStatusFinished, true},
		{"live to cancelled", models.FixtureStatusLive, models.FixtureStatusCancelled, true},
		{"live back to scheduled", models.FixtureStatusLive, models.FixtureStatusScheduled, false},
		{"postponed back to scheduled", models.FixtureStatusPostponed, models.FixtureStatusScheduled, true},
		{"postponed to live", models.FixtureStatusPostponed, models.FixtureStatusLive, false},
		{"finished is terminal", models.FixtureStatusFinished, models.FixtureStatusLive, false},
		{"cancelled is terminal", models.FixtureStatusCancelled, models.FixtureStatusScheduled, false},
		{"no-op stays legal", models.FixtureStatusLive, models.FixtureStatusLive, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.allowed, isValidFixtureStatusTransition(tc.from, tc.to))
		})
	}
}

func TestTournamentStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    models.TournamentStatus
		to      models.TournamentStatus
		allowed bool
	}{
		{"soon to registration", models.TournamentStatusSoon, models.TournamentStatusRegistration, true},
		{"registration to active", models.TournamentStatusRegistration, models.TournamentStatusActive, true},
		{"active to completed", models.TournamentStatusActive, models.TournamentStatusCompleted, true},
		{"any to canceled", models.TournamentStatusRegistration, models.TournamentStatusCanceled, true},
		{"skip registration", models.TournamentStatusSoon, models.TournamentStatusActive, false},
		{"completed is terminal", models.TournamentStatusCompleted, models.TournamentStatusActive, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.allowed, isValidTournamentStatusTransition(tc.from, tc.to))
		})
	}
}

func TestValidateTournamentDates(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateTournamentDates(base, base.AddDate(0, 0, 7), base.AddDate(0, 1, 0)))
	assert.ErrorIs(t, validateTournamentDates(time.Time{}, base, base.AddDate(0, 1, 0)), ErrTournamentDatesRequired)
	assert.ErrorIs(t, validateTournamentDates(base.AddDate(0, 0, 10), base, base.AddDate(0, 1, 0)), ErrTournamentInvalidRegDate)
	assert.ErrorIs(t, validateTournamentDates(base, base.AddDate(0, 1, 0), base), ErrTournamentInvalidDateRange)
}

func TestExtensionFromContentType(t *testing.T) {
	t.Parallel()

	ext, err := extensionFromContentType("image/png")
	assert.NoError(t, err)
	assert.Equal(t, ".png", ext)

	ext, err = extensionFromContentType("image/svg+xml")
	assert.NoError(t, err)
	assert.Equal(t, ".svg", ext)

	_, err = extensionFromContentType("application/pdf")
	assert.Error(t, err)
}
