package models

import (
	"encoding/json"
	"time"
)

// FixtureStatus mirrors the ENUM in the database.
// "completed" is a legacy value from imported data; nothing writes it
// anymore, but aggregation still counts it (see league.StandingsOptions).
type FixtureStatus string

const (
	FixtureStatusScheduled FixtureStatus = "scheduled"
	FixtureStatusLive      FixtureStatus = "live"
	FixtureStatusFinished  FixtureStatus = "finished"
	FixtureStatusPostponed FixtureStatus = "postponed"
	FixtureStatusCancelled FixtureStatus = "cancelled"

	FixtureStatusLegacyCompleted FixtureStatus = "completed"
)

// FixtureStage tags the phase explicitly instead of encoding it in
// round numbers.
type FixtureStage string

const (
	StageGroup    FixtureStage = "group"
	StageKnockout FixtureStage = "knockout"
)

type Fixture struct {
	ID           int           `json:"id" db:"id"`
	TournamentID int           `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int           `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int           `json:"away_team_id" db:"away_team_id"`
	Round        int           `json:"round" db:"round"`
	Stage        FixtureStage  `json:"stage" db:"stage"`
	Status       FixtureStatus `json:"status" db:"status"`
	HomeScore    *int          `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int          `json:"away_score,omitempty" db:"away_score"`
	KickoffAt    *time.Time    `json:"kickoff_at,omitempty" db:"kickoff_at"`
	Venue        *string       `json:"venue,omitempty" db:"venue"`
	EventsJSON   *string       `json:"-" db:"events"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`

	Events []MatchEvent `json:"events,omitempty" db:"-"`
}

type MatchEventType string

const (
	EventGoal MatchEventType = "goal"
	EventCard MatchEventType = "card"
)

type CardType string

const (
	CardYellow CardType = "yellow"
	CardRed    CardType = "red"
)

// MatchEvent is embedded in a fixture's events payload. Minute is
// decorative; no ordering guarantee is implied.
type MatchEvent struct {
	Type       MatchEventType `json:"type"`
	PlayerName string         `json:"player_name"`
	TeamID     int            `json:"team_id"`
	CardType   *CardType      `json:"card_type,omitempty"`
	Minute     *int           `json:"minute,omitempty"`
}

// ParseEvents decodes the raw events payload. A missing payload is an
// empty event list, not an error.
func (f *Fixture) ParseEvents() ([]MatchEvent, error) {
	if f.EventsJSON == nil || *f.EventsJSON == "" {
		return nil, nil
	}
	var events []MatchEvent
	if err := json.Unmarshal([]byte(*f.EventsJSON), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (f *Fixture) SetEvents(events []MatchEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	s := string(raw)
	f.EventsJSON = &s
	f.Events = events
	return nil
}
