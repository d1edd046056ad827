package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Amantay09/league-system/models"
	"github.com/Amantay09/league-system/storage"
)

func validateTournamentDates(reg, start, end time.Time) error {
	if reg.IsZero() || start.IsZero() || end.IsZero() {
		return ErrTournamentDatesRequired
	}
	if reg.After(start) {
		return fmt.Errorf("%w: registration close (%s) is after start (%s)",
			ErrTournamentInvalidRegDate, reg.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start (%s) must be before end (%s)",
			ErrTournamentInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

func isValidTournamentStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.TournamentStatus][]models.TournamentStatus{
		models.TournamentStatusSoon:         {models.TournamentStatusRegistration, models.TournamentStatusCanceled},
		models.TournamentStatusRegistration: {models.TournamentStatusActive, models.TournamentStatusCanceled},
		models.TournamentStatusActive:       {models.TournamentStatusCompleted, models.TournamentStatusCanceled},
		models.TournamentStatusCompleted:    {},
		models.TournamentStatusCanceled:     {},
	}
	for _, s := range allowed[current] {
		if next == s {
			return true
		}
	}
	return false
}

// isValidFixtureStatusTransition encodes the fixture lifecycle:
// scheduled -> live -> finished, postponed fixtures return to
// scheduled, and anything not yet finished can be cancelled.
// finished and cancelled are terminal.
func isValidFixtureStatusTransition(current, next models.FixtureStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.FixtureStatus][]models.FixtureStatus{
		models.FixtureStatusScheduled: {models.FixtureStatusLive, models.FixtureStatusPostponed, models.FixtureStatusCancelled},
		models.FixtureStatusLive:      {models.FixtureStatusFinished, models.FixtureStatusCancelled},
		models.FixtureStatusPostponed: {models.FixtureStatusScheduled},
		models.FixtureStatusFinished:  {},
		models.FixtureStatusCancelled: {},
	}
	for _, s := range allowed[current] {
		if next == s {
			return true
		}
	}
	return false
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
	}
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateTournamentLogoURL(tournament *models.Tournament, uploader storage.FileUploader) {
	if tournament != nil && tournament.LogoKey != nil && *tournament.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*tournament.LogoKey)
		if url != "" {
			tournament.LogoURL = &url
		}
	}
}
