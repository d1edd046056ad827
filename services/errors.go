package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrPlayerNameRequired = errors.New("player name is required")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrRegistrationConflict   = errors.New("team is already registered for this tournament")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity lookups
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrFixtureNotFound      = errors.New("fixture not found")

	// Tournament rules
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentDatesRequired           = errors.New("tournament dates are required")
	ErrTournamentInvalidRegDate          = errors.New("tournament registration close date must not be after start date")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity         = errors.New("tournament max teams must be at least 2")
	ErrTournamentInvalidFormat           = errors.New("invalid tournament format")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")

	// Registration rules
	ErrRegistrationNotOpen       = errors.New("tournament registration is not open")
	ErrTournamentFull            = errors.New("tournament registration is full")
	ErrRegistrationAlreadyClosed = errors.New("registration decision already made")

	// Storage
	ErrUploadsDisabled = errors.New("file uploads are not configured")

	// Fixture rules
	ErrFixturesAlreadyGenerated       = errors.New("fixtures have already been generated for this tournament")
	ErrFixtureGenerationNotOpen       = errors.New("fixtures can only be generated after registration closes")
	ErrFixtureInvalidStatusTransition = errors.New("invalid fixture status transition")
	ErrFixtureScoreRequired           = errors.New("both scores are required to finish a fixture")
	ErrFixtureInvalidScore            = errors.New("fixture scores must be non-negative")
	ErrFixtureSameTeams               = errors.New("a fixture requires two distinct teams")
	ErrFixtureEventTeamInvalid        = errors.New("match event team is not part of the fixture")
	ErrFixtureStageImmutable          = errors.New("only knockout-stage fixtures can be created manually")
)
