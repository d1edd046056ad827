package models

type DashboardStats struct {
	UsersTotal        int `json:"users_total"`
	TeamsTotal        int `json:"teams_total"`
	TournamentsTotal  int `json:"tournaments_total"`
	ActiveTournaments int `json:"active_tournaments"`
	FixturesTotal     int `json:"fixtures_total"`
	FixturesFinished  int `json:"fixtures_finished"`
}
