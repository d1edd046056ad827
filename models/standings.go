package models

// StandingsRow is a derived view, recomputed on demand from finished
// fixtures. It is never persisted.
type StandingsRow struct {
	TeamID         int `json:"team_id"`
	Played         int `json:"played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
	Points         int `json:"points"`

	Team *Team `json:"team,omitempty"`
}

// PlayerStatLine is a derived view over match event payloads.
type PlayerStatLine struct {
	PlayerName  string `json:"player_name"`
	TeamID      int    `json:"team_id"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}
