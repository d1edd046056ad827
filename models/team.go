package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	AdminID   int       `json:"admin_id" db:"admin_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Admin   *User    `json:"admin,omitempty" db:"-"`
	Players []Player `json:"players,omitempty" db:"-"`
}

// Player is a roster entry. Match events reference players by free-text
// name, not by this ID; the roster exists so clients can offer a
// dropdown when recording events.
type Player struct {
	ID          int       `json:"id" db:"id"`
	TeamID      int       `json:"team_id" db:"team_id"`
	FullName    string    `json:"full_name" db:"full_name"`
	ShirtNumber *int      `json:"shirt_number,omitempty" db:"shirt_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
