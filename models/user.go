package models

import "time"

type UserRole string

const (
	RoleOrganizer UserRole = "organizer"
	RoleTeamAdmin UserRole = "team_admin"
	RoleReferee   UserRole = "referee"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleOrganizer, RoleTeamAdmin, RoleReferee:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Nickname     *string   `json:"nickname,omitempty" db:"nickname"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
