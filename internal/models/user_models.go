package models

import "time"

// User levels, from highest to lowest privilege.
const (
	LevelAdmin       = "Admin"
	LevelOperator    = "Operator"
	LevelContributor = "Contributor"
	LevelGuest       = "Guest"
)

// UserLevels lists every valid user level.
var UserLevels = []string{LevelAdmin, LevelOperator, LevelContributor, LevelGuest}

// IsValidUserLevel reports whether level is one of the four fixed levels.
func IsValidUserLevel(level string) bool {
	for _, l := range UserLevels {
		if l == level {
			return true
		}
	}
	return false
}

// User represents an internal staff account.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	UserLevel    string    `json:"user_level" db:"user_level"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
