package models

import "time"

// RoleUser is assigned to every account at registration. RoleAdmin widens
// profile lookups beyond the caller's own account.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account in the game library.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(50)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(100)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	SteamID   *string   `json:"steamId,omitempty" gorm:"uniqueIndex;type:varchar(50)"`
	Roles     []string  `json:"roles" gorm:"serializer:json;type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
