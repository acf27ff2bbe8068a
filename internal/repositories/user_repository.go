package repositories

import "gamesync/internal/models"

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetBySteamID(steamID string) (*models.User, error)
	Save(user *models.User) error
	Delete(id string) error
}
