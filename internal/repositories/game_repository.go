package repositories

import "gamesync/internal/models"

// GameRepository defines the interface for game data access. Ownership rules
// live in the service layer; the repository only scopes queries by owner id.
type GameRepository interface {
	Create(game *models.Game) error
	GetByID(id string) (*models.Game, error)
	GetAllByOwner(ownerID string) ([]models.Game, error)
	// ExistsByNameAndOwner compares names case-insensitively.
	ExistsByNameAndOwner(name, ownerID string) (bool, error)
	Save(game *models.Game) error
	Delete(id string) error
	DeleteAllByOwner(ownerID string) error
}
