package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gamesync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGameRepository is a GORM implementation of GameRepository.
type GORMGameRepository struct {
	db *gorm.DB
}

// NewGORMGameRepository creates a new instance of GORMGameRepository.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

// Create inserts a new game, assigning an id when none is set.
func (r *GORMGameRepository) Create(game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if err := r.db.Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetByID retrieves a game by its ID.
func (r *GORMGameRepository) GetByID(id string) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}
	return &game, nil
}

// GetAllByOwner retrieves every game owned by the given user, oldest first.
func (r *GORMGameRepository) GetAllByOwner(ownerID string) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.Where("user_id = ?", ownerID).Order("added_at asc, id asc").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to get games for owner %s: %w", ownerID, err)
	}
	return games, nil
}

// ExistsByNameAndOwner reports whether the owner already has a game with the
// given name, ignoring case.
func (r *GORMGameRepository) ExistsByNameAndOwner(name, ownerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Game{}).
		Where("user_id = ? AND name_key = ?", ownerID, strings.ToLower(name)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check game name for owner %s: %w", ownerID, err)
	}
	return count > 0, nil
}

// Save persists all fields of an existing game.
func (r *GORMGameRepository) Save(game *models.Game) error {
	res := r.db.Save(game)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to save game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a game by its ID.
func (r *GORMGameRepository) Delete(id string) error {
	res := r.db.Delete(&models.Game{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByOwner removes every game owned by the given user. Deleting
// nothing is not an error; the account cascade relies on that.
func (r *GORMGameRepository) DeleteAllByOwner(ownerID string) error {
	if err := r.db.Delete(&models.Game{}, "user_id = ?", ownerID).Error; err != nil {
		return fmt.Errorf("failed to delete games for owner %s: %w", ownerID, err)
	}
	return nil
}
