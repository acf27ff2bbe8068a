package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gamesync/internal/models"

	"github.com/google/uuid"
)

// MockGameRepository is an in-memory implementation of GameRepository with
// the same per-owner case-insensitive name uniqueness the database enforces.
type MockGameRepository struct {
	games map[string]models.Game
	mu    sync.RWMutex
}

// NewMockGameRepository creates a new instance of MockGameRepository.
func NewMockGameRepository() *MockGameRepository {
	return &MockGameRepository{
		games: make(map[string]models.Game),
	}
}

// Create adds a new game.
func (r *MockGameRepository) Create(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(game.Name, game.UserID, game.ID) {
		return ErrDuplicateKey
	}
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	game.NameKey = strings.ToLower(game.Name)
	game.UpdatedAt = time.Now()
	r.games[game.ID] = *game
	return nil
}

// GetByID returns a game by its ID.
func (r *MockGameRepository) GetByID(id string) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &game, nil
}

// GetAllByOwner returns every game owned by the given user, oldest first.
func (r *MockGameRepository) GetAllByOwner(ownerID string) ([]models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]models.Game, 0)
	for _, g := range r.games {
		if g.UserID == ownerID {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].AddedAt.Equal(games[j].AddedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].AddedAt.Before(games[j].AddedAt)
	})
	return games, nil
}

// ExistsByNameAndOwner reports whether the owner already has a game with the
// given name, ignoring case.
func (r *MockGameRepository) ExistsByNameAndOwner(name, ownerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nameTaken(name, ownerID, ""), nil
}

// Save replaces an existing game.
func (r *MockGameRepository) Save(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[game.ID]; !ok {
		return ErrNotFound
	}
	if r.nameTaken(game.Name, game.UserID, game.ID) {
		return ErrDuplicateKey
	}
	game.NameKey = strings.ToLower(game.Name)
	game.UpdatedAt = time.Now()
	r.games[game.ID] = *game
	return nil
}

// Delete removes a game by its ID.
func (r *MockGameRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return ErrNotFound
	}
	delete(r.games, id)
	return nil
}

// DeleteAllByOwner removes every game owned by the given user.
func (r *MockGameRepository) DeleteAllByOwner(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, g := range r.games {
		if g.UserID == ownerID {
			delete(r.games, id)
		}
	}
	return nil
}

// nameTaken checks the per-owner name index, skipping the record identified
// by excludeID. Callers must hold the lock.
func (r *MockGameRepository) nameTaken(name, ownerID, excludeID string) bool {
	for id, g := range r.games {
		if id == excludeID {
			continue
		}
		if g.UserID == ownerID && strings.EqualFold(g.Name, name) {
			return true
		}
	}
	return false
}
