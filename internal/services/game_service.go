package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gamesync/internal/apperror"
	"gamesync/internal/models"
	"gamesync/internal/repositories"
	"gamesync/pkg/rabbitmq"
)

// GameService handles business logic for the owner-scoped game library.
// Every operation takes the authenticated caller explicitly; a game is only
// ever visible to the account referenced by its owner id.
type GameService struct {
	gameRepo repositories.GameRepository
	events   EventPublisher
}

// NewGameService creates a new GameService.
func NewGameService(gameRepo repositories.GameRepository, events EventPublisher) *GameService {
	return &GameService{
		gameRepo: gameRepo,
		events:   events,
	}
}

// CreateGame adds a game to the caller's library. The owner is always the
// caller, never taken from the draft. Fails with a conflict when the caller
// already has a game with the same name, ignoring case.
func (s *GameService) CreateGame(owner *models.User, draft *models.GameDraft) (*models.Game, error) {
	taken, err := s.gameRepo.ExistsByNameAndOwner(draft.Name, owner.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict(fmt.Sprintf("game with the name '%s' already exists for this user", draft.Name))
	}

	game := &models.Game{
		UserID:      owner.ID,
		Name:        draft.Name,
		Description: draft.Description,
		Developer:   draft.Developer,
		Favorite:    draft.Favorite,
		Genres:      draft.Genres,
		Tags:        draft.Tags,
		Platforms:   draft.Platforms,
		Status:      draft.Status,
		AddedAt:     time.Now(),
	}
	if draft.HoursPlayed != nil {
		game.HoursPlayed = *draft.HoursPlayed
	}

	// Steam sub-data only survives when the draft actually declares the game
	// a Steam entry; anything else is a manual entry.
	if draft.Source == models.SourceSteam && draft.Steam != nil {
		game.Source = models.SourceSteam
		game.Steam = mergeSteam(nil, draft.Steam)
	} else {
		game.Source = models.SourceManual
		game.Steam = nil
	}

	if err := s.gameRepo.Create(game); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict(fmt.Sprintf("game with the name '%s' already exists for this user", draft.Name))
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.publish(rabbitmq.GameCreatedKey, map[string]interface{}{
		"gameID": game.ID,
		"userID": game.UserID,
		"name":   game.Name,
		"source": game.Source,
	})
	return game, nil
}

// ListGames returns every game in the caller's library, oldest first.
func (s *GameService) ListGames(owner *models.User) ([]models.Game, error) {
	return s.gameRepo.GetAllByOwner(owner.ID)
}

// GetGame returns the game only when it exists and belongs to the caller.
// Ownership mismatch and true absence are indistinguishable.
func (s *GameService) GetGame(owner *models.User, id string) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("game with ID '%s' not found or access denied", id))
		}
		return nil, err
	}
	if game.UserID != owner.ID {
		return nil, apperror.NotFound(fmt.Sprintf("game with ID '%s' not found or access denied", id))
	}
	return game, nil
}

// UpdateGame applies a partial update to one of the caller's games. Absent
// fields stay untouched, blank required strings are ignored, present
// collections replace. A rename re-checks per-owner uniqueness excluding the
// game's own current name. A steam patch merges field-by-field and promotes
// the source to STEAM; switching the source to MANUAL drops the sub-data.
func (s *GameService) UpdateGame(owner *models.User, id string, patch *models.GamePatch) (*models.Game, error) {
	game, err := s.GetGame(owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != "" {
		if !strings.EqualFold(game.Name, *patch.Name) {
			taken, err := s.gameRepo.ExistsByNameAndOwner(*patch.Name, owner.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.Conflict(fmt.Sprintf("another game with the name '%s' already exists for this user", *patch.Name))
			}
		}
		game.Name = *patch.Name
	}
	if patch.Description != nil {
		game.Description = *patch.Description
	}
	if patch.Developer != nil && *patch.Developer != "" {
		game.Developer = *patch.Developer
	}
	if patch.HoursPlayed != nil {
		game.HoursPlayed = *patch.HoursPlayed
	}
	if patch.Favorite != nil {
		game.Favorite = *patch.Favorite
	}
	if patch.Genres != nil {
		game.Genres = *patch.Genres
	}
	if patch.Tags != nil {
		game.Tags = *patch.Tags
	}
	if patch.Platforms != nil {
		game.Platforms = *patch.Platforms
	}
	if patch.Status != nil {
		game.Status = *patch.Status
	}

	if patch.Source != nil {
		game.Source = *patch.Source
		if game.Source != models.SourceSteam {
			game.Steam = nil
		}
	}
	if patch.Steam != nil {
		game.Steam = mergeSteam(game.Steam, patch.Steam)
		game.Source = models.SourceSteam
	}

	if err := s.gameRepo.Save(game); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict(fmt.Sprintf("another game with the name '%s' already exists for this user", game.Name))
		}
		return nil, fmt.Errorf("failed to update game %s: %w", id, err)
	}
	return game, nil
}

// DeleteGame removes one of the caller's games. A game owned by someone else
// fails as not-found; a game that does not exist at all returns false.
func (s *GameService) DeleteGame(owner *models.User, id string) (bool, error) {
	game, err := s.gameRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if game.UserID != owner.ID {
		return false, apperror.NotFound(fmt.Sprintf("game with ID '%s' not found or access denied", id))
	}

	if err := s.gameRepo.Delete(id); err != nil {
		return false, fmt.Errorf("failed to delete game %s: %w", id, err)
	}

	s.publish(rabbitmq.GameDeletedKey, map[string]interface{}{
		"gameID": game.ID,
		"userID": game.UserID,
	})
	return true, nil
}

// DeleteAllOwnedBy removes every game owned by the given account. Used only
// by the account delete cascade; a no-op when the owner has no games.
func (s *GameService) DeleteAllOwnedBy(ownerID string) error {
	return s.gameRepo.DeleteAllByOwner(ownerID)
}

func (s *GameService) publish(routingKey string, event map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

// mergeSteam overlays the patched fields onto the current sub-document.
func mergeSteam(current *models.SteamDetails, patch *models.SteamPatch) *models.SteamDetails {
	details := &models.SteamDetails{}
	if current != nil {
		*details = *current
	}
	if patch.AppID != nil {
		details.AppID = *patch.AppID
	}
	if patch.StoreURL != nil {
		details.StoreURL = *patch.StoreURL
	}
	if patch.HeaderImageURL != nil {
		details.HeaderImageURL = *patch.HeaderImageURL
	}
	if patch.AchievementCompletion != nil {
		details.AchievementCompletion = *patch.AchievementCompletion
	}
	return details
}
