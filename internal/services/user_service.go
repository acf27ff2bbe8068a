package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gamesync/internal/apperror"
	"gamesync/internal/models"
	"gamesync/internal/repositories"
	"gamesync/pkg/rabbitmq"

	"golang.org/x/crypto/bcrypt"
)

// GameCleaner is the narrow dependency UserService needs for the account
// delete cascade. GameService implements it; depending on the interface
// instead of the service keeps the wiring one-directional.
type GameCleaner interface {
	DeleteAllOwnedBy(ownerID string) error
}

// EventPublisher publishes domain events. A nil publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, event map[string]interface{}) error
}

// UserService handles business logic for account profiles and lifecycle.
type UserService struct {
	userRepo repositories.UserRepository
	games    GameCleaner
	events   EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, games GameCleaner, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		games:    games,
		events:   events,
	}
}

// UpdateUser applies a partial profile update. Only the account owner may
// update it; anyone else gets the same not-found outcome as a missing id.
func (s *UserService) UpdateUser(caller *models.User, userID string, patch *models.UserPatch) (*models.User, error) {
	if caller.ID != userID {
		return nil, apperror.NotFound("user not found or access denied")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("user not found or access denied")
		}
		return nil, err
	}

	if patch.Username != nil && *patch.Username != "" {
		if !strings.EqualFold(user.Username, *patch.Username) {
			if _, err := s.userRepo.GetByUsername(*patch.Username); err == nil {
				return nil, apperror.Conflict(fmt.Sprintf("username '%s' already taken", *patch.Username))
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
		}
		user.Username = *patch.Username
	}

	if patch.Email != nil && *patch.Email != "" {
		if !strings.EqualFold(user.Email, *patch.Email) {
			if _, err := s.userRepo.GetByEmail(*patch.Email); err == nil {
				return nil, apperror.Conflict(fmt.Sprintf("email '%s' already registered", *patch.Email))
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
		}
		user.Email = *patch.Email
	}

	if patch.NewPassword != nil && *patch.NewPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*patch.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Save(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict("username or email already registered")
		}
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns. The games go first,
// so a failure between the two steps never leaves games pointing at a deleted
// account; retrying the whole operation is safe. Returns whether the account
// existed and was removed.
func (s *UserService) DeleteUser(caller *models.User, userID string) (bool, error) {
	if caller.ID != userID {
		return false, apperror.NotFound("user not found or access denied")
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.games.DeleteAllOwnedBy(userID); err != nil {
		return false, fmt.Errorf("failed to delete games for user %s: %w", userID, err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return false, fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	s.publish(rabbitmq.UserDeletedKey, map[string]interface{}{"userID": userID})
	return true, nil
}

// FindByID returns the account with the given id. Visible only to the account
// itself or to an admin; everyone else gets not-found, so existence of other
// accounts never leaks.
func (s *UserService) FindByID(caller *models.User, id string) (*models.User, error) {
	if caller.ID != id && !caller.HasRole(models.RoleAdmin) {
		return nil, apperror.NotFound("user not found or access denied")
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("user not found or access denied")
		}
		return nil, err
	}
	return user, nil
}

// FindByUsername is an unrestricted lookup used by authentication. It is not
// routed at the HTTP boundary.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("user '%s' not found", username))
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) publish(routingKey string, event map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
