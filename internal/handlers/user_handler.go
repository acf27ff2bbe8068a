package handlers

import (
	"log"

	"gamesync/internal/apperror"
	"gamesync/internal/middleware"
	"gamesync/internal/models"
	"gamesync/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for account profiles.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The router
// must already carry the auth middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetSelf)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// currentUser pulls the account the auth middleware resolved for this request.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(middleware.CurrentUserKey).(*models.User)
	if !ok || user == nil {
		return nil, apperror.Unauthenticated("no authenticated user in request context")
	}
	return user, nil
}

// HandleGetSelf returns the caller's own profile.
func (h *UserHandler) HandleGetSelf(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(caller)
}

// HandleGetUserByID returns a profile by id, subject to the self-or-admin rule.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	user, err := h.userService.FindByID(caller, c.Params("id"))
	if err != nil {
		log.Printf("Error getting user %s: %v", c.Params("id"), err)
		return writeError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateUser applies a partial profile update to the caller's account.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing user update request body: %v", err)
		return writeBodyParseError(c, err)
	}

	if err := checkStruct(h.validate, patch); err != nil {
		return writeError(c, err)
	}

	user, err := h.userService.UpdateUser(caller, c.Params("id"), &patch)
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("id"), err)
		return writeError(c, err)
	}
	return c.JSON(user)
}

// HandleDeleteUser deletes the caller's account and cascades to their games.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	deleted, err := h.userService.DeleteUser(caller, c.Params("id"))
	if err != nil {
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		return writeError(c, err)
	}
	if !deleted {
		return writeError(c, apperror.NotFound("user not found or access denied"))
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
