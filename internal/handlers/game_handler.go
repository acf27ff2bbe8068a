package handlers

import (
	"log"

	"gamesync/internal/apperror"
	"gamesync/internal/models"
	"gamesync/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GameHandler handles HTTP requests for the game library.
type GameHandler struct {
	gameService *services.GameService
	validate    *validator.Validate
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the game routes with the Fiber app. The router
// must already carry the auth middleware; every operation is scoped to the
// calling account.
func (h *GameHandler) RegisterRoutes(router fiber.Router) {
	gameRoutes := router.Group("/games")
	gameRoutes.Post("/", h.HandleCreateGame)
	gameRoutes.Get("/", h.HandleListGames)
	gameRoutes.Get("/:id", h.HandleGetGameByID)
	gameRoutes.Put("/:id", h.HandleUpdateGame)
	gameRoutes.Delete("/:id", h.HandleDeleteGame)
}

// HandleCreateGame adds a game to the caller's library.
func (h *GameHandler) HandleCreateGame(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var draft models.GameDraft
	if err := c.BodyParser(&draft); err != nil {
		log.Printf("Error parsing game create request body: %v", err)
		return writeBodyParseError(c, err)
	}

	if err := checkStruct(h.validate, draft); err != nil {
		return writeError(c, err)
	}

	game, err := h.gameService.CreateGame(caller, &draft)
	if err != nil {
		log.Printf("Error creating game for user %s: %v", caller.ID, err)
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

// HandleListGames returns every game in the caller's library.
func (h *GameHandler) HandleListGames(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	games, err := h.gameService.ListGames(caller)
	if err != nil {
		log.Printf("Error listing games for user %s: %v", caller.ID, err)
		return writeError(c, err)
	}
	return c.JSON(games)
}

// HandleGetGameByID returns a single game from the caller's library.
func (h *GameHandler) HandleGetGameByID(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	game, err := h.gameService.GetGame(caller, c.Params("id"))
	if err != nil {
		log.Printf("Error getting game %s: %v", c.Params("id"), err)
		return writeError(c, err)
	}
	return c.JSON(game)
}

// HandleUpdateGame applies a partial update to one of the caller's games.
func (h *GameHandler) HandleUpdateGame(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var patch models.GamePatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing game update request body: %v", err)
		return writeBodyParseError(c, err)
	}

	if err := checkStruct(h.validate, patch); err != nil {
		return writeError(c, err)
	}

	game, err := h.gameService.UpdateGame(caller, c.Params("id"), &patch)
	if err != nil {
		log.Printf("Error updating game %s: %v", c.Params("id"), err)
		return writeError(c, err)
	}
	return c.JSON(game)
}

// HandleDeleteGame removes a game from the caller's library.
func (h *GameHandler) HandleDeleteGame(c *fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	deleted, err := h.gameService.DeleteGame(caller, c.Params("id"))
	if err != nil {
		log.Printf("Error deleting game %s: %v", c.Params("id"), err)
		return writeError(c, err)
	}
	if !deleted {
		return writeError(c, apperror.NotFound("game with ID '"+c.Params("id")+"' not found or access denied"))
	}

	return c.JSON(fiber.Map{
		"message": "Game deleted successfully",
	})
}
