package services_test

import (
	"testing"

	"gamesync/internal/apperror"
	"gamesync/internal/models"
	"gamesync/internal/repositories"
	"gamesync/internal/services"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func newGameService() (*services.GameService, *repositories.MockGameRepository) {
	repo := repositories.NewMockGameRepository()
	return services.NewGameService(repo, nil), repo
}

var (
	owner1 = &models.User{ID: "owner-1", Username: "u1"}
	owner2 = &models.User{ID: "owner-2", Username: "u2"}
)

func TestGameService_CreateGame(t *testing.T) {
	gameService, _ := newGameService()

	draft := &models.GameDraft{
		Name:      "Chrono",
		Developer: "Square",
		Status:    models.StatusWishlist,
	}

	game, err := gameService.CreateGame(owner1, draft)
	assert.NoError(t, err)
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, owner1.ID, game.UserID)
	assert.Equal(t, 0, game.HoursPlayed)
	assert.Equal(t, models.SourceManual, game.Source)
	assert.Nil(t, game.Steam)
	assert.False(t, game.AddedAt.IsZero())

	// Same name, different case, same owner: conflict
	_, err = gameService.CreateGame(owner1, &models.GameDraft{Name: "chrono", Developer: "Square", Status: models.StatusWishlist})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Same name for a different owner is fine
	_, err = gameService.CreateGame(owner2, &models.GameDraft{Name: "Chrono", Developer: "Square", Status: models.StatusWishlist})
	assert.NoError(t, err)
}

func TestGameService_CreateGame_SteamSource(t *testing.T) {
	gameService, _ := newGameService()

	appID := "620"
	game, err := gameService.CreateGame(owner1, &models.GameDraft{
		Name:      "Portal 2",
		Developer: "Valve",
		Status:    models.StatusCompleted,
		Source:    models.SourceSteam,
		Steam:     &models.SteamPatch{AppID: &appID},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.SourceSteam, game.Source)
	if assert.NotNil(t, game.Steam) {
		assert.Equal(t, "620", game.Steam.AppID)
	}

	// Steam source without sub-data falls back to a manual entry
	game, err = gameService.CreateGame(owner1, &models.GameDraft{
		Name:      "Half-Life",
		Developer: "Valve",
		Status:    models.StatusCompleted,
		Source:    models.SourceSteam,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.SourceManual, game.Source)
	assert.Nil(t, game.Steam)
}

func TestGameService_OwnershipScoping(t *testing.T) {
	gameService, _ := newGameService()

	game, err := gameService.CreateGame(owner1, &models.GameDraft{
		Name: "Chrono", Developer: "Square", Status: models.StatusWishlist,
	})
	assert.NoError(t, err)

	// The owner sees it
	got, err := gameService.GetGame(owner1, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, game.ID, got.ID)

	// Anyone else gets not-found from every operation, never the data
	_, err = gameService.GetGame(owner2, game.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = gameService.UpdateGame(owner2, game.ID, &models.GamePatch{HoursPlayed: intPtr(5)})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = gameService.DeleteGame(owner2, game.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The game is untouched after all of that
	got, err = gameService.GetGame(owner1, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.HoursPlayed)

	// Listing is scoped per owner
	games, err := gameService.ListGames(owner1)
	assert.NoError(t, err)
	assert.Len(t, games, 1)

	games, err = gameService.ListGames(owner2)
	assert.NoError(t, err)
	assert.Len(t, games, 0)
}

func TestGameService_UpdateGame_Partial(t *testing.T) {
	gameService, _ := newGameService()

	game, err := gameService.CreateGame(owner1, &models.GameDraft{
		Name:        "Chrono",
		Description: "JRPG classic",
		Developer:   "Square",
		HoursPlayed: intPtr(12),
		Favorite:    true,
		Genres:      []string{"RPG"},
		Status:      models.StatusPlaying,
	})
	assert.NoError(t, err)

	// A patch with only hoursPlayed changes only that field
	updated, err := gameService.UpdateGame(owner1, game.ID, &models.GamePatch{HoursPlayed: intPtr(40)})
	assert.NoError(t, err)
	assert.Equal(t, 40, updated.HoursPlayed)
	assert.Equal(t, "Chrono", updated.Name)
	assert.Equal(t, "JRPG classic", updated.Description)
	assert.Equal(t, "Square", updated.Developer)
	assert.True(t, updated.Favorite)
	assert.Equal(t, []string{"RPG"}, updated.Genres)
	assert.Equal(t, models.StatusPlaying, updated.Status)
	assert.Equal(t, game.AddedAt, updated.AddedAt)

	// Blank required strings are ignored, empty collections replace
	empty := ""
	emptyList := []string{}
	updated, err = gameService.UpdateGame(owner1, game.ID, &models.GamePatch{
		Name:      &empty,
		Developer: &empty,
		Genres:    &emptyList,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Chrono", updated.Name)
	assert.Equal(t, "Square", updated.Developer)
	assert.Len(t, updated.Genres, 0)
}

func TestGameService_UpdateGame_Rename(t *testing.T) {
	gameService, _ := newGameService()

	game, err := gameService.CreateGame(owner1, &models.GameDraft{Name: "Foo", Developer: "Dev", Status: models.StatusPlaying})
	assert.NoError(t, err)
	_, err = gameService.CreateGame(owner1, &models.GameDraft{Name: "Bar", Developer: "Dev", Status: models.StatusPlaying})
	assert.NoError(t, err)

	// Renaming onto another game's name (any case) is a conflict
	name := "BAR"
	_, err = gameService.UpdateGame(owner1, game.ID, &models.GamePatch{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Re-casing the game's own name is allowed
	name = "FOO"
	updated, err := gameService.UpdateGame(owner1, game.ID, &models.GamePatch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "FOO", updated.Name)

	// A genuinely new name is allowed
	name = "Baz"
	updated, err = gameService.UpdateGame(owner1, game.ID, &models.GamePatch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Baz", updated.Name)
}

func TestGameService_UpdateGame_SteamPromotion(t *testing.T) {
	gameService, _ := newGameService()

	game, err := gameService.CreateGame(owner1, &models.GameDraft{Name: "Portal", Developer: "Valve", Status: models.StatusCompleted})
	assert.NoError(t, err)
	assert.Equal(t, models.SourceManual, game.Source)

	// Supplying steam sub-data promotes the source to STEAM
	appID := "400"
	updated, err := gameService.UpdateGame(owner1, game.ID, &models.GamePatch{
		Steam: &models.SteamPatch{AppID: &appID},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.SourceSteam, updated.Source)
	if assert.NotNil(t, updated.Steam) {
		assert.Equal(t, "400", updated.Steam.AppID)
	}

	// A later patch merges field-by-field, keeping earlier values
	url := "https://store.steampowered.com/app/400"
	updated, err = gameService.UpdateGame(owner1, game.ID, &models.GamePatch{
		Steam: &models.SteamPatch{StoreURL: &url},
	})
	assert.NoError(t, err)
	if assert.NotNil(t, updated.Steam) {
		assert.Equal(t, "400", updated.Steam.AppID)
		assert.Equal(t, url, updated.Steam.StoreURL)
	}

	// Switching the source back to manual drops the sub-document
	manual := models.SourceManual
	updated, err = gameService.UpdateGame(owner1, game.ID, &models.GamePatch{Source: &manual})
	assert.NoError(t, err)
	assert.Equal(t, models.SourceManual, updated.Source)
	assert.Nil(t, updated.Steam)
}

func TestGameService_DeleteGame(t *testing.T) {
	gameService, _ := newGameService()

	game, err := gameService.CreateGame(owner1, &models.GameDraft{Name: "Chrono", Developer: "Square", Status: models.StatusWishlist})
	assert.NoError(t, err)

	// A game that never existed: boolean false, no error
	deleted, err := gameService.DeleteGame(owner1, "no-such-id")
	assert.NoError(t, err)
	assert.False(t, deleted)

	// A game owned by someone else: explicit not-found failure
	_, err = gameService.DeleteGame(owner2, game.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The owner's delete succeeds
	deleted, err = gameService.DeleteGame(owner1, game.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	_, err = gameService.GetGame(owner1, game.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGameService_DeleteAllOwnedBy(t *testing.T) {
	gameService, repo := newGameService()

	_, err := gameService.CreateGame(owner1, &models.GameDraft{Name: "A", Developer: "Dev", Status: models.StatusPlaying})
	assert.NoError(t, err)
	_, err = gameService.CreateGame(owner1, &models.GameDraft{Name: "B", Developer: "Dev", Status: models.StatusPlaying})
	assert.NoError(t, err)
	keep, err := gameService.CreateGame(owner2, &models.GameDraft{Name: "A", Developer: "Dev", Status: models.StatusPlaying})
	assert.NoError(t, err)

	assert.NoError(t, gameService.DeleteAllOwnedBy(owner1.ID))

	games, err := repo.GetAllByOwner(owner1.ID)
	assert.NoError(t, err)
	assert.Len(t, games, 0)

	// Other owners keep their libraries
	games, err = repo.GetAllByOwner(owner2.ID)
	assert.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Equal(t, keep.ID, games[0].ID)

	// Idempotent when the owner has nothing left
	assert.NoError(t, gameService.DeleteAllOwnedBy(owner1.ID))
}
