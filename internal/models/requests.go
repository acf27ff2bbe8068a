package models

// RegisterRequest carries the data for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	SteamID  string `json:"steamId" validate:"omitempty,max=50"`
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	NewPassword *string `json:"newPassword" validate:"omitempty,min=6,max=100"`
}

// GameDraft carries the data for creating a game. The owner is never part of
// the draft; it is always the authenticated caller.
type GameDraft struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description string      `json:"description" validate:"omitempty,max=2000"`
	Developer   string      `json:"developer" validate:"required,max=100"`
	HoursPlayed *int        `json:"hoursPlayed" validate:"omitempty,gte=0"`
	Favorite    bool        `json:"favorite"`
	Genres      []string    `json:"genres" validate:"omitempty,dive,required,max=50"`
	Tags        []string    `json:"tags" validate:"omitempty,dive,required,max=50"`
	Platforms   []string    `json:"platforms" validate:"omitempty,dive,required,max=50"`
	Status      GameStatus  `json:"status" validate:"required,oneof=PLAYING COMPLETED DROPPED WISHLIST NOT_STARTED"`
	Source      GameSource  `json:"source" validate:"omitempty,oneof=MANUAL STEAM"`
	Steam       *SteamPatch `json:"steam"`
}

// GamePatch is a partial game update. Nil fields are left untouched; blank
// values on required string fields are ignored; an explicitly empty slice
// replaces the stored collection.
type GamePatch struct {
	Name        *string     `json:"name" validate:"omitempty,max=255"`
	Description *string     `json:"description" validate:"omitempty,max=2000"`
	Developer   *string     `json:"developer" validate:"omitempty,max=100"`
	HoursPlayed *int        `json:"hoursPlayed" validate:"omitempty,gte=0"`
	Favorite    *bool       `json:"favorite"`
	Genres      *[]string   `json:"genres" validate:"omitempty,dive,required,max=50"`
	Tags        *[]string   `json:"tags" validate:"omitempty,dive,required,max=50"`
	Platforms   *[]string   `json:"platforms" validate:"omitempty,dive,required,max=50"`
	Status      *GameStatus `json:"status" validate:"omitempty,oneof=PLAYING COMPLETED DROPPED WISHLIST NOT_STARTED"`
	Source      *GameSource `json:"source" validate:"omitempty,oneof=MANUAL STEAM"`
	Steam       *SteamPatch `json:"steam"`
}

// SteamPatch updates individual fields of a game's Steam sub-document.
type SteamPatch struct {
	AppID                 *string `json:"appId" validate:"omitempty,max=50"`
	StoreURL              *string `json:"storeUrl" validate:"omitempty,max=255"`
	HeaderImageURL        *string `json:"headerImageUrl" validate:"omitempty,max=255"`
	AchievementCompletion *string `json:"achievementCompletion" validate:"omitempty,max=50"`
}
