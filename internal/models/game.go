package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// GameStatus tracks where a game sits in the owner's backlog.
type GameStatus string

const (
	StatusPlaying    GameStatus = "PLAYING"
	StatusCompleted  GameStatus = "COMPLETED"
	StatusDropped    GameStatus = "DROPPED"
	StatusWishlist   GameStatus = "WISHLIST"
	StatusNotStarted GameStatus = "NOT_STARTED"
)

// GameSource records where a library entry came from.
type GameSource string

const (
	SourceManual GameSource = "MANUAL"
	SourceSteam  GameSource = "STEAM"
)

// SteamDetails is the Steam-specific sub-document of a game. It is only
// meaningful (and only persisted) while the game's source is STEAM.
type SteamDetails struct {
	AppID                 string `json:"appId,omitempty"`
	StoreURL              string `json:"storeUrl,omitempty"`
	HeaderImageURL        string `json:"headerImageUrl,omitempty"`
	AchievementCompletion string `json:"achievementCompletion,omitempty"`
}

// Game represents one entry in a user's library. Every game belongs to
// exactly one owner; the (owner, name) pair is unique ignoring case, which
// NameKey (the lowercased name) enforces at the store level.
type Game struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string        `json:"userId" gorm:"type:varchar(36);index;uniqueIndex:idx_games_owner_name"`
	Name        string        `json:"name" gorm:"type:varchar(255)"`
	NameKey     string        `json:"-" gorm:"type:varchar(255);uniqueIndex:idx_games_owner_name"`
	Description string        `json:"description,omitempty" gorm:"type:varchar(2000)"`
	Developer   string        `json:"developer" gorm:"type:varchar(100)"`
	HoursPlayed int           `json:"hoursPlayed"`
	Favorite    bool          `json:"favorite"`
	Genres      []string      `json:"genres" gorm:"serializer:json;type:text"`
	Tags        []string      `json:"tags" gorm:"serializer:json;type:text"`
	Platforms   []string      `json:"platforms" gorm:"serializer:json;type:text"`
	Status      GameStatus    `json:"status" gorm:"type:varchar(20)"`
	Source      GameSource    `json:"source" gorm:"type:varchar(20)"`
	Steam       *SteamDetails `json:"steam,omitempty" gorm:"serializer:json;type:text"`
	AddedAt     time.Time     `json:"addedAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// BeforeSave keeps the normalized name column in sync with Name so the
// per-owner unique index compares case-insensitively.
func (g *Game) BeforeSave(tx *gorm.DB) error {
	g.NameKey = strings.ToLower(g.Name)
	return nil
}
