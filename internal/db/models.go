package db

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID        string    `gorm:"primaryKey;size:12"`
	Name      string    `gorm:"size:120;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Prompts   []Prompt
	Players   []Player
	Events    []Event
}

type Prompt struct {
	ID        string    `gorm:"primaryKey;size:36"`
	GameID    string    `gorm:"size:12;index;not null"`
	Position  int       `gorm:"not null;default:0"`
	Text      string    `gorm:"size:280;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Player struct {
	ID        string    `gorm:"primaryKey;size:36"`
	GameID    string    `gorm:"size:12;index;not null"`
	Name      string    `gorm:"size:64;not null"`
	Score     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Marks     []Mark
}

// Mark records that a player engaged with a prompt. At most one row exists per
// (player, prompt) pair; repeat submissions may only refresh Partner.
type Mark struct {
	PlayerID  string    `gorm:"primaryKey;size:36"`
	PromptID  string    `gorm:"primaryKey;size:36"`
	Confirmed bool      `gorm:"not null;default:false"`
	Partner   string    `gorm:"size:120"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    string         `gorm:"size:12;index;not null"`
	PlayerID  *string        `gorm:"size:36;index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

// LeaderboardEntry is one row of a ranked leaderboard payload.
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}
