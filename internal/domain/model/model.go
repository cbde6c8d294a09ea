package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex"`
	Email        string    `gorm:"uniqueIndex"`
	PasswordHash string
	FullName     string
	AvatarURL    string
	CoverURL     string
	// RefreshToken mirrors the currently valid refresh token; empty means no
	// active session. Overwritten on every login/refresh, cleared on logout.
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content   string
	OwnerID   uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Views        int64
	IsPublished  bool
	OwnerID      uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uuid.UUID
}

// Principal is the per-request identity resolved by the auth middleware.
// It never outlives the request.
type Principal struct {
	UserID   uuid.UUID
	Username string
	User     User
}
