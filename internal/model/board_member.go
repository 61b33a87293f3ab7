package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardMember links a user to a board. Every board has exactly one
// owner row, created together with the board itself.
type BoardMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IsOwner   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}
