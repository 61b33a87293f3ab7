package model

import (
	"github.com/google/uuid"
)

// List is a column on a board. OrderIndex is 1-based and contiguous
// within the board after any successful reorder.
type List struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"not null"`
	OrderIndex int       `gorm:"not null"`

	Board Board `gorm:"foreignKey:BoardID"`
}
