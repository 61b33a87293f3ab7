package model

import (
	"time"

	"github.com/google/uuid"
)

// Card belongs to a list. ListID is mutable: a cross-list move rewrites
// it together with OrderIndex, which is 1-based and contiguous within
// the owning list after any successful reorder.
type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	DueDate     *time.Time
	OrderIndex  int `gorm:"not null"`

	List List `gorm:"foreignKey:ListID"`
}
