package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title           string    `gorm:"not null"`
	BackgroundColor string    `gorm:"not null;default:'#0079bf'"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time
}

// DefaultListTitles are the lists created for every new board, in order.
var DefaultListTitles = []string{"To Do", "In Progress", "Done"}
