package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrListNotFound is returned when a list is not found
	ErrListNotFound = errors.New("list not found")

	// ErrCardNotFound is returned when a card is not found
	ErrCardNotFound = errors.New("card not found")
)
