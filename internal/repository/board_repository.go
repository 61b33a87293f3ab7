package repository

import (
	"context"
	"errors"

	"taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithDefaults inserts the board, its owner membership row and
// the three default lists in a single transaction, so a half-created
// board is never visible.
func (r *BoardRepository) CreateWithDefaults(ctx context.Context, board *model.Board, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		member := &model.BoardMember{
			BoardID: board.ID,
			UserID:  ownerID,
			IsOwner: true,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		for i, title := range model.DefaultListTitles {
			list := &model.List{
				BoardID:    board.ID,
				Title:      title,
				OrderIndex: i + 1,
			}
			if err := tx.Create(list).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetForUser returns every board the user is a member of, newest first.
func (r *BoardRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ?", userID).
		Order("boards.created_at DESC").
		Find(&boards).Error
	return boards, err
}

// IsMember reports whether the user belongs to the board.
func (r *BoardRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}
