package repository

import (
	"context"
	"errors"

	"taskflow/internal/model"
	"taskflow/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetByBoardID returns every card on the board, sorted by order_index.
func (r *CardRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("list_id IN (?)", r.db.Model(&model.List{}).Select("id").Where("board_id = ?", boardID)).
		Order("order_index").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) CountByListID(ctx context.Context, listID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("list_id = ?", listID).
		Count(&count).Error
	return count, err
}

// Reorder applies a batch of list/order assignments in one transaction,
// rewriting both columns per row so cross-list moves commit atomically
// with the renumbering of both sequences. Unknown ids affect zero rows
// and do not fail the batch.
func (r *CardRepository) Reorder(ctx context.Context, updates []ordering.CardUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&model.Card{}).
				Where("id = ?", u.ID).
				Updates(map[string]any{"list_id": u.ListID, "order_index": u.Order}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateFields patches the given columns of one card.
func (r *CardRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Card, error) {
	result := r.db.WithContext(ctx).Model(&model.Card{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetByID(ctx, id)
}
