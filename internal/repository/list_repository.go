package repository

import (
	"context"
	"errors"

	"taskflow/internal/model"
	"taskflow/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *ListRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("order_index").
		Find(&lists).Error
	return lists, err
}

func (r *ListRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.List{}).
		Where("board_id = ?", boardID).
		Count(&count).Error
	return count, err
}

// Reorder applies a batch of order assignments in one transaction. Any
// failing row write rolls back the whole batch. An id that matches no
// row is a silent per-row no-op: the batch is trusted to come from a
// planner that renumbered a consistent snapshot.
func (r *ListRepository) Reorder(ctx context.Context, updates []ordering.ListUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&model.List{}).
				Where("id = ?", u.ID).
				Update("order_index", u.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
