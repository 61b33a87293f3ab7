package repository_test

import (
	"context"
	"testing"

	"taskflow/internal/ordering"
	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCardRepository_Reorder_RewritesListAndOrder(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	destList := uuid.New()
	updates := []ordering.CardUpdate{
		{ID: uuid.New(), ListID: destList, Order: 3},
		{ID: uuid.New(), ListID: destList, Order: 1},
	}

	mock.ExpectBegin()
	for _, u := range updates {
		// Map updates are applied in sorted column order: list_id first.
		mock.ExpectExec(`UPDATE "cards" SET "list_id"=.*,"order_index"=.*`).
			WithArgs(u.ListID, u.Order, u.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := cardRepo.Reorder(context.Background(), updates)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Reorder_RollsBackOnMidBatchFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()
	updates := []ordering.CardUpdate{
		{ID: uuid.New(), ListID: listID, Order: 1},
		{ID: uuid.New(), ListID: listID, Order: 2},
		{ID: uuid.New(), ListID: listID, Order: 3},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "list_id"=.*,"order_index"=.*`).
		WithArgs(updates[0].ListID, updates[0].Order, updates[0].ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cards" SET "list_id"=.*,"order_index"=.*`).
		WithArgs(updates[1].ListID, updates[1].Order, updates[1].ID).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := cardRepo.Reorder(context.Background(), updates)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Reorder_UnknownIDIsSilentNoOp(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	updates := []ordering.CardUpdate{{ID: uuid.New(), ListID: uuid.New(), Order: 1}}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "list_id"=.*,"order_index"=.*`).
		WithArgs(updates[0].ListID, updates[0].Order, updates[0].ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := cardRepo.Reorder(context.Background(), updates)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_CountByListID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "cards" WHERE list_id = .*`).
		WithArgs(listID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := cardRepo.CountByListID(context.Background(), listID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_UpdateFields_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	cardID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "title"`).
		WithArgs("New title", cardID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := cardRepo.UpdateFields(context.Background(), cardID, map[string]any{"title": "New title"})

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
