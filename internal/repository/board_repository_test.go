package repository_test

import (
	"context"
	"testing"

	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBoardRepository_CreateWithDefaults(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	ownerID := uuid.New()
	board := &model.Board{Title: "Project", BackgroundColor: "#0079bf"}

	// One transaction: board, owner membership, three default lists.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(boardID.String()))
	mock.ExpectQuery(`INSERT INTO "board_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	for range model.DefaultListTitles {
		mock.ExpectQuery(`INSERT INTO "lists"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	}
	mock.ExpectCommit()

	err := boardRepo.CreateWithDefaults(context.Background(), board, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, boardID, board.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateWithDefaults_RollsBackOnListFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	board := &model.Board{Title: "Project", BackgroundColor: "#0079bf"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "board_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "lists"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := boardRepo.CreateWithDefaults(context.Background(), board, uuid.New())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_IsMember(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "board_members"`).
		WithArgs(boardID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	member, err := boardRepo.IsMember(context.Background(), boardID, userID)

	assert.NoError(t, err)
	assert.True(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_IsMember_NotAMember(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "board_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	member, err := boardRepo.IsMember(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.False(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}
