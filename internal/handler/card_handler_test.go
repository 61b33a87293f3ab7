package handler_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/handler"
	"taskflow/internal/middleware"
	"taskflow/internal/realtime"
	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupCardRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	gormDB, mock := setupMockDB(t)

	cardRepo := repository.NewCardRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	cardHandler := handler.NewCardHandler(cardRepo, listRepo, boardRepo, realtime.NewHub())

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})
	r.PUT("/boards/:id/cards/reorder", cardHandler.Reorder)

	return r, mock
}

func TestReorderCards_CrossListBatch(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	router, mock := setupCardRouter(t, userID)

	expectMembership(mock, true)

	// A card moved from list A to the end of list B: the moved card
	// plus the source sibling that closed the gap.
	listA := uuid.New()
	listB := uuid.New()
	moved := uuid.New()
	shifted := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET "list_id"=.*,"order_index"=.*`).
		WithArgs(listB, 3, moved).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cards" SET "list_id"=.*,"order_index"=.*`).
		WithArgs(listA, 2, shifted).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := fmt.Sprintf(`{"card_updates":[{"id":"%s","list_id":"%s","order":3},{"id":"%s","list_id":"%s","order":2}]}`,
		moved, listB, shifted, listA)
	req, _ := http.NewRequest("PUT", "/boards/"+boardID.String()+"/cards/reorder", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderCards_MissingBatchRejected(t *testing.T) {
	router, mock := setupCardRouter(t, uuid.New())

	req, _ := http.NewRequest("PUT", "/boards/"+uuid.NewString()+"/cards/reorder", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderCards_InvalidBoardID(t *testing.T) {
	router, mock := setupCardRouter(t, uuid.New())

	req, _ := http.NewRequest("PUT", "/boards/not-a-uuid/cards/reorder", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
