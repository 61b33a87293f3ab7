package handler

import (
	"net/http"

	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardRepo *repository.BoardRepository
	listRepo  *repository.ListRepository
	cardRepo  *repository.CardRepository
}

func NewBoardHandler(boardRepo *repository.BoardRepository, listRepo *repository.ListRepository, cardRepo *repository.CardRepository) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		listRepo:  listRepo,
		cardRepo:  cardRepo,
	}
}

type CreateBoardRequest struct {
	Title           string `json:"title" binding:"required"`
	BackgroundColor string `json:"background_color"`
}

type BoardResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	BackgroundColor string `json:"background_color"`
}

// BoardDataResponse is the full board fetch: lists and cards come
// sorted ascending by order_index, but clients re-sort defensively.
type BoardDataResponse struct {
	Board BoardResponse  `json:"board"`
	Lists []ListResponse `json:"lists"`
	Cards []CardResponse `json:"cards"`
}

func toBoardResponse(b *model.Board) BoardResponse {
	return BoardResponse{
		ID:              b.ID.String(),
		Title:           b.Title,
		BackgroundColor: b.BackgroundColor,
	}
}

// Create makes a new board with its owner membership and the three
// default lists in one transaction.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board title is required"})
		return
	}

	board := &model.Board{
		Title:           req.Title,
		BackgroundColor: req.BackgroundColor,
	}
	if board.BackgroundColor == "" {
		board.BackgroundColor = "#0079bf"
	}

	if err := h.boardRepo.CreateWithDefaults(c.Request.Context(), board, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// GetAll returns the boards the caller is a member of, newest first.
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID returns the board together with all its lists and cards,
// both sorted by order_index.
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if !requireMember(c, h.boardRepo, boardID, userID) {
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board details"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	lists, err := h.listRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board details"})
		return
	}

	cards, err := h.cardRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board details"})
		return
	}

	resp := BoardDataResponse{
		Board: toBoardResponse(board),
		Lists: make([]ListResponse, len(lists)),
		Cards: make([]CardResponse, len(cards)),
	}
	for i := range lists {
		resp.Lists[i] = toListResponse(&lists[i])
	}
	for i := range cards {
		resp.Cards[i] = toCardResponse(&cards[i])
	}

	c.JSON(http.StatusOK, resp)
}
