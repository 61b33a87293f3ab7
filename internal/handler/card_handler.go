package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/ordering"
	"taskflow/internal/realtime"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardRepo  *repository.CardRepository
	listRepo  *repository.ListRepository
	boardRepo *repository.BoardRepository
	hub       *realtime.Hub
}

func NewCardHandler(cardRepo *repository.CardRepository, listRepo *repository.ListRepository, boardRepo *repository.BoardRepository, hub *realtime.Hub) *CardHandler {
	return &CardHandler{
		cardRepo:  cardRepo,
		listRepo:  listRepo,
		boardRepo: boardRepo,
		hub:       hub,
	}
}

type CreateCardRequest struct {
	ListID     string `json:"list_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"order_index" binding:"required,min=1"`
	OriginID   string `json:"origin_id"`
}

type ReorderCardsRequest struct {
	CardUpdates []ordering.CardUpdate `json:"card_updates" binding:"required,min=1"`
	OriginID    string                `json:"origin_id"`
}

type MoveCardRequest struct {
	ListID   string `json:"list_id" binding:"required"`
	Position *int   `json:"position" binding:"required"`
	OriginID string `json:"origin_id"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type CardResponse struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	OrderIndex  int        `json:"order_index"`
}

func toCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:          card.ID.String(),
		ListID:      card.ListID.String(),
		Title:       card.Title,
		Description: card.Description,
		DueDate:     card.DueDate,
		OrderIndex:  card.OrderIndex,
	}
}

// Create inserts a card at the order the client proposed (sibling
// count + 1), echoed back verbatim. Description starts empty and the
// due date unset.
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required card fields"})
		return
	}

	listID, err := uuid.Parse(req.ListID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch list"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	if !requireMember(c, h.boardRepo, list.BoardID, userID) {
		return
	}

	card := &model.Card{
		ListID:     listID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	resp := toCardResponse(card)
	h.hub.Publish(realtime.Event{
		Type:    realtime.EventCardCreated,
		BoardID: list.BoardID,
		Payload: resp,
	}, originID(req.OriginID))

	c.JSON(http.StatusCreated, resp)
}

// Reorder applies a client-computed batch of card order and list
// assignments atomically. Trusted input: the planner on the client
// renumbered every touched list in full.
func (h *CardHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Card updates array is required"})
		return
	}

	if !requireMember(c, h.boardRepo, boardID, userID) {
		return
	}

	if err := h.cardRepo.Reorder(c.Request.Context(), req.CardUpdates); err != nil {
		log.Printf("card reorder failed for board %s: %v", boardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist card movement"})
		return
	}

	h.hub.Publish(realtime.Event{
		Type:    realtime.EventCardMoved,
		BoardID: boardID,
		Payload: req.CardUpdates,
	}, originID(req.OriginID))

	c.JSON(http.StatusOK, gin.H{"message": "Card movement persisted successfully"})
}

// Move handles a drag gesture server-side. The destination may be a
// different list; the planner closes the source gap and renumbers the
// destination, and the whole batch commits in one transaction.
func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destination list and position are required"})
		return
	}

	destListID, err := uuid.Parse(req.ListID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	sourceList, err := h.listRepo.GetByID(c.Request.Context(), card.ListID)
	if err != nil || sourceList == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch list"})
		return
	}
	boardID := sourceList.BoardID

	if !requireMember(c, h.boardRepo, boardID, userID) {
		return
	}

	lists, err := h.listRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lists"})
		return
	}
	cards, err := h.cardRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	_, batch, err := ordering.PlanCardMove(lists, cards, cardID, destListID, *req.Position)
	if err != nil {
		if errors.Is(err, ordering.ErrListNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Destination list is not on this board"})
			return
		}
		if errors.Is(err, ordering.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan move"})
		return
	}

	if len(batch) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Card position unchanged"})
		return
	}

	if err := h.cardRepo.Reorder(c.Request.Context(), batch); err != nil {
		log.Printf("card move failed for board %s: %v", boardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist card movement"})
		return
	}

	h.hub.Publish(realtime.Event{
		Type:    realtime.EventCardMoved,
		BoardID: boardID,
		Payload: batch,
	}, originID(req.OriginID))

	c.JSON(http.StatusOK, gin.H{"message": "Card movement persisted successfully", "card_updates": batch})
}

// Update patches the card's title, description or due date. Ordering
// fields are never touched here; moves go through Reorder and Move.
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided for update"})
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), card.ListID)
	if err != nil || list == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch list"})
		return
	}

	if !requireMember(c, h.boardRepo, list.BoardID, userID) {
		return
	}

	updated, err := h.cardRepo.UpdateFields(c.Request.Context(), cardID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card details"})
		return
	}

	c.JSON(http.StatusOK, toCardResponse(updated))
}
