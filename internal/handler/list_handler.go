package handler

import (
	"errors"
	"log"
	"net/http"

	"taskflow/internal/model"
	"taskflow/internal/ordering"
	"taskflow/internal/realtime"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListHandler struct {
	listRepo  *repository.ListRepository
	boardRepo *repository.BoardRepository
	hub       *realtime.Hub
}

func NewListHandler(listRepo *repository.ListRepository, boardRepo *repository.BoardRepository, hub *realtime.Hub) *ListHandler {
	return &ListHandler{
		listRepo:  listRepo,
		boardRepo: boardRepo,
		hub:       hub,
	}
}

type CreateListRequest struct {
	BoardID    string `json:"board_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"order_index" binding:"required,min=1"`
	OriginID   string `json:"origin_id"`
}

type ReorderListsRequest struct {
	ListUpdates []ordering.ListUpdate `json:"list_updates" binding:"required,min=1"`
	OriginID    string                `json:"origin_id"`
}

type MoveListRequest struct {
	Position *int   `json:"position" binding:"required"`
	OriginID string `json:"origin_id"`
}

type ListResponse struct {
	ID         string `json:"id"`
	BoardID    string `json:"board_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

func toListResponse(l *model.List) ListResponse {
	return ListResponse{
		ID:         l.ID.String(),
		BoardID:    l.BoardID.String(),
		Title:      l.Title,
		OrderIndex: l.OrderIndex,
	}
}

func originID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Create inserts a list with the order the client proposed (sibling
// count + 1) and echoes it back verbatim, then notifies the board's
// other viewers so their sibling counts stay consistent.
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required list fields"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if !requireMember(c, h.boardRepo, boardID, userID) {
		return
	}

	list := &model.List{
		BoardID:    boardID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	resp := toListResponse(list)
	h.hub.Publish(realtime.Event{
		Type:    realtime.EventListCreated,
		BoardID: boardID,
		Payload: resp,
	}, originID(req.OriginID))

	c.JSON(http.StatusCreated, resp)
}

// Reorder applies a client-computed batch of list order assignments.
// The batch is trusted to renumber the board's full sequence 1..N;
// atomicity, not validity, is enforced here.
func (h *ListHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ReorderListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List updates array is required"})
		return
	}

	if !requireMember(c, h.boardRepo, boardID, userID) {
		return
	}

	if err := h.listRepo.Reorder(c.Request.Context(), req.ListUpdates); err != nil {
		log.Printf("list reorder failed for board %s: %v", boardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist list order"})
		return
	}

	h.hub.Publish(realtime.Event{
		Type:    realtime.EventListReordered,
		BoardID: boardID,
		Payload: req.ListUpdates,
	}, originID(req.OriginID))

	c.JSON(http.StatusOK, gin.H{"message": "List order updated successfully"})
}

// Move handles a drag gesture server-side: it replans the board's
// whole list sequence around the dragged list's new slot and persists
// the resulting batch atomically.
func (h *ListHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	listID, ok := parseUUIDParam(c, "list_id")
	if !ok {
		return
	}

	var req MoveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destination position is required"})
		return
	}

	if !requireMember(c, h.boardRepo, boardID, userID) {
		return
	}

	lists, err := h.listRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lists"})
		return
	}

	_, batch, err := ordering.PlanListReorder(lists, listID, *req.Position)
	if err != nil {
		if errors.Is(err, ordering.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan move"})
		return
	}

	if len(batch) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "List order unchanged"})
		return
	}

	if err := h.listRepo.Reorder(c.Request.Context(), batch); err != nil {
		log.Printf("list move failed for board %s: %v", boardID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist list order"})
		return
	}

	h.hub.Publish(realtime.Event{
		Type:    realtime.EventListReordered,
		BoardID: boardID,
		Payload: batch,
	}, originID(req.OriginID))

	c.JSON(http.StatusOK, gin.H{"message": "List order updated successfully", "list_updates": batch})
}
