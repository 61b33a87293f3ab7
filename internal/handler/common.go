package handler

import (
	"net/http"

	"taskflow/internal/middleware"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user id the auth middleware
// put into the context. It writes the error response itself and
// returns false when the request cannot proceed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// requireMember rejects the request unless the user belongs to the
// board. Like currentUserID it responds on failure.
func requireMember(c *gin.Context, boards *repository.BoardRepository, boardID, userID uuid.UUID) bool {
	member, err := boards.IsMember(c.Request.Context(), boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
		return false
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this board"})
		return false
	}
	return true
}

// parseUUIDParam parses a path parameter as a uuid, responding with
// 400 on malformed input.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}
