package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ListChatRooms(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		rooms, err := ctx.ChatRooms.List(c.Request.Context(), userID)
		if err != nil {
			respondError(ctx, c, "list chat rooms", err)
			return
		}

		c.JSON(http.StatusOK, rooms)
	}
}

// OpenChatRoom returns the room between the caller's company and another
// company, creating it on first use.
func OpenChatRoom(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type openRoomRequest struct {
			CompanyID      uuid.UUID `json:"company_id" binding:"required"`
			OtherCompanyID uuid.UUID `json:"other_company_id" binding:"required"`
		}

		var request openRoomRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		room, err := ctx.ChatRooms.Open(c.Request.Context(), userID, request.CompanyID, request.OtherCompanyID)
		if err != nil {
			respondError(ctx, c, "open chat room", err)
			return
		}

		c.JSON(http.StatusOK, room)
	}
}
