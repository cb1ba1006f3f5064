package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/gin-gonic/gin"
)

// ListNotifications returns the caller's notifications, newest first.
// ?unread=true limits the list to unread ones.
func ListNotifications(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		notifications, err := ctx.Inbox.List(c.Request.Context(), userID, c.Query("unread") == "true")
		if err != nil {
			respondError(ctx, c, "list notifications", err)
			return
		}

		response := make([]notificationResponse, 0, len(notifications))
		for i := range notifications {
			response = append(response, newNotificationResponse(&notifications[i]))
		}
		c.JSON(http.StatusOK, response)
	}
}

func MarkNotification(ctx *appcontext.Context, read bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		notification, err := ctx.Inbox.SetRead(c.Request.Context(), userID, id, read)
		if err != nil {
			respondError(ctx, c, "update notification", err)
			return
		}

		c.JSON(http.StatusOK, newNotificationResponse(notification))
	}
}

func MarkAllNotifications(ctx *appcontext.Context, read bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		updated, err := ctx.Inbox.SetAllRead(c.Request.Context(), userID, read)
		if err != nil {
			respondError(ctx, c, "update notifications", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}

func DeleteNotification(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		if err := ctx.Inbox.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(ctx, c, "delete notification", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func ClearNotifications(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		deleted, err := ctx.Inbox.Clear(c.Request.Context(), userID)
		if err != nil {
			respondError(ctx, c, "clear notifications", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
