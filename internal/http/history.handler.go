package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/gin-gonic/gin"
)

func newViewResponse(v *entity.StartupView) viewResponse {
	return viewResponse{Startup: newCompanyResponse(&v.Company), ViewedAt: v.ViewedAt}
}

func ListViewHistory(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		views, err := ctx.History.List(c.Request.Context(), userID)
		if err != nil {
			respondError(ctx, c, "list view history", err)
			return
		}

		response := make([]viewResponse, 0, len(views))
		for i := range views {
			response = append(response, newViewResponse(&views[i]))
		}
		c.JSON(http.StatusOK, response)
	}
}

func RecordStartupView(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		startupID, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		view, err := ctx.History.Record(c.Request.Context(), userID, startupID)
		if err != nil {
			respondError(ctx, c, "record startup view", err)
			return
		}

		c.JSON(http.StatusOK, newViewResponse(view))
	}
}

func ClearViewHistory(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		deleted, err := ctx.History.Clear(c.Request.Context(), userID)
		if err != nil {
			respondError(ctx, c, "clear view history", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
