package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListPreferences(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		preferences, err := ctx.Preferences.List(c.Request.Context(), userID)
		if err != nil {
			respondError(ctx, c, "list notification preferences", err)
			return
		}

		response := make([]preferenceResponse, 0, len(preferences))
		for _, p := range preferences {
			response = append(response, preferenceResponse{Type: p.Type.Name, Enabled: p.Enabled})
		}
		c.JSON(http.StatusOK, response)
	}
}

func SetPreference(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type setPreferenceRequest struct {
			Enabled *bool `json:"enabled"`
		}

		var request setPreferenceRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}
		if request.Enabled == nil {
			fieldError(c, "enabled", requiredField)
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		preference, err := ctx.Preferences.Set(c.Request.Context(), userID, c.Param("type"), *request.Enabled)
		if err != nil {
			respondError(ctx, c, "set notification preference", err)
			return
		}

		c.JSON(http.StatusOK, preferenceResponse{Type: preference.Type.Name, Enabled: preference.Enabled})
	}
}

// ResetPreference deletes the stored preference so the default applies again.
func ResetPreference(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		if err := ctx.Preferences.Reset(c.Request.Context(), userID, c.Param("type")); err != nil {
			respondError(ctx, c, "reset notification preference", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
