package http

import (
	"errors"
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var kindStatus = map[services.Kind]int{
	services.KindValidation:  http.StatusBadRequest,
	services.KindPermission:  http.StatusForbidden,
	services.KindNotFound:    http.StatusNotFound,
	services.KindUnavailable: http.StatusServiceUnavailable,
}

// respondError writes the response for an error returned by a service.
// Domain errors keep their message; anything else becomes a 500 with
// "Failed to <action>".
func respondError(ctx *appcontext.Context, c *gin.Context, action string, err error) {
	var fieldErrs services.FieldErrors
	if errors.As(err, &fieldErrs) {
		body := gin.H{}
		for field, message := range fieldErrs {
			body[field] = []string{message}
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		status := kindStatus[domainErr.Kind]
		if status == 0 {
			status = http.StatusBadRequest
		}
		if status >= http.StatusInternalServerError {
			ctx.Logger.Warn("Failed to "+action, zap.Error(err))
		}

		if domainErr.Field != "" {
			c.JSON(status, gin.H{domainErr.Field: []string{domainErr.Message}})
			return
		}
		c.JSON(status, gin.H{domainErr.Key: domainErr.Message})
		return
	}

	ctx.Logger.Error("Failed to "+action, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}

func fieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{field: []string{message}})
}

func requestUserID(ctx *appcontext.Context, c *gin.Context) (uuid.UUID, bool) {
	userID, err := utils.GetUserIDFromClaims(c)
	if err != nil {
		ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// requestUser loads the authenticated user. A token for a deleted user is
// treated as unauthenticated.
func requestUser(ctx *appcontext.Context, c *gin.Context) (*entity.User, bool) {
	userID, ok := requestUserID(ctx, c)
	if !ok {
		return nil, false
	}

	var user entity.User
	if err := ctx.DB.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		ctx.Logger.Error("Failed to find user", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return &user, true
}

// pathID parses a uuid path parameter. Malformed ids are reported as not
// found, like ids that do not exist.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return uuid.Nil, false
	}
	return id, true
}
