package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUserInfo returns the authenticated user with the companies they act for.
func GetUserInfo(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requestUser(ctx, c)
		if !ok {
			return
		}

		companies, err := utils.UserCompanies(ctx.DB.WithContext(c.Request.Context()), user.ID)
		if err != nil {
			ctx.Logger.Error("Failed to get user companies", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user companies"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "companies": newCompanyResponses(companies)})
	}
}
