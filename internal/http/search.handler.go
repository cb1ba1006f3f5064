package http

import (
	"net/http"
	"strconv"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 20

func SearchCompanies(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
			return
		}

		companyType := entity.CompanyType(c.Query("type"))
		if companyType != "" && !companyType.Valid() {
			fieldError(c, "type", "Invalid company type.")
			return
		}

		limit := int64(defaultSearchLimit)
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				fieldError(c, "limit", "A valid positive integer is required.")
				return
			}
			limit = parsed
		}

		hits, err := ctx.Search.Search(c.Request.Context(), query, companyType, limit)
		if err != nil {
			respondError(ctx, c, "perform search", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": hits})
	}
}
