package http

import (
	"net/http"
	"strconv"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/gin-gonic/gin"
)

func FollowStartup(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		startupID, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		edge, err := ctx.Follows.Follow(c.Request.Context(), userID, startupID)
		if err != nil {
			respondError(ctx, c, "follow startup", err)
			return
		}

		c.JSON(http.StatusCreated, edge)
	}
}

func UnfollowStartup(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		startupID, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		if err := ctx.Follows.Unfollow(c.Request.Context(), userID, startupID); err != nil {
			respondError(ctx, c, "unfollow startup", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"detail": "Successfully unfollowed the startup."})
	}
}

// ListFollowedStartups pages through the startups the caller's enterprise
// follows. Malformed paging values fall back to the defaults.
func ListFollowedStartups(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		query := services.FollowedQuery{
			Search:  c.Query("search"),
			OrderBy: c.Query("order_by"),
			Limit:   queryInt(c, "limit"),
			Offset:  queryInt(c, "offset"),
		}

		page, err := ctx.Follows.ListFollowed(c.Request.Context(), userID, query)
		if err != nil {
			respondError(ctx, c, "list followed startups", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count":   page.Count,
			"limit":   page.Limit,
			"offset":  page.Offset,
			"results": newCompanyResponses(page.Results),
		})
	}
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
