package http

import (
	"encoding/json"
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const requiredField = "This field is required."

// subscriptionRequest keeps the raw field values so that malformed ones are
// reported per field instead of failing the whole bind.
type subscriptionRequest struct {
	InvestmentShare json.RawMessage `json:"investment_share"`
	Project         json.RawMessage `json:"project"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func (r subscriptionRequest) share(errs services.FieldErrors) decimal.Decimal {
	var share decimal.Decimal
	if !present(r.InvestmentShare) {
		errs["investment_share"] = requiredField
	} else if err := share.UnmarshalJSON(r.InvestmentShare); err != nil {
		errs["investment_share"] = "A valid number is required."
	}
	return share
}

func (r subscriptionRequest) project(errs services.FieldErrors) uuid.UUID {
	var project uuid.UUID
	if !present(r.Project) {
		errs["project"] = requiredField
	} else if err := json.Unmarshal(r.Project, &project); err != nil {
		errs["project"] = "Must be a valid UUID."
	}
	return project
}

func CreateSubscription(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request subscriptionRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		errs := services.FieldErrors{}
		share := request.share(errs)
		project := request.project(errs)
		if err := errs.OrNil(); err != nil {
			respondError(ctx, c, "create subscription", err)
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		subscription, err := ctx.Ledger.Create(c.Request.Context(), userID, project, share)
		if err != nil {
			respondError(ctx, c, "create subscription", err)
			return
		}

		c.JSON(http.StatusCreated, newSubscriptionResponse(subscription))
	}
}

func ListSubscriptions(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		subscriptions, err := ctx.Ledger.ListOwn(c.Request.Context(), userID)
		if err != nil {
			respondError(ctx, c, "list subscriptions", err)
			return
		}

		response := make([]subscriptionResponse, 0, len(subscriptions))
		for i := range subscriptions {
			response = append(response, newSubscriptionResponse(&subscriptions[i]))
		}
		c.JSON(http.StatusOK, response)
	}
}

func GetSubscription(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		subscription, err := ctx.Ledger.GetOwn(c.Request.Context(), userID, id)
		if err != nil {
			respondError(ctx, c, "get subscription", err)
			return
		}

		c.JSON(http.StatusOK, newSubscriptionResponse(subscription))
	}
}

// UpdateSubscription serves PUT and PATCH. Both are restricted to admins.
func UpdateSubscription(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requestUser(ctx, c)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			respondError(ctx, c, "update subscription", services.ErrForbidden)
			return
		}

		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var request subscriptionRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}
		errs := services.FieldErrors{}
		share := request.share(errs)
		if err := errs.OrNil(); err != nil {
			respondError(ctx, c, "update subscription", err)
			return
		}

		subscription, err := ctx.Ledger.Update(c.Request.Context(), *user, id, share)
		if err != nil {
			respondError(ctx, c, "update subscription", err)
			return
		}

		c.JSON(http.StatusOK, newSubscriptionResponse(subscription))
	}
}

func DeleteSubscription(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requestUser(ctx, c)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			respondError(ctx, c, "delete subscription", services.ErrForbidden)
			return
		}

		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := ctx.Ledger.Delete(c.Request.Context(), *user, id); err != nil {
			respondError(ctx, c, "delete subscription", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
