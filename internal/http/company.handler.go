package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func RegisterCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type registerCompanyRequest struct {
			CompanyName   string             `json:"company_name"`
			Description   string             `json:"description"`
			Website       string             `json:"website"`
			StartupLogo   string             `json:"startup_logo"`
			Type          entity.CompanyType `json:"type"`
			Industry      string             `json:"industry"`
			Size          string             `json:"size"`
			FundingTarget *decimal.Decimal   `json:"funding_target"`
		}

		var request registerCompanyRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		input := services.CompanyInput{
			CompanyName: request.CompanyName,
			Description: request.Description,
			Website:     request.Website,
			StartupLogo: request.StartupLogo,
			Type:        request.Type,
			Industry:    request.Industry,
			Size:        request.Size,
		}
		if request.FundingTarget != nil {
			input.FundingTarget = *request.FundingTarget
		}

		company, err := ctx.Registry.Register(c.Request.Context(), userID, input)
		if err != nil {
			respondError(ctx, c, "register company", err)
			return
		}

		c.JSON(http.StatusCreated, newCompanyResponse(company))
	}
}

func ListCompanies(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyType := entity.CompanyType(c.Query("type"))
		if companyType != "" && !companyType.Valid() {
			fieldError(c, "type", "Invalid company type.")
			return
		}

		companies, err := ctx.Registry.List(c.Request.Context(), companyType)
		if err != nil {
			respondError(ctx, c, "list companies", err)
			return
		}

		c.JSON(http.StatusOK, newCompanyResponses(companies))
	}
}

func GetCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := pathID(c, "id")
		if !ok {
			return
		}

		company, err := ctx.Registry.Get(c.Request.Context(), companyID)
		if err != nil {
			respondError(ctx, c, "get company", err)
			return
		}

		c.JSON(http.StatusOK, newCompanyResponse(company))
	}
}

// UpdateCompany applies a partial profile edit. Followers of the company are
// notified when a field actually changed.
func UpdateCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type updateCompanyRequest struct {
			CompanyName   *string             `json:"company_name"`
			Description   *string             `json:"description"`
			Website       *string             `json:"website"`
			StartupLogo   *string             `json:"startup_logo"`
			Type          *entity.CompanyType `json:"type"`
			Industry      *string             `json:"industry"`
			Size          *string             `json:"size"`
			FundingTarget *decimal.Decimal    `json:"funding_target"`
		}

		companyID, ok := pathID(c, "id")
		if !ok {
			return
		}

		var request updateCompanyRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		patch := services.CompanyPatch{
			CompanyName:   request.CompanyName,
			Description:   request.Description,
			Website:       request.Website,
			StartupLogo:   request.StartupLogo,
			Type:          request.Type,
			Industry:      request.Industry,
			Size:          request.Size,
			FundingTarget: request.FundingTarget,
		}

		company, _, err := ctx.Registry.Update(c.Request.Context(), userID, companyID, patch)
		if err != nil {
			respondError(ctx, c, "update company", err)
			return
		}

		c.JSON(http.StatusOK, newCompanyResponse(company))
	}
}

func GetCompanyMembers(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		if err := ctx.Registry.EnsureMember(c.Request.Context(), userID, companyID); err != nil {
			respondError(ctx, c, "get company members", err)
			return
		}

		members, err := utils.CompanyMembers(ctx.DB.WithContext(c.Request.Context()), companyID)
		if err != nil {
			ctx.Logger.Error("Failed to get company members from database", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get company members from database"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"members": members})
	}
}
