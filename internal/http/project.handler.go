package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type projectRequest struct {
	Name            string               `json:"name"`
	Status          entity.ProjectStatus `json:"status"`
	Information     string               `json:"information"`
	RequiredFunding *decimal.Decimal     `json:"required_funding"`
	RaisedAmount    decimal.NullDecimal  `json:"raised_amount"`
	Company         *uuid.UUID           `json:"company"`
}

func (r projectRequest) input() services.ProjectInput {
	input := services.ProjectInput{
		Name:         r.Name,
		Status:       r.Status,
		Information:  r.Information,
		RaisedAmount: r.RaisedAmount,
	}
	if r.RequiredFunding != nil {
		input.RequiredFunding = *r.RequiredFunding
	}
	if r.Company != nil {
		input.CompanyID = *r.Company
	}
	return input
}

func ListProjects(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var companyID uuid.UUID
		if raw := c.Query("company"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				fieldError(c, "company", "Must be a valid UUID.")
				return
			}
			companyID = parsed
		}

		projects, err := ctx.Projects.List(c.Request.Context(), companyID)
		if err != nil {
			respondError(ctx, c, "get projects", err)
			return
		}

		response := make([]projectResponse, 0, len(projects))
		for i := range projects {
			response = append(response, newProjectResponse(&projects[i]))
		}
		c.JSON(http.StatusOK, response)
	}
}

func CreateProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request projectRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		missing := services.FieldErrors{}
		if request.Company == nil {
			missing["company"] = requiredField
		}
		if request.RequiredFunding == nil {
			missing["required_funding"] = requiredField
		}
		if err := missing.OrNil(); err != nil {
			respondError(ctx, c, "create project", err)
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		project, err := ctx.Projects.Create(c.Request.Context(), userID, request.input())
		if err != nil {
			respondError(ctx, c, "create project", err)
			return
		}

		c.JSON(http.StatusCreated, newProjectResponse(project))
	}
}

func GetProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		project, err := ctx.Projects.Get(c.Request.Context(), id)
		if err != nil {
			respondError(ctx, c, "get project", err)
			return
		}

		c.JSON(http.StatusOK, newProjectResponse(project))
	}
}

func UpdateProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var request projectRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}
		if request.RequiredFunding == nil {
			fieldError(c, "required_funding", requiredField)
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		project, err := ctx.Projects.Update(c.Request.Context(), userID, id, request.input())
		if err != nil {
			respondError(ctx, c, "update project", err)
			return
		}

		c.JSON(http.StatusOK, newProjectResponse(project))
	}
}

func DeleteProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		userID, ok := requestUserID(ctx, c)
		if !ok {
			return
		}

		if err := ctx.Projects.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(ctx, c, "delete project", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
