package http

import (
	"time"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Amounts and shares are rendered with two decimal places, e.g. "25.50".

type companyResponse struct {
	ID            uuid.UUID          `json:"id"`
	CompanyName   string             `json:"company_name"`
	Description   string             `json:"description"`
	Website       string             `json:"website"`
	StartupLogo   string             `json:"startup_logo"`
	Type          entity.CompanyType `json:"type"`
	Industry      string             `json:"industry"`
	Size          string             `json:"size"`
	FundingTarget string             `json:"funding_target"`
	RaisedAmount  string             `json:"raised_amount"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func newCompanyResponse(c *entity.Company) companyResponse {
	return companyResponse{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		Description:   c.Description,
		Website:       c.Website,
		StartupLogo:   c.StartupLogo,
		Type:          c.Type,
		Industry:      c.Industry,
		Size:          c.Size,
		FundingTarget: c.FundingTarget.StringFixed(2),
		RaisedAmount:  c.RaisedAmount.StringFixed(2),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func newCompanyResponses(companies []entity.Company) []companyResponse {
	out := make([]companyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, newCompanyResponse(&companies[i]))
	}
	return out
}

type projectResponse struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Status          entity.ProjectStatus `json:"status"`
	Information     string               `json:"information"`
	RequiredFunding string               `json:"required_funding"`
	RaisedAmount    *string              `json:"raised_amount"`
	Company         uuid.UUID            `json:"company"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func newProjectResponse(p *entity.Project) projectResponse {
	resp := projectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Status:          p.Status,
		Information:     p.Information,
		RequiredFunding: p.RequiredFunding.StringFixed(2),
		Company:         p.CompanyID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.RaisedAmount.Valid {
		raised := p.RaisedAmount.Decimal.StringFixed(2)
		resp.RaisedAmount = &raised
	}
	return resp
}

type subscriptionResponse struct {
	ID              uuid.UUID `json:"id"`
	Creator         uuid.UUID `json:"creator"`
	Project         uuid.UUID `json:"project"`
	InvestmentShare string    `json:"investment_share"`
	CreatedAt       time.Time `json:"created_at"`
}

func newSubscriptionResponse(s *entity.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:              s.ID,
		Creator:         s.CreatorID,
		Project:         s.ProjectID,
		InvestmentShare: s.InvestmentShare.StringFixed(2),
		CreatedAt:       s.CreatedAt,
	}
}

type notificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Type      string            `json:"type"`
	Entity    *entity.EntityRef `json:"entity"`
	Content   string            `json:"content"`
	Data      datatypes.JSON    `json:"data"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func newNotificationResponse(n *entity.Notification) notificationResponse {
	resp := notificationResponse{
		ID:        n.ID,
		Type:      n.Type.Name,
		Content:   n.Content,
		Data:      n.Data,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if ref := n.Entity(); !ref.IsNone() {
		resp.Entity = &ref
	}
	return resp
}

type preferenceResponse struct {
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

type viewResponse struct {
	Startup  companyResponse `json:"startup"`
	ViewedAt time.Time       `json:"viewed_at"`
}
