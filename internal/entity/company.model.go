package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CompanyType string

const (
	CompanyTypeStartup    CompanyType = "startup"
	CompanyTypeEnterprise CompanyType = "enterprise"
	CompanyTypeNonprofit  CompanyType = "nonprofit"
)

var CompanyTypes = []CompanyType{CompanyTypeStartup, CompanyTypeEnterprise, CompanyTypeNonprofit}

func (t CompanyType) Valid() bool {
	for _, v := range CompanyTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Company struct {
	Model
	CompanyName   string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"company_name"`
	Description   string          `gorm:"type:text" json:"description"`
	Website       string          `gorm:"type:varchar(255)" json:"website"`
	StartupLogo   string          `gorm:"type:varchar(255)" json:"startup_logo"`
	Type          CompanyType     `gorm:"type:varchar(20);not null;index" json:"type"`
	Industry      string          `gorm:"type:varchar(100)" json:"industry"`
	Size          string          `gorm:"type:varchar(50)" json:"size"`
	FundingTarget decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"funding_target"`
	RaisedAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"raised_amount"`
	Members       []UserToCompany `gorm:"foreignKey:CompanyID" json:"-"`
}

func (c *Company) IsStartup() bool {
	return c.Type == CompanyTypeStartup
}

func (c *Company) IsEnterprise() bool {
	return c.Type == CompanyTypeEnterprise
}

// UserToCompany links a user to a company they act for. A user holds at most
// one membership per company type.
type UserToCompany struct {
	Model
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_company" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_company;index" json:"company_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Company   Company   `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserToCompany) TableName() string {
	return "user_to_company"
}

// StartupView records the last time a user looked at a company profile.
type StartupView struct {
	Model
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_view_user_company" json:"-"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_view_user_company" json:"startup_id"`
	ViewedAt  time.Time `gorm:"not null;index" json:"viewed_at"`
	Company   Company   `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}
