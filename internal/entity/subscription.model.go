package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Subscription struct {
	Model
	CreatorID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_creator_project" json:"creator"`
	ProjectID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_creator_project;index" json:"project"`
	InvestmentShare decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"investment_share"`
	Creator         User            `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	Project         Project         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}
