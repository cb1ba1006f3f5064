package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	Model
	Name            string              `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Status          ProjectStatus       `gorm:"type:varchar(20);not null" json:"status"`
	Information     string              `gorm:"type:text" json:"information"`
	RequiredFunding decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"required_funding"`
	RaisedAmount    decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"raised_amount"`
	CompanyID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"company"`
	Company         Company             `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string {
	return "project"
}
