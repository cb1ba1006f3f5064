package entity

import "github.com/google/uuid"

// FollowEdge is a directed investor -> startup relation.
type FollowEdge struct {
	Model
	InvestorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_investor_startup" json:"investor"`
	StartupID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_investor_startup;index" json:"startup"`
	Investor   Company   `gorm:"foreignKey:InvestorID;constraint:OnDelete:CASCADE" json:"-"`
	Startup    Company   `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FollowEdge) TableName() string {
	return "company_followers"
}
