package entity

import "github.com/google/uuid"

// ChatRoom addresses the relay room shared by two companies. Company1ID is
// always the smaller id of the pair.
type ChatRoom struct {
	Model
	Company1ID uuid.UUID `gorm:"column:company1_id;type:uuid;not null;uniqueIndex:idx_company_pair" json:"company_id_1"`
	Company2ID uuid.UUID `gorm:"column:company2_id;type:uuid;not null;uniqueIndex:idx_company_pair" json:"company_id_2"`
	RoomKey    string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"room_key"`
	Company1   Company   `gorm:"foreignKey:Company1ID;constraint:OnDelete:CASCADE" json:"-"`
	Company2   Company   `gorm:"foreignKey:Company2ID;constraint:OnDelete:CASCADE" json:"-"`
}
