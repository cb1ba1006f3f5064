package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model replaces gorm.Model with a uuid key generated on the client side, so
// the same schema works on Postgres and on the SQLite databases used in tests.
type Model struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All lists every entity in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Company{},
		&UserToCompany{},
		&FollowEdge{},
		&Project{},
		&Subscription{},
		&NotificationType{},
		&Notification{},
		&NotificationPreference{},
		&StartupView{},
		&ChatRoom{},
	}
}
