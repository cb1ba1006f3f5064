package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TypeNewFollower           = "new_follower"
	TypeNewComment            = "new_comment"
	TypeNewLike               = "new_like"
	TypeNewPost               = "new_post"
	TypeNewMessage            = "new_message"
	TypeNewReport             = "new_report"
	TypeNewRequest            = "new_request"
	TypeNewConnection         = "new_connection"
	TypeNewRecommendation     = "new_recommendation"
	TypeNewSystemNotification = "new_system_notification"
)

// NotificationTypeNames is the closed set of event types a notification or a
// preference may reference.
var NotificationTypeNames = []string{
	TypeNewFollower,
	TypeNewComment,
	TypeNewLike,
	TypeNewPost,
	TypeNewMessage,
	TypeNewReport,
	TypeNewRequest,
	TypeNewConnection,
	TypeNewRecommendation,
	TypeNewSystemNotification,
}

func IsNotificationType(name string) bool {
	for _, n := range NotificationTypeNames {
		if n == name {
			return true
		}
	}
	return false
}

type NotificationType struct {
	Model
	Name string `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
}

type EntityKind string

const (
	EntityNone    EntityKind = "none"
	EntityCompany EntityKind = "company"
	EntityProject EntityKind = "project"
)

// EntityRef points a notification at the record it is about. The zero kind
// is normalized to EntityNone so (user, type, entity) stays a usable unique key.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

func CompanyRef(id uuid.UUID) EntityRef {
	return EntityRef{Kind: EntityCompany, ID: id}
}

func NoEntity() EntityRef {
	return EntityRef{Kind: EntityNone, ID: uuid.Nil}
}

func (r EntityRef) IsNone() bool {
	return r.Kind == "" || r.Kind == EntityNone
}

type Notification struct {
	Model
	UserID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_notification_key" json:"user"`
	TypeID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_notification_key" json:"-"`
	EntityKind EntityKind       `gorm:"type:varchar(20);not null;uniqueIndex:idx_notification_key" json:"-"`
	EntityID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_notification_key" json:"-"`
	Content    string           `gorm:"type:text;not null" json:"content"`
	Data       datatypes.JSON   `json:"data"`
	Read       bool             `gorm:"not null" json:"read"`
	Type       NotificationType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"-"`
	User       User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (n *Notification) Entity() EntityRef {
	if n.EntityKind == "" {
		return NoEntity()
	}
	return EntityRef{Kind: n.EntityKind, ID: n.EntityID}
}

type NotificationPreference struct {
	Model
	UserID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_preference_user_type" json:"-"`
	TypeID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_preference_user_type" json:"-"`
	Enabled bool             `gorm:"not null" json:"enabled"`
	Type    NotificationType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"-"`
	User    User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
