package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Inbox owns the persisted notifications of each user.
type Inbox struct {
	db     *gorm.DB
	logger *zap.Logger
	types  *TypeCache
}

func NewInbox(db *gorm.DB, logger *zap.Logger, types *TypeCache) *Inbox {
	return &Inbox{db: db, logger: logger, types: types}
}

// Upsert creates the notification for (user, type, entity) or, when one
// already exists, replaces its content and marks it unread again.
func (i *Inbox) Upsert(ctx context.Context, userID uuid.UUID, typeName string, ref entity.EntityRef, content string, data datatypes.JSON) (*entity.Notification, error) {
	t, err := i.types.Get(ctx, typeName)
	if err != nil {
		return nil, err
	}
	if ref.IsNone() {
		ref = entity.NoEntity()
	}

	db := i.db.WithContext(ctx)
	notification := entity.Notification{
		UserID:     userID,
		TypeID:     t.ID,
		EntityKind: ref.Kind,
		EntityID:   ref.ID,
		Content:    content,
		Data:       data,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "type_id"}, {Name: "entity_kind"}, {Name: "entity_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"content":    content,
			"data":       data,
			"read":       false,
			"updated_at": time.Now(),
		}),
	}).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert notification: %w", err)
	}

	var stored entity.Notification
	if err := db.Preload("Type").
		Where("user_id = ? AND type_id = ? AND entity_kind = ? AND entity_id = ?", userID, t.ID, ref.Kind, ref.ID).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload notification: %w", err)
	}
	return &stored, nil
}

func (i *Inbox) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	query := i.db.WithContext(ctx).Preload("Type").Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []entity.Notification
	if err := query.Order("updated_at DESC").Order("id").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (i *Inbox) SetRead(ctx context.Context, userID, notificationID uuid.UUID, read bool) (*entity.Notification, error) {
	db := i.db.WithContext(ctx)

	result := db.Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", read)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotificationNotFound
	}

	var notification entity.Notification
	if err := db.Preload("Type").First(&notification, "id = ?", notificationID).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (i *Inbox) SetAllRead(ctx context.Context, userID uuid.UUID, read bool) (int64, error) {
	result := i.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND read = ?", userID, !read).
		Update("read", read)
	return result.RowsAffected, result.Error
}

func (i *Inbox) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	result := i.db.WithContext(ctx).Where("id = ? AND user_id = ?", notificationID, userID).Delete(&entity.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// Clear deletes every notification of the user and returns how many went.
func (i *Inbox) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := i.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}
