package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Preferences struct {
	db    *gorm.DB
	types *TypeCache
}

func NewPreferences(db *gorm.DB, types *TypeCache) *Preferences {
	return &Preferences{db: db, types: types}
}

func (p *Preferences) List(ctx context.Context, userID uuid.UUID) ([]entity.NotificationPreference, error) {
	var prefs []entity.NotificationPreference
	if err := p.db.WithContext(ctx).Preload("Type").Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		return nil, err
	}

	sort.Slice(prefs, func(a, b int) bool {
		return prefs[a].Type.Name < prefs[b].Type.Name
	})
	return prefs, nil
}

// Set stores the user's choice for one event type, replacing any earlier one.
func (p *Preferences) Set(ctx context.Context, userID uuid.UUID, typeName string, enabled bool) (*entity.NotificationPreference, error) {
	t, err := p.types.Get(ctx, typeName)
	if err != nil {
		return nil, err
	}

	db := p.db.WithContext(ctx)
	pref := entity.NotificationPreference{UserID: userID, TypeID: t.ID, Enabled: enabled}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "type_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"enabled":    enabled,
			"updated_at": time.Now(),
		}),
	}).Create(&pref).Error; err != nil {
		return nil, fmt.Errorf("failed to store notification preference: %w", err)
	}

	var stored entity.NotificationPreference
	if err := db.Preload("Type").Where("user_id = ? AND type_id = ?", userID, t.ID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Reset removes the stored choice so the default applies again.
func (p *Preferences) Reset(ctx context.Context, userID uuid.UUID, typeName string) error {
	t, err := p.types.Get(ctx, typeName)
	if err != nil {
		return err
	}

	result := p.db.WithContext(ctx).Where("user_id = ? AND type_id = ?", userID, t.ID).Delete(&entity.NotificationPreference{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPreferenceNotFound
	}
	return nil
}
