package services

import (
	"context"
	"time"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewHistory remembers which startup profiles a user looked at.
type ViewHistory struct {
	db  *gorm.DB
	now func() time.Time
}

func NewViewHistory(db *gorm.DB) *ViewHistory {
	return &ViewHistory{db: db, now: time.Now}
}

// Record stores a view, refreshing viewed_at when the user has seen the
// startup before.
func (h *ViewHistory) Record(ctx context.Context, userID, startupID uuid.UUID) (*entity.StartupView, error) {
	db := h.db.WithContext(ctx)

	startup, err := loadStartup(db, startupID)
	if err != nil {
		return nil, err
	}

	view := entity.StartupView{UserID: userID, CompanyID: startup.ID, ViewedAt: h.now().UTC()}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewed_at", "updated_at"}),
	}).Create(&view).Error
	if err != nil {
		return nil, err
	}

	var stored entity.StartupView
	if err := db.Preload("Company").Where("user_id = ? AND company_id = ?", userID, startup.ID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (h *ViewHistory) List(ctx context.Context, userID uuid.UUID) ([]entity.StartupView, error) {
	var views []entity.StartupView
	err := h.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ?", userID).
		Order("viewed_at DESC, id").
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (h *ViewHistory) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := h.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.StartupView{})
	return result.RowsAffected, result.Error
}
