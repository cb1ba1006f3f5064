package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultEmailEnabled applies when a user has no preference row for an event
// type: email is on until the user opts out.
const DefaultEmailEnabled = true

// EmailGate decides per user and event type whether a notification is also
// mailed, and swallows transport failures.
type EmailGate struct {
	db     *gorm.DB
	logger *zap.Logger
	types  *TypeCache
	mailer Mailer
}

func NewEmailGate(db *gorm.DB, logger *zap.Logger, types *TypeCache, mailer Mailer) *EmailGate {
	return &EmailGate{db: db, logger: logger, types: types, mailer: mailer}
}

func (g *EmailGate) Enabled(ctx context.Context, userID uuid.UUID, eventType string) (bool, error) {
	t, err := g.types.Get(ctx, eventType)
	if err != nil {
		return false, err
	}

	var pref entity.NotificationPreference
	err = g.db.WithContext(ctx).Where("user_id = ? AND type_id = ?", userID, t.ID).Take(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultEmailEnabled, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load notification preference: %w", err)
	}
	return pref.Enabled, nil
}

// MaybeSend mails message to user when their preference allows it. It reports
// whether a message was handed to the transport successfully.
func (g *EmailGate) MaybeSend(ctx context.Context, user entity.User, eventType, message string) bool {
	enabled, err := g.Enabled(ctx, user.ID, eventType)
	if err != nil {
		g.logger.Error("Failed to check notification preference", zap.Error(err), zap.String("user_id", user.ID.String()), zap.String("type", eventType))
		return false
	}
	if !enabled || user.Email == "" {
		return false
	}

	subject := fmt.Sprintf("Notification: %s", eventType)
	if err := g.mailer.Send(ctx, user.Email, subject, message); err != nil {
		g.logger.Error("Email notification failed", zap.Error(err), zap.String("user_id", user.ID.String()), zap.String("type", eventType))
		return false
	}
	return true
}
