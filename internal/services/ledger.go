package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxProjectShare is the ceiling for the sum of shares on one project.
var MaxProjectShare = decimal.NewFromInt(100)

// SubscriptionLedger owns per-project investment share allocations.
type SubscriptionLedger struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSubscriptionLedger(db *gorm.DB, logger *zap.Logger) *SubscriptionLedger {
	return &SubscriptionLedger{db: db, logger: logger}
}

func validateShare(share decimal.Decimal) error {
	if !share.IsPositive() {
		return ErrShareNotPositive
	}
	if share.GreaterThan(MaxProjectShare) {
		return ErrShareTooLarge
	}
	if !share.Equal(share.Truncate(2)) {
		return ErrSharePrecision
	}
	return nil
}

// lockProject takes a row lock on the project so that allocations against it
// serialize until the surrounding transaction ends.
func lockProject(tx *gorm.DB, projectID uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, "id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectDoesNotExist
		}
		return nil, err
	}
	return &project, nil
}

// allocated sums the shares on a project, leaving out the subscription being
// edited when exclude is set.
func allocated(tx *gorm.DB, projectID uuid.UUID, exclude uuid.UUID) (decimal.Decimal, error) {
	query := tx.Model(&entity.Subscription{}).Where("project_id = ?", projectID)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	var shares []decimal.Decimal
	if err := query.Pluck("investment_share", &shares).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, shares...), nil
}

func (l *SubscriptionLedger) Create(ctx context.Context, creatorID, projectID uuid.UUID, share decimal.Decimal) (*entity.Subscription, error) {
	if err := validateShare(share); err != nil {
		return nil, err
	}

	var subscription entity.Subscription
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockProject(tx, projectID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entity.Subscription{}).
			Where("creator_id = ? AND project_id = ?", creatorID, projectID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateSubscription
		}

		total, err := allocated(tx, projectID, uuid.Nil)
		if err != nil {
			return err
		}
		if total.Add(share).GreaterThan(MaxProjectShare) {
			return ErrOverAllocated
		}

		subscription = entity.Subscription{CreatorID: creatorID, ProjectID: projectID, InvestmentShare: share}
		if err := tx.Create(&subscription).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSubscription
			}
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Subscription created",
		zap.String("subscription_id", subscription.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("share", share.StringFixed(2)),
	)
	return &subscription, nil
}

func (l *SubscriptionLedger) ListOwn(ctx context.Context, creatorID uuid.UUID) ([]entity.Subscription, error) {
	var subscriptions []entity.Subscription
	if err := l.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at, id").Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// GetOwn reports ErrSubscriptionNotFound for ids owned by someone else.
func (l *SubscriptionLedger) GetOwn(ctx context.Context, creatorID, id uuid.UUID) (*entity.Subscription, error) {
	var subscription entity.Subscription
	err := l.db.WithContext(ctx).Where("id = ? AND creator_id = ?", id, creatorID).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

// Update changes the share of a subscription. Only admins may do this.
func (l *SubscriptionLedger) Update(ctx context.Context, actor entity.User, id uuid.UUID, share decimal.Decimal) (*entity.Subscription, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateShare(share); err != nil {
		return nil, err
	}

	var subscription entity.Subscription
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&subscription, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubscriptionNotFound
			}
			return err
		}
		if _, err := lockProject(tx, subscription.ProjectID); err != nil {
			return err
		}

		total, err := allocated(tx, subscription.ProjectID, subscription.ID)
		if err != nil {
			return err
		}
		if total.Add(share).GreaterThan(MaxProjectShare) {
			return ErrOverAllocated
		}

		subscription.InvestmentShare = share
		return tx.Model(&subscription).Update("investment_share", share).Error
	})
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (l *SubscriptionLedger) Delete(ctx context.Context, actor entity.User, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	result := l.db.WithContext(ctx).Delete(&entity.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
