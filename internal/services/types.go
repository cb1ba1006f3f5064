package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"gorm.io/gorm"
)

// TypeCache is a read-through cache over the notification_types table. A miss
// always falls through to the database; only names outside the known set are
// reported as unknown.
type TypeCache struct {
	db     *gorm.DB
	mu     sync.RWMutex
	byName map[string]entity.NotificationType
}

func NewTypeCache(db *gorm.DB) *TypeCache {
	return &TypeCache{db: db, byName: make(map[string]entity.NotificationType)}
}

func (c *TypeCache) Get(ctx context.Context, name string) (entity.NotificationType, error) {
	c.mu.RLock()
	t, ok := c.byName[name]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	if !entity.IsNotificationType(name) {
		return entity.NotificationType{}, ErrUnknownNotificationType
	}

	t, err := c.load(ctx, name)
	if err != nil {
		return entity.NotificationType{}, err
	}

	c.mu.Lock()
	c.byName[name] = t
	c.mu.Unlock()
	return t, nil
}

func (c *TypeCache) load(ctx context.Context, name string) (entity.NotificationType, error) {
	db := c.db.WithContext(ctx)

	var t entity.NotificationType
	err := db.Where(entity.NotificationType{Name: name}).FirstOrCreate(&t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Another request created the row between our read and insert.
		err = db.Where("name = ?", name).First(&t).Error
	}
	if err != nil {
		return entity.NotificationType{}, fmt.Errorf("failed to load notification type %q: %w", name, err)
	}
	return t, nil
}

// Invalidate drops one cached name, or everything when name is empty.
func (c *TypeCache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == "" {
		c.byName = make(map[string]entity.NotificationType)
		return
	}
	delete(c.byName, name)
}

// Seed makes sure every known type has a row. Cached entries are dropped
// first so rows removed behind the cache's back are recreated.
func (c *TypeCache) Seed(ctx context.Context) error {
	c.Invalidate("")
	for _, name := range entity.NotificationTypeNames {
		if _, err := c.Get(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
