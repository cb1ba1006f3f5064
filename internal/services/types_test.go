package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
)

func TestTypeCacheReadsThrough(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	cache := services.NewTypeCache(db)

	if err := cache.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	var count int64
	db.Model(&entity.NotificationType{}).Count(&count)
	if count != int64(len(entity.NotificationTypeNames)) {
		t.Errorf("Expected %d types, got %d", len(entity.NotificationTypeNames), count)
	}

	first, err := cache.Get(ctx, entity.TypeNewLike)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// A second cache over the same table finds the existing row.
	other, err := services.NewTypeCache(db).Get(ctx, entity.TypeNewLike)
	if err != nil || other.ID != first.ID {
		t.Errorf("Expected %s from a cold cache, got %s (%v)", first.ID, other.ID, err)
	}

	// After the row is removed and the entry invalidated, the lookup
	// recreates the type instead of reporting it missing.
	if err := db.Where("name = ?", entity.TypeNewLike).Delete(&entity.NotificationType{}).Error; err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	cache.Invalidate(entity.TypeNewLike)

	again, err := cache.Get(ctx, entity.TypeNewLike)
	if err != nil {
		t.Fatalf("Get after invalidate failed: %v", err)
	}
	if again.ID == first.ID {
		t.Error("Expected a fresh row after invalidation")
	}

	if _, err := cache.Get(ctx, "new_dance"); !errors.Is(err, services.ErrUnknownNotificationType) {
		t.Errorf("Expected ErrUnknownNotificationType, got %v", err)
	}
}

func TestSeedRestoresMissingTypes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	cache := services.NewTypeCache(db)

	if err := cache.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := db.Where("name = ?", entity.TypeNewPost).Delete(&entity.NotificationType{}).Error; err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The cache still holds new_post, so seeding must not trust it.
	if err := cache.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var count int64
	db.Model(&entity.NotificationType{}).Where("name = ?", entity.TypeNewPost).Count(&count)
	if count != 1 {
		t.Errorf("Expected new_post to be recreated, got %d rows", count)
	}
}
