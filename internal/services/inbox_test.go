package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
	"github.com/google/uuid"
)

func TestUpsertKeepsOneRowPerKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, f.db, "user@example.com")
	company := entity.CompanyRef(uuid.New())

	first, err := f.app.Inbox.Upsert(ctx, user.ID, entity.TypeNewPost, company, "first", nil)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := f.app.Inbox.SetRead(ctx, user.ID, first.ID, true); err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}

	second, err := f.app.Inbox.Upsert(ctx, user.ID, entity.TypeNewPost, company, "second", nil)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected the same row, got %s and %s", first.ID, second.ID)
	}
	if second.Content != "second" || second.Read {
		t.Errorf("Expected refreshed unread content, got %q read=%v", second.Content, second.Read)
	}

	// A different entity or an entity-less notification is a different key.
	if _, err := f.app.Inbox.Upsert(ctx, user.ID, entity.TypeNewPost, entity.CompanyRef(uuid.New()), "other", nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := f.app.Inbox.Upsert(ctx, user.ID, entity.TypeNewPost, entity.EntityRef{}, "global", nil); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	if n := len(f.notifications(t, user.ID, entity.TypeNewPost)); n != 3 {
		t.Errorf("Expected 3 rows, got %d", n)
	}
}

func TestUpsertRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateTestUser(t, f.db, "user@example.com")

	_, err := f.app.Inbox.Upsert(context.Background(), user.ID, "new_dance", entity.NoEntity(), "x", nil)
	if !errors.Is(err, services.ErrUnknownNotificationType) {
		t.Errorf("Expected ErrUnknownNotificationType, got %v", err)
	}
}

func TestInboxOperationsAreOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, f.db, "alice@example.com")
	bob := testutil.CreateTestUser(t, f.db, "bob@example.com")

	var ids []uuid.UUID
	for _, typeName := range []string{entity.TypeNewPost, entity.TypeNewFollower, entity.TypeNewMessage} {
		n, err := f.app.Inbox.Upsert(ctx, alice.ID, typeName, entity.NoEntity(), typeName, nil)
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		ids = append(ids, n.ID)
	}

	if _, err := f.app.Inbox.SetRead(ctx, bob.ID, ids[0], true); !errors.Is(err, services.ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}
	if err := f.app.Inbox.Delete(ctx, bob.ID, ids[0]); !errors.Is(err, services.ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}

	read, err := f.app.Inbox.SetRead(ctx, alice.ID, ids[0], true)
	if err != nil || !read.Read {
		t.Fatalf("SetRead failed: %v", err)
	}

	unread, err := f.app.Inbox.List(ctx, alice.ID, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(unread) != 2 {
		t.Errorf("Expected 2 unread, got %d", len(unread))
	}

	updated, err := f.app.Inbox.SetAllRead(ctx, alice.ID, true)
	if err != nil || updated != 2 {
		t.Errorf("Expected 2 rows marked read, got %d (%v)", updated, err)
	}

	if err := f.app.Inbox.Delete(ctx, alice.ID, ids[1]); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	deleted, err := f.app.Inbox.Clear(ctx, alice.ID)
	if err != nil || deleted != 2 {
		t.Errorf("Expected 2 rows cleared, got %d (%v)", deleted, err)
	}
}
