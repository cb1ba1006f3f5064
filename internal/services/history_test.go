package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
)

func TestViewHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, f.db, "user@example.com")
	rocket := testutil.CreateTestCompany(t, f.db, "Rocket", entity.CompanyTypeStartup)
	comet := testutil.CreateTestCompany(t, f.db, "Comet", entity.CompanyTypeStartup)
	fund := testutil.CreateTestCompany(t, f.db, "Fund", entity.CompanyTypeEnterprise)

	if _, err := f.app.History.Record(ctx, user.ID, fund.ID); !errors.Is(err, services.ErrStartupNotFound) {
		t.Errorf("Expected ErrStartupNotFound, got %v", err)
	}

	first, err := f.app.History.Record(ctx, user.ID, rocket.ID)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := f.app.History.Record(ctx, user.ID, comet.ID); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	again, err := f.app.History.Record(ctx, user.ID, rocket.ID)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if again.ID != first.ID || again.ViewedAt.Before(first.ViewedAt) {
		t.Errorf("Expected the existing view to be refreshed")
	}

	views, err := f.app.History.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 2 || views[0].Company.CompanyName != "Rocket" {
		t.Errorf("Expected Rocket first of 2 views, got %+v", views)
	}

	deleted, err := f.app.History.Clear(ctx, user.ID)
	if err != nil || deleted != 2 {
		t.Errorf("Expected 2 views cleared, got %d (%v)", deleted, err)
	}
}
