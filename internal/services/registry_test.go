package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/shopspring/decimal"
)

func TestRegisterCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, f.db, "founder@example.com")

	company, err := f.app.Registry.Register(ctx, user.ID, services.CompanyInput{
		CompanyName:   "  Rocket  ",
		Type:          entity.CompanyTypeStartup,
		FundingTarget: decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if company.CompanyName != "Rocket" {
		t.Errorf("Expected a trimmed name, got %q", company.CompanyName)
	}
	if !utils.UserIsCompanyMember(f.db, user.ID, company.ID) {
		t.Error("Expected the creator to be linked to the company")
	}

	other := testutil.CreateTestUser(t, f.db, "other@example.com")
	if _, err := f.app.Registry.Register(ctx, other.ID, services.CompanyInput{CompanyName: "Rocket", Type: entity.CompanyTypeEnterprise}); !errors.Is(err, services.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
	if _, err := f.app.Registry.Register(ctx, user.ID, services.CompanyInput{CompanyName: "Second", Type: entity.CompanyTypeStartup}); !errors.Is(err, services.ErrSameTypeLink) {
		t.Errorf("Expected ErrSameTypeLink, got %v", err)
	}
	if _, err := f.app.Registry.Register(ctx, user.ID, services.CompanyInput{CompanyName: "Fund", Type: entity.CompanyTypeEnterprise}); err != nil {
		t.Errorf("Expected a second company of another type to be allowed, got %v", err)
	}

	_, err = f.app.Registry.Register(ctx, other.ID, services.CompanyInput{CompanyName: "", Type: "bank"})
	var fieldErrs services.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("Expected field errors, got %v", err)
	}
	if _, ok := fieldErrs["company_name"]; !ok {
		t.Error("Expected a company_name error")
	}
	if _, ok := fieldErrs["type"]; !ok {
		t.Error("Expected a type error")
	}
}

func TestUpdateCompanyRequiresMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	founder := testutil.CreateTestUser(t, f.db, "founder@example.com")
	stranger := testutil.CreateTestUser(t, f.db, "stranger@example.com")
	startup := testutil.CreateTestCompany(t, f.db, "Rocket", entity.CompanyTypeStartup, founder)
	testutil.CreateTestCompany(t, f.db, "Taken", entity.CompanyTypeStartup)

	website := "https://rocket.example.com"
	if _, _, err := f.app.Registry.Update(ctx, stranger.ID, startup.ID, services.CompanyPatch{Website: &website}); !errors.Is(err, services.ErrNotCompanyMember) {
		t.Errorf("Expected ErrNotCompanyMember, got %v", err)
	}

	taken := "Taken"
	if _, _, err := f.app.Registry.Update(ctx, founder.ID, startup.ID, services.CompanyPatch{CompanyName: &taken}); !errors.Is(err, services.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}

	target := decimal.RequireFromString("2500.50")
	updated, changed, err := f.app.Registry.Update(ctx, founder.ID, startup.ID, services.CompanyPatch{Website: &website, FundingTarget: &target})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Website != website || len(changed) != 2 {
		t.Errorf("Unexpected update result %q %v", updated.Website, changed)
	}

	reloaded, err := f.app.Registry.Get(ctx, startup.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if reloaded.FundingTarget.StringFixed(2) != "2500.50" {
		t.Errorf("Expected 2500.50, got %s", reloaded.FundingTarget.StringFixed(2))
	}
}

func TestListCompaniesByType(t *testing.T) {
	f := newFixture(t)
	testutil.CreateTestCompany(t, f.db, "Rocket", entity.CompanyTypeStartup)
	testutil.CreateTestCompany(t, f.db, "Fund", entity.CompanyTypeEnterprise)
	testutil.CreateTestCompany(t, f.db, "Charity", entity.CompanyTypeNonprofit)

	all, err := f.app.Registry.List(context.Background(), "")
	if err != nil || len(all) != 3 {
		t.Fatalf("Expected 3 companies, got %d (%v)", len(all), err)
	}
	startups, err := f.app.Registry.List(context.Background(), entity.CompanyTypeStartup)
	if err != nil || len(startups) != 1 || startups[0].CompanyName != "Rocket" {
		t.Errorf("Unexpected startups %v (%v)", startups, err)
	}
}
