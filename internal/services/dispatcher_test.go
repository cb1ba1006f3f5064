package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
)

type followedStartup struct {
	founder entity.User
	startup entity.Company
	alice   entity.User
	bob     entity.User
}

// setupFollowedStartup creates a startup followed by two enterprises, each
// with one member.
func setupFollowedStartup(t *testing.T, f *fixture) followedStartup {
	t.Helper()
	ctx := context.Background()

	s := followedStartup{
		founder: testutil.CreateTestUser(t, f.db, "founder@example.com"),
		alice:   testutil.CreateTestUser(t, f.db, "alice@example.com"),
		bob:     testutil.CreateTestUser(t, f.db, "bob@example.com"),
	}
	s.startup = testutil.CreateTestCompany(t, f.db, "Rocket", entity.CompanyTypeStartup, s.founder)
	testutil.CreateTestCompany(t, f.db, "Alice Ventures", entity.CompanyTypeEnterprise, s.alice)
	testutil.CreateTestCompany(t, f.db, "Bob Capital", entity.CompanyTypeEnterprise, s.bob)

	for _, u := range []entity.User{s.alice, s.bob} {
		if _, err := f.app.Follows.Follow(ctx, u.ID, s.startup.ID); err != nil {
			t.Fatalf("Follow failed: %v", err)
		}
	}
	return s
}

func TestProfileUpdateFansOutDespiteMailFailure(t *testing.T) {
	f := newFixture(t, "alice@example.com")
	ctx := context.Background()
	s := setupFollowedStartup(t, f)

	description := "Now with more rockets"
	_, changed, err := f.app.Registry.Update(ctx, s.founder.ID, s.startup.ID, services.CompanyPatch{Description: &description})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(changed) != 1 || changed[0] != "description" {
		t.Errorf("Expected [description], got %v", changed)
	}

	for _, u := range []entity.User{s.alice, s.bob} {
		notifications := f.notifications(t, u.ID, entity.TypeNewPost)
		if len(notifications) != 1 {
			t.Fatalf("Expected 1 new_post notification for %s, got %d", u.Email, len(notifications))
		}
		if !strings.Contains(notifications[0].Content, "updated their profile") {
			t.Errorf("Unexpected content %q", notifications[0].Content)
		}
	}

	if n := f.mailsTo("alice@example.com", "Notification: new_post"); n != 0 {
		t.Errorf("Expected the failing transport to record nothing for alice, got %d", n)
	}
	if n := f.mailsTo("bob@example.com", "Notification: new_post"); n != 1 {
		t.Errorf("Expected 1 email for bob, got %d", n)
	}
}

func TestCompanyUpdatedReportAndIdempotence(t *testing.T) {
	f := newFixture(t, "alice@example.com")
	ctx := context.Background()
	s := setupFollowedStartup(t, f)

	for i := 0; i < 2; i++ {
		report := f.app.Events.CompanyUpdated(ctx, s.startup, []string{"website"})
		if report.Notified != 2 || report.Emailed != 1 || report.Failed != 0 {
			t.Errorf("Run %d: unexpected report %+v", i, report)
		}
	}

	for _, u := range []entity.User{s.alice, s.bob} {
		if n := len(f.notifications(t, u.ID, entity.TypeNewPost)); n != 1 {
			t.Errorf("Expected a single new_post row for %s, got %d", u.Email, n)
		}
	}
}

func TestProfileUpdateNotifiesEveryInvestorMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	founder := testutil.CreateTestUser(t, f.db, "founder@example.com")
	startup := testutil.CreateTestCompany(t, f.db, "Rocket", entity.CompanyTypeStartup, founder)
	partner := testutil.CreateTestUser(t, f.db, "partner@example.com")
	analyst := testutil.CreateTestUser(t, f.db, "analyst@example.com")
	testutil.CreateTestCompany(t, f.db, "Fund", entity.CompanyTypeEnterprise, partner, analyst)

	if _, err := f.app.Follows.Follow(ctx, partner.ID, startup.ID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	report := f.app.Events.CompanyUpdated(ctx, startup, []string{"industry"})
	if report.Notified != 2 {
		t.Errorf("Expected both members to be notified, got %+v", report)
	}
	if n := len(f.notifications(t, founder.ID, entity.TypeNewPost)); n != 0 {
		t.Errorf("The startup's own members are not followers, got %d notifications", n)
	}
}

func TestDisabledPreferenceSuppressesEmailOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := setupFollowedStartup(t, f)

	if _, err := f.app.Preferences.Set(ctx, s.bob.ID, entity.TypeNewPost, false); err != nil {
		t.Fatalf("Set preference failed: %v", err)
	}

	report := f.app.Events.CompanyUpdated(ctx, s.startup, []string{"size"})
	if report.Notified != 2 || report.Emailed != 1 {
		t.Errorf("Unexpected report %+v", report)
	}
	if n := f.mailsTo("bob@example.com", "Notification: new_post"); n != 0 {
		t.Errorf("Expected no email for bob, got %d", n)
	}
	if n := len(f.notifications(t, s.bob.ID, entity.TypeNewPost)); n != 1 {
		t.Errorf("Expected bob to still get the notification, got %d", n)
	}
}

func TestUnchangedProfileDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := setupFollowedStartup(t, f)

	name := s.startup.CompanyName
	_, changed, err := f.app.Registry.Update(ctx, s.founder.ID, s.startup.ID, services.CompanyPatch{CompanyName: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("Expected no changed fields, got %v", changed)
	}
	if n := len(f.notifications(t, s.alice.ID, entity.TypeNewPost)); n != 0 {
		t.Errorf("Expected no new_post notifications, got %d", n)
	}
}
