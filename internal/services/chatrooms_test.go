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

func TestCanonicalPair(t *testing.T) {
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")

	for _, pair := range [][2]uuid.UUID{{low, high}, {high, low}} {
		first, second := services.CanonicalPair(pair[0], pair[1])
		if first != low || second != high {
			t.Errorf("CanonicalPair(%s, %s) = %s, %s", pair[0], pair[1], first, second)
		}
	}

	want := "chat_" + low.String() + "_" + high.String()
	if got := services.RoomKey(high, low); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestOpenChatRoomFromEitherSide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	founder := testutil.CreateTestUser(t, f.db, "founder@example.com")
	investor := testutil.CreateTestUser(t, f.db, "investor@example.com")
	startup := testutil.CreateTestCompany(t, f.db, "Rocket", entity.CompanyTypeStartup, founder)
	fund := testutil.CreateTestCompany(t, f.db, "Fund", entity.CompanyTypeEnterprise, investor)

	fromStartup, err := f.app.ChatRooms.Open(ctx, founder.ID, startup.ID, fund.ID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	fromFund, err := f.app.ChatRooms.Open(ctx, investor.ID, fund.ID, startup.ID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if fromStartup.ID != fromFund.ID || fromStartup.RoomKey != services.RoomKey(startup.ID, fund.ID) {
		t.Errorf("Expected one canonical room, got %s and %s", fromStartup.RoomKey, fromFund.RoomKey)
	}

	if _, err := f.app.ChatRooms.Open(ctx, investor.ID, startup.ID, fund.ID); !errors.Is(err, services.ErrNotCompanyMember) {
		t.Errorf("Expected ErrNotCompanyMember, got %v", err)
	}
	if _, err := f.app.ChatRooms.Open(ctx, founder.ID, startup.ID, startup.ID); !errors.Is(err, services.ErrSameCompany) {
		t.Errorf("Expected ErrSameCompany, got %v", err)
	}

	rooms, err := f.app.ChatRooms.List(ctx, investor.ID)
	if err != nil || len(rooms) != 1 {
		t.Errorf("Expected 1 room, got %d (%v)", len(rooms), err)
	}
}
