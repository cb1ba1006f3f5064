package services_test

import (
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	mailer *testutil.FakeMailer
	app    *appcontext.Context
}

func newFixture(t *testing.T, failFor ...string) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mailer := testutil.NewFakeMailer(failFor...)
	return &fixture{db: db, mailer: mailer, app: testutil.NewTestContext(t, db, mailer)}
}

func (f *fixture) notifications(t *testing.T, userID uuid.UUID, typeName string) []entity.Notification {
	t.Helper()

	var notifications []entity.Notification
	sub := f.db.Model(&entity.NotificationType{}).Select("id").Where("name = ?", typeName)
	if err := f.db.Where("user_id = ? AND type_id IN (?)", userID, sub).Find(&notifications).Error; err != nil {
		t.Fatalf("Failed to load notifications: %v", err)
	}
	return notifications
}

func (f *fixture) mailsTo(to, subject string) int {
	n := 0
	for _, m := range f.mailer.Sent() {
		if m.To == to && m.Subject == subject {
			n++
		}
	}
	return n
}
