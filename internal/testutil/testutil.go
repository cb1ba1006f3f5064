package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestJWTSecret signs the tokens used by HTTP tests.
var TestJWTSecret = []byte("test-jwt-secret")

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// The pool holds a single connection, so transactions run one at a time the
// way row locks make them on Postgres.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(entity.All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// NewTestContext wires every service over db with mailer as the transport.
func NewTestContext(t *testing.T, db *gorm.DB, mailer *FakeMailer) *appcontext.Context {
	t.Helper()

	ctx := appcontext.New(db, zaptest.NewLogger(t), appcontext.Dependencies{Mailer: mailer})
	ctx.JWTSecret = TestJWTSecret
	return ctx
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer records sent messages and fails for the addresses in FailFor.
type FakeMailer struct {
	mu      sync.Mutex
	sent    []SentMail
	FailFor map[string]bool
}

func NewFakeMailer(failFor ...string) *FakeMailer {
	m := &FakeMailer{FailFor: make(map[string]bool)}
	for _, addr := range failFor {
		m.FailFor[addr] = true
	}
	return m
}

func (m *FakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailFor[to] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *FakeMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}

// CreateTestUser inserts a user with the given email.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) entity.User {
	t.Helper()

	user := entity.User{Email: email, Name: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func CreateTestAdmin(t *testing.T, db *gorm.DB, email string) entity.User {
	t.Helper()

	user := entity.User{Email: email, Name: email, Role: entity.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return user
}

// CreateTestCompany inserts a company and links the given members to it.
func CreateTestCompany(t *testing.T, db *gorm.DB, name string, companyType entity.CompanyType, members ...entity.User) entity.Company {
	t.Helper()

	company := entity.Company{CompanyName: name, Type: companyType, Description: name + " description"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("Failed to create test company: %v", err)
	}
	for _, member := range members {
		link := entity.UserToCompany{UserID: member.ID, CompanyID: company.ID}
		if err := db.Create(&link).Error; err != nil {
			t.Fatalf("Failed to link test user to company: %v", err)
		}
	}
	return company
}

func CreateTestProject(t *testing.T, db *gorm.DB, company entity.Company, name string) entity.Project {
	t.Helper()

	project := entity.Project{
		Name:            name,
		Status:          entity.ProjectStatusActive,
		RequiredFunding: decimal.NewFromInt(100000),
		CompanyID:       company.ID,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

// AuthHeader returns an Authorization header carrying a token for user.
func AuthHeader(t *testing.T, user entity.User) map[string]string {
	t.Helper()

	token, err := utils.GenerateJWT(TestJWTSecret, user.ID.String())
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
