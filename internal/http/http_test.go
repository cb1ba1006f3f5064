package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	ctx := testutil.NewTestContext(t, db, testutil.NewFakeMailer())
	if err := ctx.Types.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed notification types: %v", err)
	}
	return NewHTTPService(ctx).Engine(), db
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := serve(engine, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMissingToken(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := serve(engine, testutil.MakeRequest("GET", "/api/v1/subscriptions/", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = serve(engine, testutil.MakeRequest("GET", "/api/v1/subscriptions/", nil, map[string]string{"Authorization": "Bearer nonsense"}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestFollowEndpoints(t *testing.T) {
	engine, db := setupTestServer(t)

	investor := testutil.CreateTestUser(t, db, "investor@example.com")
	loner := testutil.CreateTestUser(t, db, "loner@example.com")
	testutil.CreateTestCompany(t, db, "Acme Capital", entity.CompanyTypeEnterprise, investor)
	startup := testutil.CreateTestCompany(t, db, "Rocket", entity.CompanyTypeStartup)

	savePath := "/api/v1/startups/" + startup.ID.String() + "/save/"
	auth := testutil.AuthHeader(t, investor)

	w := serve(engine, testutil.MakeRequest("POST", savePath, nil, auth))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(engine, testutil.MakeRequest("POST", savePath, nil, auth))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var duplicate map[string]string
	testutil.AssertJSON(t, w, &duplicate)
	if duplicate["detail"] != "You are already following this startup." {
		t.Errorf("Unexpected body: %v", duplicate)
	}

	w = serve(engine, testutil.MakeRequest("POST", savePath, nil, testutil.AuthHeader(t, loner)))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var orphan map[string]string
	testutil.AssertJSON(t, w, &orphan)
	if orphan["error"] == "" {
		t.Errorf("Expected an error key, got %v", orphan)
	}

	w = serve(engine, testutil.MakeRequest("POST", "/api/v1/startups/not-a-uuid/save/", nil, auth))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = serve(engine, testutil.MakeRequest("GET", "/api/v1/investor/saved-startups/?limit=5", nil, auth))
	testutil.AssertStatus(t, w, http.StatusOK)
	var page struct {
		Count   int64             `json:"count"`
		Limit   int               `json:"limit"`
		Results []companyResponse `json:"results"`
	}
	testutil.AssertJSON(t, w, &page)
	if page.Count != 1 || page.Limit != 5 || len(page.Results) != 1 || page.Results[0].CompanyName != "Rocket" {
		t.Errorf("Unexpected page: %+v", page)
	}

	w = serve(engine, testutil.MakeRequest("POST", "/api/v1/startups/"+startup.ID.String()+"/unsave/", nil, auth))
	testutil.AssertStatus(t, w, http.StatusOK)
	var unfollowed map[string]string
	testutil.AssertJSON(t, w, &unfollowed)
	if unfollowed["detail"] != "Successfully unfollowed the startup." {
		t.Errorf("Unexpected body: %v", unfollowed)
	}
}

func TestSubscriptionEndpoints(t *testing.T) {
	engine, db := setupTestServer(t)

	investor := testutil.CreateTestUser(t, db, "investor@example.com")
	other := testutil.CreateTestUser(t, db, "other@example.com")
	startup := testutil.CreateTestCompany(t, db, "Rocket", entity.CompanyTypeStartup)
	project := testutil.CreateTestProject(t, db, startup, "Launchpad")
	auth := testutil.AuthHeader(t, investor)

	w := serve(engine, testutil.MakeRequest("POST", "/api/v1/subscriptions/", map[string]interface{}{}, auth))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var missing map[string][]string
	testutil.AssertJSON(t, w, &missing)
	if len(missing["investment_share"]) != 1 || len(missing["project"]) != 1 {
		t.Errorf("Expected both fields reported, got %v", missing)
	}

	malformed := map[string]interface{}{"investment_share": "lots", "project": "not-a-uuid"}
	w = serve(engine, testutil.MakeRequest("POST", "/api/v1/subscriptions/", malformed, auth))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var invalid map[string][]string
	testutil.AssertJSON(t, w, &invalid)
	if len(invalid["project"]) != 1 || invalid["project"][0] != "Must be a valid UUID." {
		t.Errorf("Expected a project field error, got %v", invalid)
	}
	if len(invalid["investment_share"]) != 1 || invalid["investment_share"][0] != "A valid number is required." {
		t.Errorf("Expected an investment_share field error, got %v", invalid)
	}

	body := map[string]interface{}{"investment_share": "100.00", "project": project.ID}
	w = serve(engine, testutil.MakeRequest("POST", "/api/v1/subscriptions/", body, auth))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created subscriptionResponse
	testutil.AssertJSON(t, w, &created)
	if created.InvestmentShare != "100.00" {
		t.Errorf("Expected share 100.00, got %s", created.InvestmentShare)
	}

	body = map[string]interface{}{"investment_share": "0.01", "project": project.ID}
	w = serve(engine, testutil.MakeRequest("POST", "/api/v1/subscriptions/", body, testutil.AuthHeader(t, other)))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var over map[string][]string
	testutil.AssertJSON(t, w, &over)
	if len(over["investment_share"]) != 1 {
		t.Errorf("Expected an investment_share error, got %v", over)
	}

	path := "/api/v1/subscriptions/" + created.ID.String() + "/"
	w = serve(engine, testutil.MakeRequest("GET", path, nil, testutil.AuthHeader(t, other)))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = serve(engine, testutil.MakeRequest("PATCH", path, map[string]string{"investment_share": "50"}, auth))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = serve(engine, testutil.MakeRequest("DELETE", path, nil, auth))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	admin := testutil.CreateTestAdmin(t, db, "admin@example.com")
	w = serve(engine, testutil.MakeRequest("DELETE", path, nil, testutil.AuthHeader(t, admin)))
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestNotificationEndpoints(t *testing.T) {
	engine, db := setupTestServer(t)

	investor := testutil.CreateTestUser(t, db, "investor@example.com")
	testutil.CreateTestCompany(t, db, "Acme Capital", entity.CompanyTypeEnterprise, investor)
	startup := testutil.CreateTestCompany(t, db, "Rocket", entity.CompanyTypeStartup)
	auth := testutil.AuthHeader(t, investor)

	w := serve(engine, testutil.MakeRequest("POST", "/api/v1/startups/"+startup.ID.String()+"/save/", nil, auth))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(engine, testutil.MakeRequest("GET", "/api/v1/notifications/?unread=true", nil, auth))
	testutil.AssertStatus(t, w, http.StatusOK)
	var unread []notificationResponse
	testutil.AssertJSON(t, w, &unread)
	if len(unread) != 1 || unread[0].Entity == nil || unread[0].Entity.ID != startup.ID {
		t.Fatalf("Expected one unread follow notification, got %+v", unread)
	}

	w = serve(engine, testutil.MakeRequest("PATCH", "/api/v1/notifications/"+unread[0].ID.String()+"/mark_as_read/", nil, auth))
	testutil.AssertStatus(t, w, http.StatusOK)
	var marked notificationResponse
	testutil.AssertJSON(t, w, &marked)
	if !marked.Read {
		t.Errorf("Expected the notification to be read")
	}

	w = serve(engine, testutil.MakeRequest("GET", "/api/v1/notifications/?unread=true", nil, auth))
	testutil.AssertStatus(t, w, http.StatusOK)
	unread = nil
	testutil.AssertJSON(t, w, &unread)
	if len(unread) != 0 {
		t.Errorf("Expected no unread notifications, got %d", len(unread))
	}
}

func TestSearchWithoutBackend(t *testing.T) {
	engine, db := setupTestServer(t)
	user := testutil.CreateTestUser(t, db, "user@example.com")

	w := serve(engine, testutil.MakeRequest("GET", "/api/v1/companies/search/?q=rocket", nil, testutil.AuthHeader(t, user)))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	w = serve(engine, testutil.MakeRequest("GET", "/api/v1/companies/search/", nil, testutil.AuthHeader(t, user)))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
