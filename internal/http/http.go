package http

import (
	"net/http"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/appcontext"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware(ctx.Production, ctx.AllowedOrigins))

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	h.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := h.engine.Group("/api/v1")
	v1.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	h.setupAuthRoutes(v1)
	h.setupCompanyRoutes(v1)
	h.setupFollowRoutes(v1)
	h.setupProjectRoutes(v1)
	h.setupSubscriptionRoutes(v1)
	h.setupNotificationRoutes(v1)
	h.setupPreferenceRoutes(v1)
	h.setupHistoryRoutes(v1)
	h.setupChatRoutes(v1)
}

func (h *APIService) setupAuthRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")

	auth.GET("/me", GetUserInfo(h.context))
}

func (h *APIService) setupCompanyRoutes(group *gin.RouterGroup) {
	companies := group.Group("/companies")

	companies.POST("/register/", RegisterCompany(h.context))
	companies.GET("/", ListCompanies(h.context))
	companies.GET("/search/", SearchCompanies(h.context))
	companies.GET("/:id/", GetCompany(h.context))
	companies.PATCH("/:id/", UpdateCompany(h.context))
	companies.GET("/:id/members/", GetCompanyMembers(h.context))
	companies.POST("/:id/logo/", UploadCompanyLogo(h.context))
}

func (h *APIService) setupFollowRoutes(group *gin.RouterGroup) {
	startups := group.Group("/startups")

	startups.POST("/:id/save/", FollowStartup(h.context))
	startups.POST("/:id/unsave/", UnfollowStartup(h.context))

	group.GET("/investor/saved-startups/", ListFollowedStartups(h.context))
}

func (h *APIService) setupProjectRoutes(group *gin.RouterGroup) {
	projects := group.Group("/projects")

	projects.GET("/", ListProjects(h.context))
	projects.POST("/", CreateProject(h.context))
	projects.GET("/:id/", GetProject(h.context))
	projects.PUT("/:id/", UpdateProject(h.context))
	projects.DELETE("/:id/", DeleteProject(h.context))
}

func (h *APIService) setupSubscriptionRoutes(group *gin.RouterGroup) {
	subscriptions := group.Group("/subscriptions")

	subscriptions.GET("/", ListSubscriptions(h.context))
	subscriptions.POST("/", CreateSubscription(h.context))
	subscriptions.GET("/:id/", GetSubscription(h.context))
	subscriptions.PUT("/:id/", UpdateSubscription(h.context))
	subscriptions.PATCH("/:id/", UpdateSubscription(h.context))
	subscriptions.DELETE("/:id/", DeleteSubscription(h.context))
}

func (h *APIService) setupNotificationRoutes(group *gin.RouterGroup) {
	notifications := group.Group("/notifications")

	notifications.GET("/", ListNotifications(h.context))
	notifications.DELETE("/", ClearNotifications(h.context))
	notifications.PATCH("/mark_all_as_read/", MarkAllNotifications(h.context, true))
	notifications.PATCH("/mark_all_as_unread/", MarkAllNotifications(h.context, false))
	notifications.PATCH("/:id/mark_as_read/", MarkNotification(h.context, true))
	notifications.PATCH("/:id/mark_as_unread/", MarkNotification(h.context, false))
	notifications.DELETE("/:id/", DeleteNotification(h.context))
}

func (h *APIService) setupPreferenceRoutes(group *gin.RouterGroup) {
	preferences := group.Group("/notification-preferences")

	preferences.GET("/", ListPreferences(h.context))
	preferences.PUT("/:type/", SetPreference(h.context))
	preferences.DELETE("/:type/", ResetPreference(h.context))
}

func (h *APIService) setupHistoryRoutes(group *gin.RouterGroup) {
	history := group.Group("/startup-view-history")

	history.GET("/", ListViewHistory(h.context))
	history.POST("/:id/view/", RecordStartupView(h.context))
	history.DELETE("/clear/", ClearViewHistory(h.context))
}

func (h *APIService) setupChatRoutes(group *gin.RouterGroup) {
	rooms := group.Group("/chat/rooms")

	rooms.GET("/", ListChatRooms(h.context))
	rooms.POST("/", OpenChatRoom(h.context))
}
