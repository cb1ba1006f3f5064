package appcontext

import (
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	JWTSecret      []byte
	AllowedOrigins []string
	Production     bool

	Types       *services.TypeCache
	Inbox       *services.Inbox
	Preferences *services.Preferences
	Gate        *services.EmailGate
	Events      services.EventDispatcher

	Registry  *services.Registry
	Follows   *services.FollowGraph
	Ledger    *services.SubscriptionLedger
	Projects  *services.Projects
	History   *services.ViewHistory
	ChatRooms *services.ChatRooms

	Search services.CompanyIndex
	Logos  services.ObjectStore
}

// Dependencies are the outbound collaborators that differ between
// environments.
type Dependencies struct {
	Mailer services.Mailer
	Index  services.CompanyIndex
	Logos  services.ObjectStore
	Events services.EventDispatcher
}

// New wires every service on top of db. A nil Events uses the notification
// dispatcher backed by the inbox and the email gate.
func New(db *gorm.DB, logger *zap.Logger, deps Dependencies) *Context {
	if deps.Index == nil {
		deps.Index = services.DisabledIndex{}
	}
	if deps.Logos == nil {
		deps.Logos = services.DisabledStore{}
	}
	if deps.Mailer == nil {
		deps.Mailer = services.LogMailer{Logger: logger}
	}

	types := services.NewTypeCache(db)
	inbox := services.NewInbox(db, logger, types)
	gate := services.NewEmailGate(db, logger, types, deps.Mailer)

	events := deps.Events
	if events == nil {
		events = services.NewDispatcher(db, logger, inbox, gate)
	}

	return &Context{
		DB:     db,
		Logger: logger,

		Types:       types,
		Inbox:       inbox,
		Preferences: services.NewPreferences(db, types),
		Gate:        gate,
		Events:      events,

		Registry:  services.NewRegistry(db, logger, events, deps.Index),
		Follows:   services.NewFollowGraph(db, logger, events),
		Ledger:    services.NewSubscriptionLedger(db, logger),
		Projects:  services.NewProjects(db, logger),
		History:   services.NewViewHistory(db),
		ChatRooms: services.NewChatRooms(db),

		Search: deps.Index,
		Logos:  deps.Logos,
	}
}
