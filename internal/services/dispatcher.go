package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventDispatcher is called after a follow or profile mutation has committed.
type EventDispatcher interface {
	FollowCreated(ctx context.Context, actor entity.User, edge entity.FollowEdge) DispatchReport
	CompanyUpdated(ctx context.Context, company entity.Company, changed []string) DispatchReport
}

// DispatchReport counts what happened to the recipients of one event.
type DispatchReport struct {
	Notified int
	Emailed  int
	Failed   int
}

type Dispatcher struct {
	db     *gorm.DB
	logger *zap.Logger
	inbox  *Inbox
	gate   *EmailGate
}

func NewDispatcher(db *gorm.DB, logger *zap.Logger, inbox *Inbox, gate *EmailGate) *Dispatcher {
	return &Dispatcher{db: db, logger: logger, inbox: inbox, gate: gate}
}

// FollowCreated notifies the investor user who created the edge.
func (d *Dispatcher) FollowCreated(ctx context.Context, actor entity.User, edge entity.FollowEdge) DispatchReport {
	var report DispatchReport

	investor, startup := edge.Investor, edge.Startup
	if investor.ID == uuid.Nil || startup.ID == uuid.Nil {
		if err := d.loadEdgeCompanies(ctx, &edge); err != nil {
			d.logger.Error("Failed to load follow edge companies", zap.Error(err), zap.String("edge_id", edge.ID.String()))
			report.Failed++
			return report
		}
		investor, startup = edge.Investor, edge.Startup
	}

	content := fmt.Sprintf("%s started following %s", investor.CompanyName, startup.CompanyName)
	data := eventData(map[string]interface{}{
		"investor_id": investor.ID.String(),
		"startup_id":  startup.ID.String(),
	})

	d.deliver(ctx, &report, actor, entity.TypeNewFollower, entity.CompanyRef(startup.ID), content, data)
	return report
}

// CompanyUpdated notifies every member of every investor company following
// company. A failure for one recipient is logged and the loop moves on.
func (d *Dispatcher) CompanyUpdated(ctx context.Context, company entity.Company, changed []string) DispatchReport {
	var report DispatchReport

	recipients, err := d.followerUsers(ctx, company.ID)
	if err != nil {
		d.logger.Error("Failed to resolve company followers", zap.Error(err), zap.String("company_id", company.ID.String()))
		report.Failed++
		return report
	}

	content := fmt.Sprintf("%s updated their profile", company.CompanyName)
	if len(changed) > 0 {
		content += fmt.Sprintf(" (%s)", strings.Join(changed, ", "))
	}
	data := eventData(map[string]interface{}{
		"company_id":     company.ID.String(),
		"changed_fields": changed,
	})

	for _, user := range recipients {
		d.deliver(ctx, &report, user, entity.TypeNewPost, entity.CompanyRef(company.ID), content, data)
	}

	d.logger.Info("Profile update fanned out",
		zap.String("company_id", company.ID.String()),
		zap.Int("notified", report.Notified),
		zap.Int("emailed", report.Emailed),
		zap.Int("failed", report.Failed),
	)
	return report
}

func (d *Dispatcher) deliver(ctx context.Context, report *DispatchReport, user entity.User, typeName string, ref entity.EntityRef, content string, data datatypes.JSON) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Notification delivery panicked", zap.Any("panic", r), zap.String("user_id", user.ID.String()))
			report.Failed++
		}
	}()

	if _, err := d.inbox.Upsert(ctx, user.ID, typeName, ref, content, data); err != nil {
		d.logger.Error("Failed to store notification", zap.Error(err), zap.String("user_id", user.ID.String()), zap.String("type", typeName))
		report.Failed++
		return
	}
	report.Notified++

	if d.gate.MaybeSend(ctx, user, typeName, content) {
		report.Emailed++
	}
}

func (d *Dispatcher) followerUsers(ctx context.Context, startupID uuid.UUID) ([]entity.User, error) {
	db := d.db.WithContext(ctx)

	investors := db.Model(&entity.FollowEdge{}).Select("investor_id").Where("startup_id = ?", startupID)
	members := db.Model(&entity.UserToCompany{}).Select("user_id").Where("company_id IN (?)", investors)

	var users []entity.User
	if err := db.Where("id IN (?)", members).Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (d *Dispatcher) loadEdgeCompanies(ctx context.Context, edge *entity.FollowEdge) error {
	db := d.db.WithContext(ctx)
	if err := db.First(&edge.Investor, "id = ?", edge.InvestorID).Error; err != nil {
		return err
	}
	return db.First(&edge.Startup, "id = ?", edge.StartupID).Error
}

func eventData(payload map[string]interface{}) datatypes.JSON {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

var _ EventDispatcher = (*Dispatcher)(nil)
