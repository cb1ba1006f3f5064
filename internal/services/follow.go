package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultFollowedLimit = 20
	MaxFollowedLimit     = 100
)

// followedOrderFields is the allow-list for ListFollowed ordering.
var followedOrderFields = map[string]bool{
	"company_name": true,
	"created_at":   true,
	"description":  true,
	"updated_at":   true,
}

type FollowedQuery struct {
	Search  string
	OrderBy string
	Limit   int
	Offset  int
}

type FollowedPage struct {
	Count   int64            `json:"count"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Results []entity.Company `json:"results"`
}

// FollowGraph owns the investor -> startup follow edges.
type FollowGraph struct {
	db     *gorm.DB
	logger *zap.Logger
	events EventDispatcher
}

func NewFollowGraph(db *gorm.DB, logger *zap.Logger, events EventDispatcher) *FollowGraph {
	return &FollowGraph{db: db, logger: logger, events: events}
}

func loadStartup(tx *gorm.DB, startupID uuid.UUID) (*entity.Company, error) {
	var startup entity.Company
	err := tx.Where("id = ? AND type = ?", startupID, entity.CompanyTypeStartup).First(&startup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

// Follow creates an edge from the user's enterprise company to the startup
// and fires the new follower event once the edge is committed.
func (g *FollowGraph) Follow(ctx context.Context, userID, startupID uuid.UUID) (*entity.FollowEdge, error) {
	var actor entity.User
	var investor, startup *entity.Company
	var edge entity.FollowEdge

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&actor, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var err error
		if investor, err = ResolveInvestor(tx, userID); err != nil {
			return err
		}
		if investor.ID == startupID {
			return ErrStartupNotFound
		}
		if startup, err = loadStartup(tx, startupID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entity.FollowEdge{}).
			Where("investor_id = ? AND startup_id = ?", investor.ID, startup.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}

		edge = entity.FollowEdge{InvestorID: investor.ID, StartupID: startup.ID}
		if err := tx.Create(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFollowing
			}
			return fmt.Errorf("failed to create follow edge: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	edge.Investor = *investor
	edge.Startup = *startup
	g.logger.Info("Startup followed",
		zap.String("investor_id", investor.ID.String()),
		zap.String("startup_id", startup.ID.String()),
	)

	g.events.FollowCreated(ctx, actor, edge)
	return &edge, nil
}

func (g *FollowGraph) Unfollow(ctx context.Context, userID, startupID uuid.UUID) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		investor, err := ResolveInvestor(tx, userID)
		if err != nil {
			return err
		}
		startup, err := loadStartup(tx, startupID)
		if err != nil {
			return err
		}

		result := tx.Where("investor_id = ? AND startup_id = ?", investor.ID, startup.ID).Delete(&entity.FollowEdge{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete follow edge: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFollowing
		}

		g.logger.Info("Startup unfollowed",
			zap.String("investor_id", investor.ID.String()),
			zap.String("startup_id", startup.ID.String()),
		)
		return nil
	})
}

// ListFollowed pages through the startups followed by the user's enterprise
// company. Unknown order fields fall back to company_name.
func (g *FollowGraph) ListFollowed(ctx context.Context, userID uuid.UUID, q FollowedQuery) (*FollowedPage, error) {
	db := g.db.WithContext(ctx)

	investor, err := ResolveInvestor(db, userID)
	if err != nil {
		return nil, err
	}

	limit, offset := q.Limit, q.Offset
	if limit <= 0 {
		limit = DefaultFollowedLimit
	}
	if limit > MaxFollowedLimit {
		limit = MaxFollowedLimit
	}
	if offset < 0 {
		offset = 0
	}

	followed := db.Model(&entity.FollowEdge{}).Select("startup_id").Where("investor_id = ?", investor.ID)
	query := db.Model(&entity.Company{}).Where("id IN (?)", followed)
	if search := strings.TrimSpace(q.Search); search != "" {
		query = query.Where(`LOWER(company_name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(search))+"%")
	}

	query = query.Session(&gorm.Session{})

	page := &FollowedPage{Limit: limit, Offset: offset, Results: []entity.Company{}}
	if err := query.Count(&page.Count).Error; err != nil {
		return nil, err
	}

	column, desc := followedOrder(q.OrderBy)
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	if column != "company_name" {
		query = query.Order("company_name")
	}
	if err := query.Order("id").Limit(limit).Offset(offset).Find(&page.Results).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func followedOrder(orderBy string) (string, bool) {
	field := strings.TrimSpace(orderBy)
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")
	if !followedOrderFields[field] {
		return "company_name", false
	}
	return field, desc
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
