package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProjectInput struct {
	Name            string
	Status          entity.ProjectStatus
	Information     string
	RequiredFunding decimal.Decimal
	RaisedAmount    decimal.NullDecimal
	CompanyID       uuid.UUID
}

type Projects struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProjects(db *gorm.DB, logger *zap.Logger) *Projects {
	return &Projects{db: db, logger: logger}
}

func validateProject(input *ProjectInput) error {
	errs := FieldErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "Project name cannot be empty."
	}
	if input.Status == "" {
		input.Status = entity.ProjectStatusActive
	}
	if input.Status != entity.ProjectStatusActive && input.Status != entity.ProjectStatusCompleted {
		errs["status"] = "Invalid status. Choose from: active, completed"
	}
	if input.RequiredFunding.IsNegative() {
		errs["required_funding"] = "Required funding cannot be negative."
	}
	if input.RaisedAmount.Valid {
		if input.RaisedAmount.Decimal.IsNegative() {
			errs["raised_amount"] = "Raised amount cannot be negative."
		} else if input.RaisedAmount.Decimal.GreaterThan(input.RequiredFunding) {
			errs["raised_amount"] = "Raised amount cannot exceed required funding."
		}
	}
	return errs.OrNil()
}

func (p *Projects) Create(ctx context.Context, userID uuid.UUID, input ProjectInput) (*entity.Project, error) {
	if err := validateProject(&input); err != nil {
		return nil, err
	}

	project := entity.Project{
		Name:            strings.TrimSpace(input.Name),
		Status:          input.Status,
		Information:     input.Information,
		RequiredFunding: input.RequiredFunding,
		RaisedAmount:    input.RaisedAmount,
		CompanyID:       input.CompanyID,
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entity.Company{}, "id = ?", input.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
		if !utils.UserIsCompanyMember(tx, userID, input.CompanyID) {
			return ErrNotCompanyMember
		}
		if err := ensureProjectNameFree(tx, project.Name, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Create(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateProjectName
			}
			return fmt.Errorf("failed to create project: %w", err)
		}
		return syncRaisedAmount(tx, project.CompanyID)
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("Project created", zap.String("project_id", project.ID.String()), zap.String("company_id", project.CompanyID.String()))
	return &project, nil
}

func (p *Projects) Get(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	if err := p.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (p *Projects) List(ctx context.Context, companyID uuid.UUID) ([]entity.Project, error) {
	query := p.db.WithContext(ctx).Order("name")
	if companyID != uuid.Nil {
		query = query.Where("company_id = ?", companyID)
	}

	var projects []entity.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update replaces the editable fields of a project. The owning company
// cannot be changed.
func (p *Projects) Update(ctx context.Context, userID, id uuid.UUID, input ProjectInput) (*entity.Project, error) {
	if err := validateProject(&input); err != nil {
		return nil, err
	}

	var project entity.Project
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if !utils.UserHasProjectAccess(tx, userID, project.ID) {
			return ErrNotCompanyMember
		}

		project.Name = strings.TrimSpace(input.Name)
		project.Status = input.Status
		project.Information = input.Information
		project.RequiredFunding = input.RequiredFunding
		project.RaisedAmount = input.RaisedAmount

		if err := ensureProjectNameFree(tx, project.Name, project.ID); err != nil {
			return err
		}
		if err := tx.Omit("Company").Save(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateProjectName
			}
			return fmt.Errorf("failed to update project: %w", err)
		}
		return syncRaisedAmount(tx, project.CompanyID)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *Projects) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project entity.Project
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if !utils.UserIsCompanyMember(tx, userID, project.CompanyID) {
			return ErrNotCompanyMember
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&entity.Subscription{}).Error; err != nil {
			return fmt.Errorf("failed to delete project subscriptions: %w", err)
		}
		if err := tx.Delete(&project).Error; err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return syncRaisedAmount(tx, project.CompanyID)
	})
}

func ensureProjectNameFree(tx *gorm.DB, name string, self uuid.UUID) error {
	query := tx.Model(&entity.Project{}).Where("name = ?", name)
	if self != uuid.Nil {
		query = query.Where("id <> ?", self)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateProjectName
	}
	return nil
}

// syncRaisedAmount keeps a company's raised amount equal to the total raised
// by its projects.
func syncRaisedAmount(tx *gorm.DB, companyID uuid.UUID) error {
	var amounts []decimal.NullDecimal
	if err := tx.Model(&entity.Project{}).Where("company_id = ?", companyID).Pluck("raised_amount", &amounts).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, a := range amounts {
		if a.Valid {
			total = total.Add(a.Decimal)
		}
	}
	return tx.Model(&entity.Company{}).Where("id = ?", companyID).Update("raised_amount", total).Error
}
