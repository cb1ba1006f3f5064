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
	"gorm.io/gorm/clause"
)

type CompanyInput struct {
	CompanyName   string
	Description   string
	Website       string
	StartupLogo   string
	Type          entity.CompanyType
	Industry      string
	Size          string
	FundingTarget decimal.Decimal
}

// CompanyPatch carries the fields of a partial profile update; nil means
// unchanged.
type CompanyPatch struct {
	CompanyName   *string
	Description   *string
	Website       *string
	StartupLogo   *string
	Type          *entity.CompanyType
	Industry      *string
	Size          *string
	FundingTarget *decimal.Decimal
}

// Registry owns company profiles and their classification.
type Registry struct {
	db     *gorm.DB
	logger *zap.Logger
	events EventDispatcher
	index  CompanyIndex
}

func NewRegistry(db *gorm.DB, logger *zap.Logger, events EventDispatcher, index CompanyIndex) *Registry {
	return &Registry{db: db, logger: logger, events: events, index: index}
}

func validTypesMessage() string {
	names := make([]string, 0, len(entity.CompanyTypes))
	for _, t := range entity.CompanyTypes {
		names = append(names, string(t))
	}
	return "Invalid company type. Choose from: " + strings.Join(names, ", ")
}

func validateCompany(company *entity.Company) error {
	errs := FieldErrors{}
	if strings.TrimSpace(company.CompanyName) == "" {
		errs["company_name"] = "Company name cannot be empty."
	}
	if company.Type == "" {
		errs["type"] = "Company type cannot be empty."
	} else if !company.Type.Valid() {
		errs["type"] = validTypesMessage()
	}
	if company.FundingTarget.IsNegative() {
		errs["funding_target"] = "Funding target cannot be negative."
	}
	return errs.OrNil()
}

// Register creates a company and links the creating user to it.
func (r *Registry) Register(ctx context.Context, userID uuid.UUID, input CompanyInput) (*entity.Company, error) {
	company := entity.Company{
		CompanyName:   strings.TrimSpace(input.CompanyName),
		Description:   input.Description,
		Website:       input.Website,
		StartupLogo:   input.StartupLogo,
		Type:          input.Type,
		Industry:      input.Industry,
		Size:          input.Size,
		FundingTarget: input.FundingTarget,
	}
	if err := validateCompany(&company); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entity.User{}, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&entity.Company{}).Where("company_name = ?", company.CompanyName).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		existing, err := utils.UserCompanies(tx, userID)
		if err != nil {
			return err
		}
		for _, c := range existing {
			if c.Type == company.Type {
				return ErrSameTypeLink
			}
		}

		if err := tx.Create(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return fmt.Errorf("failed to create company: %w", err)
		}

		membership := entity.UserToCompany{UserID: userID, CompanyID: company.ID}
		if err := tx.Create(&membership).Error; err != nil {
			return fmt.Errorf("failed to link user to company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Company registered",
		zap.String("company_id", company.ID.String()),
		zap.String("type", string(company.Type)),
		zap.String("user_id", userID.String()),
	)
	r.reindex(ctx, &company)
	return &company, nil
}

func (r *Registry) Get(ctx context.Context, companyID uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *Registry) List(ctx context.Context, companyType entity.CompanyType) ([]entity.Company, error) {
	query := r.db.WithContext(ctx).Order("company_name")
	if companyType != "" {
		query = query.Where("type = ?", companyType)
	}

	var companies []entity.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// EnsureMember fails with ErrNotCompanyMember unless the user acts for the
// company.
func (r *Registry) EnsureMember(ctx context.Context, userID, companyID uuid.UUID) error {
	if _, err := r.Get(ctx, companyID); err != nil {
		return err
	}
	if !utils.UserIsCompanyMember(r.db.WithContext(ctx), userID, companyID) {
		return ErrNotCompanyMember
	}
	return nil
}

// Update applies a partial profile edit made by a member of the company.
// Followers are notified after commit when at least one field changed.
func (r *Registry) Update(ctx context.Context, userID, companyID uuid.UUID, patch CompanyPatch) (*entity.Company, []string, error) {
	var company entity.Company
	var changed []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&company, "id = ?", companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
		if !utils.UserIsCompanyMember(tx, userID, companyID) {
			return ErrNotCompanyMember
		}

		before := company
		applyPatch(&company, patch)
		if err := validateCompany(&company); err != nil {
			return err
		}

		changed = utils.ChangedFields(before, company)
		if len(changed) == 0 {
			return nil
		}

		if company.CompanyName != before.CompanyName {
			var count int64
			if err := tx.Model(&entity.Company{}).Where("company_name = ? AND id <> ?", company.CompanyName, company.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateName
			}
		}

		if err := tx.Omit(clause.Associations).Save(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return fmt.Errorf("failed to update company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(changed) > 0 {
		r.logger.Info("Company profile updated", zap.String("company_id", company.ID.String()), zap.Strings("changed", changed))
		r.events.CompanyUpdated(ctx, company, changed)
		r.reindex(ctx, &company)
	}
	return &company, changed, nil
}

func applyPatch(company *entity.Company, patch CompanyPatch) {
	if patch.CompanyName != nil {
		company.CompanyName = strings.TrimSpace(*patch.CompanyName)
	}
	if patch.Description != nil {
		company.Description = *patch.Description
	}
	if patch.Website != nil {
		company.Website = *patch.Website
	}
	if patch.StartupLogo != nil {
		company.StartupLogo = *patch.StartupLogo
	}
	if patch.Type != nil {
		company.Type = *patch.Type
	}
	if patch.Industry != nil {
		company.Industry = *patch.Industry
	}
	if patch.Size != nil {
		company.Size = *patch.Size
	}
	if patch.FundingTarget != nil {
		company.FundingTarget = *patch.FundingTarget
	}
}

func (r *Registry) reindex(ctx context.Context, company *entity.Company) {
	if err := r.index.Index(ctx, company); err != nil {
		r.logger.Warn("Failed to index company", zap.Error(err), zap.String("company_id", company.ID.String()))
	}
}

// ResolveInvestor returns the enterprise company the user acts for.
func ResolveInvestor(db *gorm.DB, userID uuid.UUID) (*entity.Company, error) {
	companies, err := utils.UserCompanies(db, userID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, ErrNotAssociated
	}
	for i := range companies {
		if companies[i].IsEnterprise() {
			return &companies[i], nil
		}
	}
	return nil, ErrNotEnterprise
}
