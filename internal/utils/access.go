package utils

import (
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserCompanies returns every company the user is a member of.
func UserCompanies(db *gorm.DB, userID uuid.UUID) ([]entity.Company, error) {
	var memberships []entity.UserToCompany
	if err := db.Preload("Company").Where("user_id = ?", userID).Order("created_at").Find(&memberships).Error; err != nil {
		return nil, err
	}

	companies := make([]entity.Company, 0, len(memberships))
	for _, m := range memberships {
		companies = append(companies, m.Company)
	}
	return companies, nil
}

func UserIsCompanyMember(db *gorm.DB, userID uuid.UUID, companyID uuid.UUID) bool {
	var count int64
	if err := db.Model(&entity.UserToCompany{}).Where("user_id = ? AND company_id = ?", userID, companyID).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func UserHasProjectAccess(db *gorm.DB, userID uuid.UUID, projectID uuid.UUID) bool {
	var project entity.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		return false
	}

	return UserIsCompanyMember(db, userID, project.CompanyID)
}

// CompanyMembers returns the users acting for the given company.
func CompanyMembers(db *gorm.DB, companyID uuid.UUID) ([]entity.User, error) {
	var users []entity.User
	sub := db.Model(&entity.UserToCompany{}).Select("user_id").Where("company_id = ?", companyID)
	if err := db.Where("id IN (?)", sub).Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
