package utils

import "github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"

func CompanyToDocument(company *entity.Company) map[string]interface{} {
	return map[string]interface{}{
		"id":           company.ID.String(),
		"type":         string(company.Type),
		"company_name": company.CompanyName,
		"description":  company.Description,
		"industry":     company.Industry,
		"website":      company.Website,
		"startup_logo": company.StartupLogo,
	}
}
