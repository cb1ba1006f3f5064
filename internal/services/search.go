package services

import (
	"context"
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/meilisearch/meilisearch-go"
)

// CompaniesIndex is the Meilisearch index holding company profiles.
const CompaniesIndex = "companies"

// CompanyIndex keeps a full-text index of company profiles.
type CompanyIndex interface {
	Index(ctx context.Context, company *entity.Company) error
	Search(ctx context.Context, query string, companyType entity.CompanyType, limit int64) ([]interface{}, error)
}

type MeiliCompanyIndex struct {
	client *meilisearch.Client
}

func NewMeiliCompanyIndex(client *meilisearch.Client) *MeiliCompanyIndex {
	return &MeiliCompanyIndex{client: client}
}

func (m *MeiliCompanyIndex) Index(ctx context.Context, company *entity.Company) error {
	document := utils.CompanyToDocument(company)
	if _, err := m.client.Index(CompaniesIndex).AddDocuments([]map[string]interface{}{document}, "id"); err != nil {
		return fmt.Errorf("failed to index company: %w", err)
	}
	return nil
}

func (m *MeiliCompanyIndex) Search(ctx context.Context, query string, companyType entity.CompanyType, limit int64) ([]interface{}, error) {
	request := &meilisearch.SearchRequest{Limit: limit}
	if companyType != "" {
		request.Filter = fmt.Sprintf("type = %s", companyType)
	}

	result, err := m.client.Index(CompaniesIndex).Search(query, request)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return result.Hits, nil
}

// DisabledIndex is used when no search backend is configured.
type DisabledIndex struct{}

func (DisabledIndex) Index(ctx context.Context, company *entity.Company) error {
	return nil
}

func (DisabledIndex) Search(ctx context.Context, query string, companyType entity.CompanyType, limit int64) ([]interface{}, error) {
	return nil, ErrSearchUnavailable
}
