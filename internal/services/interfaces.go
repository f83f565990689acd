package services

import (
	"context"

	"github.com/getmentor/companyforms/internal/models"
)

// DirectoryRepository is the record store behind the directory service
type DirectoryRepository interface {
	CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	CreateReview(ctx context.Context, rv *models.Review) (*models.Review, error)
	ListReviews(ctx context.Context, companyID string) ([]*models.Review, error)
}

// DirectoryServiceInterface defines the company and review operations of the dev server
type DirectoryServiceInterface interface {
	CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, companyID string) ([]*models.Review, error)
}

// AssetServiceInterface defines the asset upload operations of the dev server
type AssetServiceInterface interface {
	UploadImage(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadResponse, error)
	GetAsset(ctx context.Context, key string) (data []byte, contentType string, err error)
}
