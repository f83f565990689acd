package services

import (
	"context"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/errors"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/metrics"
	"github.com/getmentor/companyforms/pkg/storage"
	"go.uber.org/zap"
)

// DirectoryService creates and lists companies and their reviews
type DirectoryService struct {
	repo    DirectoryRepository
	storage storage.Storage
}

// NewDirectoryService creates a directory service. Company logos are
// checked against store.
func NewDirectoryService(repo DirectoryRepository, store storage.Storage) *DirectoryService {
	return &DirectoryService{
		repo:    repo,
		storage: store,
	}
}

// CreateCompany stores a new company. The logo must be a previously
// uploaded asset and the name must be unused.
func (s *DirectoryService) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.Company, error) {
	if _, err := s.storage.Get(ctx, req.CompanyLogo); err != nil {
		metrics.RecordsCreated.WithLabelValues("company", "rejected").Inc()
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, errors.InvalidInputError("companyLogo", "no uploaded asset with this key")
		}
		return nil, errors.InternalError("failed to look up company logo: " + err.Error())
	}

	company, err := s.repo.CreateCompany(ctx, &models.Company{
		Name:        req.Name,
		Location:    req.Location,
		City:        req.City,
		FoundedOn:   req.FoundedOn,
		CompanyLogo: req.CompanyLogo,
	})
	if err != nil {
		metrics.RecordsCreated.WithLabelValues("company", "rejected").Inc()
		logger.Warn("Company rejected",
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, err
	}

	metrics.RecordsCreated.WithLabelValues("company", "created").Inc()
	logger.Info("Company created",
		zap.String("company_id", company.ID),
		zap.String("language", req.Language))

	company.LogoURL = s.storage.URLFor(company.CompanyLogo)
	return company, nil
}

// ListCompanies returns all companies with their logo display URLs
func (s *DirectoryService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		c.LogoURL = s.storage.URLFor(c.CompanyLogo)
	}
	return companies, nil
}

// CreateReview stores a review for an existing company
func (s *DirectoryService) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error) {
	review, err := s.repo.CreateReview(ctx, &models.Review{
		CompanyID: req.CompanyID,
		Rating:    req.Rating,
		FullName:  req.FullName,
		Subject:   req.Subject,
		Feedback:  req.Feedback,
	})
	if err != nil {
		metrics.RecordsCreated.WithLabelValues("review", "rejected").Inc()
		logger.Warn("Review rejected",
			zap.String("company_id", req.CompanyID),
			zap.Error(err))
		return nil, err
	}

	metrics.RecordsCreated.WithLabelValues("review", "created").Inc()
	logger.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("company_id", review.CompanyID),
		zap.Int("rating", review.Rating))

	return review, nil
}

// ListReviews returns the reviews of one company
func (s *DirectoryService) ListReviews(ctx context.Context, companyID string) ([]*models.Review, error) {
	return s.repo.ListReviews(ctx, companyID)
}
