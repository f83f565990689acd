package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/errors"
	"github.com/google/uuid"
)

// DirectoryRepository keeps companies and their reviews in memory. It backs
// the dev server only; nothing is persisted across restarts.
type DirectoryRepository struct {
	mu        sync.RWMutex
	companies map[string]*storedCompany
	byName    map[string]string // normalized name -> company id
	reviews   map[string][]*models.Review
	now       func() time.Time
}

type storedCompany struct {
	company   models.Company
	createdAt time.Time
}

// NewDirectoryRepository creates an empty repository
func NewDirectoryRepository() *DirectoryRepository {
	return &DirectoryRepository{
		companies: make(map[string]*storedCompany),
		byName:    make(map[string]string),
		reviews:   make(map[string][]*models.Review),
		now:       time.Now,
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CreateCompany stores c under a new id. Names are unique ignoring case and
// surrounding whitespace.
func (r *DirectoryRepository) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := normalizeName(c.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[key]; exists {
		return nil, errors.ConflictError("company " + c.Name + " already exists")
	}

	stored := *c
	stored.ID = uuid.NewString()
	r.companies[stored.ID] = &storedCompany{company: stored, createdAt: r.now()}
	r.byName[key] = stored.ID

	out := stored
	return &out, nil
}

// GetCompany returns the company with id
func (r *DirectoryRepository) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sc, ok := r.companies[id]
	if !ok {
		return nil, errors.NotFoundError("company")
	}
	out := sc.company
	return &out, nil
}

// ListCompanies returns all companies, newest first
func (r *DirectoryRepository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	r.mu.RLock()
	stored := make([]*storedCompany, 0, len(r.companies))
	for _, sc := range r.companies {
		stored = append(stored, sc)
	}
	r.mu.RUnlock()

	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].createdAt.Equal(stored[j].createdAt) {
			return stored[i].company.Name < stored[j].company.Name
		}
		return stored[i].createdAt.After(stored[j].createdAt)
	})

	out := make([]*models.Company, 0, len(stored))
	for _, sc := range stored {
		c := sc.company
		out = append(out, &c)
	}
	return out, nil
}

// CreateReview stores rv for an existing company
func (r *DirectoryRepository) CreateReview(ctx context.Context, rv *models.Review) (*models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[rv.CompanyID]; !ok {
		return nil, errors.NotFoundError("company")
	}

	stored := *rv
	stored.ID = uuid.NewString()
	r.reviews[rv.CompanyID] = append(r.reviews[rv.CompanyID], &stored)

	out := stored
	return &out, nil
}

// ListReviews returns the reviews of a company in submission order
func (r *DirectoryRepository) ListReviews(ctx context.Context, companyID string) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.companies[companyID]; !ok {
		return nil, errors.NotFoundError("company")
	}

	out := make([]*models.Review, 0, len(r.reviews[companyID]))
	for _, rv := range r.reviews[companyID] {
		c := *rv
		out = append(out, &c)
	}
	return out, nil
}
