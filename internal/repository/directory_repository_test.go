package repository

import (
	"context"
	"testing"
	"time"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryRepository_CreateCompany(t *testing.T) {
	repo := NewDirectoryRepository()
	ctx := context.Background()

	c, err := repo.CreateCompany(ctx, &models.Company{Name: "Acme", City: "Berlin"})

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Acme", c.Name)

	got, err := repo.GetCompany(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestDirectoryRepository_DuplicateNames(t *testing.T) {
	repo := NewDirectoryRepository()
	ctx := context.Background()
	_, err := repo.CreateCompany(ctx, &models.Company{Name: "Acme Corp"})
	require.NoError(t, err)

	for _, name := range []string{"Acme Corp", "acme corp", "  ACME   corp "} {
		_, err := repo.CreateCompany(ctx, &models.Company{Name: name})
		assert.True(t, errors.Is(err, errors.ErrConflict), "name %q", name)
	}
}

func TestDirectoryRepository_ListCompaniesNewestFirst(t *testing.T) {
	repo := NewDirectoryRepository()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := repo.CreateCompany(ctx, &models.Company{Name: "Old"})
	require.NoError(t, err)
	now = now.Add(time.Minute)
	_, err = repo.CreateCompany(ctx, &models.Company{Name: "New"})
	require.NoError(t, err)

	list, err := repo.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Name)
	assert.Equal(t, "Old", list[1].Name)
}

func TestDirectoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewDirectoryRepository()
	ctx := context.Background()
	c, err := repo.CreateCompany(ctx, &models.Company{Name: "Acme"})
	require.NoError(t, err)

	c.Name = "Mutated"

	got, err := repo.GetCompany(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestDirectoryRepository_Reviews(t *testing.T) {
	repo := NewDirectoryRepository()
	ctx := context.Background()
	c, err := repo.CreateCompany(ctx, &models.Company{Name: "Acme"})
	require.NoError(t, err)

	rv, err := repo.CreateReview(ctx, &models.Review{CompanyID: c.ID, Rating: 4, FullName: "Jane"})
	require.NoError(t, err)
	assert.NotEmpty(t, rv.ID)

	list, err := repo.ListReviews(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].Rating)
}

func TestDirectoryRepository_ReviewUnknownCompany(t *testing.T) {
	repo := NewDirectoryRepository()
	ctx := context.Background()

	_, err := repo.CreateReview(ctx, &models.Review{CompanyID: "missing"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = repo.ListReviews(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = repo.GetCompany(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDirectoryRepository_CanceledContext(t *testing.T) {
	repo := NewDirectoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.CreateCompany(ctx, &models.Company{Name: "Acme"})
	assert.ErrorIs(t, err, context.Canceled)
}
