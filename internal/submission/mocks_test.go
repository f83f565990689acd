package submission

import (
	"context"
	"sync/atomic"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/uploader"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySuccess(message string) {
	m.Called(message)
}

func (m *MockNotifier) NotifyFailure(message string) {
	m.Called(message)
}

type MockCompanyAPI struct {
	mock.Mock
}

func (m *MockCompanyAPI) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.APIResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIResponse), args.Error(1)
}

type MockReviewAPI struct {
	mock.Mock
}

func (m *MockReviewAPI) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.APIResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIResponse), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file *uploader.File) (models.AssetRef, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(models.AssetRef), args.Error(1)
}

// callbackCounter counts OnClose and OnRefresh invocations
type callbackCounter struct {
	closed    atomic.Int32
	refreshed atomic.Int32
}

func (c *callbackCounter) callbacks() Callbacks {
	return Callbacks{
		OnClose:   func() { c.closed.Add(1) },
		OnRefresh: func() { c.refreshed.Add(1) },
	}
}
