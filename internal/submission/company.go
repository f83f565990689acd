package submission

import (
	"context"
	"errors"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/notify"
	"github.com/getmentor/companyforms/internal/uploader"
	"github.com/getmentor/companyforms/internal/validation"
	"github.com/getmentor/companyforms/pkg/logger"
	"go.uber.org/zap"
)

// CompanyAPI creates company records
type CompanyAPI interface {
	CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.APIResponse, error)
}

// LogoUploader exchanges a local file for a stored asset
type LogoUploader interface {
	Upload(ctx context.Context, file *uploader.File) (models.AssetRef, error)
}

// CompanyModal is the "add company" modal
type CompanyModal struct {
	*machine
	api      CompanyAPI
	uploader LogoUploader
}

// NewCompanyModal creates an open company modal
func NewCompanyModal(api CompanyAPI, up LogoUploader, notifier notify.Notifier, callbacks Callbacks, opts ...Option) *CompanyModal {
	m := &CompanyModal{
		machine:  newMachine("company", "Company added successfully", form.CompanySchema(), notifier, callbacks, opts),
		api:      api,
		uploader: up,
	}
	m.validate = validation.ValidateCompany
	m.submit = m.create
	return m
}

// Store exposes the modal's field store
func (m *CompanyModal) Store() *form.Store { return m.store }

// State returns the current save state
func (m *CompanyModal) State() State { return m.current() }

// Open shows the modal with empty fields
func (m *CompanyModal) Open() { m.open() }

// Close hides the modal and discards its input
func (m *CompanyModal) Close() { m.close() }

// RefreshDone is closed once the refresh started by the last successful save returned
func (m *CompanyModal) RefreshDone() <-chan struct{} { return m.refreshDone() }

// SetField records user input for a text field and clears its inline
// error. The logo fields are written by UploadLogo only.
func (m *CompanyModal) SetField(f form.Field, value string) error {
	if f == form.CompanyLogo || f == form.CompanyLogoPreview {
		return ErrNotTextField
	}
	return m.store.Set(f, value)
}

// UploadLogo uploads file and stores the resulting storage key and preview
// URL. Failures are reported through the notifier and leave the logo
// fields untouched; the return value tells whether the logo was stored.
func (m *CompanyModal) UploadLogo(ctx context.Context, file *uploader.File) bool {
	session := m.store.Session()

	ref, err := m.uploader.Upload(ctx, file)
	if err != nil {
		m.notifier.NotifyFailure(uploader.UserMessage(err))
		logger.Warn("Logo upload failed", zap.Error(err))
		return false
	}

	err = m.store.SetInSession(session, map[form.Field]any{
		form.CompanyLogo:        ref.StorageKey,
		form.CompanyLogoPreview: ref.DisplayURL,
	})
	if errors.Is(err, form.ErrStaleSession) {
		logger.Debug("Dropping logo upload for a closed modal", zap.String("storage_key", ref.StorageKey))
		return false
	}
	if err != nil {
		logger.Error("Failed to store uploaded logo", zap.Error(err))
		return false
	}
	return true
}

// Save validates the form and, when valid, creates the company
func (m *CompanyModal) Save(ctx context.Context) (Outcome, error) {
	return m.save(ctx)
}

func (m *CompanyModal) create(ctx context.Context, snap form.Snapshot) (*models.APIResponse, error) {
	return m.api.CreateCompany(ctx, &models.CreateCompanyRequest{
		Language:    m.language,
		Name:        snap.String(form.CompanyName),
		Location:    snap.String(form.Location),
		City:        snap.String(form.City),
		FoundedOn:   snap.String(form.FoundedOn),
		CompanyLogo: snap.String(form.CompanyLogo),
	})
}
