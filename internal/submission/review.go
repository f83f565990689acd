package submission

import (
	"context"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/notify"
	"github.com/getmentor/companyforms/internal/validation"
)

// ReviewAPI creates review records
type ReviewAPI interface {
	CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.APIResponse, error)
}

// ReviewModal is the "add review" modal of one company
type ReviewModal struct {
	*machine
	api       ReviewAPI
	companyID string
}

// NewReviewModal creates an open review modal for companyID
func NewReviewModal(api ReviewAPI, companyID string, notifier notify.Notifier, callbacks Callbacks, opts ...Option) *ReviewModal {
	m := &ReviewModal{
		machine:   newMachine("review", "Review added successfully", form.ReviewSchema(), notifier, callbacks, opts),
		api:       api,
		companyID: companyID,
	}
	m.validate = validation.ValidateReview
	m.submit = m.create
	return m
}

// Store exposes the modal's field store
func (m *ReviewModal) Store() *form.Store { return m.store }

// State returns the current save state
func (m *ReviewModal) State() State { return m.current() }

// Open shows the modal with empty fields and the default rating
func (m *ReviewModal) Open() { m.open() }

// Close hides the modal and discards its input
func (m *ReviewModal) Close() { m.close() }

// RefreshDone is closed once the refresh started by the last successful save returned
func (m *ReviewModal) RefreshDone() <-chan struct{} { return m.refreshDone() }

// SetField records text input for f and clears its inline error. The
// rating is set through SelectStar only.
func (m *ReviewModal) SetField(f form.Field, value string) error {
	if f == form.Rating {
		return ErrNotTextField
	}
	return m.store.Set(f, value)
}

// SelectStar sets the rating from a 0-based star index
func (m *ReviewModal) SelectStar(index int) error {
	rating, err := form.RatingForStar(index)
	if err != nil {
		return err
	}
	return m.store.Set(form.Rating, rating)
}

// Rating returns the selected rating
func (m *ReviewModal) Rating() int {
	return m.store.Int(form.Rating)
}

// Satisfaction labels the selected rating
func (m *ReviewModal) Satisfaction() string {
	return form.SatisfactionLabel(m.Rating())
}

// StarFilled reports whether the star at 0-based index is lit
func (m *ReviewModal) StarFilled(index int) bool {
	return form.StarFilled(index, m.Rating())
}

// Save validates the form and, when valid, creates the review
func (m *ReviewModal) Save(ctx context.Context) (Outcome, error) {
	return m.save(ctx)
}

func (m *ReviewModal) create(ctx context.Context, snap form.Snapshot) (*models.APIResponse, error) {
	return m.api.CreateReview(ctx, &models.CreateReviewRequest{
		Language:  m.language,
		CompanyID: m.companyID,
		Rating:    snap.Int(form.Rating),
		FullName:  snap.String(form.FullName),
		Subject:   snap.String(form.Subject),
		Feedback:  snap.String(form.Review),
	})
}
