// Package submission runs the validate-then-submit flow of the company and
// review modals. Each modal owns one field store and allows at most one
// in-flight create request.
package submission

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/notify"
	"github.com/getmentor/companyforms/internal/validation"
	"github.com/getmentor/companyforms/pkg/apiclient"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/metrics"
	"github.com/getmentor/companyforms/pkg/tracing"
	"github.com/getmentor/companyforms/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// GenericFailureMessage is shown when a failed save carries no server message
const GenericFailureMessage = "Something went wrong, please try again"

// DefaultLanguage is sent with every create request unless overridden
const DefaultLanguage = "en"

var (
	// ErrSaveInFlight is returned when Save is called before the previous save finished
	ErrSaveInFlight = errors.New("a save is already in progress")
	// ErrModalClosed is returned when Save is called on a closed modal
	ErrModalClosed = errors.New("modal is closed")
	// ErrNotTextField is returned when SetField targets a field that only its
	// own control may write (logo upload, star selection)
	ErrNotTextField = errors.New("field is not a text input")
)

// State is the position of a modal in the save flow
type State int32

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is how a single Save ended
type Outcome int

const (
	OutcomeInvalid Outcome = iota + 1
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Callbacks are supplied by whoever opened the modal
type Callbacks struct {
	// OnClose hides the modal
	OnClose func()
	// OnRefresh re-fetches the view the modal was launched from. It runs
	// in the background and is never awaited.
	OnRefresh func()
}

// Option configures a modal
type Option func(*machine)

// WithLanguage sets the language sent with create requests
func WithLanguage(lang string) Option {
	return func(m *machine) {
		if lang != "" {
			m.language = lang
		}
	}
}

// WithStateObserver registers fn to be called on every state transition
func WithStateObserver(fn func(from, to State)) Option {
	return func(m *machine) {
		m.observer = fn
	}
}

type doneChan = <-chan struct{}

type submitFunc func(ctx context.Context, snap form.Snapshot) (*models.APIResponse, error)

// machine is the state machine shared by both modals
type machine struct {
	name           string
	successMessage string
	store          *form.Store
	notifier       notify.Notifier
	callbacks      Callbacks
	language       string
	observer       func(from, to State)
	validate       func(form.Snapshot) validation.Result
	submit         submitFunc

	state   atomic.Int32
	refresh atomic.Pointer[doneChan]
}

func newMachine(name, successMessage string, schema form.Schema, notifier notify.Notifier, callbacks Callbacks, opts []Option) *machine {
	if notifier == nil {
		notifier = notify.NewLogNotifier(name)
	}
	m := &machine{
		name:           name,
		successMessage: successMessage,
		store:          form.NewStore(schema),
		notifier:       notifier,
		callbacks:      callbacks,
		language:       DefaultLanguage,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *machine) current() State {
	return State(m.state.Load())
}

func (m *machine) transition(from, to State) bool {
	if !m.state.CompareAndSwap(int32(from), int32(to)) {
		return false
	}
	logger.Debug("Modal state changed",
		zap.String("form", m.name),
		zap.String("from", from.String()),
		zap.String("to", to.String()))
	if m.observer != nil {
		m.observer(from, to)
	}
	return true
}

// save runs one pass of the flow. Only ErrSaveInFlight and ErrModalClosed
// are returned as errors; remote failures end in OutcomeFailed.
func (m *machine) save(ctx context.Context) (outcome Outcome, err error) {
	if !m.transition(Idle, Validating) {
		return 0, ErrSaveInFlight
	}
	if m.store.Closed() {
		m.transition(Validating, Idle)
		return 0, ErrModalClosed
	}

	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "submission."+m.name+".save")
	defer func() {
		span.SetAttributes(attribute.String("outcome", outcome.String()))
		tracing.EndSpan(span, err)
		metrics.FormSubmissions.WithLabelValues(m.name, outcome.String()).Inc()
		metrics.FormSubmissionDuration.WithLabelValues(m.name).Observe(metrics.MeasureDuration(start))
	}()

	snap := m.store.Snapshot()
	result := m.validate(snap)
	if !result.Valid {
		m.rejectInvalid(result)
		m.transition(Validating, Idle)
		return OutcomeInvalid, nil
	}

	m.transition(Validating, Submitting)
	resp, submitErr := m.submit(ctx, snap)

	if submitErr == nil && resp != nil && resp.Status {
		m.succeed(resp.Message, snap.Session())
		m.transition(Succeeded, Idle)
		return OutcomeSucceeded, nil
	}

	m.fail(resp, submitErr)
	m.transition(Failed, Idle)
	return OutcomeFailed, nil
}

func (m *machine) rejectInvalid(result validation.Result) {
	fields := result.Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		metrics.FormValidationFailures.WithLabelValues(m.name, string(f)).Inc()
		names = append(names, string(f))
	}

	if err := m.store.ReplaceErrors(result.Errors); err != nil {
		logger.Error("Failed to write validation errors",
			zap.String("form", m.name),
			zap.Error(err))
	}

	logger.Info("Form failed validation",
		zap.String("form", m.name),
		zap.Strings("fields", names))
}

func (m *machine) succeed(message string, session uint64) {
	m.transition(Submitting, Succeeded)

	if message == "" {
		message = m.successMessage
	}
	m.notifier.NotifySuccess(message)

	done := trigger.CallAsync(m.name+".refresh", m.callbacks.OnRefresh)
	m.refresh.Store(&done)

	// A modal the user already closed is not closed twice
	if m.store.CloseSession(session) {
		if m.callbacks.OnClose != nil {
			m.callbacks.OnClose()
		}
	} else {
		logger.Debug("Save completed after modal was closed", zap.String("form", m.name))
	}

	logger.Info("Form submitted", zap.String("form", m.name))
}

func (m *machine) fail(resp *models.APIResponse, submitErr error) {
	m.transition(Submitting, Failed)

	message := ""
	switch {
	case submitErr != nil:
		message = apiclient.ServerMessage(submitErr)
	case resp != nil:
		message = resp.Message
	}
	if message == "" {
		message = GenericFailureMessage
	}
	m.notifier.NotifyFailure(message)

	fields := []zap.Field{zap.String("form", m.name), zap.String("message", message)}
	if submitErr != nil {
		fields = append(fields, zap.Error(submitErr))
	}
	logger.Warn("Form submission failed", fields...)
}

// open shows the modal with a fresh store
func (m *machine) open() {
	m.store.Open()
}

// close hides the modal. A save still in flight completes in the
// background without touching the store.
func (m *machine) close() {
	if m.store.Closed() {
		return
	}
	m.store.Close()
	if m.callbacks.OnClose != nil {
		m.callbacks.OnClose()
	}
}

// refreshDone returns a channel closed once the most recent refresh
// callback returned. It is already closed when no refresh was started.
func (m *machine) refreshDone() <-chan struct{} {
	if p := m.refresh.Load(); p != nil {
		return *p
	}
	done := make(chan struct{})
	close(done)
	return done
}
