package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/getmentor/companyforms/internal/cache"
	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/handlers"
	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/notify"
	"github.com/getmentor/companyforms/internal/repository"
	"github.com/getmentor/companyforms/internal/services"
	"github.com/getmentor/companyforms/internal/submission"
	"github.com/getmentor/companyforms/internal/uploader"
	"github.com/getmentor/companyforms/pkg/apiclient"
	"github.com/getmentor/companyforms/pkg/httpclient"
	"github.com/getmentor/companyforms/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logoPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// recordingNotifier keeps every notification in order
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) NotifySuccess(message string) { n.add("success: " + message) }
func (n *recordingNotifier) NotifyFailure(message string) { n.add("failure: " + message) }

func (n *recordingNotifier) add(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, m)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

var _ notify.Notifier = (*recordingNotifier)(nil)

func startDevServer(t *testing.T) (*apiclient.Client, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewUnstartedServer(nil)
	store := storage.NewMemoryStorage("http://" + srv.Listener.Addr().String() + "/uploads")
	srv.Config.Handler = handlers.NewRouter(handlers.RouterConfig{
		Directory:      services.NewDirectoryService(repository.NewDirectoryRepository(), store),
		Assets:         services.NewAssetService(store, "company-logos", storage.MaxImageSize),
		MaxUploadBytes: storage.MaxImageSize,
	})
	srv.Start()
	t.Cleanup(srv.Close)

	return apiclient.New(srv.URL, apiclient.DefaultEndpoints(), httpclient.NewStandardClient(0)), srv.URL
}

func TestEndToEnd_AddCompanyThenReview(t *testing.T) {
	client, baseURL := startDevServer(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}

	refreshed := make(chan struct{}, 2)
	callbacks := submission.Callbacks{
		OnClose:   func() {},
		OnRefresh: func() { refreshed <- struct{}{} },
	}

	up := uploader.New(client, uploader.WithCache(cache.NewAssetCache(0)))
	companyModal := submission.NewCompanyModal(client, up, notifier, callbacks)

	// Saving an empty form shows every inline error and sends nothing
	outcome, err := companyModal.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, submission.OutcomeInvalid, outcome)
	assert.Len(t, companyModal.Store().Errors(), 5)

	require.True(t, companyModal.UploadLogo(ctx, &uploader.File{Name: "acme.png", ContentType: "image/png", Data: logoPNG}))
	preview := companyModal.Store().String(form.CompanyLogoPreview)
	resp, err := http.Get(preview)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, companyModal.SetField(form.CompanyName, "Acme"))
	require.NoError(t, companyModal.SetField(form.Location, "Main street 1"))
	require.NoError(t, companyModal.SetField(form.FoundedOn, "2001-04-01"))
	require.NoError(t, companyModal.SetField(form.City, "Berlin"))

	outcome, err = companyModal.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, submission.OutcomeSucceeded, outcome)
	<-refreshed

	// The same company again is rejected by the server and keeps the input
	companyModal.Open()
	require.True(t, companyModal.UploadLogo(ctx, &uploader.File{Name: "acme.png", ContentType: "image/png", Data: logoPNG}))
	require.NoError(t, companyModal.SetField(form.CompanyName, "acme"))
	require.NoError(t, companyModal.SetField(form.Location, "Elsewhere"))
	require.NoError(t, companyModal.SetField(form.FoundedOn, "1999"))
	require.NoError(t, companyModal.SetField(form.City, "Paris"))

	outcome, err = companyModal.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, submission.OutcomeFailed, outcome)
	assert.Equal(t, "acme", companyModal.Store().String(form.CompanyName))

	companies := listCompanies(t, baseURL)
	require.Len(t, companies, 1)
	companyID := companies[0].ID

	reviewModal := submission.NewReviewModal(client, companyID, notifier, callbacks)
	require.NoError(t, reviewModal.SetField(form.FullName, "Jane Doe"))
	require.NoError(t, reviewModal.SetField(form.Subject, "Great place"))
	require.NoError(t, reviewModal.SetField(form.Review, "Friendly team"))
	require.NoError(t, reviewModal.SelectStar(3))
	assert.Equal(t, "Satisfied", reviewModal.Satisfaction())

	outcome, err = reviewModal.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, submission.OutcomeSucceeded, outcome)
	<-refreshed

	assert.Equal(t, []string{
		"success: Company added successfully",
		"failure: Duplicate",
		"success: Review added successfully",
	}, notifier.all())
}

func listCompanies(t *testing.T, baseURL string) []models.Company {
	t.Helper()
	resp, err := http.Get(baseURL + "/companies")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	var list models.ListResponse[models.Company]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	return list.Data
}
