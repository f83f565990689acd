package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/handlers"
	"github.com/getmentor/companyforms/internal/repository"
	"github.com/getmentor/companyforms/internal/services"
	"github.com/getmentor/companyforms/pkg/apiclient"
	"github.com/getmentor/companyforms/pkg/httpclient"
	"github.com/getmentor/companyforms/pkg/storage"
)

var logoPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func startDevServer(t *testing.T) string {
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
	return srv.URL
}

func resetFlags() {
	apiURL, language, logLevel = "", "", "error"
	companyName, companyLocation, companyCity, companyFoundedOn, companyLogoPath = "", "", "", "", ""
	reviewCompanyID, reviewFullName, reviewSubject, reviewText = "", "", "", ""
	reviewStars = form.DefaultRating
}

// runCLI executes formctl in-process and returns everything it printed
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func addCompany(t *testing.T, baseURL, name string) (string, error) {
	t.Helper()
	return runCLI(t, "company", "add",
		"--api-url", baseURL,
		"--logo", writeFile(t, "logo.png", logoPNG),
		"--name", name,
		"--location", "Main street 1",
		"--city", "Berlin",
		"--founded-on", "2001-04-01",
	)
}

func TestCompanyAdd_EmptyFormPrintsEveryFieldError(t *testing.T) {
	baseURL := startDevServer(t)

	out, err := runCLI(t, "company", "add", "--api-url", baseURL)

	assert.ErrorIs(t, err, errFormInvalid)
	assert.Contains(t, out, "  companyLogo: Company logo is required\n")
	assert.Contains(t, out, "  companyName: Company name is required\n")
	assert.Contains(t, out, "  location: Location is required\n")
	assert.Contains(t, out, "  foundedOn: Founded date is required\n")
	assert.Contains(t, out, "  city: City is required\n")
	assert.NotContains(t, out, "✔")
}

func TestCompanyAdd_UploadsLogoAndSaves(t *testing.T) {
	baseURL := startDevServer(t)

	out, err := addCompany(t, baseURL, "Acme")

	require.NoError(t, err)
	assert.Contains(t, out, "Logo: "+baseURL+"/uploads/company-logos/")
	assert.Contains(t, out, "✔ Company added successfully\n")
	assert.Contains(t, out, "1 companies listed\n")
}

func TestCompanyAdd_DuplicateIsRejected(t *testing.T) {
	baseURL := startDevServer(t)

	_, err := addCompany(t, baseURL, "Acme")
	require.NoError(t, err)

	out, err := addCompany(t, baseURL, "acme")

	assert.ErrorIs(t, err, errSaveFailed)
	assert.Contains(t, out, "✖ Duplicate\n")
	assert.NotContains(t, out, "companies listed")
}

func TestCompanyAdd_NonImageLogo(t *testing.T) {
	baseURL := startDevServer(t)

	out, err := runCLI(t, "company", "add",
		"--api-url", baseURL,
		"--logo", writeFile(t, "notes.txt", []byte("plain text, not an image")),
		"--name", "Acme",
	)

	assert.ErrorIs(t, err, errUploadLogo)
	assert.Contains(t, out, "✖ Only image files can be uploaded\n")
}

func TestCompanyAdd_MissingLogoFile(t *testing.T) {
	_, err := runCLI(t, "company", "add", "--logo", filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestReviewAdd(t *testing.T) {
	baseURL := startDevServer(t)
	_, err := addCompany(t, baseURL, "Acme")
	require.NoError(t, err)

	client := apiclient.New(baseURL, apiclient.DefaultEndpoints(), httpclient.NewStandardClient(0))
	companies, err := client.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)

	out, err := runCLI(t, "review", "add",
		"--api-url", baseURL,
		"--company-id", companies[0].ID,
		"--full-name", "Jane Doe",
		"--subject", "Great place",
		"--review", "Friendly team",
		"--stars", "5",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Rating: ★★★★★ Satisfied\n")
	assert.Contains(t, out, "✔ Review added successfully\n")
	assert.Contains(t, out, "1 reviews listed\n")

	reviews, err := client.ListReviews(context.Background(), companies[0].ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestReviewAdd_DefaultRatingAndMissingFields(t *testing.T) {
	baseURL := startDevServer(t)

	out, err := runCLI(t, "review", "add", "--api-url", baseURL, "--company-id", "c1")

	assert.ErrorIs(t, err, errFormInvalid)
	assert.Contains(t, out, "Rating: ★★★☆☆ Not Satisfied\n")
	assert.Contains(t, out, "  fullName: full name is required\n")
	assert.Contains(t, out, "  subject: Subject is required\n")
	assert.Contains(t, out, "  review: review is required\n")
	assert.NotContains(t, out, "  rating:")
}

func TestReviewAdd_UnknownCompany(t *testing.T) {
	baseURL := startDevServer(t)

	out, err := runCLI(t, "review", "add",
		"--api-url", baseURL,
		"--company-id", "does-not-exist",
		"--full-name", "Jane Doe",
		"--subject", "Great place",
		"--review", "Friendly team",
	)

	assert.ErrorIs(t, err, errSaveFailed)
	assert.Contains(t, out, "✖ Company not found\n")
}

func TestReviewAdd_StarsOutOfRange(t *testing.T) {
	for _, stars := range []string{"0", "6"} {
		t.Run(stars, func(t *testing.T) {
			_, err := runCLI(t, "review", "add", "--company-id", "c1", "--stars", stars)
			assert.EqualError(t, err, "--stars must be between 1 and 5")
		})
	}
}
