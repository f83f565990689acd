// Package main provides formctl, a command-line front end for the Add Company
// and Add Review forms of the company directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmentor/companyforms/config"
	"github.com/getmentor/companyforms/internal/cache"
	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/notify"
	"github.com/getmentor/companyforms/internal/uploader"
	"github.com/getmentor/companyforms/pkg/apiclient"
	"github.com/getmentor/companyforms/pkg/httpclient"
	"github.com/getmentor/companyforms/pkg/logger"
)

var (
	apiURL   string
	language string
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "formctl",
	Short: "Add companies and reviews to the company directory",
	Long: `formctl fills in and saves the Add Company and Add Review forms of the
company directory. Field errors are printed inline and the command exits
non-zero when a form is invalid or the API rejects it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Company directory API base URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "Language sent with every record (overrides FORM_LANGUAGE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	if language != "" {
		loaded.App.Language = language
	}
	cfg = loaded

	err = logger.Initialize(logger.Config{
		Level:       logLevel,
		Environment: cfg.App.Env,
		ServiceName: cfg.Observability.ServiceName + "-formctl",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// newAPIClient builds the directory API client from the loaded configuration
func newAPIClient() *apiclient.Client {
	return apiclient.New(cfg.API.BaseURL, apiclient.Endpoints{
		CreateCompany: cfg.API.CompanyPath,
		CreateReview:  cfg.API.ReviewPath,
		UploadAsset:   cfg.API.UploadPath,
		ListCompanies: apiclient.DefaultEndpoints().ListCompanies,
	}, httpclient.NewStandardClient(cfg.APITimeout()))
}

func newUploader(api uploader.AssetAPI) *uploader.Uploader {
	return uploader.New(api,
		uploader.WithCache(cache.NewAssetCache(cfg.UploadCacheTTL())),
		uploader.WithMaxRetries(cfg.Upload.MaxRetries),
	)
}

func newNotifier(out io.Writer, source string) notify.Notifier {
	return notify.Multi{notify.NewWriterNotifier(out), notify.NewLogNotifier(source)}
}

// printFieldErrors lists inline errors in form order
func printFieldErrors(out io.Writer, store *form.Store) {
	errs := store.Errors()
	for _, f := range store.Schema().Fields {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(out, "  %s: %s\n", f, msg)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
