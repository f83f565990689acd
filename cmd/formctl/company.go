package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/submission"
	"github.com/getmentor/companyforms/internal/uploader"
)

var (
	errFormInvalid = errors.New("form has errors")
	errSaveFailed  = errors.New("save was rejected")
	errUploadLogo  = errors.New("logo upload failed")
)

var (
	companyName      string
	companyLocation  string
	companyCity      string
	companyFoundedOn string
	companyLogoPath  string
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a company",
	Long: `Fill in the Add Company form and save it.

The logo is uploaded first; its stored key is what gets submitted with the
company. Every field is required.`,
	Example: `  formctl company add --logo acme.png --name Acme --location "Main street 1" --city Berlin --founded-on 2001-04-01`,
	RunE:    runCompanyAdd,
}

func init() {
	companyAddCmd.Flags().StringVar(&companyName, "name", "", "Company name")
	companyAddCmd.Flags().StringVar(&companyLocation, "location", "", "Street address")
	companyAddCmd.Flags().StringVar(&companyCity, "city", "", "City")
	companyAddCmd.Flags().StringVar(&companyFoundedOn, "founded-on", "", "Founding date")
	companyAddCmd.Flags().StringVar(&companyLogoPath, "logo", "", "Path to the logo image")

	companyCmd.AddCommand(companyAddCmd)
	rootCmd.AddCommand(companyCmd)
}

func runCompanyAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	client := newAPIClient()

	modal := submission.NewCompanyModal(client, newUploader(client), newNotifier(out, "company"), submission.Callbacks{
		OnRefresh: func() {
			companies, err := client.ListCompanies(ctx)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to refresh company list: %v\n", err)
				return
			}
			fmt.Fprintf(out, "%d companies listed\n", len(companies))
		},
	}, submission.WithLanguage(cfg.App.Language))

	if companyLogoPath != "" {
		file, err := uploader.ReadFile(companyLogoPath)
		if err != nil {
			return err
		}
		if !modal.UploadLogo(ctx, file) {
			return errUploadLogo
		}
		fmt.Fprintf(out, "Logo: %s\n", modal.Store().String(form.CompanyLogoPreview))
	}

	fields := map[form.Field]string{
		form.CompanyName: companyName,
		form.Location:    companyLocation,
		form.City:        companyCity,
		form.FoundedOn:   companyFoundedOn,
	}
	for f, v := range fields {
		if err := modal.SetField(f, v); err != nil {
			return err
		}
	}

	outcome, err := modal.Save(ctx)
	if err != nil {
		return err
	}
	return finish(cmd, outcome, modal.Store(), modal.RefreshDone())
}

// finish reports the outcome of a save and, on success, waits for the list
// refresh so its output is not cut off by the process exiting
func finish(cmd *cobra.Command, outcome submission.Outcome, store *form.Store, refreshed <-chan struct{}) error {
	switch outcome {
	case submission.OutcomeInvalid:
		printFieldErrors(cmd.OutOrStdout(), store)
		return errFormInvalid
	case submission.OutcomeFailed:
		return errSaveFailed
	}

	select {
	case <-refreshed:
	case <-cmd.Context().Done():
	}
	return nil
}
