package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmentor/companyforms/internal/form"
	"github.com/getmentor/companyforms/internal/submission"
)

var (
	reviewCompanyID string
	reviewFullName  string
	reviewSubject   string
	reviewText      string
	reviewStars     int
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage company reviews",
}

var reviewAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a review for a company",
	Example: `  formctl review add --company-id 3f2a... --full-name "Jane Doe" --subject "Great place" --review "Friendly team" --stars 5`,
	RunE:    runReviewAdd,
}

func init() {
	reviewAddCmd.Flags().StringVar(&reviewCompanyID, "company-id", "", "ID of the reviewed company")
	reviewAddCmd.Flags().StringVar(&reviewFullName, "full-name", "", "Reviewer's full name")
	reviewAddCmd.Flags().StringVar(&reviewSubject, "subject", "", "Review subject")
	reviewAddCmd.Flags().StringVar(&reviewText, "review", "", "Review text")
	reviewAddCmd.Flags().IntVar(&reviewStars, "stars", form.DefaultRating, "Rating from 1 to 5 stars")
	_ = reviewAddCmd.MarkFlagRequired("company-id")

	reviewCmd.AddCommand(reviewAddCmd)
	rootCmd.AddCommand(reviewCmd)
}

func runReviewAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	client := newAPIClient()

	modal := submission.NewReviewModal(client, reviewCompanyID, newNotifier(out, "review"), submission.Callbacks{
		OnRefresh: func() {
			reviews, err := client.ListReviews(ctx, reviewCompanyID)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to refresh reviews: %v\n", err)
				return
			}
			fmt.Fprintf(out, "%d reviews listed\n", len(reviews))
		},
	}, submission.WithLanguage(cfg.App.Language))

	// Stars are shown 1..5; the form selects them by 0-based index
	if err := modal.SelectStar(reviewStars - 1); err != nil {
		return fmt.Errorf("--stars must be between %d and %d", form.MinRating, form.MaxRating)
	}

	fields := map[form.Field]string{
		form.FullName: reviewFullName,
		form.Subject:  reviewSubject,
		form.Review:   reviewText,
	}
	for f, v := range fields {
		if err := modal.SetField(f, v); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Rating: %s %s\n", stars(modal), modal.Satisfaction())

	outcome, err := modal.Save(ctx)
	if err != nil {
		return err
	}
	return finish(cmd, outcome, modal.Store(), modal.RefreshDone())
}

func stars(modal *submission.ReviewModal) string {
	var s []rune
	for i := 0; i < form.MaxRating; i++ {
		if modal.StarFilled(i) {
			s = append(s, '★')
		} else {
			s = append(s, '☆')
		}
	}
	return string(s)
}
