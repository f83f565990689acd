package validation

import "github.com/getmentor/companyforms/internal/form"

// reviewInput lists the Add Review checks in the order they run.
//
// fullName only has to be non-empty: a whitespace-only name passes, unlike
// subject and review which are trimmed first. Rating has no rule; it is
// always within range because it can only be set through star selection.
type reviewInput struct {
	FullName string `form:"fullName" validate:"required"`
	Subject  string `form:"subject" validate:"notblank"`
	Review   string `form:"review" validate:"notblank"`
}

var reviewOrder = []form.Field{
	form.FullName,
	form.Subject,
	form.Review,
}

var reviewMessages = map[form.Field]string{
	form.FullName: "full name is required",
	form.Subject:  "Subject is required",
	form.Review:   "review is required",
}

// ValidateReview checks an Add Review snapshot
func ValidateReview(snap form.Snapshot) Result {
	in := reviewInput{
		FullName: snap.String(form.FullName),
		Subject:  snap.String(form.Subject),
		Review:   snap.String(form.Review),
	}
	return run("review", &in, reviewOrder, reviewMessages)
}
