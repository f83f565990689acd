package form

import "fmt"

// Review form fields
const (
	FullName Field = "fullName"
	Subject  Field = "subject"
	Review   Field = "review"
	Rating   Field = "rating"
)

// Rating bounds. A review always carries a rating; it starts at DefaultRating.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3

	// satisfiedFrom is the lowest rating labelled as satisfied
	satisfiedFrom = 4
)

// ReviewSchema returns the Add Review form schema
func ReviewSchema() Schema {
	return Schema{
		Name:   "review",
		Fields: []Field{FullName, Subject, Review, Rating},
		Defaults: map[Field]any{
			FullName: "",
			Subject:  "",
			Review:   "",
			Rating:   DefaultRating,
		},
	}
}

// RatingForStar maps a 0-based star index to its rating
func RatingForStar(index int) (int, error) {
	if index < 0 || index >= MaxRating {
		return 0, fmt.Errorf("star index %d out of range [0,%d]", index, MaxRating-1)
	}
	return index + 1, nil
}

// SatisfactionLabel describes a rating the way the review form shows it
func SatisfactionLabel(rating int) string {
	if rating >= satisfiedFrom {
		return "Satisfied"
	}
	return "Not Satisfied"
}

// StarFilled reports whether the star at 0-based index is lit for rating
func StarFilled(index, rating int) bool {
	return index < rating
}
