package model

import "time"

// Review rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents feedback left on a campground. Author is the user who
// wrote it; the owning campground holds the reference, not the review.
type Review struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Rating    int       `json:"rating"`
	Author    string    `json:"author"`
	CreatedOn time.Time `json:"created_on"`
}

// ReviewPayload is the client-supplied portion of a review. Rating is a
// pointer so a missing field is distinguishable from zero.
type ReviewPayload struct {
	Rating *int   `json:"rating"`
	Body   string `json:"body"`
}

// CreateReviewRequest is the body of review create calls. The payload must
// arrive under the "review" wrapper key.
type CreateReviewRequest struct {
	Review *ReviewPayload `json:"review"`
}

// reviewConstraints is the declarative rule table for review payloads.
var reviewConstraints = []constraint[*ReviewPayload]{
	{"review.rating", func(p *ReviewPayload) string {
		if p.Rating == nil {
			return "rating is required"
		}
		if *p.Rating < MinRating || *p.Rating > MaxRating {
			return "rating must be between 1 and 5"
		}
		return ""
	}},
	{"review.body", func(p *ReviewPayload) string {
		if p.Body == "" {
			return "body is required"
		}
		return ""
	}},
}

// Validate checks the request against the review constraint table and
// returns every violation.
func (r *CreateReviewRequest) Validate() []FieldError {
	if r.Review == nil {
		return []FieldError{{Field: "review", Message: "review object is required"}}
	}
	return checkConstraints(r.Review, reviewConstraints)
}
