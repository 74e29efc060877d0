package model

import "time"

// Image is a picture attached to a campground listing.
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Campground represents a listing. Author is a back-reference to the user
// who created it and never changes. Reviews holds review record ids in
// insertion order.
type Campground struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []Image   `json:"images,omitempty"`
	Author      string    `json:"author"`
	Reviews     []string  `json:"reviews,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// CampgroundPayload is the client-supplied portion of a campground.
// Price is a pointer so a missing field is distinguishable from zero.
type CampgroundPayload struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Images      []Image  `json:"images,omitempty"`
}

// CreateCampgroundRequest is the body of campground create and update calls.
// The payload must arrive under the "campground" wrapper key.
type CreateCampgroundRequest struct {
	Campground *CampgroundPayload `json:"campground"`
}

// campgroundConstraints is the declarative rule table for campground payloads.
var campgroundConstraints = []constraint[*CampgroundPayload]{
	{"campground.title", func(p *CampgroundPayload) string {
		if p.Title == "" {
			return "title is required"
		}
		return ""
	}},
	{"campground.location", func(p *CampgroundPayload) string {
		if p.Location == "" {
			return "location is required"
		}
		return ""
	}},
	{"campground.description", func(p *CampgroundPayload) string {
		if p.Description == "" {
			return "description is required"
		}
		return ""
	}},
	{"campground.price", func(p *CampgroundPayload) string {
		if p.Price == nil {
			return "price is required"
		}
		if *p.Price < 0 {
			return "price must be greater than or equal to 0"
		}
		return ""
	}},
	{"campground.images", func(p *CampgroundPayload) string {
		for _, img := range p.Images {
			if img.URL == "" {
				return "each image requires a url"
			}
		}
		return ""
	}},
}

// Validate checks the request against the campground constraint table and
// returns every violation. A missing wrapper object is a violation, not a
// panic.
func (r *CreateCampgroundRequest) Validate() []FieldError {
	if r.Campground == nil {
		return []FieldError{{Field: "campground", Message: "campground object is required"}}
	}
	return checkConstraints(r.Campground, campgroundConstraints)
}
