package repository

import (
	"context"
	"errors"

	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/model"
)

// CampgroundRepository handles campground data access.
type CampgroundRepository struct {
	db database.Database
}

// NewCampgroundRepository creates a new campground repository.
func NewCampgroundRepository(db database.Database) *CampgroundRepository {
	return &CampgroundRepository{db: db}
}

// Create persists a new campground with its author reference and an empty
// review list.
func (r *CampgroundRepository) Create(ctx context.Context, camp *model.Campground) error {
	query := `
		CREATE campground CONTENT {
			title: $title,
			location: $location,
			description: $description,
			price: $price,
			images: $images,
			author: type::record($author),
			reviews: [],
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	images := camp.Images
	if images == nil {
		images = []model.Image{}
	}
	vars := map[string]interface{}{
		"title":       camp.Title,
		"location":    camp.Location,
		"description": camp.Description,
		"price":       camp.Price,
		"images":      images,
		"author":      camp.Author,
	}

	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no result returned")
	}

	created, err := decodeRow[model.Campground](rows[0])
	if err != nil {
		return err
	}
	camp.ID = created.ID
	camp.Reviews = created.Reviews
	camp.CreatedOn = created.CreatedOn
	camp.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a campground by id. Returns (nil, nil) when absent.
func (r *CampgroundRepository) GetByID(ctx context.Context, id string) (*model.Campground, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeRow[model.Campground](row)
}

// List retrieves all campgrounds, newest first.
func (r *CampgroundRepository) List(ctx context.Context) ([]*model.Campground, error) {
	query := `SELECT * FROM campground ORDER BY created_on DESC`

	rows, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	camps := make([]*model.Campground, 0, len(rows))
	for _, row := range rows {
		camp, err := decodeRow[model.Campground](row)
		if err != nil {
			return nil, err
		}
		camps = append(camps, camp)
	}
	return camps, nil
}

// Update overwrites the mutable fields of a campground. The author and
// review list are never touched here.
func (r *CampgroundRepository) Update(ctx context.Context, camp *model.Campground) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			location = $location,
			description = $description,
			price = $price,
			images = $images,
			updated_on = time::now()
	`
	images := camp.Images
	if images == nil {
		images = []model.Image{}
	}
	vars := map[string]interface{}{
		"id":          camp.ID,
		"title":       camp.Title,
		"location":    camp.Location,
		"description": camp.Description,
		"price":       camp.Price,
		"images":      images,
	}
	return r.db.Execute(ctx, query, vars)
}

// Delete removes a campground record. The review cascade is orchestrated at
// the service layer.
func (r *CampgroundRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

// AppendReview adds a review reference to the end of the campground's
// review list, preserving insertion order.
func (r *CampgroundRepository) AppendReview(ctx context.Context, campgroundID, reviewID string) error {
	query := `UPDATE type::record($id) SET reviews += type::record($review), updated_on = time::now()`
	vars := map[string]interface{}{
		"id":     campgroundID,
		"review": reviewID,
	}
	return r.db.Execute(ctx, query, vars)
}

// DetachReview removes a review reference from the campground's review list.
func (r *CampgroundRepository) DetachReview(ctx context.Context, campgroundID, reviewID string) error {
	query := `UPDATE type::record($id) SET reviews -= type::record($review), updated_on = time::now()`
	vars := map[string]interface{}{
		"id":     campgroundID,
		"review": reviewID,
	}
	return r.db.Execute(ctx, query, vars)
}

// ListReviewRefs returns every review id referenced by any campground. Used
// by the reconciliation sweep to find orphaned review records.
func (r *CampgroundRepository) ListReviewRefs(ctx context.Context) ([]string, error) {
	query := `SELECT VALUE reviews FROM campground`

	rows, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, row := range rows {
		list, ok := row.([]interface{})
		if !ok {
			continue
		}
		for _, item := range list {
			if id := recordID(item); id != "" {
				refs = append(refs, id)
			}
		}
	}
	return refs, nil
}
