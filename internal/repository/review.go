package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/model"
)

// ReviewRepository handles review data access.
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists a new review record. Attaching it to its campground is a
// separate write orchestrated by the service layer.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		CREATE review CONTENT {
			body: $body,
			rating: $rating,
			author: type::record($author),
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"body":   review.Body,
		"rating": review.Rating,
		"author": review.Author,
	}

	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no result returned")
	}

	created, err := decodeRow[model.Review](rows[0])
	if err != nil {
		return err
	}
	review.ID = created.ID
	review.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a review by id. Returns (nil, nil) when absent.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeRow[model.Review](row)
}

// GetByIDs retrieves the reviews for the given ids, preserving the order of
// the input list. Missing records are skipped, not errors: a dangling
// reference must not break the read path.
func (r *ReviewRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Review, error) {
	if len(ids) == 0 {
		return []*model.Review{}, nil
	}

	// The ids arrive as strings; coerce them to record links for the match.
	query := `SELECT * FROM review WHERE id INSIDE array::map($ids, |$rid| type::record($rid))`
	vars := map[string]interface{}{"ids": ids}

	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Review, len(rows))
	for _, row := range rows {
		review, err := decodeRow[model.Review](row)
		if err != nil {
			return nil, err
		}
		byID[review.ID] = review
	}

	ordered := make([]*model.Review, 0, len(ids))
	for _, id := range ids {
		if review, ok := byID[id]; ok {
			ordered = append(ordered, review)
		}
	}
	return ordered, nil
}

// Delete removes a review record. Deleting an absent review is a no-op.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

// ListIDsOlderThan returns the ids of reviews created before the cutoff.
// The reconciliation sweep uses it so a review whose reference is still
// being attached is never mistaken for an orphan.
func (r *ReviewRepository) ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `SELECT VALUE id FROM review WHERE created_on < <datetime>$cutoff`
	vars := map[string]interface{}{
		"cutoff": cutoff.UTC().Format(time.RFC3339),
	}

	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := recordID(row); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
