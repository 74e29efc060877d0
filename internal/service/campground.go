package service

import (
	"context"
	"log/slog"

	"github.com/campfield/api/internal/model"
)

// CampgroundRepository defines the interface for campground storage.
type CampgroundRepository interface {
	Create(ctx context.Context, camp *model.Campground) error
	GetByID(ctx context.Context, id string) (*model.Campground, error)
	List(ctx context.Context) ([]*model.Campground, error)
	Update(ctx context.Context, camp *model.Campground) error
	Delete(ctx context.Context, id string) error
	AppendReview(ctx context.Context, campgroundID, reviewID string) error
	DetachReview(ctx context.Context, campgroundID, reviewID string) error
	ListReviewRefs(ctx context.Context) ([]string, error)
}

// ReviewRepository defines the interface for review storage.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Review, error)
	Delete(ctx context.Context, id string) error
}

// CampgroundService handles campground listing operations.
type CampgroundService struct {
	campRepo   CampgroundRepository
	reviewRepo ReviewRepository
}

// CampgroundServiceConfig holds configuration for the campground service.
type CampgroundServiceConfig struct {
	CampgroundRepo CampgroundRepository
	ReviewRepo     ReviewRepository
}

// NewCampgroundService creates a new campground service.
func NewCampgroundService(cfg CampgroundServiceConfig) *CampgroundService {
	return &CampgroundService{
		campRepo:   cfg.CampgroundRepo,
		reviewRepo: cfg.ReviewRepo,
	}
}

// CampgroundDetail is a campground with its reviews resolved.
type CampgroundDetail struct {
	Campground *model.Campground `json:"campground"`
	Reviews    []*model.Review   `json:"reviews"`
}

// List returns all campgrounds, newest first.
func (s *CampgroundService) List(ctx context.Context) ([]*model.Campground, error) {
	return s.campRepo.List(ctx)
}

// Get returns a campground with its reviews resolved in insertion order.
// Dangling review references are skipped on read.
func (s *CampgroundService) Get(ctx context.Context, id string) (*CampgroundDetail, error) {
	camp, err := s.campRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, ErrCampgroundNotFound
	}

	reviews, err := s.reviewRepo.GetByIDs(ctx, camp.Reviews)
	if err != nil {
		return nil, err
	}
	return &CampgroundDetail{Campground: camp, Reviews: reviews}, nil
}

// Create persists a new campground owned by the given author. Payloads are
// validated at the gate before this runs.
func (s *CampgroundService) Create(ctx context.Context, authorID string, payload *model.CampgroundPayload) (*model.Campground, error) {
	camp := &model.Campground{
		Title:       payload.Title,
		Location:    payload.Location,
		Description: payload.Description,
		Price:       *payload.Price,
		Images:      payload.Images,
		Author:      authorID,
	}
	if err := s.campRepo.Create(ctx, camp); err != nil {
		return nil, err
	}
	return camp, nil
}

// Update overwrites the mutable fields of an existing campground. Ownership
// was already established by the guard chain; the lookup here only covers
// the race with a concurrent delete.
func (s *CampgroundService) Update(ctx context.Context, id string, payload *model.CampgroundPayload) (*model.Campground, error) {
	camp, err := s.campRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, ErrCampgroundNotFound
	}

	camp.Title = payload.Title
	camp.Location = payload.Location
	camp.Description = payload.Description
	camp.Price = *payload.Price
	camp.Images = payload.Images

	if err := s.campRepo.Update(ctx, camp); err != nil {
		return nil, err
	}
	return camp, nil
}

// Delete removes a campground and cascades to its reviews. The cascade is
// best effort: each review is deleted individually, failures are logged and
// skipped, and the campground is removed regardless so a partial failure
// leaves orphaned reviews rather than a half-deleted listing. The sweep in
// internal/jobs reclaims those orphans.
func (s *CampgroundService) Delete(ctx context.Context, id string) error {
	camp, err := s.campRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if camp == nil {
		// Concurrent deletes land here: second caller gets not-found.
		return ErrCampgroundNotFound
	}

	for _, reviewID := range camp.Reviews {
		if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
			slog.Warn("cascade delete: review removal failed, leaving orphan for sweep",
				slog.String("campground_id", id),
				slog.String("review_id", reviewID),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.campRepo.Delete(ctx, id)
}
