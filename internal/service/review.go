package service

import (
	"context"
	"log/slog"

	"github.com/campfield/api/internal/model"
)

// ReviewService handles review operations on campgrounds.
type ReviewService struct {
	reviewRepo ReviewRepository
	campRepo   CampgroundRepository
}

// ReviewServiceConfig holds configuration for the review service.
type ReviewServiceConfig struct {
	ReviewRepo     ReviewRepository
	CampgroundRepo CampgroundRepository
}

// NewReviewService creates a new review service.
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	return &ReviewService{
		reviewRepo: cfg.ReviewRepo,
		campRepo:   cfg.CampgroundRepo,
	}
}

// Create persists a review and attaches it to its campground. The two
// writes are not atomic. The review record is created first, then the
// reference is appended, so a failure in between leaves an orphaned review
// (referenced by nothing) instead of a reference to a record that does not
// exist. The orphan is logged for the reconciliation sweep.
func (s *ReviewService) Create(ctx context.Context, authorID, campgroundID string, payload *model.ReviewPayload) (*model.Review, error) {
	camp, err := s.campRepo.GetByID(ctx, campgroundID)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, ErrCampgroundNotFound
	}

	review := &model.Review{
		Body:   payload.Body,
		Rating: *payload.Rating,
		Author: authorID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.campRepo.AppendReview(ctx, campgroundID, review.ID); err != nil {
		slog.Error("review attach failed, orphaned review left for sweep",
			slog.String("campground_id", campgroundID),
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return review, nil
}

// Delete detaches a review from its campground and removes the record. The
// reference is detached first, then the record deleted, so a partial
// failure again leaves an orphaned record rather than a dangling reference.
func (s *ReviewService) Delete(ctx context.Context, campgroundID, reviewID string) error {
	camp, err := s.campRepo.GetByID(ctx, campgroundID)
	if err != nil {
		return err
	}
	if camp == nil {
		return ErrCampgroundNotFound
	}

	attached := false
	for _, id := range camp.Reviews {
		if id == reviewID {
			attached = true
			break
		}
	}
	if !attached {
		return ErrReviewNotAttached
	}

	if err := s.campRepo.DetachReview(ctx, campgroundID, reviewID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		slog.Error("review record removal failed after detach, orphan left for sweep",
			slog.String("campground_id", campgroundID),
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}
