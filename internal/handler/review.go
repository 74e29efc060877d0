package handler

import (
	"net/http"

	"github.com/campfield/api/internal/middleware"
	"github.com/campfield/api/internal/model"
	"github.com/campfield/api/internal/service"
)

// ReviewHandler handles review endpoints nested under campgrounds.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create handles POST /v1/campgrounds/{campgroundId}/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	campgroundID := r.PathValue("campgroundId")
	if campgroundID == "" {
		WriteError(w, model.NewBadRequestError("campground ID required"))
		return
	}

	var req model.CreateReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		WriteError(w, model.NewValidationError(violations))
		return
	}

	review, err := h.reviewService.Create(r.Context(), userID, campgroundID, req.Review)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, review, map[string]string{
		"campground": "/v1/campgrounds/" + campgroundID,
	})
}

// Delete handles DELETE /v1/campgrounds/{campgroundId}/reviews/{reviewId}.
// The guard chain has applied the configured deletion policy already.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	campgroundID := r.PathValue("campgroundId")
	reviewID := r.PathValue("reviewId")
	if campgroundID == "" || reviewID == "" {
		WriteError(w, model.NewBadRequestError("campground and review IDs required"))
		return
	}

	if err := h.reviewService.Delete(r.Context(), campgroundID, reviewID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
