package handler

import (
	"net/http"

	"github.com/campfield/api/internal/middleware"
	"github.com/campfield/api/internal/model"
	"github.com/campfield/api/internal/service"
)

// CampgroundHandler handles campground listing endpoints.
type CampgroundHandler struct {
	campgroundService *service.CampgroundService
}

// NewCampgroundHandler creates a new campground handler.
func NewCampgroundHandler(campgroundService *service.CampgroundService) *CampgroundHandler {
	return &CampgroundHandler{
		campgroundService: campgroundService,
	}
}

// List handles GET /v1/campgrounds.
func (h *CampgroundHandler) List(w http.ResponseWriter, r *http.Request) {
	camps, err := h.campgroundService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, camps, map[string]string{
		"self": "/v1/campgrounds",
	})
}

// Get handles GET /v1/campgrounds/{campgroundId}.
func (h *CampgroundHandler) Get(w http.ResponseWriter, r *http.Request) {
	campgroundID := r.PathValue("campgroundId")
	if campgroundID == "" {
		WriteError(w, model.NewBadRequestError("campground ID required"))
		return
	}

	detail, err := h.campgroundService.Get(r.Context(), campgroundID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, detail, map[string]string{
		"self": "/v1/campgrounds/" + campgroundID,
	})
}

// Create handles POST /v1/campgrounds. The Authenticated guard has already
// established a principal; validation happens here before the service runs.
func (h *CampgroundHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req model.CreateCampgroundRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		WriteError(w, model.NewValidationError(violations))
		return
	}

	camp, err := h.campgroundService.Create(r.Context(), userID, req.Campground)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, camp, map[string]string{
		"self": "/v1/campgrounds/" + camp.ID,
	})
}

// Update handles PUT /v1/campgrounds/{campgroundId}. The ownership guard
// has already confirmed the campground exists and belongs to the principal.
func (h *CampgroundHandler) Update(w http.ResponseWriter, r *http.Request) {
	camp := middleware.GetCampground(r.Context())
	if camp == nil {
		WriteError(w, model.NewInternalError(""))
		return
	}

	var req model.CreateCampgroundRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		WriteError(w, model.NewValidationError(violations))
		return
	}

	updated, err := h.campgroundService.Update(r.Context(), camp.ID, req.Campground)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, updated, map[string]string{
		"self": "/v1/campgrounds/" + updated.ID,
	})
}

// Delete handles DELETE /v1/campgrounds/{campgroundId}.
func (h *CampgroundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	camp := middleware.GetCampground(r.Context())
	if camp == nil {
		WriteError(w, model.NewInternalError(""))
		return
	}

	if err := h.campgroundService.Delete(r.Context(), camp.ID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
