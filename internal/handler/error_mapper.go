package handler

import (
	"errors"

	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/model"
	"github.com/campfield/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling so every handler returns consistent
// status codes. Unexpected errors collapse to a generic 500; the detail is
// logged where the error arose, never surfaced to the client.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		pd := model.NewUnauthorizedError(err.Error())
		pd.Code = model.ErrCodeLoginFailed
		return pd

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrCampgroundNotFound):
		return model.NewNotFoundError("campground")
	case errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrReviewNotAttached):
		return model.NewNotFoundError("review")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrUsernameTaken):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotCampgroundAuthor):
		return model.NewForbiddenError(err.Error())

	// ===== Storage Errors → 500 =====
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		pd := model.NewInternalError("")
		pd.Code = model.ErrCodeDatabase
		return pd

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
