package service

import "errors"

// Centralized service layer errors. Handlers translate these into Problem
// Details responses via handler.MapServiceError.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
)

// ===== Campground Errors =====
var (
	ErrCampgroundNotFound  = errors.New("campground not found")
	ErrNotCampgroundAuthor = errors.New("not the campground author")
)

// ===== Review Errors =====
var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrReviewNotAttached = errors.New("review does not belong to this campground")
)
