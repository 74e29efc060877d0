// Package service implements the business logic of the Campfield API.
//
// Services sit between handlers and repositories. They own the domain
// rules: credential verification and session lifetimes (AuthService),
// campground writes and the review cascade (CampgroundService), and the
// ordered two-step review writes (ReviewService).
//
// Repository dependencies are declared as interfaces in this package so
// tests can substitute in-memory fakes.
//
// # Errors
//
// All service errors are sentinels defined in errors.go; handlers map them
// to HTTP responses with handler.MapServiceError. Validation and
// authorization failures are handled at the gate and never reach this
// layer.
//
// # Consistency
//
// The campground/review pair has no cross-document transactions. Both
// two-step writes are ordered so partial failure produces an orphaned
// review record, never a dangling reference, and every such inconsistency
// is logged for the background sweep.
package service
