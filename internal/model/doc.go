// Package model defines the domain types, request payloads, and error
// representations for the Campfield API.
//
// # Validation
//
// Request types expose Validate() []FieldError backed by declarative
// constraint tables (see validation.go). Validation is pure: no I/O, and
// every violation is reported rather than only the first. Handlers aggregate
// the result into a single RFC 9457 response via NewValidationError.
//
// # Errors
//
// ProblemDetails implements RFC 9457 Problem Details. Constructors exist for
// the standard classes (unauthorized, forbidden, not found, validation,
// conflict, internal).
package model
