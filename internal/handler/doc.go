// Package handler provides the HTTP endpoints of the Campfield API.
//
// Handlers are thin: they decode and validate request bodies, call one
// service method, and write the result. Authentication and ownership are
// enforced before a handler runs, by the guard chain in the middleware
// package, so mutating handlers can assume a principal (and, for ownership
// routes, the loaded resource) is present in the request context.
//
// # Response Format
//
//   - WriteData / WriteCollection: successful responses with optional links
//   - WriteError: RFC 9457 Problem Details
//   - MapServiceError: central service-error → status-code translation
//
// Validation failures aggregate every field violation into a single 422
// response.
package handler
