// Package middleware provides HTTP middleware for the Campfield API.
//
// # Identity Resolution vs. Gating
//
// SessionAuth only resolves identity: it turns the session cookie into a
// principal in the request context, or leaves the request anonymous. It
// never rejects. Rejection belongs to the guard chain, so resolution and
// authorization stay separately testable.
//
// # Guard Chain
//
// Guards model authorization as an explicit ordered list of predicates.
// Each guard returns Continue or Halt(response); the Guards dispatcher
// evaluates them in order and stops at the first Halt, so a failed gate can
// never fall through into the mutating handler:
//
//	mux.Handle("DELETE /v1/campgrounds/{campgroundId}",
//	    middleware.Guards(
//	        middleware.Authenticated(),
//	        middleware.CampgroundOwner(campgroundRepo),
//	    )(http.HandlerFunc(h.Delete)))
//
// Authenticated must come before ownership guards.
//
// # Ambient Middleware
//
// RequestID, Logger, Recovery, and CORS wrap the whole mux via Chain.
// Context values are read back with GetUserID, GetRequestID, and
// GetCampground.
package middleware
