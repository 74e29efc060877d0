// Package repository implements data access over the document store.
//
// Each repository wraps the database.Database interface with typed CRUD
// operations for one collection: users, sessions, campgrounds, and reviews.
// Lookups return (nil, nil) for absent records so callers can translate
// absence into their own domain errors.
//
// The campground/review relation is a one-to-many list of review record ids
// held on the campground, in insertion order. The two-document writes that
// maintain it (create+append, detach+delete) are deliberately issued as
// separate calls; ordering and partial-failure handling live in the service
// layer.
package repository
