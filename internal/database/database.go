// Package database provides the data access layer for Campfield.
//
// The Database interface abstracts SurrealDB so repositories stay free of
// client-library details and tests can substitute in-memory fakes.
//
// # Query Methods
//
//   - Query: rows of the first statement (SELECT queries returning lists)
//   - QueryOne: exactly one row, or ErrNotFound
//   - Execute: mutations where the result is discarded
//
// # Error Handling
//
// Sentinel errors cover the common failure cases and are matched with
// errors.Is():
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // record does not exist
//	}
package database

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g. username taken).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to reach or authenticate with the store.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the operations repositories need from the document store.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns the rows of its first statement.
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns its first row, or ErrNotFound.
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a mutation without returning rows.
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds document store connection settings.
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
