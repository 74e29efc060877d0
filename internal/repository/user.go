package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/model"
)

// UserRepository handles user data access.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. The username must be unique; a violation is
// reported as database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			username: $username,
			hash: $hash,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"username": user.Username,
		"hash":     user.Hash,
	}

	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username already exists", database.ErrDuplicate)
		}
		return err
	}
	if len(rows) == 0 {
		return errors.New("no result returned")
	}

	created, err := parseUserRow(rows[0])
	if err != nil {
		return err
	}
	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by id. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserRow(row)
}

// GetByUsername retrieves a user by username. Returns (nil, nil) when absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserRow(row)
}

// parseUserRow decodes a user row, restoring the hash field that the JSON
// round trip skips (User.Hash is json:"-").
func parseUserRow(row interface{}) (*model.User, error) {
	user, err := decodeRow[model.User](row)
	if err != nil {
		return nil, err
	}
	if hash := rowString(row, "hash"); hash != "" {
		user.Hash = &hash
	}
	return user, nil
}
