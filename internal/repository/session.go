package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/model"
)

// SessionRepository handles server-side session data access.
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE session CONTENT {
			token: $token,
			user_id: $user_id,
			expires_at: <datetime>$expires_at,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"token":      session.Token,
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}

	rows, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no result returned")
	}

	created, err := decodeRow[model.Session](rows[0])
	if err != nil {
		return err
	}
	session.ID = created.ID
	session.CreatedOn = created.CreatedOn
	return nil
}

// GetByToken retrieves a session by its opaque token. Returns (nil, nil)
// when absent; expiry is the caller's concern.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	query := `SELECT * FROM session WHERE token = $token LIMIT 1`
	vars := map[string]interface{}{"token": token}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeRow[model.Session](row)
}

// DeleteByToken removes a session. Deleting an absent token is a no-op.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE session WHERE token = $token`
	vars := map[string]interface{}{"token": token}
	return r.db.Execute(ctx, query, vars)
}

// DeleteExpired removes every session past its fixed expiry.
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE session WHERE expires_at < time::now()`
	return r.db.Execute(ctx, query, nil)
}
