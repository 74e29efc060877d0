package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/model"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// AuthService handles registration, login, and session resolution.
type AuthService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	sessionTTL  time.Duration
}

// AuthServiceConfig holds configuration for the auth service.
type AuthServiceConfig struct {
	UserRepo    UserRepository
	SessionRepo SessionRepository
	SessionTTL  time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:    cfg.UserRepo,
		sessionRepo: cfg.SessionRepo,
		sessionTTL:  cfg.SessionTTL,
	}
}

// AuthResult represents a successful registration or login.
type AuthResult struct {
	User    *model.User
	Session *model.Session
}

// Register creates a new user account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Hash:     &hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The GetByUsername pre-check can miss a concurrent registration;
		// the store's unique index is the real arbiter.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: session}, nil
}

// Login authenticates a user with username/password and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == nil || *user.Hash == "" {
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(password, *user.Hash) {
		return nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: session}, nil
}

// Logout destroys the session behind the given token. Unknown tokens are a
// no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// Resolve maps a session token to a user id. Unknown or expired sessions
// resolve to the empty id: the caller treats that as anonymous. Expiry is
// fixed at issuance; activity does not extend it.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if session == nil || session.Expired(time.Now()) {
		return "", nil
	}
	return session.UserID, nil
}

// GetUserByID retrieves a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) openSession(ctx context.Context, userID string) (*model.Session, error) {
	session := &model.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
