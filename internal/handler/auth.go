package handler

import (
	"net/http"
	"time"

	"github.com/campfield/api/internal/middleware"
	"github.com/campfield/api/internal/model"
	"github.com/campfield/api/internal/service"
)

// SessionCookie configures the cookie carrying the opaque session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// AuthHandler handles registration, login, and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
	cookie      SessionCookie
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// CredentialsRequest is the body of register and login calls.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedOn string `json:"created_on"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedOn: u.CreatedOn.Format(time.RFC3339),
	}
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	h.setSessionCookie(w, result.Session.Token, result.Session.ExpiresAt)
	WriteData(w, http.StatusCreated, toUserResponse(result.User), map[string]string{
		"self": "/v1/auth/me",
	})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	h.setSessionCookie(w, result.Session.Token, result.Session.ExpiresAt)
	WriteData(w, http.StatusOK, toUserResponse(result.User), map[string]string{
		"self": "/v1/auth/me",
	})
}

// Logout handles POST /v1/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie.Name); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			WriteError(w, MapServiceError(err))
			return
		}
	}
	h.clearSessionCookie(w)
	WriteNoContent(w)
}

// Me handles GET /v1/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, toUserResponse(user), map[string]string{
		"self": "/v1/auth/me",
	})
}

// setSessionCookie issues the HTTP-only session cookie. The expiry matches
// the server-side session record: fixed at issuance, not sliding.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
}
