package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campfield/api/internal/middleware"
	"github.com/campfield/api/internal/model"
	"github.com/campfield/api/internal/service"
)

// In-memory repositories backing real services, so handler tests exercise
// the full request path: middleware, guards, handler, service.

type memUserRepo struct {
	users  map[string]*model.User
	byName map[string]*model.User
	nextID int
}

func (m *memUserRepo) Create(ctx context.Context, user *model.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user:%d", m.nextID)
	user.CreatedOn = time.Now()
	user.UpdatedOn = time.Now()
	m.users[user.ID] = user
	m.byName[user.Username] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.byName[username], nil
}

type memSessionRepo struct {
	sessions map[string]*model.Session
}

func (m *memSessionRepo) Create(ctx context.Context, session *model.Session) error {
	session.ID = "session:" + session.Token
	session.CreatedOn = time.Now()
	m.sessions[session.Token] = session
	return nil
}

func (m *memSessionRepo) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	return m.sessions[token], nil
}

func (m *memSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *memSessionRepo) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
		}
	}
	return nil
}

type memCampgroundRepo struct {
	camps  map[string]*model.Campground
	order  []string
	nextID int
}

func (m *memCampgroundRepo) Create(ctx context.Context, camp *model.Campground) error {
	m.nextID++
	camp.ID = fmt.Sprintf("campground:%d", m.nextID)
	camp.CreatedOn = time.Now()
	camp.UpdatedOn = time.Now()
	if camp.Reviews == nil {
		camp.Reviews = []string{}
	}
	m.camps[camp.ID] = camp
	m.order = append(m.order, camp.ID)
	return nil
}

func (m *memCampgroundRepo) GetByID(ctx context.Context, id string) (*model.Campground, error) {
	return m.camps[id], nil
}

func (m *memCampgroundRepo) List(ctx context.Context) ([]*model.Campground, error) {
	out := make([]*model.Campground, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if camp, ok := m.camps[m.order[i]]; ok {
			out = append(out, camp)
		}
	}
	return out, nil
}

func (m *memCampgroundRepo) Update(ctx context.Context, camp *model.Campground) error {
	camp.UpdatedOn = time.Now()
	m.camps[camp.ID] = camp
	return nil
}

func (m *memCampgroundRepo) Delete(ctx context.Context, id string) error {
	delete(m.camps, id)
	return nil
}

func (m *memCampgroundRepo) AppendReview(ctx context.Context, campgroundID, reviewID string) error {
	camp, ok := m.camps[campgroundID]
	if !ok {
		return errors.New("campground not found")
	}
	camp.Reviews = append(camp.Reviews, reviewID)
	return nil
}

func (m *memCampgroundRepo) DetachReview(ctx context.Context, campgroundID, reviewID string) error {
	camp, ok := m.camps[campgroundID]
	if !ok {
		return errors.New("campground not found")
	}
	kept := camp.Reviews[:0]
	for _, id := range camp.Reviews {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	camp.Reviews = kept
	return nil
}

func (m *memCampgroundRepo) ListReviewRefs(ctx context.Context) ([]string, error) {
	var refs []string
	for _, camp := range m.camps {
		refs = append(refs, camp.Reviews...)
	}
	return refs, nil
}

type memReviewRepo struct {
	reviews map[string]*model.Review
	nextID  int
}

func (m *memReviewRepo) Create(ctx context.Context, review *model.Review) error {
	m.nextID++
	review.ID = fmt.Sprintf("review:%d", m.nextID)
	review.CreatedOn = time.Now()
	m.reviews[review.ID] = review
	return nil
}

func (m *memReviewRepo) GetByID(ctx context.Context, id string) (*model.Review, error) {
	return m.reviews[id], nil
}

func (m *memReviewRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Review, error) {
	out := make([]*model.Review, 0, len(ids))
	for _, id := range ids {
		if review, ok := m.reviews[id]; ok {
			out = append(out, review)
		}
	}
	return out, nil
}

func (m *memReviewRepo) Delete(ctx context.Context, id string) error {
	delete(m.reviews, id)
	return nil
}

const testCookieName = "campfield_session"

// testEnv wires the routes exactly as cmd/server does, over in-memory
// storage.
type testEnv struct {
	router      http.Handler
	campRepo    *memCampgroundRepo
	reviewRepo  *memReviewRepo
	sessionRepo *memSessionRepo
}

func newTestEnv(t *testing.T, policy middleware.ReviewDeletePolicy) *testEnv {
	t.Helper()

	userRepo := &memUserRepo{users: map[string]*model.User{}, byName: map[string]*model.User{}}
	sessionRepo := &memSessionRepo{sessions: map[string]*model.Session{}}
	campRepo := &memCampgroundRepo{camps: map[string]*model.Campground{}}
	reviewRepo := &memReviewRepo{reviews: map[string]*model.Review{}}

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		SessionTTL:  time.Hour,
	})
	campgroundService := service.NewCampgroundService(service.CampgroundServiceConfig{
		CampgroundRepo: campRepo,
		ReviewRepo:     reviewRepo,
	})
	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		ReviewRepo:     reviewRepo,
		CampgroundRepo: campRepo,
	})

	authHandler := NewAuthHandler(authService, SessionCookie{Name: testCookieName})
	campgroundHandler := NewCampgroundHandler(campgroundService)
	reviewHandler := NewReviewHandler(reviewService)

	authGuard := middleware.Guards(middleware.Authenticated())
	ownerGuard := middleware.Guards(
		middleware.Authenticated(),
		middleware.CampgroundOwner(campRepo),
	)
	reviewGuard := middleware.Guards(
		middleware.Authenticated(),
		middleware.ReviewOwner(reviewRepo, policy),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /v1/auth/me", authGuard(http.HandlerFunc(authHandler.Me)))
	mux.HandleFunc("GET /v1/campgrounds", campgroundHandler.List)
	mux.HandleFunc("GET /v1/campgrounds/{campgroundId}", campgroundHandler.Get)
	mux.Handle("POST /v1/campgrounds", authGuard(http.HandlerFunc(campgroundHandler.Create)))
	mux.Handle("PUT /v1/campgrounds/{campgroundId}", ownerGuard(http.HandlerFunc(campgroundHandler.Update)))
	mux.Handle("DELETE /v1/campgrounds/{campgroundId}", ownerGuard(http.HandlerFunc(campgroundHandler.Delete)))
	mux.Handle("POST /v1/campgrounds/{campgroundId}/reviews", authGuard(http.HandlerFunc(reviewHandler.Create)))
	mux.Handle("DELETE /v1/campgrounds/{campgroundId}/reviews/{reviewId}", reviewGuard(http.HandlerFunc(reviewHandler.Delete)))

	router := middleware.Chain(mux, middleware.SessionAuth(testCookieName, authService))

	return &testEnv{
		router:      router,
		campRepo:    campRepo,
		reviewRepo:  reviewRepo,
		sessionRepo: sessionRepo,
	}
}

func (e *testEnv) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns their session cookie.
func (e *testEnv) register(t *testing.T, username string) *http.Cookie {
	t.Helper()

	w := e.do("POST", "/v1/auth/register", CredentialsRequest{
		Username: username,
		Password: "password123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s failed with %d: %s", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatalf("register %s did not set a session cookie", username)
	return nil
}

// createCampground creates a listing as the given user.
func (e *testEnv) createCampground(t *testing.T, cookie *http.Cookie) string {
	t.Helper()

	price := 25.0
	w := e.do("POST", "/v1/campgrounds", model.CreateCampgroundRequest{
		Campground: &model.CampgroundPayload{
			Title:       "Hidden Valley",
			Location:    "Yosemite, CA",
			Description: "A quiet spot by the river.",
			Price:       &price,
		},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("campground create failed with %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data model.Campground `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse create response: %v", err)
	}
	return resp.Data.ID
}

func parseProblem(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse problem response: %v", err)
	}
	return &problem
}
