package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/campfield/api/internal/model"
)

// Mock implementations shared with the review service tests.

type mockCampgroundRepo struct {
	camps     map[string]*model.Campground
	order     []string
	nextID    int
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	appendErr error
	detachErr error
}

func newMockCampgroundRepo() *mockCampgroundRepo {
	return &mockCampgroundRepo{
		camps: make(map[string]*model.Campground),
	}
}

func (m *mockCampgroundRepo) Create(ctx context.Context, camp *model.Campground) error {
	if m.createErr != nil {
		return m.createErr
	}
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

func (m *mockCampgroundRepo) GetByID(ctx context.Context, id string) (*model.Campground, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.camps[id], nil
}

func (m *mockCampgroundRepo) List(ctx context.Context) ([]*model.Campground, error) {
	out := make([]*model.Campground, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if camp, ok := m.camps[m.order[i]]; ok {
			out = append(out, camp)
		}
	}
	return out, nil
}

func (m *mockCampgroundRepo) Update(ctx context.Context, camp *model.Campground) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	camp.UpdatedOn = time.Now()
	m.camps[camp.ID] = camp
	return nil
}

func (m *mockCampgroundRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.camps, id)
	return nil
}

func (m *mockCampgroundRepo) AppendReview(ctx context.Context, campgroundID, reviewID string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	camp, ok := m.camps[campgroundID]
	if !ok {
		return errors.New("campground not found")
	}
	camp.Reviews = append(camp.Reviews, reviewID)
	return nil
}

func (m *mockCampgroundRepo) DetachReview(ctx context.Context, campgroundID, reviewID string) error {
	if m.detachErr != nil {
		return m.detachErr
	}
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

func (m *mockCampgroundRepo) ListReviewRefs(ctx context.Context) ([]string, error) {
	var refs []string
	for _, camp := range m.camps {
		refs = append(refs, camp.Reviews...)
	}
	return refs, nil
}

type mockReviewRepo struct {
	reviews    map[string]*model.Review
	order      []string
	nextID     int
	createErr  error
	deleteErrs map[string]error
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		reviews:    make(map[string]*model.Review),
		deleteErrs: make(map[string]error),
	}
}

func (m *mockReviewRepo) Create(ctx context.Context, review *model.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	review.ID = fmt.Sprintf("review:%d", m.nextID)
	review.CreatedOn = time.Now()
	m.reviews[review.ID] = review
	m.order = append(m.order, review.ID)
	return nil
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*model.Review, error) {
	return m.reviews[id], nil
}

// GetByIDs mirrors the real repository: input order preserved, missing
// ids skipped.
func (m *mockReviewRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Review, error) {
	out := make([]*model.Review, 0, len(ids))
	for _, id := range ids {
		if review, ok := m.reviews[id]; ok {
			out = append(out, review)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Delete(ctx context.Context, id string) error {
	if err := m.deleteErrs[id]; err != nil {
		return err
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewRepo) ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	var ids []string
	for id, review := range m.reviews {
		if review.CreatedOn.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func setupCampgroundService(t *testing.T) (*CampgroundService, *mockCampgroundRepo, *mockReviewRepo) {
	t.Helper()

	campRepo := newMockCampgroundRepo()
	reviewRepo := newMockReviewRepo()

	campgroundService := NewCampgroundService(CampgroundServiceConfig{
		CampgroundRepo: campRepo,
		ReviewRepo:     reviewRepo,
	})

	return campgroundService, campRepo, reviewRepo
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func testCampgroundPayload() *model.CampgroundPayload {
	return &model.CampgroundPayload{
		Title:       "Hidden Valley",
		Location:    "Yosemite, CA",
		Description: "A quiet spot by the river.",
		Price:       floatPtr(25),
	}
}

// Tests

func TestCampgroundService_Create(t *testing.T) {
	campgroundService, campRepo, _ := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if camp.ID == "" {
		t.Error("expected id to be assigned")
	}
	if camp.Author != "user:1" {
		t.Errorf("expected author user:1, got %s", camp.Author)
	}
	if len(camp.Reviews) != 0 {
		t.Errorf("expected no reviews on a new campground, got %d", len(camp.Reviews))
	}

	stored, _ := campRepo.GetByID(ctx, camp.ID)
	if stored == nil {
		t.Fatal("campground was not stored")
	}
	if stored.Price != 25 {
		t.Errorf("expected price 25, got %v", stored.Price)
	}
}

func TestCampgroundService_Get(t *testing.T) {
	campgroundService, _, reviewRepo := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reviewService := NewReviewService(ReviewServiceConfig{
		ReviewRepo:     reviewRepo,
		CampgroundRepo: campgroundService.campRepo,
	})
	first, err := reviewService.Create(ctx, "user:2", camp.ID, &model.ReviewPayload{Rating: intPtr(5), Body: "Great"})
	if err != nil {
		t.Fatalf("review create failed: %v", err)
	}
	second, err := reviewService.Create(ctx, "user:3", camp.ID, &model.ReviewPayload{Rating: intPtr(3), Body: "Okay"})
	if err != nil {
		t.Fatalf("review create failed: %v", err)
	}

	detail, err := campgroundService.Get(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(detail.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(detail.Reviews))
	}
	// Insertion order is preserved
	if detail.Reviews[0].ID != first.ID || detail.Reviews[1].ID != second.ID {
		t.Errorf("reviews out of order: %s, %s", detail.Reviews[0].ID, detail.Reviews[1].ID)
	}
}

func TestCampgroundService_Get_SkipsDanglingReviewRefs(t *testing.T) {
	campgroundService, campRepo, _ := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// A reference to a review record that does not exist is skipped on read
	campRepo.camps[camp.ID].Reviews = []string{"review:ghost"}

	detail, err := campgroundService.Get(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(detail.Reviews) != 0 {
		t.Errorf("expected dangling ref to be skipped, got %d reviews", len(detail.Reviews))
	}
}

func TestCampgroundService_Get_NotFound(t *testing.T) {
	campgroundService, _, _ := setupCampgroundService(t)
	ctx := context.Background()

	_, err := campgroundService.Get(ctx, "campground:missing")
	if !errors.Is(err, ErrCampgroundNotFound) {
		t.Errorf("expected ErrCampgroundNotFound, got %v", err)
	}
}

func TestCampgroundService_List(t *testing.T) {
	campgroundService, _, _ := setupCampgroundService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	camps, err := campgroundService.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(camps) != 3 {
		t.Errorf("expected 3 campgrounds, got %d", len(camps))
	}
}

func TestCampgroundService_Update(t *testing.T) {
	campgroundService, _, _ := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	payload := testCampgroundPayload()
	payload.Title = "Renamed Valley"
	payload.Price = floatPtr(40)

	updated, err := campgroundService.Update(ctx, camp.ID, payload)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Renamed Valley" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if updated.Price != 40 {
		t.Errorf("expected updated price, got %v", updated.Price)
	}
	// Author never changes on update
	if updated.Author != "user:1" {
		t.Errorf("author changed on update: %s", updated.Author)
	}
}

func TestCampgroundService_Update_NotFound(t *testing.T) {
	campgroundService, _, _ := setupCampgroundService(t)
	ctx := context.Background()

	_, err := campgroundService.Update(ctx, "campground:missing", testCampgroundPayload())
	if !errors.Is(err, ErrCampgroundNotFound) {
		t.Errorf("expected ErrCampgroundNotFound, got %v", err)
	}
}

func TestCampgroundService_Delete_CascadesToReviews(t *testing.T) {
	campgroundService, campRepo, reviewRepo := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reviewService := NewReviewService(ReviewServiceConfig{
		ReviewRepo:     reviewRepo,
		CampgroundRepo: campRepo,
	})
	review, err := reviewService.Create(ctx, "user:2", camp.ID, &model.ReviewPayload{Rating: intPtr(4), Body: "Nice"})
	if err != nil {
		t.Fatalf("review create failed: %v", err)
	}

	if err := campgroundService.Delete(ctx, camp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if c, _ := campRepo.GetByID(ctx, camp.ID); c != nil {
		t.Error("campground still present after delete")
	}
	if r, _ := reviewRepo.GetByID(ctx, review.ID); r != nil {
		t.Error("review survived the cascade")
	}
}

func TestCampgroundService_Delete_PartialCascadeStillRemovesCampground(t *testing.T) {
	campgroundService, campRepo, reviewRepo := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reviewService := NewReviewService(ReviewServiceConfig{
		ReviewRepo:     reviewRepo,
		CampgroundRepo: campRepo,
	})
	review, err := reviewService.Create(ctx, "user:2", camp.ID, &model.ReviewPayload{Rating: intPtr(4), Body: "Nice"})
	if err != nil {
		t.Fatalf("review create failed: %v", err)
	}

	// One review refuses to die; the campground is removed anyway and the
	// orphan is left for the sweeper
	reviewRepo.deleteErrs[review.ID] = errors.New("storage hiccup")

	if err := campgroundService.Delete(ctx, camp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if c, _ := campRepo.GetByID(ctx, camp.ID); c != nil {
		t.Error("campground still present after delete")
	}
	if r, _ := reviewRepo.GetByID(ctx, review.ID); r == nil {
		t.Error("expected orphaned review to remain")
	}
}

func TestCampgroundService_Delete_SecondCallerGetsNotFound(t *testing.T) {
	campgroundService, _, _ := setupCampgroundService(t)
	ctx := context.Background()

	camp, err := campgroundService.Create(ctx, "user:1", testCampgroundPayload())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := campgroundService.Delete(ctx, camp.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := campgroundService.Delete(ctx, camp.ID); !errors.Is(err, ErrCampgroundNotFound) {
		t.Errorf("expected ErrCampgroundNotFound on second delete, got %v", err)
	}
}
