package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionStore is the slice of the session repository the sweeper needs.
type SessionStore interface {
	DeleteExpired(ctx context.Context) error
}

// ReviewStore is the slice of the review repository the sweeper needs.
type ReviewStore interface {
	ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRefStore lists every review reference held by any campground.
type ReviewRefStore interface {
	ListReviewRefs(ctx context.Context) ([]string, error)
}

// Sweeper reclaims leftovers of the two-step write paths: expired login
// sessions, and review records whose campground reference was never
// attached (or whose detach succeeded but whose delete did not).
type Sweeper struct {
	sessions SessionStore
	reviews  ReviewStore
	refs     ReviewRefStore
	interval time.Duration
	grace    time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSweeper creates a new sweeper job. The grace window equals the sweep
// interval: reviews younger than that are never considered orphans.
func NewSweeper(sessions SessionStore, reviews ReviewStore, refs ReviewRefStore, interval time.Duration) *Sweeper {
	if interval == 0 {
		interval = time.Hour
	}
	return &Sweeper{
		sessions: sessions,
		reviews:  reviews,
		refs:     refs,
		interval: interval,
		grace:    interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweeper job.
func (s *Sweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("sweeper started", "interval", s.interval)
}

// Stop gracefully stops the sweeper job.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("sweeper stopped")
}

// IsRunning returns whether the sweeper is running.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		slog.Error("sweep failed", "error", err)
	}
}

// RunOnce runs a single sweep pass (also used by tests and manual triggers).
func (s *Sweeper) RunOnce(ctx context.Context) error {
	if err := s.sessions.DeleteExpired(ctx); err != nil {
		return err
	}
	return s.reclaimOrphanedReviews(ctx)
}

// reclaimOrphanedReviews deletes review records not referenced by any
// campground. Records younger than the grace window are spared: a review
// created moments ago may still be waiting for its reference to be
// attached, and reclaiming it would leave the parent with a dangling
// reference once the attach lands. Anything unreferenced past the window
// is an orphan from a failed attach or a partial delete.
func (s *Sweeper) reclaimOrphanedReviews(ctx context.Context) error {
	refs, err := s.refs.ListReviewRefs(ctx)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-s.grace)
	ids, err := s.reviews.ListIDsOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref] = struct{}{}
	}

	var reclaimed int
	for _, id := range ids {
		if _, ok := referenced[id]; ok {
			continue
		}
		if err := s.reviews.Delete(ctx, id); err != nil {
			slog.Warn("failed to reclaim orphaned review", "review_id", id, "error", err)
			continue
		}
		reclaimed++
	}
	if reclaimed > 0 {
		slog.Info("reclaimed orphaned reviews", "count", reclaimed)
	}
	return nil
}
