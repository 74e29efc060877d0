package middleware

import (
	"context"
	"net/http"

	"github.com/campfield/api/internal/model"
)

// GuardResult is the outcome of one guard: either the request continues
// (optionally with an enriched context) or the chain halts with a response.
type GuardResult struct {
	req  *http.Request
	halt *model.ProblemDetails
}

// Continue lets the chain proceed with the given request.
func Continue(r *http.Request) GuardResult {
	return GuardResult{req: r}
}

// Halt stops the chain and writes the given problem response.
func Halt(pd *model.ProblemDetails) GuardResult {
	return GuardResult{halt: pd}
}

// Guard is one predicate in an authorization chain.
type Guard func(r *http.Request) GuardResult

// Guards evaluates an ordered list of guards before the wrapped handler
// runs. The first Halt short-circuits unconditionally: the handler and any
// remaining guards never execute.
func Guards(guards ...Guard) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, guard := range guards {
				result := guard(r)
				if result.halt != nil {
					result.halt.WriteJSON(w)
					return
				}
				if result.req != nil {
					r = result.req
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticated halts with 401 when no principal was resolved from the
// session. A request that presented a cookie for a dead session gets the
// session-expired variant. It must precede any ownership guard: ownership
// is meaningless for an anonymous request.
func Authenticated() Guard {
	return func(r *http.Request) GuardResult {
		if GetUserID(r.Context()) == "" {
			if staleSession(r.Context()) {
				return Halt(model.NewSessionExpiredError())
			}
			return Halt(model.NewUnauthorizedError("authentication required"))
		}
		return Continue(r)
	}
}

// CampgroundGetter looks up a campground for ownership checks.
type CampgroundGetter interface {
	GetByID(ctx context.Context, id string) (*model.Campground, error)
}

// CampgroundKey is the context key for the campground loaded by an
// ownership guard.
const CampgroundKey contextKey = "campground"

// GetCampground extracts the campground resolved by CampgroundOwner.
func GetCampground(ctx context.Context) *model.Campground {
	if camp, ok := ctx.Value(CampgroundKey).(*model.Campground); ok {
		return camp
	}
	return nil
}

// CampgroundOwner loads the campground named by the {campgroundId} path
// value and halts unless the principal is its author. A missing campground
// is a distinct outcome (404) from one that exists but is not owned (403).
// The loaded campground is placed in the context so handlers need not fetch
// it again.
func CampgroundOwner(campgrounds CampgroundGetter) Guard {
	return func(r *http.Request) GuardResult {
		userID := GetUserID(r.Context())
		if userID == "" {
			return Halt(model.NewUnauthorizedError("authentication required"))
		}

		campgroundID := r.PathValue("campgroundId")
		if campgroundID == "" {
			return Halt(model.NewBadRequestError("campground ID required"))
		}

		camp, err := campgrounds.GetByID(r.Context(), campgroundID)
		if err != nil {
			return Halt(model.NewInternalError(""))
		}
		if camp == nil {
			return Halt(model.NewNotFoundError("campground"))
		}
		if camp.Author != userID {
			return Halt(model.NewForbiddenError("you do not have permission to do that"))
		}

		ctx := context.WithValue(r.Context(), CampgroundKey, camp)
		return Continue(r.WithContext(ctx))
	}
}

// ReviewDeletePolicy selects who may delete a review.
type ReviewDeletePolicy string

const (
	// ReviewDeleteAnyAuthenticated lets any logged-in user delete any review.
	ReviewDeleteAnyAuthenticated ReviewDeletePolicy = "any_authenticated"
	// ReviewDeleteOwnerOnly restricts deletion to the review's author.
	ReviewDeleteOwnerOnly ReviewDeletePolicy = "owner_only"
)

// Valid reports whether the policy is a known value.
func (p ReviewDeletePolicy) Valid() bool {
	return p == ReviewDeleteAnyAuthenticated || p == ReviewDeleteOwnerOnly
}

// ReviewGetter looks up a review for ownership checks.
type ReviewGetter interface {
	GetByID(ctx context.Context, id string) (*model.Review, error)
}

// ReviewOwner enforces the configured review deletion policy against the
// {reviewId} path value. Under the any-authenticated policy the guard only
// verifies the review exists.
func ReviewOwner(reviews ReviewGetter, policy ReviewDeletePolicy) Guard {
	return func(r *http.Request) GuardResult {
		userID := GetUserID(r.Context())
		if userID == "" {
			return Halt(model.NewUnauthorizedError("authentication required"))
		}

		reviewID := r.PathValue("reviewId")
		if reviewID == "" {
			return Halt(model.NewBadRequestError("review ID required"))
		}

		review, err := reviews.GetByID(r.Context(), reviewID)
		if err != nil {
			return Halt(model.NewInternalError(""))
		}
		if review == nil {
			return Halt(model.NewNotFoundError("review"))
		}
		if policy == ReviewDeleteOwnerOnly && review.Author != userID {
			return Halt(model.NewForbiddenError("you do not have permission to do that"))
		}

		return Continue(r)
	}
}
