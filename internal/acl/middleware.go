package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Authorizer is the decision engine contract consumed by the guard
// middleware. Satisfied by *Service.
type Authorizer interface {
	Authorize(ctx context.Context, roleID int64, cap Capability) error
}

// DecisionRecorder observes allow/deny outcomes, typically for metrics.
type DecisionRecorder interface {
	RecordDecision(category, action, outcome string)
}

// Guard wires declarative capability checks ahead of protected handlers.
// The check always runs before the handler body; a denied request never
// partially executes the operation.
type Guard struct {
	Auth     Authorizer
	Logger   *slog.Logger
	Recorder DecisionRecorder
}

// Require gates the wrapped handler on the given capability. The request
// principal must already be resolved by the authentication middleware.
func (g Guard) Require(cap Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if !principal.Authenticated() {
				g.record(cap, "unauthenticated")
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "user not authenticated")
				return
			}

			err := g.Auth.Authorize(r.Context(), principal.RoleID, cap)
			switch {
			case err == nil:
				g.record(cap, "allow")
				next.ServeHTTP(w, r)
			case errors.Is(err, ErrUnauthenticated):
				g.record(cap, "unauthenticated")
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "user not authenticated")
			case errors.Is(err, httpx.ErrForbidden):
				g.record(cap, "deny")
				httpx.Problem(w, http.StatusForbidden, "Forbidden", err.Error())
			default:
				// Infrastructure failure: never degrade to allow.
				g.record(cap, "error")
				if g.Logger != nil {
					g.Logger.Error("authorize", slog.String("capability", cap.String()), slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			}
		})
	}
}

// RequireCountry marks the wrapped handler as country-scoped. It fails with
// Forbidden when the principal has no country set; the handler narrows its
// dataset to the principal's country. This composes after Require and never
// widens access.
func (g Guard) RequireCountry() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if !principal.Authenticated() {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "user not authenticated")
				return
			}
			if principal.Country == "" {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "country information not available")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g Guard) record(cap Capability, outcome string) {
	if g.Recorder != nil {
		g.Recorder.RecordDecision(cap.Category, cap.Action, outcome)
	}
}
