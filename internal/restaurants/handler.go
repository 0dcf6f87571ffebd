package restaurants

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Handler exposes country-scoped restaurant reads.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   acl.Guard
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard acl.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers restaurant routes. Both the grant check and the
// country scope apply to every route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(acl.Cap(shared.CategoryRestaurants, shared.ActionRead)))
		r.Use(h.guard.RequireCountry())
		r.Get("/", h.list)
		r.Get("/{restaurantID}", h.get)
		r.Get("/{restaurantID}/menu", h.menu)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	list, err := h.service.List(r.Context(), principal.Country)
	if err != nil {
		h.fail(w, "list restaurants", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"restaurants": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "restaurantID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid restaurant id")
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	rest, err := h.service.Get(r.Context(), id, principal.Country)
	if err != nil {
		h.fail(w, "get restaurant", err)
		return
	}
	httpx.JSON(w, http.StatusOK, rest)
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "restaurantID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid restaurant id")
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	menu, err := h.service.Menu(r.Context(), id, principal.Country)
	if err != nil {
		h.fail(w, "list menu", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"menu": menu})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, httpx.ErrNotFound) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
