package acl

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Handler exposes the permission administration surface. Every route is
// itself gated through the decision engine on the fixed USERS capabilities.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   Guard
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers the administration routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(Cap(shared.CategoryUsers, shared.ActionRead)))
		r.Get("/roles", h.listRoles)
		r.Get("/role/{roleID}", h.roleMatrix)
		r.Get("/categories-actions", h.categoriesActions)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(Cap(shared.CategoryUsers, shared.ActionUpdate)))
		r.Put("/role/{roleID}", h.replaceGrants)
		r.Post("/add", h.addGrant)
		r.Delete("/remove", h.removeGrant)
	})
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		h.fail(w, "list roles", err)
		return
	}
	httpx.JSON(w, http.StatusOK, roles)
}

func (h *Handler) roleMatrix(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "roleID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid role id")
		return
	}
	matrix, err := h.service.ResolveFull(r.Context(), roleID)
	if err != nil {
		h.fail(w, "resolve matrix", err)
		return
	}
	httpx.JSON(w, http.StatusOK, matrix)
}

func (h *Handler) categoriesActions(w http.ResponseWriter, r *http.Request) {
	categories, actions, err := h.service.CategoriesAndActions(r.Context())
	if err != nil {
		h.fail(w, "list categories and actions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"actions":    actions,
	})
}

type replaceGrantsRequest struct {
	Permissions []GrantPair `json:"permissions" validate:"dive"`
}

func (h *Handler) replaceGrants(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "roleID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid role id")
		return
	}

	var req replaceGrantsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	count, err := h.service.ReplaceGrants(r.Context(), roleID, req.Permissions, principal.ID)
	if err != nil {
		h.fail(w, "replace grants", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Permissions updated successfully",
		"count":   count,
	})
}

type grantRequest struct {
	RoleID     int64 `json:"roleId" validate:"required,gt=0"`
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
	ActionID   int64 `json:"actionId" validate:"required,gt=0"`
}

func (h *Handler) addGrant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	outcome, err := h.service.AddGrant(r.Context(), req.RoleID, req.CategoryID, req.ActionID, principal.ID)
	if err != nil {
		h.fail(w, "add grant", err)
		return
	}
	if outcome == AlreadyExists {
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "Permission already exists"})
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"message": "Permission added successfully"})
}

func (h *Handler) removeGrant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	if err := h.service.RemoveGrant(r.Context(), req.RoleID, req.CategoryID, req.ActionID); err != nil {
		h.fail(w, "remove grant", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Permission removed successfully"})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch err {
	case ErrRoleNotFound, ErrGrantNotFound:
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
