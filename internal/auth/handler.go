package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Handler exposes registration, login and the advisory permission document.
type Handler struct {
	logger  *slog.Logger
	service *Service
	mw      Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw Middleware) *Handler {
	return &Handler{logger: logger, service: service, mw: mw}
}

// MountRoutes registers auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/status", h.status)
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireAuth)
		r.Get("/permissions", h.permissions)
		r.Get("/me", h.me)
	})
}

type registerRequest struct {
	Name     string         `json:"name" validate:"required,max=255"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	RoleName string         `json:"roleName" validate:"required"`
	Country  shared.Country `json:"country" validate:"omitempty,oneof=INDIA AMERICA"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "Auth service is running"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	session, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, req.RoleName, req.Country)
	if err != nil {
		h.fail(w, "register", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	httpx.JSON(w, http.StatusOK, session)
}

// permissions returns the sparse document consumed once per session by the
// client for UI feature gating. Advisory only: hiding a button client-side
// never replaces the per-request server check.
func (h *Handler) permissions(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	doc, err := h.service.Permissions(r.Context(), principal.ID)
	if err != nil {
		h.fail(w, "permissions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, permissionsResponse{Access: accessNode{IWork: doc}})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{"user": principal})
}

type permissionsResponse struct {
	Access accessNode `json:"access"`
}

type accessNode struct {
	IWork acl.PermissionDocument `json:"iWork"`
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, shared.ErrInvalidCredentials) {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	if !errors.Is(err, httpx.ErrDuplicate) && !errors.Is(err, httpx.ErrUnauthorized) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
