package payments

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

// Handler exposes payment method routes.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   acl.Guard
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard acl.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers payment method routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(acl.Cap(shared.CategoryPayments, shared.ActionWrite))).
		Post("/methods", h.add)
	r.With(h.guard.Require(acl.Cap(shared.CategoryPayments, shared.ActionRead))).
		Get("/methods", h.list)
	r.With(h.guard.Require(acl.Cap(shared.CategoryPayments, shared.ActionDelete))).
		Delete("/methods/{methodID}", h.remove)
}

type addMethodRequest struct {
	Type  MethodType `json:"type" validate:"required,oneof=CREDIT_CARD DEBIT_CARD UPI"`
	Label string     `json:"label" validate:"required,max=100"`
	Last4 string     `json:"last4Digits" validate:"required,len=4,numeric"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addMethodRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	method, err := h.service.Add(r.Context(), principal.ID, req.Type, req.Label, req.Last4)
	if err != nil {
		h.fail(w, "add payment method", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, method)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	list, err := h.service.List(r.Context(), principal.ID)
	if err != nil {
		h.fail(w, "list payment methods", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"methods": list})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "methodID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid method id")
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	if err := h.service.Remove(r.Context(), principal.ID, id); err != nil {
		h.fail(w, "remove payment method", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Payment method removed successfully"})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, httpx.ErrNotFound) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
