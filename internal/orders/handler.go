package orders

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

// Handler exposes the order surface. Each route carries exactly the grant its
// verb needs.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   acl.Guard
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard acl.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(acl.Cap(shared.CategoryOrders, shared.ActionWrite))).
		Post("/", h.create)
	r.With(h.guard.Require(acl.Cap(shared.CategoryOrders, shared.ActionRead))).
		Get("/", h.list)
	r.With(h.guard.Require(acl.Cap(shared.CategoryOrders, shared.ActionRead))).
		Get("/{orderID}", h.get)
	r.With(h.guard.Require(acl.Cap(shared.CategoryOrders, shared.ActionUpdate))).
		Put("/{orderID}/status", h.updateStatus)
	r.With(h.guard.Require(acl.Cap(shared.CategoryOrders, shared.ActionDelete))).
		Delete("/{orderID}", h.cancel)
}

type createOrderRequest struct {
	RestaurantID int64              `json:"restaurantId" validate:"required,gt=0"`
	Items        []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemRequest struct {
	MenuItemID int64 `json:"menuItemId" validate:"required,gt=0"`
	Quantity   int64 `json:"quantity" validate:"required,gt=0"`
	PriceCents int64 `json:"priceCents" validate:"required,gt=0"`
}

type updateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	items := make([]OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}
	principal := shared.PrincipalFromContext(r.Context())
	order, err := h.service.Create(r.Context(), principal, req.RestaurantID, items)
	if err != nil {
		h.fail(w, "create order", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	list, err := h.service.List(r.Context(), principal)
	if err != nil {
		h.fail(w, "list orders", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	order, err := h.service.Get(r.Context(), principal, id)
	if err != nil {
		h.fail(w, "get order", err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if !req.Status.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown order status")
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	order, err := h.service.UpdateStatus(r.Context(), principal.ID, id, req.Status)
	if err != nil {
		h.fail(w, "update order status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	order, err := h.service.Cancel(r.Context(), principal.ID, id)
	if err != nil {
		h.fail(w, "cancel order", err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	var transition *InvalidTransitionError
	if errors.As(err, &transition) {
		httpx.Problem(w, http.StatusConflict, "Conflict", transition.Error())
		return
	}
	if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrForbidden) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
