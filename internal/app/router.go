package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
	"github.com/ravikiran1811/foodie-hub/internal/auth"
	"github.com/ravikiran1811/foodie-hub/internal/dashboard"
	"github.com/ravikiran1811/foodie-hub/internal/observability"
	"github.com/ravikiran1811/foodie-hub/internal/orders"
	"github.com/ravikiran1811/foodie-hub/internal/payments"
	"github.com/ravikiran1811/foodie-hub/internal/restaurants"
	"github.com/ravikiran1811/foodie-hub/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthMiddleware     auth.Middleware
	AuthHandler        *auth.Handler
	PermissionsHandler *acl.Handler
	UsersHandler       *users.Handler
	RestaurantsHandler *restaurants.Handler
	OrdersHandler      *orders.Handler
	PaymentsHandler    *payments.Handler
	DashboardHandler   *dashboard.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything except /auth, /healthz and
// /metrics sits behind token authentication; grant checks live on the routes
// themselves.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAuth)
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/restaurants", params.RestaurantsHandler.MountRoutes)
		r.Route("/orders", params.OrdersHandler.MountRoutes)
		r.Route("/payments", params.PaymentsHandler.MountRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
	})

	return r
}
