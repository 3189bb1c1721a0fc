package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rasoilink/rasoilink-backend/api/controllers"
	appmiddleware "github.com/rasoilink/rasoilink-backend/api/middleware"
	"github.com/rasoilink/rasoilink-backend/internal/auth"
	"github.com/rasoilink/rasoilink-backend/internal/inventory"
	"github.com/rasoilink/rasoilink-backend/internal/orders"
	"github.com/rasoilink/rasoilink-backend/internal/payments"
	"github.com/rasoilink/rasoilink-backend/internal/reviews"
	"github.com/rasoilink/rasoilink-backend/internal/suppliers"
	"github.com/rasoilink/rasoilink-backend/internal/users"
	"github.com/rasoilink/rasoilink-backend/pkg/auth/session"
	"github.com/rasoilink/rasoilink-backend/pkg/config"
	"github.com/rasoilink/rasoilink-backend/pkg/db"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
	"github.com/rasoilink/rasoilink-backend/pkg/metrics"
	"github.com/rasoilink/rasoilink-backend/pkg/redis"
)

// Dependencies bundles everything the router needs to wire handlers.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Sessions session.AccessSessionChecker

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	AuthService      auth.Service
	RegisterService  auth.RegisterService
	UserService      users.Service
	SupplierService  suppliers.Service
	InventoryService inventory.Service
	OrderService     orders.Service
	ReviewService    reviews.Service
	PaymentService   payments.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Dependencies) chi.Router {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(appmiddleware.Recoverer(logg))
	r.Use(appmiddleware.RequestID(logg))
	r.Use(appmiddleware.CORS())
	r.Use(appmiddleware.Metrics(deps.HTTPMetrics))
	r.Use(appmiddleware.Logging(logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, deps.Redis, logg))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			jwtCfg := config.JWTConfig{}
			rateCfg := config.AuthRateLimitConfig{}
			if deps.Config != nil {
				jwtCfg = deps.Config.JWT
				rateCfg = deps.Config.AuthRateLimit
			}

			r.With(appmiddleware.AuthRateLimit(deps.Redis, appmiddleware.AuthRateLimitPolicy{
				Scope:      "auth:register",
				Window:     rateCfg.RegisterWindow,
				IPLimit:    rateCfg.RegisterIPLimit,
				EmailLimit: rateCfg.RegisterEmailLimit,
			}, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))

			r.With(appmiddleware.AuthRateLimit(deps.Redis, appmiddleware.AuthRateLimitPolicy{
				Scope:      "auth:login",
				Window:     rateCfg.LoginWindow,
				IPLimit:    rateCfg.LoginIPLimit,
				EmailLimit: rateCfg.LoginEmailLimit,
			}, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))

			r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, jwtCfg, logg))
		})

		r.Group(func(r chi.Router) {
			jwtCfg := config.JWTConfig{}
			if deps.Config != nil {
				jwtCfg = deps.Config.JWT
			}
			r.Use(appmiddleware.Auth(jwtCfg, deps.Sessions, logg))
			r.Use(appmiddleware.Idempotency(deps.Redis, logg))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", controllers.UsersMe(deps.UserService, logg))
				r.Put("/me", controllers.UsersUpdateProfile(deps.UserService, logg))
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", controllers.SuppliersList(deps.SupplierService, logg))
				r.Post("/compare", controllers.SuppliersCompare(deps.SupplierService, logg))
				r.Get("/{supplierID}", controllers.SuppliersGet(deps.SupplierService, logg))
				r.Get("/{supplierID}/reviews", controllers.ReviewsListBySupplier(deps.ReviewService, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(string(enums.UserRoleSupplier), logg))
				r.Get("/", controllers.InventoryList(deps.InventoryService, logg))
				r.Post("/", controllers.InventoryCreate(deps.InventoryService, logg))
				r.Get("/{itemID}", controllers.InventoryGet(deps.InventoryService, logg))
				r.Put("/{itemID}", controllers.InventoryUpdate(deps.InventoryService, logg))
				r.Delete("/{itemID}", controllers.InventoryDelete(deps.InventoryService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.OrderService, logg))
				r.Get("/{orderID}", controllers.OrdersGet(deps.OrderService, logg))
				r.Patch("/{orderID}/status", controllers.OrdersUpdateStatus(deps.OrderService, logg))

				r.With(appmiddleware.RequireRole(string(enums.UserRoleVendor), logg)).
					Post("/", controllers.OrdersCreate(deps.OrderService, logg))
			})

			r.With(appmiddleware.RequireRole(string(enums.UserRoleVendor), logg)).
				Post("/reviews", controllers.ReviewsCreate(deps.ReviewService, logg))

			r.Route("/payments", func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(string(enums.UserRoleVendor), logg))
				r.Post("/", controllers.PaymentsInitiate(deps.PaymentService, logg))
				r.Get("/{intentID}", controllers.PaymentsGet(deps.PaymentService, logg))
				r.Post("/{intentID}/confirm", controllers.PaymentsConfirm(deps.PaymentService, logg))
			})
		})
	})

	return r
}
