package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adirahmanto/craftline-backend/api/controllers"
	"github.com/adirahmanto/craftline-backend/api/middleware"
	authsvc "github.com/adirahmanto/craftline-backend/internal/auth"
	catalogsvc "github.com/adirahmanto/craftline-backend/internal/catalog"
	ordersvc "github.com/adirahmanto/craftline-backend/internal/orders"
	productsvc "github.com/adirahmanto/craftline-backend/internal/products"
	"github.com/adirahmanto/craftline-backend/pkg/auth/session"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/db"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
	"github.com/adirahmanto/craftline-backend/pkg/metrics"
	redisclient "github.com/adirahmanto/craftline-backend/pkg/redis"
	"github.com/adirahmanto/craftline-backend/pkg/storage/supabase"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redisclient.Client
	Storage        supabase.Pinger
	SessionManager session.Resolver
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService    authsvc.Service
	CatalogService catalogsvc.Service
	ProductService productsvc.Service
	OrderService   ordersvc.Service
}

// NewRouter wires middleware and every route group.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	maxImageBytes := cfg.Upload.MaxImageBytes()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.Storage))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, cfg.Session, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Session, deps.SessionManager, logg))
			r.Post("/logout", controllers.Logout(deps.AuthService, cfg.Session, logg))
			r.Get("/me", controllers.Me(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, deps.SessionManager, logg))

		requireStaff := middleware.RequireStaff(logg)
		requireAdmin := middleware.RequireRole(logg, enums.RoleAdmin)

		// Reads are open to any authenticated session so the storefront
		// can render configurators; mutations are staff-only and
		// deletes admin-only.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Get("/{id}", controllers.GetProduct(deps.ProductService, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireStaff)
				r.Post("/", controllers.CreateProduct(deps.ProductService, maxImageBytes, logg))
				r.Put("/{id}", controllers.UpdateProduct(deps.ProductService, maxImageBytes, logg))
				r.With(requireAdmin).Delete("/{id}", controllers.DeleteProduct(deps.ProductService, logg))
				r.With(requireAdmin).Post("/{id}/restore", controllers.RestoreProduct(deps.ProductService, logg))

				r.Put("/{id}/materials", controllers.ReplaceProductMaterials(deps.ProductService, logg))
				r.Put("/{id}/sizes", controllers.ReplaceProductSizes(deps.ProductService, logg))
				r.Put("/{id}/colors", controllers.ReplaceProductColors(deps.ProductService, logg))

				r.Route("/{id}/variants", func(r chi.Router) {
					r.Post("/", controllers.AddVariant(deps.ProductService, maxImageBytes, logg))
					r.Put("/{optionId}", controllers.UpdateVariant(deps.ProductService, maxImageBytes, logg))
					r.Delete("/{optionId}", controllers.DeleteVariant(deps.ProductService, logg))
				})
				r.Route("/{id}/border-lengths", func(r chi.Router) {
					r.Post("/", controllers.AddBorderLength(deps.ProductService, logg))
					r.Put("/{optionId}", controllers.UpdateBorderLength(deps.ProductService, logg))
					r.Delete("/{optionId}", controllers.DeleteBorderLength(deps.ProductService, logg))
				})
				r.Route("/{id}/custom-columns", func(r chi.Router) {
					r.Post("/", controllers.AddCustomColumn(deps.ProductService, maxImageBytes, logg))
					r.Put("/{optionId}", controllers.UpdateCustomColumn(deps.ProductService, maxImageBytes, logg))
					r.Delete("/{optionId}", controllers.DeleteCustomColumn(deps.ProductService, logg))
				})
			})
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", controllers.ListMaterials(deps.CatalogService, logg))
			r.With(requireStaff).Post("/", controllers.CreateMaterial(deps.CatalogService, maxImageBytes, logg))
			r.With(requireStaff).Put("/{id}", controllers.UpdateMaterial(deps.CatalogService, maxImageBytes, logg))
			r.With(requireAdmin).Delete("/{id}", controllers.DeleteMaterial(deps.CatalogService, logg))
		})
		r.Route("/sizes", func(r chi.Router) {
			r.Get("/", controllers.ListSizes(deps.CatalogService, logg))
			r.With(requireStaff).Post("/", controllers.CreateSize(deps.CatalogService, logg))
			r.With(requireStaff).Put("/{id}", controllers.UpdateSize(deps.CatalogService, logg))
			r.With(requireAdmin).Delete("/{id}", controllers.DeleteSize(deps.CatalogService, logg))
		})
		r.Route("/colors", func(r chi.Router) {
			r.Get("/", controllers.ListColors(deps.CatalogService, logg))
			r.With(requireStaff).Post("/", controllers.CreateColor(deps.CatalogService, logg))
			r.With(requireStaff).Put("/{id}", controllers.UpdateColor(deps.CatalogService, logg))
			r.With(requireAdmin).Delete("/{id}", controllers.DeleteColor(deps.CatalogService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(deps.OrderService, maxImageBytes, cfg.Upload.MaxOrderItems, logg))
			r.Get("/mine", controllers.ListMyOrders(deps.OrderService, logg))
			r.Get("/{id}", controllers.GetOrder(deps.OrderService, logg))
			r.Put("/{id}/payment-image", controllers.UploadPaymentImage(deps.OrderService, maxImageBytes, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireStaff)
				r.Get("/", controllers.ListOrders(deps.OrderService, logg))
				r.Get("/{id}/payment-image", controllers.GetPaymentImageURL(deps.OrderService, logg))
				r.Put("/{id}/status", controllers.UpdateOrderStatus(deps.OrderService, logg))
				r.Put("/{id}/details/{detailId}/status", controllers.UpdateDetailStatus(deps.OrderService, logg))
			})
		})

		r.With(requireAdmin).Put("/users/{id}/role", controllers.UpdateUserRole(deps.AuthService, logg))
	})

	return r
}
