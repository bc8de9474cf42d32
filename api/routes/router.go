package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hiddenspringfield/shop-backend/api/controllers"
	cartcontrollers "github.com/hiddenspringfield/shop-backend/api/controllers/cart"
	"github.com/hiddenspringfield/shop-backend/api/middleware"
	"github.com/hiddenspringfield/shop-backend/internal/auth"
	"github.com/hiddenspringfield/shop-backend/internal/cachesync"
	"github.com/hiddenspringfield/shop-backend/internal/cart"
	"github.com/hiddenspringfield/shop-backend/internal/catalog"
	"github.com/hiddenspringfield/shop-backend/internal/categories"
	"github.com/hiddenspringfield/shop-backend/internal/order"
	"github.com/hiddenspringfield/shop-backend/pkg/config"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
	"github.com/hiddenspringfield/shop-backend/pkg/metrics"
)

// Params carries everything the router wires into handlers. Nil pingers are
// reported as skipped by the readiness probe.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Metrics  prometheus.Gatherer
	HTTP     *metrics.HTTPMetrics
	Limiter  middleware.RateLimiter
	Auth     auth.Service
	Catalog  catalog.Service
	Category categories.Service
	Settings controllers.SettingsStore
	Cart     cart.Service
	Order    order.Service
	Sync     cachesync.Service
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(p.HTTP),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewLoginRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	cookie := controllers.CookiePolicy{Name: cfg.JWT.CookieName, Secure: cfg.App.IsProd()}
	requireAdmin := middleware.Auth(p.Auth, cfg.JWT.CookieName, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis))
	})

	if p.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(loginPolicy, p.Limiter, logg)).Post("/login", controllers.AuthLogin(p.Auth, cookie, logg))
			r.With(middleware.LoginRateLimit(loginPolicy, p.Limiter, logg)).Post("/setup", controllers.AuthSetup(p.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(cookie))
			r.With(requireAdmin).Get("/me", controllers.AuthMe(logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(p.Catalog, logg))
			r.Get("/{productId}", controllers.ProductGet(p.Catalog, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", controllers.AdminProductCreate(p.Catalog, logg))
				r.Put("/{productId}", controllers.AdminProductUpdate(p.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminProductDelete(p.Catalog, logg))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(p.Category, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", controllers.AdminCategoryCreate(p.Category, logg))
				r.Put("/{categoryId}", controllers.AdminCategoryUpdate(p.Category, logg))
				r.Delete("/{categoryId}", controllers.AdminCategoryDelete(p.Category, logg))
			})
		})

		r.Get("/settings", controllers.SettingsGet(p.Settings, logg))
		r.With(requireAdmin).Put("/settings", controllers.AdminSettingsUpdate(p.Settings, logg))

		r.Get("/order/links", cartcontrollers.OrderLinks(p.Order, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", cartcontrollers.CartFetch(p.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(p.Cart, logg))
			r.Post("/lines", cartcontrollers.CartAddLine(p.Cart, logg))
			r.Patch("/lines/{lineKey}", cartcontrollers.CartUpdateLine(p.Cart, logg))
			r.Delete("/lines/{lineKey}", cartcontrollers.CartRemoveLine(p.Cart, logg))
			r.Post("/order", cartcontrollers.CartComposeOrder(p.Order, logg))
		})

		r.Route("/sync", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", controllers.AdminSync(p.Sync, logg))
			r.Get("/", controllers.AdminSyncStats(p.Sync, logg))
		})
	})

	return r
}
