package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/capstudio-backend/api/controllers"
	ordercontrollers "github.com/angelmondragon/capstudio-backend/api/controllers/orders"
	productcontrollers "github.com/angelmondragon/capstudio-backend/api/controllers/products"
	reviewcontrollers "github.com/angelmondragon/capstudio-backend/api/controllers/reviews"
	tenantcontrollers "github.com/angelmondragon/capstudio-backend/api/controllers/tenants"
	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/internal/orders"
	"github.com/angelmondragon/capstudio-backend/internal/products"
	"github.com/angelmondragon/capstudio-backend/internal/reviews"
	"github.com/angelmondragon/capstudio-backend/internal/tenants"
	"github.com/angelmondragon/capstudio-backend/pkg/config"
	"github.com/angelmondragon/capstudio-backend/pkg/db"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	ordersSvc orders.Service,
	productsSvc products.Service,
	reviewsSvc reviews.Service,
	tenantsSvc tenants.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
	)

	var (
		idempotencyStore redis.IdempotencyStore
		limiter          redis.RateLimiter
	)
	readiness := map[string]redis.Pinger{}
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisClient != nil {
		idempotencyStore = redisClient
		limiter = redisClient
		readiness["redis"] = redisClient
	}

	loc, err := cfg.App.Location()
	if err != nil {
		loc = time.UTC
	}
	defaultTenant, err := uuid.Parse(cfg.Tenant.DefaultID)
	if err != nil {
		defaultTenant = uuid.Nil
	}

	orderPolicy := middleware.NewRateLimitPolicy("orders", cfg.RateLimit.OrderWindow, cfg.RateLimit.OrderIPLimit)
	reviewPolicy := middleware.NewRateLimitPolicy("reviews", cfg.RateLimit.ReviewWindow, cfg.RateLimit.ReviewIPLimit)
	lookupPolicy := middleware.NewRateLimitPolicy("lookup", cfg.RateLimit.LookupWindow, cfg.RateLimit.LookupIPLimit)
	limitOrders := middleware.RateLimit(orderPolicy, limiter, logg)
	limitReviews := middleware.RateLimit(reviewPolicy, limiter, logg)
	limitLookups := middleware.RateLimit(lookupPolicy, limiter, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Tenant(defaultTenant, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore, cfg.Redis.IdempotencyTTL, logg))

			r.Route("/orders", func(r chi.Router) {
				r.With(limitOrders).Post("/", ordercontrollers.Create(ordersSvc, logg))
				r.With(limitLookups).Get("/", ordercontrollers.List(ordersSvc, logg))
				r.With(limitLookups).Get("/{orderNumber}", ordercontrollers.Detail(ordersSvc, logg))
				r.Patch("/{orderNumber}/design", ordercontrollers.UpdateDesign(ordersSvc, logg))
				r.With(limitLookups).Get("/{orderNumber}/shipping", ordercontrollers.Shipping(ordersSvc, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productcontrollers.List(productsSvc, logg))
				r.Get("/slug/{slug}", productcontrollers.GetBySlug(productsSvc, logg))
				r.Get("/{productId}", productcontrollers.Get(productsSvc, logg))
				r.Get("/{productId}/areas", productcontrollers.Areas(productsSvc, logg))
				r.Get("/{productId}/quote", productcontrollers.Quote(productsSvc, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", reviewcontrollers.List(reviewsSvc, logg))
				r.With(limitReviews).Post("/", reviewcontrollers.Create(reviewsSvc, logg))
				r.Get("/{reviewId}", reviewcontrollers.Get(reviewsSvc, logg))
			})

			r.Get("/tenant", tenantcontrollers.Current(tenantsSvc, logg))
			r.Get("/tenants", tenantcontrollers.List(tenantsSvc, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
			r.Use(middleware.Idempotency(idempotencyStore, cfg.Redis.IdempotencyTTL, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordercontrollers.AdminList(ordersSvc, loc, logg))
				r.Get("/stats", ordercontrollers.AdminStats(ordersSvc, logg))
				r.Patch("/{orderNumber}", ordercontrollers.AdminUpdate(ordersSvc, logg))
				r.Post("/{orderNumber}/shipping", ordercontrollers.RegisterShipment(ordersSvc, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", productcontrollers.Create(productsSvc, logg))
				r.Patch("/{productId}", productcontrollers.Update(productsSvc, logg))
				r.Delete("/{productId}", productcontrollers.Delete(productsSvc, logg))
				r.Put("/{productId}/areas", productcontrollers.UpsertArea(productsSvc, logg))
				r.Delete("/{productId}/areas/{areaId}", productcontrollers.DeleteArea(productsSvc, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", reviewcontrollers.AdminList(reviewsSvc, logg))
				r.Post("/", reviewcontrollers.AdminCreate(reviewsSvc, logg))
				r.Patch("/{reviewId}", reviewcontrollers.AdminUpdate(reviewsSvc, logg))
				r.Delete("/{reviewId}", reviewcontrollers.AdminDelete(reviewsSvc, logg))
			})

			r.Patch("/tenant", tenantcontrollers.UpdateSettings(tenantsSvc, logg))
		})
	})

	return r
}
