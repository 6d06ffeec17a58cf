package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/scancart-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/scancart-backend/api/controllers/cart"
	"github.com/angelmondragon/scancart-backend/api/middleware"
	"github.com/angelmondragon/scancart-backend/internal/auth"
	"github.com/angelmondragon/scancart-backend/internal/cart"
	product "github.com/angelmondragon/scancart-backend/internal/products"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/metrics"
	"github.com/angelmondragon/scancart-backend/pkg/redis"
)

type apiKeyVerifier interface {
	Verify(ctx context.Context, key string) error
}

// Params bundles everything the router wires together. Redis, HTTPMetrics
// and MetricsHandler are optional.
type Params struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           *redis.Client
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProductService  product.Service
	CartService     cart.Service
	APIKeys         apiKeyVerifier
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	// A nil *redis.Client must not leak into the interfaces below.
	var (
		limiter redis.RateLimiter
		idem    redis.IdempotencyStore
	)
	readiness := map[string]controllers.Pinger{"db": p.DB}
	if p.Redis != nil {
		limiter = p.Redis
		idem = p.Redis
		readiness["redis"] = p.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterIDLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, readiness))
	})
	if p.MetricsHandler != nil {
		r.Handle("/metrics", p.MetricsHandler)
	}

	apiKey := middleware.APIKey(p.APIKeys, logg)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, logg))

		r.Get("/products/{Product_id}", controllers.ProductGet(p.ProductService, logg))
		r.With(apiKey).Post("/products/{apikey}/add", controllers.ProductCreate(p.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, cfg.FeatureFlags.RequireToken, logg))

			owner := middleware.RequireOwner("Userid", logg)
			r.With(apiKey, owner).Get("/cart/{apikey}/{Userid}", cartcontrollers.CartFetch(p.CartService, logg))
			r.With(apiKey, owner).Get("/cart", cartcontrollers.CartFetch(p.CartService, logg))
			r.With(middleware.Idempotency(idem, logg)).Post("/cart-item", cartcontrollers.CartItemAdd(p.CartService, logg))
			r.Post("/cart/update", cartcontrollers.CartUpdate(p.CartService, logg))
			r.With(owner).Delete("/cart-item/{Userid}/{Product_id}", cartcontrollers.CartItemDelete(p.CartService, logg))
		})
	})

	return r
}
