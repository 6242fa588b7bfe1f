package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hubs-storefront/api/controllers"
	"github.com/angelmondragon/hubs-storefront/api/middleware"
	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/internal/checkout"
	"github.com/angelmondragon/hubs-storefront/internal/session"
	authsession "github.com/angelmondragon/hubs-storefront/pkg/auth/session"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/redis"
)

// RedisStore is the slice of the Redis client used by the HTTP layer.
type RedisStore interface {
	redis.IdempotencyStore
	redis.Pinger
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type sessionManager interface {
	authsession.Resolver
	Revoke(ctx context.Context, sessionID string, dataKeys ...string) error
}

type bundleFactory interface {
	ForSession(sessionID string) (*session.Bundle, error)
}

// Dependencies are the services mounted by NewRouter. DB and Metrics are
// optional.
type Dependencies struct {
	Redis    RedisStore
	DB       redis.Pinger
	Sessions sessionManager
	Bundles  bundleFactory
	Pages    controllers.PageLoader
	Checkout checkout.Service
	Metrics  http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	negotiator := middleware.NewLocaleNegotiator(cfg.App.DefaultLocale, cfg.App.SupportedLocales)

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.App.AllowedOrigins))
	r.Use(middleware.Locale(negotiator, logg))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	checks := []controllers.ReadinessCheck{{Name: "redis", Pinger: deps.Redis}}
	if deps.DB != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "database", Pinger: deps.DB})
	}
	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, checks...))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	rl := cfg.AuthRateLimit
	loginPolicy := middleware.NewAuthRateLimitPolicy("login", rl.LoginWindow, rl.LoginIPLimit, rl.LoginIdentifierLimit)
	registerPolicy := middleware.NewAuthRateLimitPolicy("register", rl.RegisterWindow, rl.RegisterIPLimit, rl.RegisterIdentifierLimit)
	otpPolicy := middleware.NewAuthRateLimitPolicy("otp", rl.OTPWindow, rl.OTPIPLimit, rl.OTPIdentifierLimit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.Sessions, deps.Bundles, cfg.Session, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/pages", func(r chi.Router) {
			r.Get("/layout", controllers.PageLayout(deps.Pages))
			r.Get("/fan-shop", controllers.PageFanShop(deps.Pages))
			r.Get("/brands", controllers.PageBrands(deps.Pages))
			r.Get("/products", controllers.PageProducts(deps.Pages, logg))
			r.Get("/products/{categoryId}", controllers.PageProducts(deps.Pages, logg))
			r.Get("/products/{categoryId}/{subCategoryId}/{itemId}", controllers.PageProduct(deps.Pages, logg))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionGet())
			r.Delete("/", controllers.SessionDelete(deps.Sessions, cfg.Session, logg))
		})

		r.Route("/local-cart", func(r chi.Router) {
			r.Get("/", controllers.LocalCartGet(logg))
			r.Delete("/", controllers.LocalCartClear(logg))
			r.Post("/items", controllers.LocalCartAddItem(logg))
			r.Patch("/items/{index}", controllers.LocalCartUpdateItem(logg))
			r.Delete("/items/{index}", controllers.LocalCartRemoveItem(logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(logg))
			r.Post("/", controllers.CartCreate(logg))
			r.Post("/line-items", controllers.CartAddLineItem(logg))
			r.Patch("/line-items/{lineItemId}", controllers.CartUpdateLineItem(logg))
			r.Delete("/line-items/{lineItemId}", controllers.CartRemoveLineItem(logg))
			r.Put("/email", controllers.CartUpdateEmail(logg))
			r.Put("/shipping-address", controllers.CartSetShippingAddress(logg))
			r.Post("/shipping-methods", controllers.CartAddShippingMethod(logg))
			r.Post("/payment-sessions", controllers.CartCreatePaymentSession(logg))
			r.Post("/complete", controllers.CartComplete(logg))
		})

		r.Post("/checkout/merge-local-cart", controllers.CheckoutMergeLocalCart(deps.Checkout, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(logg))
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(logg))
			r.With(middleware.AuthRateLimit(otpPolicy, deps.Redis, logg)).Post("/verify-otp", controllers.AuthVerifyOTP(logg))
			r.Post("/logout", controllers.AuthLogout(logg))
			r.Get("/me", controllers.AuthMe(logg))
		})
	})

	return r
}
