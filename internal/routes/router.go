package routes

import (
	"net/http"

	"github.com/AnshRaj112/serenify-journal/internal/auth"
	"github.com/AnshRaj112/serenify-journal/internal/handlers"
	"github.com/AnshRaj112/serenify-journal/internal/middleware"
	"github.com/AnshRaj112/serenify-journal/pkg/clientip"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RouterOptions configures NewRouter. In production the per-IP limiters are
// used (defaults are built when nil); otherwise the Redis limiter guards the API.
type RouterOptions struct {
	AllowedOrigins []string
	Production     bool
	ClientIP       func(*http.Request) string

	Handler       *handlers.Handler
	Authenticator auth.Authenticator
	Redis         redis.Cmdable
	Logger        zerolog.Logger

	GlobalLimiter  *middleware.IPLimiter
	ChatbotLimiter *middleware.IPLimiter
}

// NewRouter builds the middleware chain: CORS → request id → recoverer →
// request logger → limiters → routes. Probes sit outside the limiters.
func NewRouter(o RouterOptions) http.Handler {
	if o.ClientIP == nil {
		o.ClientIP = clientip.RealClientIP
	}
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(o.Logger, o.ClientIP))

	SetupProbes(r)

	r.Group(func(r chi.Router) {
		if o.Production {
			if o.GlobalLimiter == nil {
				o.GlobalLimiter = middleware.NewIPLimiter(rate.Limit(middleware.GlobalRateLimitRPS), middleware.GlobalRateLimitBurst, o.ClientIP)
			}
			if o.ChatbotLimiter == nil {
				o.ChatbotLimiter = middleware.NewIPLimiter(rate.Every(middleware.ChatbotRateLimitEvery), middleware.ChatbotRateLimitBurst, o.ClientIP)
			}
			r.Use(middleware.ProductionSecurity(o.GlobalLimiter, o.ChatbotLimiter)...)
		} else if o.Redis != nil {
			r.Use(middleware.NewRedisRateLimiter(o.Redis, o.ClientIP, o.Logger).Handler)
		}
		SetupRoutes(r, o.Handler, middleware.Authenticate(o.Authenticator, o.Logger))
	})

	return r
}
