package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/AnshRaj112/serenify-journal/internal/auth"
	"github.com/AnshRaj112/serenify-journal/internal/config"
	"github.com/AnshRaj112/serenify-journal/internal/database"
	"github.com/AnshRaj112/serenify-journal/internal/handlers"
	"github.com/AnshRaj112/serenify-journal/internal/logger"
	"github.com/AnshRaj112/serenify-journal/internal/middleware"
	"github.com/AnshRaj112/serenify-journal/internal/routes"
	"github.com/AnshRaj112/serenify-journal/internal/services"
	"github.com/AnshRaj112/serenify-journal/pkg/clientip"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("serenify-journal", "info", false)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New("serenify-journal", cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}
	log.Info().Str("env", cfg.Environment).Str("port", cfg.Port).Str("auth", cfg.AuthStrategy).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	mongoClient, db, err := database.ConnectMongo(connectCtx, cfg.MongoURI, cfg.MongoDatabase, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("uri", database.MaskURI(cfg.MongoURI)).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := database.DisconnectMongo(mongoClient); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	connectCtx, cancel = context.WithTimeout(ctx, 10*time.Second)
	rdb, err := database.ConnectRedis(connectCtx, cfg.RedisURI, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer func() { _ = rdb.Close() }()

	journals := services.NewJournalStore(db)
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := journals.EnsureIndexes(indexCtx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure journal indexes")
	} else {
		log.Info().Msg("journal indexes ensured")
	}
	cancel()

	authn := newAuthenticator(cfg, services.NewSessionStore(rdb, cfg.SessionTTL))

	clock := clockwork.NewRealClock()
	h := handlers.New(handlers.Deps{
		Journals: journals,
		Patterns: services.NewPatternDetector(journals, clock, log),
		Tips:     services.NewTipPicker(nil),
		Trends:   services.NewTrendCache(rdb, cfg.TrendCacheTTL, log),
		Clock:    clock,
		Logger:   log,
	})

	ipOf := clientip.Resolver(cfg.TrustProxy)
	opts := routes.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
		ClientIP:       ipOf,
		Handler:        h,
		Authenticator:  authn,
		Redis:          rdb,
		Logger:         log,
	}
	if cfg.IsProduction() {
		opts.GlobalLimiter = middleware.NewIPLimiter(rate.Limit(middleware.GlobalRateLimitRPS), middleware.GlobalRateLimitBurst, ipOf)
		opts.ChatbotLimiter = middleware.NewIPLimiter(rate.Every(middleware.ChatbotRateLimitEvery), middleware.ChatbotRateLimitBurst, ipOf)
		go opts.GlobalLimiter.RunCleanup(ctx)
		go opts.ChatbotLimiter.RunCleanup(ctx)
		log.Info().Msg("production security enabled (security headers, per-IP and chatbot rate limiting)")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("serenify journal running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, cleaning up")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("stopped")
}

func newAuthenticator(cfg *config.Config, sessions *services.SessionStore) auth.Authenticator {
	if cfg.AuthStrategy == config.AuthJWT {
		return auth.NewJWTAuthenticator(auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL))
	}
	return auth.NewSessionAuthenticator(sessions)
}
