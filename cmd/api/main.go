package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "travel_booking/internal/adapters/http_server"
	"travel_booking/internal/adapters/localstore"
	"travel_booking/internal/adapters/observability"
	redisad "travel_booking/internal/adapters/redis"
	"travel_booking/internal/app"
	"travel_booking/internal/catalog"
	"travel_booking/internal/domain"
	"travel_booking/internal/query"
	"travel_booking/internal/shared"
	"travel_booking/internal/storage/memory"
	mysqlrepo "travel_booking/internal/storage/mysql"
)

const storagePrefix = "travel:storage:"

func main() {
	_ = godotenv.Load()
	cfg, err := shared.Load()
	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(os.Stdout, cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// storage
	bookings, events := openStorage(cfg)
	cache, storage := openRedis(ctx, cfg)

	// deps
	cat := catalog.New()
	auth := app.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	requireAuth, err := server.RequireAuth(auth)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt validator setup failed")
	}
	sessions := app.NewSessions(cfg.SessionIdle)

	// http
	srv := server.New(server.WithLogger(log.Logger), server.WithTimeout(cfg.RequestTimeout))
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:     cat,
		Search:      app.NewSearchService(query.New(cat), cache, cfg.CacheTTL, cfg.PageSize),
		Bookings:    app.NewBookingService(cat, bookings, events, cfg.PaymentDelay),
		Events:      app.NewEventService(events),
		Auth:        auth,
		Sessions:    sessions,
		Storage:     storage,
		RequireAuth: requireAuth,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return sessions.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// openStorage uses MySQL when a DSN is configured and process memory otherwise.
func openStorage(cfg shared.Config) (domain.BookingRepository, domain.EventRepository) {
	if cfg.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN is empty; bookings and events are kept in memory")
		repo := memory.New()
		return repo, repo
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	repo := mysqlrepo.New(db)
	return repo, repo
}

// openRedis returns the search cache and the session local storage. Without a reachable redis
// there is no cache and local storage stays in process memory.
func openRedis(ctx context.Context, cfg shared.Config) (domain.Cache, domain.KV) {
	if cfg.RedisAddr == "" {
		return nil, localstore.NewMemory()
	}
	c := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB}))
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; search cache disabled, local storage in memory")
		return nil, localstore.NewMemory()
	}
	return c, redisad.NewKV(c.Client(), storagePrefix)
}
