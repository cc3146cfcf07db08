package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"booklib/internal/config"
	apphttp "booklib/internal/http"
	"booklib/internal/httpx"
	"booklib/internal/logger"
	"booklib/internal/platform/openlibrary"
	"booklib/internal/store"
	"booklib/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.Get()

	dbPool := mustOpenDB(cfg.DSN)
	defer dbPool.Close()

	userRepository := store.NewUserPG(dbPool)
	libraryRepository := store.NewLibraryPG(dbPool)
	libraryService := usecase.NewLibraryService(libraryRepository)
	catalogClient := openlibrary.NewClient(cfg.SearchUserAgent, cfg.SearchRPS, cfg.SearchMaxRetries)

	userHandler := apphttp.NewUserHandler(userRepository, cfg.JWTSecret)
	libraryHandler := apphttp.NewLibraryHandler(libraryService)
	searchHandler := apphttp.NewSearchHandler(catalogClient)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("/users/register", userHandler.RegisterUser)
	router.HandleFunc("/users/login", userHandler.LoginUser)

	requireAuth := httpx.AuthMiddleware(cfg.JWTSecret)
	router.Handle("/me", requireAuth(http.HandlerFunc(userHandler.GetCurrentUser)))
	router.Handle("/search", requireAuth(http.HandlerFunc(searchHandler.Search)))
	router.Handle("/library", requireAuth(libraryHandler))
	router.Handle("/library/", requireAuth(libraryHandler))

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = httpx.CORSMiddleware(cfg.CORSOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Log.Infof("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalf("server error: %v", err)
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	logger.Log.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
