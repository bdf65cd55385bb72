package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atas-gateway/internal/audit"
	"atas-gateway/internal/config"
	"atas-gateway/internal/gateway"
	"atas-gateway/internal/httpapi"
	"atas-gateway/internal/session"
	"atas-gateway/pkg/logger"
	"atas-gateway/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, relying on process environment")
	}

	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	lg := logger.New(cfg.App.Env)
	slog.SetDefault(lg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		lg.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		lg.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	appOrigin, err := url.Parse(cfg.Backend.AppOrigin)
	if err != nil {
		lg.Error("invalid app origin", "err", err)
		os.Exit(1)
	}

	api := gateway.NewClient(cfg.Backend.APIBaseURL, cfg.Backend.APITimeout)
	storage := session.NewRedisStorage(rdb)
	sessions := session.NewManager(api, storage, lg)
	auditor := audit.NewService(audit.NewPostgresRepo(db))

	throttle := func(c *gin.Context, key string) (bool, error) {
		return utils.AllowLoginAttempt(
			c.Request.Context(), rdb,
			key+":"+c.ClientIP(),
			cfg.Login.AttemptLimit, cfg.Login.AttemptWindow,
		)
	}

	httpapi.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(lg))

	registerRoutes(r, routeDeps{
		log:       lg,
		appOrigin: appOrigin,
		sessions:  sessions,
		api:       api,
		auditor:   auditor,
		throttle:  throttle,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("gateway listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	lg.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown failed", "err", err)
	}
}
