package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rehearsal-room-api/core/cache"
	"rehearsal-room-api/core/config"
	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/core/middleware"
	"rehearsal-room-api/core/worker"
	"rehearsal-room-api/modules/reservation"
	"rehearsal-room-api/modules/reservation/repository"
	"rehearsal-room-api/modules/schedule"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires the application together and serves until interrupted.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.LogLevel)

	store, err := repository.NewLedgerStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger store: %w", err)
	}

	rdb := cache.NewClient(cfg.Redis)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.NewMiddleware(cfg, rdb)
	e.Use(echomw.Recover())
	e.Use(mw.RequestID())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	schedule.Init(e, store)
	reservation.Init(e, cfg, store, mw)

	if rdb != nil {
		go func() {
			if err := worker.Run(cfg, store); err != nil {
				logger.Error("Server:Run:WorkerStopped", "error", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr, "ledger_backend", backendName(cfg))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:StartFailed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

func backendName(cfg *config.Config) string {
	if cfg.Ledger.S3.Configured() {
		return "s3"
	}
	return "file"
}
