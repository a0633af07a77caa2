package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/closing"
	"github.com/xela07ax/gcfin-panel/internal/infra"
	"github.com/xela07ax/gcfin-panel/internal/infra/auth"
	"github.com/xela07ax/gcfin-panel/internal/panel/handler"
	"github.com/xela07ax/gcfin-panel/internal/panel/server"
	"github.com/xela07ax/gcfin-panel/internal/panel/service"
	"github.com/xela07ax/gcfin-panel/internal/sheets"
)

func main() {
	// 1. Configuration and logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Identity provider key (tokens are issued elsewhere, we only verify)
	pubKey, err := auth.ParseRSAPublicKey(cfg.Auth.PublicKey)
	if err != nil {
		logger.Fatal("auth public key unusable", zap.Error(err))
	}
	validator := auth.NewBaseValidator(pubKey)

	// 3. Metrics
	registry := prometheus.NewRegistry()
	metrics := infra.NewMetrics(registry)

	// 4. External collaborators: spreadsheet snapshot + closing-window bot
	src := sheets.NewXLSXSource(cfg.Sheets.SnapshotPath)

	botClient := closing.NewClient(closing.Config{
		WebAppURL:  cfg.Closing.WebAppURL,
		APIKey:     cfg.Closing.APIKey,
		Timeout:    cfg.Closing.Timeout,
		RatePerSec: cfg.Closing.RatePerSec,
		RateBurst:  cfg.Closing.RateBurst,
		OnStateChange: func(state gobreaker.State) {
			open := 0.0
			if state == gobreaker.StateOpen {
				open = 1.0
			}
			metrics.CircuitBreakerState.WithLabelValues("closing").Set(open)
		},
	}, logger)

	// 5. Services and handlers (Dependency Injection)
	rules := cfg.Rules.Ruleset()
	opsService := service.NewOpsService(src, botClient, rules, metrics, logger)
	metaService := service.NewMetaService(src, logger)
	botService := service.NewBotService(botClient, logger)

	opsHandler := handler.NewOpsHandler(opsService, cfg.Rules.DefaultComp, logger)
	metaHandler := handler.NewMetaHandler(metaService, logger)
	botHandler := handler.NewBotHandler(botService, logger)

	panelSrv := server.NewPanelServer(logger, metrics, registry, validator, opsHandler, metaHandler, botHandler)

	// 6. HTTP server + graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      panelSrv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Panel API started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("Panel API stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("Panel API exited properly")
}
