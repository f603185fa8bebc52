package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"brewbar-be/internal/config"
	"brewbar-be/internal/db"
	"brewbar-be/internal/item"
	"brewbar-be/internal/logger"
	"brewbar-be/internal/metrics"
	"brewbar-be/internal/notify"
	"brewbar-be/internal/order"
	"brewbar-be/internal/purchase"
	"brewbar-be/internal/transport"
	"brewbar-be/internal/user"
	"brewbar-be/internal/ws"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	itemRepo := item.NewRepository(database)
	itemSvc := item.NewService(itemRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	stats := &metrics.Store{}

	purchaseRepo := purchase.NewRepository(database)
	purchaseSvc := purchase.NewService(purchaseRepo, stats)

	registry := ws.NewRegistry()

	listener := pq.NewListener(cfg.DSN(), 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.L().Warn("listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	notifier := notify.New(listener, registry, orderSvc, stats)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := notifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.L().Error("notifier stopped", zap.Error(err))
			stop()
		}
	}()

	router := transport.NewRouter(transport.Handlers{
		Auth:     transport.NewAuthHandler(userSvc),
		Items:    transport.NewItemHandler(itemSvc),
		Orders:   transport.NewOrderHandler(orderSvc),
		Purchase: transport.NewPurchaseHandler(purchaseSvc),
		Live:     ws.NewHandler(registry, orderSvc),
		Stats:    stats,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 server running at http://localhost:%s/", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("shutdown incomplete", zap.Error(err))
	}
}
