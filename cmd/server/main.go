package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/cartada/cartada-backend/internal/config"
	"github.com/cartada/cartada-backend/internal/game"
	"github.com/cartada/cartada-backend/internal/health"
	"github.com/cartada/cartada-backend/internal/httpapi"
	"github.com/cartada/cartada-backend/internal/hub"
	"github.com/cartada/cartada-backend/internal/rooms"
	"github.com/cartada/cartada-backend/internal/ws"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	registry := rooms.NewRegistry()
	engine := game.NewEngine(registry)
	h := hub.NewHub(ctx)
	gateway := ws.NewGateway(h, registry, engine, log, cfg.StartPacing)

	// Build the router *with* the gateway injected
	handler := httpapi.SetupRoutes(gateway)

	go health.NewChecker(cfg.BaseURL, cfg.HealthInterval, log).Run(ctx)

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
