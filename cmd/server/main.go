package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/api"
	"stockroom/internal/api/services"
	"stockroom/internal/api/ws"
	"stockroom/internal/config"
	"stockroom/internal/redis"
	"stockroom/internal/repository"
	"stockroom/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, relying on environment")
	}

	cfg := config.Load()

	store := repository.Open(cfg)
	defer store.Close()

	var rdb *goredis.Client
	client := redis.New(cfg)
	if err := redis.Ping(ctx, client); err != nil {
		log.Printf("redis unavailable, stats caching disabled: %v", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api.SetupRoutes(e, store, rdb, cfg)

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	recorder := services.NewActivityService(store, ws.GetHub())
	checkoutService := services.NewCheckoutService(store, recorder)
	overdueWorker := worker.NewOverdueWorker(store, checkoutService, cfg.OverdueSweep, rdb)
	go overdueWorker.StartWorker(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
}
