package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/config"
	"github.com/molticket/webgate/internal/router"
	"github.com/molticket/webgate/internal/session"
	"github.com/molticket/webgate/internal/upstream"
	"github.com/molticket/webgate/internal/view"
)

func main() {
	cfg := config.Load()

	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	store := session.NewStore(rdb, cfg.SessionTTL, cfg.FormTokenTTL)
	api := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	router.Register(e, cfg, store, rdb, router.NewHandlers(cfg, store, api))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, upstream=%s)", addr, cfg.Env, cfg.UpstreamBaseURL)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Wait for a shutdown signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
