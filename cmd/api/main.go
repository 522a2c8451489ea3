package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"jotter/internal/config"
	"jotter/internal/database"
	"jotter/internal/server"
)

func gracefulShutdown(fiberServer *server.FiberServer, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(ctx); err != nil {
		log.Printf("server forced to shutdown with error: %v", err)
	}

	log.Println("server exiting")
	done <- true
}

func main() {
	cfg := config.Load()

	db := database.New(cfg)
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	srv := server.New(cfg, db)
	srv.RegisterFiberRoutes()

	done := make(chan bool, 1)

	go func() {
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("http server error: %v", err)
		}
	}()

	go gracefulShutdown(srv, done)

	<-done
	log.Println("graceful shutdown complete")
}
