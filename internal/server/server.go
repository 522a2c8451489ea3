package server

import (
	"jotter/internal/config"
	"jotter/internal/database"
	"jotter/internal/optimizer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
)

type FiberServer struct {
	*fiber.App

	cfg       config.Config
	db        database.Service
	optimizer *optimizer.Optimizer
}

func New(cfg config.Config, db database.Service) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "jotter",
			AppName:      "jotter",
		}),
		cfg:       cfg,
		db:        db,
		optimizer: optimizer.New(cfg),
	}
	server.App.Use(favicon.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization,X-Requested-With",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	server.App.Use(logger.New())
	server.App.Use(pprof.New(pprof.Config{
		Next: nil,
	}))
	return server
}
