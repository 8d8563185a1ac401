// Package server exposes chess games over HTTP and websockets. Every peer
// of a game receives the full game state after each change.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessboy-go/internal/config"
	"github.com/lgbarn/chessboy-go/internal/errors"
)

// New builds the fiber application serving games from manager.
func New(cfg *config.Config, manager *GameManager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chessboy",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	if cfg.LogFile != nil && cfg.Verbosity > 0 {
		app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	h := NewHandlers(manager)

	games := app.Group("/api/games")
	games.Get("/", h.ListGames)
	games.Post("/", h.CreateGame)
	games.Get("/:id", h.GetGame)
	games.Delete("/:id", h.DeleteGame)
	games.Post("/:id/moves", h.PlayMove)
	games.Post("/:id/undo", h.Undo)
	games.Post("/:id/position", h.SetPosition)
	games.Post("/:id/engine", h.EngineMove)

	app.Get("/ws/games/:id", h.requireUpgrade, websocket.New(h.ServeWS, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	return app
}

// errorHandler reports errors that escape a handler as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
