package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/config"
	"github.com/Reciclaria/reciclar.ia/internal/delivery/http/handler"
	"github.com/Reciclaria/reciclar.ia/internal/delivery/http/middleware"
)

// Server - servidor HTTP baseado em Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	searchHandler   *handler.SearchHandler
	quotaHandler    *handler.QuotaHandler
	scheduleHandler *handler.ScheduleHandler
}

// NewServer - criação de um novo servidor HTTP
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	searchHandler *handler.SearchHandler,
	quotaHandler *handler.QuotaHandler,
	scheduleHandler *handler.ScheduleHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "reciclar.ia core",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		searchHandler:   searchHandler,
		quotaHandler:    quotaHandler,
		scheduleHandler: scheduleHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - configuração dos middlewares
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - configuração das rotas
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Busca por proximidade e consulta de pontos
	api.Get("/search/nearest", s.searchHandler.FindNearest)
	api.Post("/search/nearest", s.searchHandler.FindNearestPost)
	api.Get("/points/:id", s.searchHandler.GetPoint)

	// Cota
	api.Post("/quota/admit", s.quotaHandler.Admit)

	// Agenda de coleta
	api.Get("/schedule", s.scheduleHandler.GetSchedule)
}

// Start - inicia o servidor HTTP
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - encerramento gracioso do servidor HTTP
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App expõe o app Fiber para testes de handler
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - tratador de erros não capturados pelos handlers
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
