package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bilim-chat/config"
	"bilim-chat/internal/handler"
	"bilim-chat/internal/middleware"
	"bilim-chat/internal/websocket"
	"bilim-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Chat      *handler.ChatHandler
	Message   *handler.MessageHandler
	WebSocket *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	switch cfg.AppMode {
	case config.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case config.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	binding.EnableDecoderDisallowUnknownFields = true

	engine := gin.New()
	engine.RedirectTrailingSlash = false

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, tokens middleware.TokenVerifier) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSOrigin))
	s.engine.Use(middleware.BodyLimitMiddleware(s.config.BodyLimitBytes))

	s.engine.GET("/health", handlers.Health.Health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := s.engine.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	protected := s.engine.Group("/", middleware.AuthMiddleware(tokens))
	{
		protected.GET("/chats", handlers.Chat.List)
		protected.POST("/chats", handlers.Chat.Create)
		protected.DELETE("/chats/:id", handlers.Chat.Delete)

		protected.GET("/messages/:chatId", handlers.Message.List)
		protected.POST("/messages/:chatId", handlers.Message.Create)
	}

	if handlers.WebSocket != nil {
		s.engine.GET("/ws", handlers.WebSocket.Connect)
	}

	s.engine.NoRoute(handler.NotFound)
}

// Start serves until SIGINT or SIGTERM, then drains for up to five seconds.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if s.logger != nil {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
		return err
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down within 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
