package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bidwriter/internal/auth"
	"bidwriter/internal/config"
	"bidwriter/internal/export"
	"bidwriter/internal/generation"
	"bidwriter/internal/logging"
	"bidwriter/internal/orchestrator"
)

// Server is the HTTP surface of the proposal backend.
type Server struct {
	cfg *config.Config

	orchestrator *orchestrator.Orchestrator
	editor       *generation.Editor
	authService  *auth.Service
	tokens       *auth.TokenManager
	store        *export.Store

	engine     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
	startTime  time.Time
}

// New assembles the server around its collaborators and registers routes.
func New(cfg *config.Config, orch *orchestrator.Orchestrator, editor *generation.Editor, authService *auth.Service, tokens *auth.TokenManager, store *export.Store, logger logging.Logger) *Server {
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		editor:       editor,
		authService:  authService,
		tokens:       tokens,
		store:        store,
		engine:       engine,
		logger:       logging.OrNop(logger),
		startTime:    time.Now(),
	}

	engine.Use(s.requestLogger())
	engine.Use(cors.New(s.corsConfig()))
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     logging.StdLogger(s.logger),
	}
	return s
}

func (s *Server) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	return corsConfig
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) setupRoutes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/login", s.handleLogin)
	api.POST("/refresh", s.handleRefresh)

	protected := api.Group("")
	protected.Use(auth.Middleware(s.tokens))
	{
		protected.POST("/upload", s.handleUpload)
		protected.GET("/parsing-status/:task_id", s.handleParsingStatus)
		protected.POST("/generate-proposal", s.handleGenerateProposal)
		protected.GET("/generation-status/:task_id", s.handleGenerationStatus)
		protected.GET("/generation-result/:task_id", s.handleGenerationResult)
		protected.POST("/save-proposal", s.handleSaveProposal)
		protected.POST("/download-proposal", s.handleDownloadProposal)
		protected.POST("/ai-continue", s.handleAIContinue)
		protected.POST("/ai-expand", s.handleAIExpand)
		protected.POST("/ai-polish", s.handleAIPolish)
		protected.GET("/image-library", s.handleImageLibrary)
		protected.POST("/search-content", s.handleSearchContent)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
