package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"energy-calculator/confs"
	"energy-calculator/handlers"
	httpHandler "energy-calculator/handlers/http"
	"energy-calculator/metrics"
	"energy-calculator/repositories"
	"energy-calculator/services"
	"energy-calculator/usecases"
	"energy-calculator/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	app      *gin.Engine
	cfg      confs.Config
	log      *zap.Logger
	sessions *usecases.SessionUseCase
	janitor  *services.SessionJanitor
}

func NewServer(cfg confs.Config, repo repositories.SessionRepository, log *zap.Logger) *Server {
	gin.SetMode(cfg.GinMode)

	sessions := usecases.NewSessionUseCase(repo, cfg.SessionTTL)
	s := &Server{
		app:      gin.New(),
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		janitor:  services.NewSessionJanitor(sessions, cfg.JanitorInterval),
	}
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.app }

func (s *Server) routes() {
	s.app.Use(gin.Recovery(), requestLogger(s.log))

	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.AllowOrigins) > 0 {
		config.AllowOrigins = s.cfg.AllowOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	metrics.Init(prometheus.DefaultRegisterer)
	s.app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize handlers
	estimateHandler := httpHandler.NewEstimateHandler()
	sessionHandler := httpHandler.NewSessionHandler(s.sessions)
	statsHandler := handlers.NewStatsHandler(s.sessions, s.janitor)

	// WebSocket manager and handler
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager, s.sessions)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		api.GET("/methodology", estimateHandler.Methodology)
		api.POST("/validate", estimateHandler.Validate)
		api.POST("/estimate", estimateHandler.Estimate)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/stats", statsHandler.GetSessionStats)
			sessions.POST("/purge", statsHandler.PurgeExpired)
			sessions.GET("/connected", wsHandler.GetConnectedSessions)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.PATCH("/:id", sessionHandler.UpdateSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
			sessions.GET("/:id/validation", sessionHandler.GetValidation)
			sessions.POST("/:id/calculate", sessionHandler.Calculate)
			sessions.POST("/:id/reset", sessionHandler.Reset)
			sessions.GET("/:id/report.pdf", sessionHandler.GetReportPDF)
			sessions.GET("/:id/report.xlsx", sessionHandler.GetReportXLSX)
		}
	}

	s.app.GET("/ws", wsHandler.HandleLiveForm)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.janitor.Start(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr), zap.String("session_store", s.cfg.SessionStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
