package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"solarsmart/internal/api/handlers"
	"solarsmart/internal/api/middleware"
	"solarsmart/internal/auth"
	"solarsmart/internal/calculator"
	"solarsmart/internal/data"
	"solarsmart/internal/leads"
	"solarsmart/internal/metrics"
	"solarsmart/internal/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the HTTP API is built from.
type Deps struct {
	Reference  *data.Provider
	Calculator *calculator.Calculator
	Settings   *settings.Service
	Leads      *leads.Service
	Auth       *auth.Service
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

// Options control transport concerns that do not touch the domain.
type Options struct {
	Addr            string
	Release         bool
	CORSOrigins     []string
	CookieSecure    bool
	StaticDir       string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

type Server struct {
	engine *gin.Engine
	opts   Options
	log    *zap.Logger
}

func NewServer(deps Deps, opts Options) *Server {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(middleware.Logger(log, deps.Metrics))
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.CORS(opts.CORSOrigins))

	s := &Server{engine: engine, opts: opts, log: log}
	s.registerRoutes(deps)
	s.serveStatic()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes(deps Deps) {
	calculate := handlers.NewCalculateHandler(deps.Reference, deps.Calculator, deps.Settings, deps.Metrics)
	locations := handlers.NewLocationHandler(deps.Reference)
	leadHandler := handlers.NewLeadHandler(deps.Leads)
	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	authHandler := handlers.NewAuthHandler(deps.Auth, s.opts.CookieSecure)
	reportHandler := handlers.NewReportHandler(deps.Reference, deps.Calculator, deps.Settings)

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.opts.MetricsEnabled && deps.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := s.engine.Group("/api/v1")
	{
		api.GET("/locations", locations.ListLocations)
		api.GET("/locations/:slug", locations.GetLocation)
		api.GET("/orientations", locations.ListOrientations)

		api.POST("/calculate", calculate.Calculate)
		api.POST("/calculate/compare", calculate.Compare)
		api.GET("/rank", calculate.Rank)

		api.POST("/leads", leadHandler.CreateLead)
		api.POST("/report", reportHandler.Proposal)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)
	}

	admin := api.Group("/admin", middleware.RequireAdmin(deps.Auth))
	{
		admin.GET("/leads", leadHandler.ListLeads)
		admin.GET("/leads/export", leadHandler.ExportCSV)
		admin.GET("/leads/:id", leadHandler.GetLead)
		admin.PATCH("/leads/:id/status", leadHandler.UpdateStatus)

		admin.GET("/settings", settingsHandler.GetSettings)
		admin.PUT("/settings", settingsHandler.UpdateSettings)
	}
}

// serveStatic serves the built SPA, falling back to index.html for
// client-side routes. API paths keep their JSON 404.
func (s *Server) serveStatic() {
	dir := s.opts.StaticDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.log.Info("static directory not found, skipping static file serving", zap.String("dir", dir))
		return
	}

	s.engine.Static("/assets", filepath.Join(dir, "assets"))
	s.engine.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	s.log.Info("serving static files", zap.String("dir", dir))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	return Serve(ctx, s.log, s.opts.Addr, s.engine, s.opts.ShutdownTimeout)
}

// Serve runs handler on addr until ctx is cancelled.
func Serve(ctx context.Context, log *zap.Logger, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down", zap.String("addr", addr))
		return srv.Shutdown(shutdownCtx)
	}
}
