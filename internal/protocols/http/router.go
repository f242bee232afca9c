package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"tastehub/internal/core"
	"tastehub/pkg/config"
)

// Server manages the HTTP REST API server
type Server struct {
	router       *gin.Engine
	config       *config.Config
	authSvc      core.AuthService
	catalogueSvc core.CatalogueService
	analysisSvc  core.AnalysisService
	detailSvc    core.DetailService
	rankingSvc   core.RankingService
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	catalogueSvc core.CatalogueService,
	analysisSvc core.AnalysisService,
	detailSvc core.DetailService,
	rankingSvc core.RankingService,
) *Server {
	// Set Gin to release mode by default
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware())
	router.Use(corsMiddleware())
	if cfg.Server.RatePerSecond > 0 {
		router.Use(rateLimitMiddleware(cfg.Server.RatePerSecond, cfg.Server.RateBurst))
	}

	s := &Server{
		router:       router,
		config:       cfg,
		authSvc:      authSvc,
		catalogueSvc: catalogueSvc,
		analysisSvc:  analysisSvc,
		detailSvc:    detailSvc,
		rankingSvc:   rankingSvc,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		// Catalogue routes
		v1.GET("/contents", s.listContents)                 // Public: list by type
		v1.GET("/contents/trending", s.getTrendingTitles)   // Public: trending titles
		v1.GET("/contents/:id", OptionalAuth(s.authSvc), s.getContentDetail)

		// Admin catalogue management
		admin := v1.Group("", AuthMiddleware(s.authSvc), AdminMiddleware())
		{
			admin.POST("/contents", s.createContent)
		}

		// Ranking chart routes (public)
		rankings := v1.Group("/rankings")
		{
			rankings.GET("/:chart_type", s.getCharts)
			rankings.GET("/:chart_type/:chart_id", s.getChart)
		}

		// Personal analysis routes
		me := v1.Group("/users/me", AuthMiddleware(s.authSvc))
		{
			me.GET("/action-counts", s.getActionCounts)
			me.GET("/analysis", s.getRatingAnalysis)
			me.GET("/favorites/persons", s.getFavoritePersons)
			me.GET("/favorites/tags", s.getFavoriteTags)
			me.GET("/favorites/countries", s.getFavoriteCountries)
			me.GET("/favorites/categories", s.getFavoriteCategories)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
