package server

import (
	"github.com/gin-gonic/gin"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/pipeline"
)

// Server exposes the pipeline over HTTP for the dashboard frontend
type Server struct {
	router   *gin.Engine
	pipeline *pipeline.Pipeline
	config   *model.Config
}

// NewServer creates the HTTP server around an already wired pipeline
func NewServer(cfg *model.Config, p *pipeline.Pipeline) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:   gin.Default(),
		pipeline: p,
		config:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS: the dashboard is served from a different origin in dev
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/health", s.GetHealth)
		api.GET("/hazards", s.GetHazards)
		api.POST("/ask", s.PostAsk)
	}
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
