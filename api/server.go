// Package api exposes the planning service over HTTP: project CRUD,
// plan computation with downloadable exports, and read-only share
// links.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sitecast/stopend/config"
	"github.com/sitecast/stopend/core/metrics"
	"github.com/sitecast/stopend/infra/logger"
	"github.com/sitecast/stopend/storage"
)

// Server bundles the dependencies the handlers need.
type Server struct {
	store    storage.Store
	sink     metrics.Sink
	logger   logger.Logger
	baseURL  string
	defaults config.PlannerConfig
}

// NewServer wires the handler dependencies. A nil sink disables
// instrumentation.
func NewServer(store storage.Store, sink metrics.Sink, log logger.Logger, baseURL string, defaults config.PlannerConfig) *Server {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Server{
		store:    store,
		sink:     sink,
		logger:   log,
		baseURL:  baseURL,
		defaults: defaults,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/plan", s.computePlan)

		apiGroup.GET("/projects", s.listProjects)
		apiGroup.POST("/projects", s.createProject)
		apiGroup.GET("/projects/:id", s.getProject)
		apiGroup.PUT("/projects/:id", s.updateProject)
		apiGroup.DELETE("/projects/:id", s.deleteProject)

		apiGroup.POST("/projects/:id/plan", s.planProject)
		apiGroup.GET("/projects/:id/plan.json", s.exportHandler("json"))
		apiGroup.GET("/projects/:id/plan.csv", s.exportHandler("csv"))
		apiGroup.GET("/projects/:id/plan.xlsx", s.exportHandler("xlsx"))
		apiGroup.GET("/projects/:id/plan.pdf", s.exportHandler("pdf"))

		apiGroup.POST("/projects/:id/share", s.createShare)
		apiGroup.GET("/shares/:id", s.getShare)
		apiGroup.GET("/shares/:id/qr", s.shareQR)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
