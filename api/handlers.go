package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/sitecast/stopend/core/metrics"
	"github.com/sitecast/stopend/core/plan"
	"github.com/sitecast/stopend/pkg/export"
	"github.com/sitecast/stopend/storage"
)

// applyDefaults fills planner settings the payload leaves unset.
func (s *Server) applyDefaults(p *plan.Project) {
	if p.Strategy == "" {
		p.Strategy = plan.Strategy(s.defaults.Strategy)
	}
	if p.SafetyStock == 0 {
		p.SafetyStock = s.defaults.SafetyStock
	}
}

func (s *Server) bindProject(c *gin.Context) (*plan.Project, bool) {
	var p plan.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	s.applyDefaults(&p)
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &p, true
}

// runPlan computes the plan and reports the run to the metrics sink.
func (s *Server) runPlan(p *plan.Project) export.Plan {
	start := time.Now()
	pl := export.BuildPlan(p)
	shortageDays := 0
	for _, e := range pl.Ledger {
		if e.Shortage.Long > 0 || e.Shortage.Short > 0 {
			shortageDays++
		}
	}
	if err := s.sink.RecordPlanRun(metrics.PlanRun{
		Project:      p.Name,
		Strategy:     string(pl.Strategy),
		Days:         len(pl.Days),
		ShortageDays: shortageDays,
		MeetsTargets: pl.Summary.MeetsLong && pl.Summary.MeetsShort,
		Duration:     time.Since(start),
	}); err != nil {
		s.logger.Warnf("metrics: %v", err)
	}
	return pl
}

func (s *Server) computePlan(c *gin.Context) {
	p, ok := s.bindProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.runPlan(p))
}

func (s *Server) listProjects(c *gin.Context) {
	recs, err := s.store.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) createProject(c *gin.Context) {
	p, ok := s.bindProject(c)
	if !ok {
		return
	}
	rec := &storage.ProjectRecord{ID: uuid.NewString(), Name: p.Name, Definition: *p}
	if err := s.store.SaveProject(c.Request.Context(), rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.logger.Infof("project %s created", rec.ID)
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) loadProject(c *gin.Context) (*storage.ProjectRecord, bool) {
	rec, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return rec, true
}

func (s *Server) getProject(c *gin.Context) {
	rec, ok := s.loadProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) updateProject(c *gin.Context) {
	rec, ok := s.loadProject(c)
	if !ok {
		return
	}
	p, ok := s.bindProject(c)
	if !ok {
		return
	}
	rec.Name = p.Name
	rec.Definition = *p
	if err := s.store.SaveProject(c.Request.Context(), rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) deleteProject(c *gin.Context) {
	err := s.store.DeleteProject(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) planProject(c *gin.Context) {
	rec, ok := s.loadProject(c)
	if !ok {
		return
	}
	def := rec.Definition
	c.JSON(http.StatusOK, s.runPlan(&def))
}

func (s *Server) exportHandler(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := s.loadProject(c)
		if !ok {
			return
		}
		def := rec.Definition
		pl := s.runPlan(&def)
		writeExport(c, pl, format)
	}
}

func writeExport(c *gin.Context, pl export.Plan, format string) {
	name := pl.Project
	if name == "" {
		name = "plan"
	}
	var err error
	switch format {
	case "json":
		c.Header("Content-Type", "application/json")
		err = export.WriteJSON(c.Writer, pl)
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		err = export.WriteCSV(c.Writer, pl)
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
		err = export.WriteXLSX(c.Writer, pl)
	case "pdf":
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
		err = export.WritePDF(c.Writer, pl)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format " + format})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) shareURL(id string) string {
	return s.baseURL + "/api/shares/" + id
}

func (s *Server) createShare(c *gin.Context) {
	rec, ok := s.loadProject(c)
	if !ok {
		return
	}
	share := &storage.ShareRecord{
		ID:         uuid.NewString(),
		ProjectID:  rec.ID,
		Definition: rec.Definition,
	}
	if err := s.store.CreateShare(c.Request.Context(), share); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.logger.Infof("share %s created for project %s", share.ID, rec.ID)
	c.JSON(http.StatusCreated, gin.H{"id": share.ID, "url": s.shareURL(share.ID)})
}

func (s *Server) loadShare(c *gin.Context) (*storage.ShareRecord, bool) {
	share, err := s.store.GetShare(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "share not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return share, true
}

func (s *Server) getShare(c *gin.Context) {
	share, ok := s.loadShare(c)
	if !ok {
		return
	}
	def := share.Definition
	c.JSON(http.StatusOK, gin.H{
		"id":         share.ID,
		"created_at": share.CreatedAt,
		"plan":       s.runPlan(&def),
	})
}

func (s *Server) shareQR(c *gin.Context) {
	share, ok := s.loadShare(c)
	if !ok {
		return
	}
	png, err := qrcode.Encode(s.shareURL(share.ID), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
