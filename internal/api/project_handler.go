package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/export"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// ProjectHandler serves project CRUD, summaries and exports
type ProjectHandler struct {
	projects service.ProjectService
	exporter *export.Exporter
	logger   *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects service.ProjectService, exporter *export.Exporter, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, exporter: exporter, logger: logger}
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project name is required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	project, err := h.projects.Create(c.Request.Context(), session, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// List handles GET /projects?active=true
func (h *ProjectHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	projects, err := h.projects.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// Update handles PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project name is required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	project, err := h.projects.Update(c.Request.Context(), id, session, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// Deactivate handles DELETE /projects/:id (soft-disable only)
func (h *ProjectHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	session, _ := auth.SessionFrom(c)
	if err := h.projects.Deactivate(c.Request.Context(), id, session); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// Summary handles GET /projects/:id/summary
func (h *ProjectHandler) Summary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	report, err := h.projects.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportSummary handles GET /projects/:id/summary/export, streaming an
// xlsx workbook
func (h *ProjectHandler) ExportSummary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	report, err := h.projects.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	workbook, err := h.exporter.BuildWorkbook(report)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("project-%d-summary.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("Failed to stream workbook", zap.Int64("project_id", id), zap.Error(err))
	}
}

// pathID parses the :id path parameter, answering 400 itself on junk
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
