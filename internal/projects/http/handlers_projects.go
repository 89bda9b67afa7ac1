package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saokim-lighting/skl-backend/internal/auth"
	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectDraft
	}
	if !domain.ValidProjectStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project status"})
		return
	}

	p := domain.Project{
		Code:            req.Code,
		Name:            req.Name,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Status:          status,
		StartDate:       start,
		Budget:          req.Budget,
		Description:     req.Description,
		ManagerID:       req.ManagerID,
		CreatedBy:       auth.UserDBID(c),
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		p.EndDate = &end
	}

	created, err := h.projects.Create(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": created})
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) updateProject(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !domain.ValidProjectStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project status"})
		return
	}

	p := domain.Project{
		PublicID:        c.Param("public_id"),
		Name:            req.Name,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Status:          req.Status,
		StartDate:       start,
		Budget:          req.Budget,
		Description:     req.Description,
		ManagerID:       req.ManagerID,
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		p.EndDate = &end
	}

	updated, err := h.projects.Update(c.Request.Context(), p)
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), updated.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": updated})
}

func (h *Handler) deleteProject(c *gin.Context) {
	ok, err := h.projects.Delete(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	h.reports.InvalidateCache(c.Request.Context(), c.Param("public_id"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondProjectErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrProjectFrozen):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "project is closed"})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "task not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
