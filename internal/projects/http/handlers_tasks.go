package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) listTasks(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	tasks, err := h.tasks.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": views})
}

func (h *Handler) createTask(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	var req taskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	created, err := h.tasks.Create(c.Request.Context(), domain.TaskItem{
		ProjectID:       p.ID,
		Name:            req.Name,
		Assignee:        req.Assignee,
		StartDate:       start,
		DurationDays:    req.DurationDays,
		DependsOnTaskID: req.DependsOnTaskID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": toTaskView(*created)})
}

func (h *Handler) updateTask(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req taskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	err = h.tasks.Update(c.Request.Context(), domain.TaskItem{
		ID:              id,
		ProjectID:       p.ID,
		Name:            req.Name,
		Assignee:        req.Assignee,
		StartDate:       start,
		DurationDays:    req.DurationDays,
		DependsOnTaskID: req.DependsOnTaskID,
	})
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) deleteTask(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	removed, err := h.tasks.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "task not found"})
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) taskOverallStatus(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	status, err := h.tasks.ComputeOverallStatus(c.Request.Context(), id)
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status, "display": status.Display()})
}

// advanceTaskDay is the single-click cycle step:
// nothing -> New -> InProgress -> Done -> Delayed -> nothing.
func (h *Handler) advanceTaskDay(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	day, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	toggle, err := h.tasks.AdvanceDayStatus(c.Request.Context(), id, day)
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "day": toggle})
}

func (h *Handler) setTaskDay(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	day, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var req setDayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}

	var status *domain.Status
	if req.Status != nil {
		s, valid := domain.ParseStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid status " + *req.Status})
			return
		}
		status = &s
	}

	toggle, err := h.tasks.SetDayStatus(c.Request.Context(), id, day, status)
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "day": toggle})
}
