package http

import (
	"github.com/gin-gonic/gin"

	"github.com/saokim-lighting/skl-backend/internal/projects/service"
)

// Handler bundles the project services behind the HTTP surface.
type Handler struct {
	projects *service.ProjectService
	tasks    *service.TaskService
	reports  *service.ReportService
	lines    LineWriter
	expenses ExpenseWriter
}

func New(projects *service.ProjectService, tasks *service.TaskService, reports *service.ReportService, lines LineWriter, expenses ExpenseWriter) *Handler {
	return &Handler{projects: projects, tasks: tasks, reports: reports, lines: lines, expenses: expenses}
}

// Register mounts everything under the given group (normally
// /api/v1/projects).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.createProject)
	rg.GET("", h.listProjects)
	rg.GET("/:public_id", h.getProject)
	rg.PATCH("/:public_id", h.updateProject)
	rg.DELETE("/:public_id", h.deleteProject)

	rg.GET("/:public_id/tasks", h.listTasks)
	rg.POST("/:public_id/tasks", h.createTask)
	rg.PATCH("/:public_id/tasks/:task_id", h.updateTask)
	rg.DELETE("/:public_id/tasks/:task_id", h.deleteTask)
	rg.GET("/:public_id/tasks/:task_id/status", h.taskOverallStatus)
	rg.POST("/:public_id/tasks/:task_id/days/:date/advance", h.advanceTaskDay)
	rg.PUT("/:public_id/tasks/:task_id/days/:date", h.setTaskDay)

	rg.GET("/:public_id/products", h.listLines)
	rg.POST("/:public_id/products", h.createLine)
	rg.DELETE("/:public_id/products/:line_id", h.deleteLine)

	rg.GET("/:public_id/expenses", h.listExpenses)
	rg.POST("/:public_id/expenses", h.createExpense)
	rg.DELETE("/:public_id/expenses/:expense_id", h.deleteExpense)

	rg.GET("/:public_id/report", h.getReport)
	rg.GET("/:public_id/cost-summary", h.getCostSummary)
}
