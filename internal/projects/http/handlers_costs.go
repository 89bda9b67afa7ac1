package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/saokim-lighting/skl-backend/internal/projects/domain"
)

func (h *Handler) listLines(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	lines, err := h.lines.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "products": lines})
}

func (h *Handler) createLine(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	var req lineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	if req.Quantity.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "quantity must be positive"})
		return
	}
	if req.UnitPrice.Sign() < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unit_price cannot be negative"})
		return
	}

	created, err := h.lines.Create(c.Request.Context(), domain.ProjectProduct{
		ProjectID:   p.ID,
		ProductName: req.ProductName,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Total:       req.Total,
		Note:        req.Note,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "product": created})
}

func (h *Handler) deleteLine(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	lineID, err := strconv.ParseInt(c.Param("line_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid line id"})
		return
	}

	removed, err := h.lines.Delete(c.Request.Context(), p.ID, lineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "product line not found"})
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listExpenses(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	expenses, err := h.expenses.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "expenses": expenses})
}

// expenseAmountCap mirrors the data-entry rule: 0 <= amount <= 1e9.
var expenseAmountCap = decimal.NewFromInt(1_000_000_000)

func (h *Handler) createExpense(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	day, err := parseDate(req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if req.Amount.Sign() < 0 || req.Amount.GreaterThan(expenseAmountCap) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "amount out of range"})
		return
	}

	created, err := h.expenses.Create(c.Request.Context(), domain.ProjectExpense{
		ProjectID:   p.ID,
		Day:         day,
		Category:    req.Category,
		Vendor:      req.Vendor,
		Description: req.Description,
		Amount:      req.Amount,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "expense": created})
}

func (h *Handler) deleteExpense(c *gin.Context) {
	p, err := h.projects.RequireMutable(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	expenseID, err := strconv.ParseInt(c.Param("expense_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid expense id"})
		return
	}

	removed, err := h.expenses.Delete(c.Request.Context(), p.ID, expenseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "expense not found"})
		return
	}

	h.reports.InvalidateCache(c.Request.Context(), p.PublicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getReport(c *gin.Context) {
	report, err := h.reports.Compile(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) getCostSummary(c *gin.Context) {
	summary, err := h.reports.CostSummary(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		respondProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": summary})
}
