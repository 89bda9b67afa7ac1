package orders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return 0, false
	}
	return id, true
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		f := ListFilter{
			Status: c.Query("status"),
			Query:  c.Query("q"),
			Limit:  limit,
			Offset: offset,
		}
		if f.Status != "" && !ValidStatus(f.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid status filter"})
			return
		}
		items, err := repo.List(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "list orders failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "orders": items})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		o, err := repo.Get(c.Request.Context(), id)
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "get order failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "order": o})
	})

	rg.PATCH("/:id/status", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		if !ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid status"})
			return
		}
		err := repo.SetStatus(c.Request.Context(), id, req.Status)
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "update order failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	rg.POST("/:id/invoice", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			Amount string `json:"amount"`
			Note   string `json:"note"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		o, err := repo.Get(c.Request.Context(), id)
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "get order failed"})
			return
		}
		amount := o.Total
		if req.Amount != "" {
			amount, err = decimal.NewFromString(req.Amount)
			if err != nil || amount.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid amount"})
				return
			}
		}
		inv, err := repo.CreateInvoice(c.Request.Context(), id, uuid.NewString(), amount, req.Note)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "create invoice failed"})
			return
		}
		inv.OrderCode = o.Code
		c.JSON(http.StatusCreated, gin.H{"ok": true, "invoice": inv})
	})
}

// RegisterInvoices mounts the invoice read endpoints on their own group.
func RegisterInvoices(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		items, err := repo.ListInvoices(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "list invoices failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "invoices": items})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		inv, err := repo.GetInvoice(c.Request.Context(), id)
		if errors.Is(err, ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "invoice not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "get invoice failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "invoice": inv})
	})
}
