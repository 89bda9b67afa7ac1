package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/saokim-lighting/skl-backend/internal/auth"
)

type movementReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=in out"`
	Quantity  string `json:"quantity" binding:"required"`
	ProjectID *int64 `json:"project_id"`
	OrderID   *int64 `json:"order_id"`
	Note      string `json:"note"`
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("", func(c *gin.Context) {
		productID, _ := strconv.ParseInt(c.Query("product_id"), 10, 64)
		projectID, _ := strconv.ParseInt(c.Query("project_id"), 10, 64)
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		f := ListFilter{
			ProductID: productID,
			ProjectID: projectID,
			Direction: c.Query("direction"),
			Limit:     limit,
		}
		if f.Direction != "" && f.Direction != DirIn && f.Direction != DirOut {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid direction filter"})
			return
		}
		items, err := repo.List(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "list movements failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "movements": items})
	})

	rg.POST("", func(c *gin.Context) {
		var req movementReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		qty, err := decimal.NewFromString(req.Quantity)
		if err != nil || !qty.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "quantity must be positive"})
			return
		}
		m := Movement{
			ProductID: req.ProductID,
			Direction: req.Direction,
			Quantity:  qty,
			ProjectID: req.ProjectID,
			OrderID:   req.OrderID,
			Note:      req.Note,
		}
		if uid := auth.UserDBID(c); uid != "" {
			m.CreatedBy = &uid
		}
		out, err := repo.Create(c.Request.Context(), m)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "create movement failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "movement": out})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
			return
		}
		m, err := repo.Get(c.Request.Context(), id)
		if errors.Is(err, ErrMovementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "movement not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "get movement failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "movement": m})
	})

	rg.GET("/stock/:product_id", func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid product id"})
			return
		}
		level, err := repo.StockLevel(c.Request.Context(), productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "stock level failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "product_id": productID, "stock": level})
	})
}
